package kude

import (
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/maxdominios/go-kude/internal/model"
)

// pageMargin in mm, equivalent to the 40pt margins of the original layout.
const pageMargin = 14

// Render turns a composed document description into PDF bytes.
func Render(rows []core.Row) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(pageMargin).WithRightMargin(pageMargin).
		WithTopMargin(pageMargin).WithBottomMargin(pageMargin).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("KUDE - Factura Electrónica", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(rows...)

	doc, err := m.Generate()
	if err != nil {
		return nil, model.NewRenderError("pdf", "generate document", err)
	}
	return doc.GetBytes(), nil
}
