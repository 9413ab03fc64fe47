// Package kudelib provides the public API for generating KUDE documents
// (the printable representation of a SIFEN electronic invoice) from
// their XML source.
//
// Example usage:
//
//	_, err := kudelib.Generate(ctx, kudelib.Options{
//	    SourcePath: "factura.xml",
//	    OutputPath: "factura.pdf",
//	    LogoPath:   "logo.png",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
package kudelib

import (
	"context"

	"github.com/maxdominios/go-kude/internal/generator"
	"github.com/maxdominios/go-kude/internal/model"
	"github.com/maxdominios/go-kude/pkg/logger"
)

// Re-export core types for the public API
type (
	Invoice        = model.Invoice
	Emisor         = model.Emisor
	Receptor       = model.Receptor
	Timbrado       = model.Timbrado
	Operacion      = model.Operacion
	Item           = model.Item
	Totales        = model.Totales
	EmisorOverride = model.EmisorOverride

	Options = generator.Options
)

// Re-export error types
type (
	ConfigError     = model.ConfigError
	StructuralError = model.StructuralError
	RenderError     = model.RenderError
)

// Generate renders the KUDE PDF for one SIFEN XML document. With
// Options.ReturnBytes it returns the PDF bytes; otherwise it writes to
// Options.OutputPath and returns nil bytes.
func Generate(ctx context.Context, opts Options) ([]byte, error) {
	return generator.New().Generate(ctx, opts)
}

// Extract parses a SIFEN XML document and returns the assembled invoice
// view-model without rendering.
func Extract(ctx context.Context, opts Options) (*Invoice, error) {
	return generator.New().Extract(ctx, opts)
}

// GenerateWithLogger is Generate with structured logging enabled.
func GenerateWithLogger(ctx context.Context, opts Options, log *logger.Logger) ([]byte, error) {
	return generator.New(generator.WithLogger(log)).Generate(ctx, opts)
}
