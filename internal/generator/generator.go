// Package generator orchestrates the KUDE pipeline: read source XML,
// extract the view-model, generate the QR bitmap, load the logo, compose
// the layout and render the PDF.
package generator

import (
	"context"
	"os"

	"github.com/maxdominios/go-kude/internal/kude"
	"github.com/maxdominios/go-kude/internal/model"
	"github.com/maxdominios/go-kude/internal/qr"
	"github.com/maxdominios/go-kude/internal/sifen"
	"github.com/maxdominios/go-kude/pkg/logger"
)

// Options configures one generation request.
type Options struct {
	// Exactly one of SourcePath and SourceXML must be set; SourcePath
	// wins when both are given.
	SourcePath string
	SourceXML  string

	// OutputPath receives the PDF unless ReturnBytes is set.
	OutputPath  string
	ReturnBytes bool

	// LogoPath is optional; an unloadable logo degrades to none.
	LogoPath string

	// Emisor overrides extracted issuer fields, field by field.
	Emisor *model.EmisorOverride
}

// Generator runs the pipeline. It holds no per-request state and is safe
// for concurrent use.
type Generator struct {
	log *logger.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the structured logger.
func WithLogger(log *logger.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// New creates a generator.
func New(opts ...Option) *Generator {
	g := &Generator{log: logger.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces the KUDE PDF for one SIFEN document. When
// opts.ReturnBytes is set the rendered bytes are returned and nothing is
// written; otherwise the document is written to opts.OutputPath and the
// returned slice is nil.
func (g *Generator) Generate(ctx context.Context, opts Options) ([]byte, error) {
	if err := validateSource(opts); err != nil {
		return nil, err
	}
	if !opts.ReturnBytes && opts.OutputPath == "" {
		return nil, model.NewConfigError("outputPath", "required unless returnBytes is set")
	}

	inv, err := g.extract(opts)
	if err != nil {
		return nil, err
	}

	// QR failure degrades the footer, it never aborts the render.
	var qrPNG []byte
	if inv.QRURL != "" {
		qrPNG, err = qr.Generate(inv.QRURL, qr.DefaultSize)
		if err != nil {
			g.log.Warn().Err(err).Msg("qr generation failed, footer will have no QR")
			qrPNG = nil
		}
	}

	logo := kude.LoadLogo(opts.LogoPath)
	if opts.LogoPath != "" && logo == nil {
		g.log.Warn().Str("path", opts.LogoPath).Msg("logo not loadable, header will have no logo")
	}

	rows := kude.ComposeRows(inv, qrPNG, logo)
	pdf, err := kude.Render(rows)
	if err != nil {
		return nil, err
	}

	g.log.Debug().
		Str("cdc", inv.CDC).
		Int("items", len(inv.Items)).
		Bool("test_env", inv.AmbientePrueba).
		Int("bytes", len(pdf)).
		Msg("kude rendered")

	if opts.ReturnBytes {
		return pdf, nil
	}
	if err := os.WriteFile(opts.OutputPath, pdf, 0o644); err != nil {
		return nil, model.NewRenderError("write", "write output file", err)
	}
	return nil, nil
}

// Extract parses the SIFEN document and returns the assembled view-model
// without rendering anything.
func (g *Generator) Extract(ctx context.Context, opts Options) (*model.Invoice, error) {
	if err := validateSource(opts); err != nil {
		return nil, err
	}
	return g.extract(opts)
}

func (g *Generator) extract(opts Options) (*model.Invoice, error) {
	data := []byte(opts.SourceXML)
	if opts.SourcePath != "" {
		var err error
		data, err = os.ReadFile(opts.SourcePath)
		if err != nil {
			return nil, model.NewConfigError("sourcePath", "cannot read source file: "+err.Error())
		}
	}

	doc, err := sifen.Parse(data)
	if err != nil {
		return nil, err
	}
	return sifen.BuildInvoice(doc, opts.Emisor), nil
}

func validateSource(opts Options) error {
	if opts.SourcePath == "" && opts.SourceXML == "" {
		return model.NewConfigError("source", "either sourcePath or sourceXml is required")
	}
	return nil
}
