package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/maxdominios/go-kude/internal/generator"
	"github.com/maxdominios/go-kude/internal/model"
)

var (
	outputFile string
	emisorJSON string
	toStdout   bool
	genTimeout time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate <factura.xml>",
	Short: "Generate the KUDE PDF for a SIFEN invoice",
	Long: `Generate the printable KUDE PDF from a SIFEN electronic invoice XML.

The output defaults to the source file name with a .pdf extension.
Issuer fields extracted from the XML can be overridden with --emisor,
a JSON object with any subset of the issuer keys:

  kude generate factura.xml --emisor '{"nombre":"Mi Empresa S.A.","telefono":"+595 21 123456"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output PDF path (default: <source>.pdf)")
	generateCmd.Flags().StringVar(&emisorJSON, "emisor", "", "JSON object overriding issuer fields")
	generateCmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the PDF to stdout instead of a file")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 30*time.Second, "Generation timeout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	source := args[0]

	override, err := parseEmisorOverride(emisorJSON)
	if err != nil {
		return err
	}

	output := outputFile
	if output == "" && !toStdout {
		output = defaultOutputPath(source)
	}

	ctx, cancel := context.WithTimeout(context.Background(), genTimeout)
	defer cancel()

	opts := generator.Options{
		SourcePath:  source,
		OutputPath:  output,
		LogoPath:    logoPath,
		ReturnBytes: toStdout,
		Emisor:      override,
	}

	gen := generator.New(generator.WithLogger(newLogger()))
	pdf, err := gen.Generate(ctx, opts)
	if err != nil {
		return err
	}

	if toStdout {
		_, err = os.Stdout.Write(pdf)
		return err
	}

	fmt.Fprintf(os.Stderr, "KUDE written to %s\n", output)
	return nil
}

func parseEmisorOverride(raw string) (*model.EmisorOverride, error) {
	if raw == "" {
		return nil, nil
	}
	var override model.EmisorOverride
	if err := json.Unmarshal([]byte(raw), &override); err != nil {
		return nil, fmt.Errorf("invalid --emisor JSON: %w", err)
	}
	return &override, nil
}

func defaultOutputPath(source string) string {
	if ext := ".xml"; strings.HasSuffix(strings.ToLower(source), ext) {
		return source[:len(source)-len(ext)] + ".pdf"
	}
	return source + ".pdf"
}
