package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/maxdominios/go-kude/internal/generator"
)

var extractOutput string

var extractCmd = &cobra.Command{
	Use:   "extract <factura.xml>",
	Short: "Extract invoice data as JSON without rendering",
	Long: `Parse a SIFEN electronic invoice XML and print the assembled invoice
view-model as JSON: issuer, recipient, fiscal stamp, operation, items,
totals, CDC and environment flag.

Use "-" as the file argument to read the XML from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	opts := generator.Options{}
	if args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		opts.SourceXML = string(data)
	} else {
		opts.SourcePath = args[0]
	}

	gen := generator.New(generator.WithLogger(newLogger()))
	inv, err := gen.Extract(context.Background(), opts)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}

	if extractOutput != "" {
		return os.WriteFile(extractOutput, append(encoded, '\n'), 0o644)
	}
	fmt.Println(string(encoded))
	return nil
}
