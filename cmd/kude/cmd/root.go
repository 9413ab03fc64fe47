package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/maxdominios/go-kude/pkg/logger"
)

var (
	version = "1.0.0"

	// Global flags
	verbose  bool
	logoPath string
)

var rootCmd = &cobra.Command{
	Use:   "kude",
	Short: "Generate KUDE documents from SIFEN e-invoices (Paraguay)",
	Long: `kude turns a SIFEN electronic invoice XML into its printable
representation (KUDE): a PDF with the issuer header, the itemized tax
table, and the verification footer with QR code and CDC.

Examples:
  # Generate a PDF next to the source XML
  kude generate factura.xml

  # Generate with a company logo and explicit output
  kude generate factura.xml -o factura.pdf --logo logo.png

  # Extract the invoice data as JSON without rendering
  kude extract factura.xml

  # Start the HTTP API
  kude serve --address :8080`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logoPath, "logo", "", "Logo image path (env: KUDE_LOGO)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if logoPath == "" {
		logoPath = os.Getenv("KUDE_LOGO")
	}
}

func newLogger() *logger.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Config{Env: "development", Level: level})
}
