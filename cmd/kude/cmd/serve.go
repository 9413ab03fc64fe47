package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maxdominios/go-kude/internal/server"
	"github.com/maxdominios/go-kude/pkg/config"
	"github.com/maxdominios/go-kude/pkg/logger"
)

var (
	serverAddr  string
	serverDebug bool
	configFile  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for generating KUDE documents.

Endpoints:
  POST /api/v1/kude     - SIFEN XML in (raw or JSON envelope), PDF out
  POST /api/v1/extract  - SIFEN XML in, invoice view-model JSON out
  GET  /health          - Health check

Configuration comes from KUDE_-prefixed environment variables or an
optional config file; flags override both.

Examples:
  kude serve
  kude serve --address :9090 --debug
  KUDE_KUDE_LOGO_PATH=logo.png kude serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default :8080)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().StringVar(&configFile, "config", "", "Config file path")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	if serverAddr != "" {
		cfg.HTTP.Address = serverAddr
	}
	if serverDebug {
		cfg.HTTP.Debug = true
		cfg.App.LogLevel = "debug"
	}
	if logoPath != "" {
		cfg.KUDE.LogoPath = logoPath
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	srv := server.NewServer(&server.Config{
		Address:      cfg.HTTP.Address,
		LogoPath:     cfg.KUDE.LogoPath,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		Debug:        cfg.HTTP.Debug,
	}, log)

	return srv.Run()
}
