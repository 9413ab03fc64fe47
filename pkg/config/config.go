// Package config loads server configuration via Viper from environment
// variables (prefix KUDE_) and an optional config file.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the application configuration.
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	KUDE KUDEConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env      string // development, staging, production
	LogLevel string
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// KUDEConfig holds generation defaults applied when a request omits them.
type KUDEConfig struct {
	LogoPath string // default logo for every generated document
}

// Load reads configuration from the environment and, when path is not
// empty, from the given config file. Environment variables win: e.g.
// KUDE_HTTP_ADDRESS overrides http.address from the file.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.env", "production")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("http.address", ":8080")
	v.SetDefault("http.read_timeout", 30*time.Second)
	v.SetDefault("http.write_timeout", 2*time.Minute)
	v.SetDefault("http.debug", false)
	v.SetDefault("kude.logo_path", "")

	v.SetEnvPrefix("KUDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return &Config{
		App: AppConfig{
			Env:      v.GetString("app.env"),
			LogLevel: v.GetString("app.log_level"),
		},
		HTTP: HTTPConfig{
			Address:      v.GetString("http.address"),
			ReadTimeout:  v.GetDuration("http.read_timeout"),
			WriteTimeout: v.GetDuration("http.write_timeout"),
			Debug:        v.GetBool("http.debug"),
		},
		KUDE: KUDEConfig{
			LogoPath: v.GetString("kude.logo_path"),
		},
	}, nil
}
