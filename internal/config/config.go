package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	OMDB struct {
		APIKey  string
		BaseURL string
		Timeout time.Duration
	}
}

// Load reads config from environment (MOVIEWEB_ prefix) and optional movieweb.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MOVIEWEB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("movieweb")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("omdb.base_url", "http://www.omdbapi.com/")
	v.SetDefault("omdb.timeout", "10s")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.OMDB.APIKey = v.GetString("omdb.api_key")
	cfg.OMDB.BaseURL = v.GetString("omdb.base_url")

	timeout, err := time.ParseDuration(v.GetString("omdb.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid MOVIEWEB_OMDB_TIMEOUT: %w", err)
	}
	cfg.OMDB.Timeout = timeout

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("MOVIEWEB_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("MOVIEWEB_DB_DSN is required")
	}

	// The OMDb key is deliberately not required here: every store operation
	// works without it, and the client fails fast on lookup instead.

	return cfg, nil
}
