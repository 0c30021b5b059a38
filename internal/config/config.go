package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/aaparts/whatif-margin/internal/logging"
)

const (
	defaultDatasetPath = "raw_data.xlsx"
	defaultDBPath      = ":memory:"
	defaultPort        = "8080"
	defaultEnv         = "dev"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env          string
	Port         string
	DatasetPath  string
	DatasetSheet string
	DBPath       string
	Logging      logging.Config
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit dotenv path. A missing file is not an error;
// variables already present in the environment win over the file.
func LoadFrom(dotenvPath string) Config {
	_ = godotenv.Load(dotenvPath)

	cfg := Config{
		Env:          os.Getenv("APP_ENV"),
		Port:         os.Getenv("PORT"),
		DatasetPath:  os.Getenv("DATASET_PATH"),
		DatasetSheet: os.Getenv("DATASET_SHEET"),
		DBPath:       os.Getenv("DB_PATH"),
		Logging:      logging.DefaultConfig(),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.DatasetPath == "" {
		cfg.DatasetPath = defaultDatasetPath
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	cfg.Logging.Development = cfg.IsDev()

	return cfg
}

// IsDev reports whether the app runs in the local development environment.
func (c Config) IsDev() bool {
	return c.Env == defaultEnv
}
