// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/coursedraft/internal/assets"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix namespaces every variable, e.g. COURSEDRAFT_API_BASE_URL.
const Prefix = "COURSEDRAFT"

type Config struct {
	APIBaseURL string `envconfig:"API_BASE_URL" default:"http://localhost:5000/api/v1"`
	APIToken   string `envconfig:"API_TOKEN"`

	DBPath      string `envconfig:"DB"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Environment string `envconfig:"ENV" default:"production"`

	// Media uploads are off unless a bucket is set.
	S3Endpoint      string `envconfig:"S3_ENDPOINT"`
	S3Bucket        string `envconfig:"S3_BUCKET"`
	S3Region        string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey     string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey     string `envconfig:"S3_SECRET_KEY"`
	S3PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL"`
}

// Load reads an optional .env file from the working directory and then the
// process environment. Values already in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".coursedraft", "coursedraft.db")
	} else if strings.HasPrefix(cfg.DBPath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, cfg.DBPath[2:])
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return &cfg, nil
}

// Assets returns the object-store settings.
func (c *Config) Assets() assets.Config {
	return assets.Config{
		Endpoint:      c.S3Endpoint,
		Bucket:        c.S3Bucket,
		Region:        c.S3Region,
		AccessKey:     c.S3AccessKey,
		SecretKey:     c.S3SecretKey,
		PublicBaseURL: c.S3PublicBaseURL,
	}
}

// IsDevelopment reports whether human-readable console logs are wanted.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
