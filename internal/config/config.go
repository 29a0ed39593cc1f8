// Package config loads the nslscan command line configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config holds every setting the CLI accepts from a file. Command line
// flags override individual fields after loading.
type Config struct {
	Workers     int     `yaml:"workers" validate:"gte=1"`
	MinFreq     float64 `yaml:"min_freq" validate:"gt=0,lte=0.5"`
	BinSize     float64 `yaml:"bin_size" validate:"gt=0,lte=1"`
	Length      float64 `yaml:"length" validate:"gte=0"`
	GeneticMap  string  `yaml:"genetic_map"`
	Format      string  `yaml:"format" validate:"oneof=tsv jsonl"`
	LogLevel    string  `yaml:"log_level" validate:"oneof=debug info warn error"`
	Trace       bool    `yaml:"trace"`
	MetricsFile string  `yaml:"metrics_file"`

	S3    S3Config    `yaml:"s3"`
	MinIO MinIOConfig `yaml:"minio"`
	GCS   GCSConfig   `yaml:"gcs"`
}

// S3Config configures s3:// inputs.
type S3Config struct {
	Region string `yaml:"region"`
}

// MinIOConfig configures minio:// inputs.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint" validate:"required_with=AccessKey SecretKey"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
}

// GCSConfig configures gs:// inputs.
type GCSConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Workers:  1,
		MinFreq:  0.05,
		BinSize:  0.05,
		Format:   "tsv",
		LogLevel: "info",
		MinIO:    MinIOConfig{Secure: true},
	}
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load reads a YAML file on top of Default. An empty path returns the
// defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read the config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML data on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse the config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
