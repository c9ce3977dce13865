// Package config loads and validates the settings of a pipeline run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-leaknet/pkg/logging"
	"github.com/dd0wney/cluso-leaknet/pkg/validation"
)

// Config is the complete configuration of one run.
type Config struct {
	Input    string        `yaml:"input"`
	Output   OutputConfig  `yaml:"output"`
	Publish  PublishConfig `yaml:"publish"`
	LogLevel string        `yaml:"log_level"`
}

// OutputConfig controls the local artifacts.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	Compress    bool   `yaml:"compress"`
	GEXF        bool   `yaml:"gexf"`
	MetricsFile string `yaml:"metrics_file"`
}

// PublishConfig lists optional publication targets. A nil target is off.
type PublishConfig struct {
	S3       *S3Config       `yaml:"s3,omitempty"`
	Postgres *PostgresConfig `yaml:"postgres,omitempty"`
}

// S3Config describes the bucket artifacts are uploaded to.
type S3Config struct {
	Bucket          string `yaml:"bucket" validate:"required"`
	Prefix          string `yaml:"prefix"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint" validate:"omitempty,url"`
	AccessKeyID     string `yaml:"access_key_id" validate:"required_with=SecretAccessKey"`
	SecretAccessKey string `yaml:"secret_access_key" validate:"required_with=AccessKeyID"`
	UsePathStyle    bool   `yaml:"use_path_style"`
}

// PostgresConfig describes the database the tables are loaded into.
type PostgresConfig struct {
	DSN      string `yaml:"dsn" validate:"required"`
	Schema   string `yaml:"schema"`
	MaxConns int32  `yaml:"max_conns" validate:"max=64"`
}

// Defaults
const (
	DefaultOutputDir      = "output"
	DefaultPostgresSchema = "leaknet"
	DefaultLogLevel       = "info"
)

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:  DefaultOutputDir,
			GEXF: true,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Load reads a YAML file over the defaults. Unknown keys are an error.
// Environment references such as ${PGPASSWORD} are expanded first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Output.Dir = validation.DefaultOr(c.Output.Dir, DefaultOutputDir)
	c.LogLevel = validation.DefaultOr(c.LogLevel, DefaultLogLevel)
	if c.Publish.Postgres != nil {
		c.Publish.Postgres.Schema = validation.DefaultOr(c.Publish.Postgres.Schema, DefaultPostgresSchema)
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	c.applyDefaults()

	cv := validation.NewConfigValidator("config").
		Struct(c).
		Required("input", c.Input).
		Required("output.dir", c.Output.Dir).
		ExistingDir("input", c.Input).
		Custom("output.dir", func() error {
			if c.Input == "" || c.Output.Dir == "" {
				return nil
			}
			in, err1 := filepath.Abs(c.Input)
			out, err2 := filepath.Abs(c.Output.Dir)
			if err1 == nil && err2 == nil && in == out {
				return errors.New("must differ from the input directory")
			}
			return nil
		}).
		Custom("log_level", func() error {
			_, err := logging.ParseLevel(c.LogLevel)
			return err
		})

	cv.When(c.Publish.Postgres != nil, func(v *validation.ConfigValidator) {
		v.NonNegative("publish.postgres.max_conns", int(c.Publish.Postgres.MaxConns))
		v.Custom("publish.postgres.schema", func() error {
			if !identifierPattern.MatchString(c.Publish.Postgres.Schema) {
				return fmt.Errorf("%q is not a lower-case SQL identifier", c.Publish.Postgres.Schema)
			}
			return nil
		})
	})

	return cv.Validate()
}
