package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Supported datastore backends.
const (
	DBTypePostgres = "postgres"
	DBTypeMongo    = "mongo"
	DBTypeBolt     = "bolt"
)

// EnvTest disables operational error logging in the HTTP shell.
const EnvTest = "test"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Env      string `koanf:"env"`
	LogLevel string `koanf:"log_level"`
	Port     string `koanf:"port"`

	DBType         string `koanf:"db_type"`
	PostgresURL    string `koanf:"postgres_url"`
	MongoURL       string `koanf:"mongo_url"`
	MongoDatabase  string `koanf:"mongo_database"`
	BoltPath       string `koanf:"bolt_path"`
	MigrationsPath string `koanf:"migrations_path"`

	// TemplateDir holds invoice_template.html for PDF rendering.
	TemplateDir string `koanf:"template_dir"`

	// S3 settings; uploads are disabled when S3Bucket is empty.
	S3Bucket          string `koanf:"s3_bucket"`
	S3Endpoint        string `koanf:"s3_endpoint"`
	S3Region          string `koanf:"s3_region"`
	S3AccessKeyID     string `koanf:"s3_access_key_id"`
	S3SecretAccessKey string `koanf:"s3_secret_access_key"`
	S3PublicURL       string `koanf:"s3_public_url"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Env:            "development",
		LogLevel:       "info",
		Port:           "8080",
		DBType:         DBTypePostgres,
		MongoDatabase:  "biztime",
		BoltPath:       "biztime.db",
		MigrationsPath: "db/migrations",
		TemplateDir:    "templates",
		S3Region:       "auto",
	}
}

// Load layers defaults, an optional .env file, an optional YAML file named by
// BIZTIME_CONFIG and finally BIZTIME_* environment variables.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	k := koanf.New(".")

	if path := os.Getenv("BIZTIME_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// BIZTIME_POSTGRES_URL -> postgres_url
	envProvider := env.Provider("BIZTIME_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "biztime_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: port must not be empty", ErrInvalidConfig)
	}
	switch c.DBType {
	case DBTypePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("%w: postgres_url must be set for db_type=postgres", ErrInvalidConfig)
		}
	case DBTypeMongo:
		if c.MongoURL == "" {
			return fmt.Errorf("%w: mongo_url must be set for db_type=mongo", ErrInvalidConfig)
		}
	case DBTypeBolt:
		if c.BoltPath == "" {
			return fmt.Errorf("%w: bolt_path must be set for db_type=bolt", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: DB_TYPE not supported: %q", ErrInvalidConfig, c.DBType)
	}
	return nil
}

// IsTest reports whether the process runs under the test configuration.
func (c *Config) IsTest() bool {
	return c.Env == EnvTest
}

// UploadsEnabled reports whether generated PDFs go to object storage.
func (c *Config) UploadsEnabled() bool {
	return c.S3Bucket != ""
}
