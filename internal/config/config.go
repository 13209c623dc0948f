package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/datastore/job-service/internal/authz"
)

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type AuthConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	JWKSURL         string        `mapstructure:"jwks_url"`
	Stack           string        `mapstructure:"stack"`
	Audience        string        `mapstructure:"audience"`
	RequiredRole    string        `mapstructure:"required_role"`
	RefreshInterval time.Duration `mapstructure:"jwks_refresh_interval"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatastoreConfig describes the datastore row written when data is moved
// into the relational backend.
type DatastoreConfig struct {
	Name        string `mapstructure:"name"`
	Rdn         string `mapstructure:"rdn"`
	Description string `mapstructure:"description"`
	Directory   string `mapstructure:"directory"`
}

type Config struct {
	ServerPort      string          `mapstructure:"server_port"`
	DatabaseURL     string          `mapstructure:"database_url"`
	Backend         string          `mapstructure:"backend"`
	MongoDB         MongoConfig     `mapstructure:"mongodb"`
	InputDir        string          `mapstructure:"input_dir"`
	BumpEnabled     bool            `mapstructure:"bump_enabled"`
	MigrationAPIKey string          `mapstructure:"migration_api_key"`
	Auth            AuthConfig      `mapstructure:"auth"`
	Log             LogConfig       `mapstructure:"log"`
	Metrics         MetricsConfig   `mapstructure:"metrics"`
	CORS            CORSConfig      `mapstructure:"cors"`
	Datastore       DatastoreConfig `mapstructure:"datastore"`
}

const envPrefix = "JOB_SERVICE"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("database_url", "")
	v.SetDefault("migration_api_key", "")
	v.SetDefault("mongodb.username", "")
	v.SetDefault("mongodb.password", "")
	v.SetDefault("auth.jwks_url", "")
	v.SetDefault("auth.stack", "")
	v.SetDefault("auth.audience", "")
	v.SetDefault("datastore.name", "")
	v.SetDefault("datastore.rdn", "")
	v.SetDefault("datastore.description", "")
	v.SetDefault("datastore.directory", "")
	v.SetDefault("backend", "mongodb")
	v.SetDefault("mongodb.url", "mongodb://localhost:27017")
	v.SetDefault("mongodb.database", "jobDB")
	v.SetDefault("input_dir", "/data/input")
	v.SetDefault("bump_enabled", false)
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.required_role", "role/dataadministrator")
	v.SetDefault("auth.jwks_refresh_interval", time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
}

// Load reads config.yaml from the current directory or ./config. Every key can
// be overridden from the environment, e.g. JOB_SERVICE_MONGODB_URL.
func Load() (*Config, error) {
	// Look for config in the current directory and ./config
	return load(".", "./config")
}

func load(paths ...string) (*Config, error) {
	v := viper.New()

	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	if config.Auth.Audience == "" {
		config.Auth.Audience = authz.AudienceForStack(config.Auth.Stack)
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case "mongodb", "postgres":
	default:
		return errors.Errorf("backend must be mongodb or postgres, got %q", c.Backend)
	}
	if c.Auth.Enabled && c.Auth.JWKSURL == "" {
		return errors.New("auth.jwks_url must be set when auth is enabled")
	}
	if c.Backend == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url must be set when the postgres backend is active")
	}
	return nil
}
