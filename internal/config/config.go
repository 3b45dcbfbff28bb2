// Package config loads the database provider configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/satishbabariya/dbprovider/provider"
)

// AppFs is the filesystem configuration files are read from.
var AppFs = afero.NewOsFs()

const (
	configName = ".dbprovider"
	envPrefix  = "DBPROVIDER"
)

// Config holds the application configuration.
type Config struct {
	Database   DatabaseConfig
	Migrations MigrationsConfig
	Debug      bool
}

// DatabaseConfig selects and tunes the database provider.
type DatabaseConfig struct {
	Type             string
	ConnectionString string
	MaxConnections   int
	MaxIdleTime      time.Duration
	ConnectTimeout   time.Duration
}

// MigrationsConfig names the migration set and its history table.
type MigrationsConfig struct {
	Assembly     string
	SchemaPrefix string
	// Directory, when set, holds SQL migration files for Assembly.
	Directory string
}

// LoadConfig loads configuration from the config file, .env files and the
// environment. configFile overrides the search path when set.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	v.SetFs(AppFs)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "dbprovider"))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.connection_string", "")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_time", 5*time.Minute)
	v.SetDefault("database.connect_timeout", 15*time.Second)
	v.SetDefault("migrations.assembly", "")
	v.SetDefault("migrations.schema_prefix", "")
	v.SetDefault("migrations.directory", "")
	v.SetDefault("debug", false)

	if err := loadDotEnv(".env", false); err != nil {
		return nil, err
	}
	if err := loadDotEnv(".env.local", true); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Type:             v.GetString("database.type"),
			ConnectionString: v.GetString("database.connection_string"),
			MaxConnections:   v.GetInt("database.max_connections"),
			MaxIdleTime:      v.GetDuration("database.max_idle_time"),
			ConnectTimeout:   v.GetDuration("database.connect_timeout"),
		},
		Migrations: MigrationsConfig{
			Assembly:     v.GetString("migrations.assembly"),
			SchemaPrefix: v.GetString("migrations.schema_prefix"),
			Directory:    v.GetString("migrations.directory"),
		},
		Debug: v.GetBool("debug"),
	}
	if cfg.Database.ConnectionString == "" {
		cfg.Database.ConnectionString = os.Getenv("DATABASE_URL")
	}

	return cfg, nil
}

// loadDotEnv exports the variables in path. Existing variables are kept
// unless override is set. A missing file is not an error.
func loadDotEnv(path string, override bool) error {
	f, err := AppFs.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for k, val := range vars {
		if _, exists := os.LookupEnv(k); exists && !override {
			continue
		}
		if err := os.Setenv(k, val); err != nil {
			return err
		}
	}
	return nil
}

// DatabaseOptions validates the database section and returns the provider choice.
func (c *Config) DatabaseOptions() (provider.DatabaseOptions, error) {
	kind, err := provider.ParseKind(c.Database.Type)
	if err != nil {
		return provider.DatabaseOptions{}, err
	}
	if c.Database.ConnectionString == "" {
		return provider.DatabaseOptions{}, &provider.ConfigurationError{
			Field: "database.connection_string",
			Err:   provider.ErrInvalidConfiguration,
		}
	}
	return provider.DatabaseOptions{
		Kind:             kind,
		ConnectionString: c.Database.ConnectionString,
		MaxConnections:   c.Database.MaxConnections,
		MaxIdleTime:      c.Database.MaxIdleTime,
		ConnectTimeout:   c.Database.ConnectTimeout,
	}, nil
}
