package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/dbprovider/provider"
)

func useFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	prev := AppFs
	AppFs = fs
	t.Cleanup(func() { AppFs = prev })
	return fs
}

func TestLoadConfig_File(t *testing.T) {
	fs := useFs(t)
	require.NoError(t, afero.WriteFile(fs, "/etc/dbprovider.yaml", []byte(`
database:
  type: postgres
  connection_string: postgres://app:pw@db:5432/shop
  max_connections: 20
  connect_timeout: 5s
migrations:
  assembly: shop
  schema_prefix: Plugin_Shop
debug: true
`), 0o644))

	cfg, err := LoadConfig("/etc/dbprovider.yaml")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "postgres://app:pw@db:5432/shop", cfg.Database.ConnectionString)
	assert.Equal(t, 20, cfg.Database.MaxConnections)
	assert.Equal(t, 5*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Database.MaxIdleTime)
	assert.Equal(t, "shop", cfg.Migrations.Assembly)
	assert.Equal(t, "Plugin_Shop", cfg.Migrations.SchemaPrefix)
	assert.True(t, cfg.Debug)

	opts, err := cfg.DatabaseOptions()
	require.NoError(t, err)
	assert.Equal(t, provider.Postgres, opts.Kind)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	useFs(t)
	_, err := LoadConfig("/nope.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_Env(t *testing.T) {
	useFs(t)
	t.Setenv("DBPROVIDER_DATABASE_TYPE", "mysql")
	t.Setenv("DBPROVIDER_MIGRATIONS_ASSEMBLY", "billing")
	t.Setenv("DBPROVIDER_DATABASE_CONNECTION_STRING", "")
	t.Setenv("DATABASE_URL", "app:pw@tcp(db:3306)/billing")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "billing", cfg.Migrations.Assembly)
	assert.Equal(t, "app:pw@tcp(db:3306)/billing", cfg.Database.ConnectionString)
	assert.Equal(t, 10, cfg.Database.MaxConnections)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	fs := useFs(t)
	require.NoError(t, afero.WriteFile(fs, ".env", []byte("DBPROVIDER_MIGRATIONS_SCHEMA_PREFIX=FromDotEnv\nDBPROVIDER_DATABASE_TYPE=mysql\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, ".env.local", []byte("DBPROVIDER_DATABASE_TYPE=postgres\n"), 0o644))

	t.Setenv("DBPROVIDER_MIGRATIONS_SCHEMA_PREFIX", "FromEnv")
	t.Setenv("DBPROVIDER_DATABASE_TYPE", "sqlite")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "FromEnv", cfg.Migrations.SchemaPrefix, ".env does not override the environment")
	assert.Equal(t, "postgres", cfg.Database.Type, ".env.local overrides the environment")
	assert.Equal(t, "postgres", os.Getenv("DBPROVIDER_DATABASE_TYPE"))
}

func TestConfig_DatabaseOptions(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Type: "oracle", ConnectionString: "x"}}
	_, err := cfg.DatabaseOptions()
	assert.ErrorIs(t, err, provider.ErrInvalidConfiguration)

	cfg = &Config{Database: DatabaseConfig{Type: "sqlite"}}
	_, err = cfg.DatabaseOptions()
	assert.ErrorIs(t, err, provider.ErrInvalidConfiguration)

	cfg = &Config{Database: DatabaseConfig{Type: "sqlite", ConnectionString: "app.db"}}
	opts, err := cfg.DatabaseOptions()
	require.NoError(t, err)
	assert.Equal(t, provider.DatabaseOptions{Kind: provider.SQLite, ConnectionString: "app.db"}, opts)
}
