package migrate

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/dbprovider/migrate/sqlgen"
)

func TestLoadDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/m/0002_orders.up.sql": "CREATE TABLE orders (id TEXT PRIMARY KEY);",
		"/m/0001_init.up.sql":   "CREATE TABLE items (id TEXT PRIMARY KEY);",
		"/m/0001_init.down.sql": "DROP TABLE items;",
		"/m/README.md":          "ignored",
		"/m/nested/0003.up.sql": "ignored",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}

	got, err := LoadDir(fs, "/m")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "0001_init", got[0].ID)
	assert.Equal(t, []sqlgen.Operation{sqlgen.SQLOperation{SQL: "CREATE TABLE items (id TEXT PRIMARY KEY);"}}, got[0].Up)
	assert.Equal(t, []sqlgen.Operation{sqlgen.SQLOperation{SQL: "DROP TABLE items;"}}, got[0].Down)
	assert.Equal(t, "0002_orders", got[1].ID)
	assert.Nil(t, got[1].Down)
}

func TestLoadDir_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := LoadDir(fs, "/missing")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/m/0001.down.sql", []byte("DROP TABLE x;"), 0o644))
	_, err = LoadDir(fs, "/m")
	assert.ErrorContains(t, err, "0001")
}
