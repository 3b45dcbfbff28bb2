package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"sqlite", SQLite},
		{"SQLite3", SQLite},
		{"postgres", Postgres},
		{" PostgreSQL ", Postgres},
		{"npgsql", Postgres},
		{"mysql", MySQL},
		{"MariaDB", MySQL},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestParseKind_Invalid(t *testing.T) {
	for _, in := range []string{"", "oracle", "mssql"} {
		_, err := ParseKind(in)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, in)
	}

	_, err := ParseKind("oracle")
	assert.EqualError(t, err, `invalid database configuration: unsupported database.type "oracle"`)

	_, err = ParseKind("")
	assert.EqualError(t, err, "invalid database configuration: database.type is not set")
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "sqlite", SQLite.String())
	assert.Equal(t, "postgres", Postgres.String())
	assert.Equal(t, "mysql", MySQL.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.False(t, Kind(0).Valid())
}
