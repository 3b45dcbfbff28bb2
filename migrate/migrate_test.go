package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/dbprovider/migrate/sqlgen"
)

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("shop",
		Migration{ID: "0002_orders", Up: []sqlgen.Operation{sqlgen.SQLOperation{SQL: "SELECT 2"}}},
		Migration{ID: "0001_init"},
	))
	require.NoError(t, r.Register("billing", Migration{ID: "0001_init"}))

	got, err := r.Lookup("shop")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "0001_init", got[0].ID)
	assert.Equal(t, "0002_orders", got[1].ID)

	assert.Equal(t, []string{"billing", "shop"}, r.Assemblies())

	_, err = r.Lookup("missing")
	assert.ErrorIs(t, err, ErrUnknownAssembly)
}

func TestRegistry_RegisterErrors(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register("", Migration{ID: "1"}))
	assert.Error(t, r.Register("shop", Migration{}))

	require.NoError(t, r.Register("shop", Migration{ID: "1"}))
	assert.Error(t, r.Register("shop", Migration{ID: "1"}))
}

func TestRegistry_RegisterIsAllOrNothing(t *testing.T) {
	r := NewRegistry()

	err := r.Register("shop", Migration{ID: "0001"}, Migration{ID: "0002"}, Migration{})
	require.Error(t, err)
	assert.Empty(t, r.Assemblies())

	err = r.Register("shop", Migration{ID: "0001"}, Migration{ID: "0001"})
	require.Error(t, err)
	_, err = r.Lookup("shop")
	assert.ErrorIs(t, err, ErrUnknownAssembly)

	require.NoError(t, r.Register("shop", Migration{ID: "0001"}))
	require.Error(t, r.Register("shop", Migration{ID: "0002"}, Migration{ID: "0001"}))

	got, err := r.Lookup("shop")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "0001", got[0].ID)
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	Register("migrate_test_dup", Migration{ID: "1"})
	assert.Panics(t, func() { Register("migrate_test_dup", Migration{ID: "1"}) })

	got, err := Default().Lookup("migrate_test_dup")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
