// Package migrate holds the migration sets that a context can apply.
// A migration set is registered under an assembly name, which is what
// provider options refer to.
package migrate

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/satishbabariya/dbprovider/migrate/sqlgen"
)

// ErrUnknownAssembly is returned when no migrations are registered under a name.
var ErrUnknownAssembly = errors.New("unknown migrations assembly")

// Migration is one versioned schema change. IDs sort in apply order.
type Migration struct {
	ID   string
	Up   []sqlgen.Operation
	Down []sqlgen.Operation
}

// Registry maps assembly names to migration sets.
type Registry struct {
	mu         sync.RWMutex
	assemblies map[string]map[string]Migration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{assemblies: make(map[string]map[string]Migration)}
}

// Register adds migrations to assembly. Registering the same ID twice fails,
// and a failed call registers nothing
func (r *Registry) Register(assembly string, migrations ...Migration) error {
	if assembly == "" {
		return errors.New("migrations assembly name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.assemblies[assembly]
	seen := make(map[string]bool, len(migrations))
	for _, m := range migrations {
		if m.ID == "" {
			return fmt.Errorf("migration in %s has no id", assembly)
		}
		if _, dup := set[m.ID]; dup || seen[m.ID] {
			return fmt.Errorf("migration %s already registered in %s", m.ID, assembly)
		}
		seen[m.ID] = true
	}

	// Nothing is stored unless the whole batch is valid.
	if set == nil {
		set = make(map[string]Migration, len(migrations))
		r.assemblies[assembly] = set
	}
	for _, m := range migrations {
		set[m.ID] = m
	}
	return nil
}

// Lookup returns the migrations of assembly sorted by ID.
func (r *Registry) Lookup(assembly string) ([]Migration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.assemblies[assembly]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAssembly, assembly)
	}

	out := make([]Migration, 0, len(set))
	for _, m := range set {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Assemblies returns the registered assembly names, sorted.
func (r *Registry) Assemblies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.assemblies))
	for name := range r.assemblies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds migrations to the process-wide registry. It panics on
// error and is meant to be called from init functions.
func Register(assembly string, migrations ...Migration) {
	if err := defaultRegistry.Register(assembly, migrations...); err != nil {
		panic(err)
	}
}
