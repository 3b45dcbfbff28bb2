package migrate

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/satishbabariya/dbprovider/migrate/sqlgen"
)

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// LoadDir reads SQL migrations from dir. Files are named <id>.up.sql and
// <id>.down.sql; a migration without an up file is an error.
func LoadDir(fs afero.Fs, dir string) ([]Migration, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	byID := make(map[string]*Migration)
	get := func(id string) *Migration {
		m, ok := byID[id]
		if !ok {
			m = &Migration{ID: id}
			byID[id] = m
		}
		return m
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()

		var id string
		var down bool
		switch {
		case strings.HasSuffix(name, upSuffix):
			id = strings.TrimSuffix(name, upSuffix)
		case strings.HasSuffix(name, downSuffix):
			id, down = strings.TrimSuffix(name, downSuffix), true
		default:
			continue
		}

		content, err := afero.ReadFile(fs, filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		ops := []sqlgen.Operation{sqlgen.SQLOperation{SQL: string(content)}}

		m := get(id)
		if down {
			m.Down = ops
		} else {
			m.Up = ops
		}
	}

	out := make([]Migration, 0, len(byID))
	for _, m := range byID {
		if m.Up == nil {
			return nil, fmt.Errorf("migration %s has no %s file", m.ID, upSuffix)
		}
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
