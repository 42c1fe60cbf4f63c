package rulefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/de-tools/kpi-atlas/pkg/models/store"
)

// Load reads a YAML config pack: the four configuration tables in one file,
// columns mirroring the tabular storage layout. Declaration order within each
// table is preserved.
func Load(path string) (store.ConfigTables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return store.ConfigTables{}, fmt.Errorf("failed to read config pack: %w", err)
	}

	var tables store.ConfigTables
	if err := yaml.Unmarshal(raw, &tables); err != nil {
		return store.ConfigTables{}, fmt.Errorf("failed to parse config pack %s: %w", path, err)
	}
	return tables, nil
}
