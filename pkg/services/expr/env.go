package expr

import "strings"

// Env is the per-run value environment: KPI id -> numeric value. Lookups are
// case-insensitive via an index built once at construction; canonical ids are
// preserved for reporting. An Env is built fresh for each analysis run and
// must not be mutated while evaluations are in flight.
type Env struct {
	values map[string]float64 // canonical id -> value
	index  map[string]string  // lowercased id -> canonical id
}

func NewEnv() *Env {
	return &Env{
		values: make(map[string]float64),
		index:  make(map[string]string),
	}
}

// NewEnvFromMap builds an environment from a plain metrics map. Keys present
// in the map are defined; everything else is absent.
func NewEnvFromMap(metrics map[string]float64) *Env {
	env := NewEnv()
	for id, v := range metrics {
		env.Set(id, v)
	}
	return env
}

// Set defines (or redefines) a value. Later definitions of the same id under
// a different casing replace the earlier one.
func (e *Env) Set(id string, v float64) {
	key := strings.ToLower(id)
	if canonical, ok := e.index[key]; ok && canonical != id {
		delete(e.values, canonical)
	}
	e.index[key] = id
	e.values[id] = v
}

// Lookup resolves an identifier case-insensitively. The second return is
// false when the id is absent.
func (e *Env) Lookup(id string) (float64, bool) {
	canonical, ok := e.index[strings.ToLower(id)]
	if !ok {
		return 0, false
	}
	return e.values[canonical], true
}

// Has reports whether the id is defined.
func (e *Env) Has(id string) bool {
	_, ok := e.index[strings.ToLower(id)]
	return ok
}

// IDs returns the canonical identifiers defined in the environment.
func (e *Env) IDs() []string {
	ids := make([]string, 0, len(e.values))
	for id := range e.values {
		ids = append(ids, id)
	}
	return ids
}
