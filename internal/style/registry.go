package style

import (
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrUnknownSheet is returned when a sheet name is not registered.
var ErrUnknownSheet = errors.New("style: unknown sheet")

type entry struct {
	rules   []Rule
	version uint64
}

// Registry maps sheet names to their current rule lists. Nodes attach
// sheets by name so a reload reaches every node scoped to the sheet.
type Registry struct {
	mu     sync.RWMutex
	sheets map[string]*entry
}

// NewRegistry creates a registry holding sheets.
func NewRegistry(sheets ...Sheet) *Registry {
	r := &Registry{sheets: make(map[string]*entry)}
	for _, s := range sheets {
		r.Register(s)
	}
	return r
}

// Register adds a sheet or replaces one with the same name.
func (r *Registry) Register(s Sheet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sheets[s.Name]
	if !ok {
		e = &entry{}
		r.sheets[s.Name] = e
	}
	e.rules = slices.Clone(s.Rules)
	e.version++
}

// Replace swaps the rule list of an existing sheet wholesale.
func (r *Registry) Replace(name string, rules []Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sheets[name]
	if !ok {
		return errors.Wrapf(ErrUnknownSheet, "replace %q", name)
	}
	e.rules = slices.Clone(rules)
	e.version++
	return nil
}

// Rules returns the current rules of a sheet. The slice must not be
// modified.
func (r *Registry) Rules(name string) ([]Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sheets[name]
	if !ok {
		return nil, false
	}
	return e.rules, true
}

// Version returns a counter that changes every time the sheet's rules are
// replaced, or 0 for unknown sheets.
func (r *Registry) Version(name string) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sheets[name]; ok {
		return e.version
	}
	return 0
}

// Names returns the registered sheet names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sheets))
	for n := range r.sheets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
