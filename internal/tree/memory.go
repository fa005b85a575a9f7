package tree

import "github.com/grindlemire/weft/internal/layout"

// Memory is state a node keeps across rebuilds for as long as its identity
// survives.
type Memory struct {
	ScrollOffset layout.Point
	values       map[string]any
}

// Value returns the value stored under key.
func (m *Memory) Value(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// SetValue stores v under key.
func (m *Memory) SetValue(key string, v any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	m.values[key] = v
}

// State returns a pointer to the value stored under key, creating it with
// init on first use. The pointer stays valid while the node lives.
func State[T any](m *Memory, key string, init func() T) *T {
	if v, ok := m.values[key]; ok {
		if p, ok := v.(*T); ok {
			return p
		}
	}
	p := new(T)
	if init != nil {
		*p = init()
	}
	m.SetValue(key, p)
	return p
}
