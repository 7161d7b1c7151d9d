package state

import "maps"

// Store holds one viewer's mutable screen state, seeded from the screen's
// default-state map.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
	Keys() []string
	Snapshot() map[string]any
	OnChange(func(key string))
}

type store struct {
	values   map[string]any
	onChange []func(string)
}

// NewStore copies defaults into a fresh store.
func NewStore(defaults map[string]any) Store {
	return &store{values: cloneValues(defaults)}
}

func (s *store) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *store) Set(key string, value any) {
	s.values[key] = value
	s.notify(key)
}

func (s *store) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.notify(key)
}

func (s *store) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}

func (s *store) Snapshot() map[string]any {
	return cloneValues(s.values)
}

func (s *store) OnChange(fn func(string)) {
	if fn != nil {
		s.onChange = append(s.onChange, fn)
	}
}

func (s *store) notify(key string) {
	for _, fn := range s.onChange {
		fn(key)
	}
}

func cloneValues(values map[string]any) map[string]any {
	if values == nil {
		return make(map[string]any)
	}
	return maps.Clone(values)
}
