package state

// Int reads key as an int, returning fallback when missing or mistyped.
func Int(s Store, key string, fallback int) int {
	if v, ok := s.Get(key); ok {
		if n, ok := v.(int); ok {
			return n
		}
	}
	return fallback
}

// Bool reads key as a bool.
func Bool(s Store, key string) bool {
	if v, ok := s.Get(key); ok {
		b, _ := v.(bool)
		return b
	}
	return false
}

// String reads key as a string.
func String(s Store, key string) string {
	if v, ok := s.Get(key); ok {
		str, _ := v.(string)
		return str
	}
	return ""
}

// Toggle flips a bool key and returns the new value.
func Toggle(s Store, key string) bool {
	next := !Bool(s, key)
	s.Set(key, next)
	return next
}

// Add increments an int key by delta and returns the result.
func Add(s Store, key string, delta int) int {
	next := Int(s, key, 0) + delta
	s.Set(key, next)
	return next
}
