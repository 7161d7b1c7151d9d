// Package text turns declared item content into display strings.
package text

import (
	"sort"
	"strings"
)

// Resolver expands a template using variable bindings.
type Resolver interface {
	Resolve(template string, vars map[string]string) string
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(template string, vars map[string]string) string

func (f ResolverFunc) Resolve(template string, vars map[string]string) string {
	return f(template, vars)
}

// Braces replaces {name} placeholders. Unknown placeholders are left as-is.
type Braces struct{}

func (Braces) Resolve(template string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(template, "{") {
		return template
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", vars[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// ResolveAll applies r to every line.
func ResolveAll(r Resolver, lines []string, vars map[string]string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = r.Resolve(line, vars)
	}
	return out
}
