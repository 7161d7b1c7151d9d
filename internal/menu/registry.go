package menu

import (
	"fmt"
	"sort"

	"github.com/atomicstack/panegrid/internal/screen"
)

// Builder produces a screen definition from the shared dependencies.
type Builder func(Deps) (*screen.Definition, error)

// Node represents a screen entry in the registry.
type Node struct {
	ID    string
	Label string
	Build Builder
}

// Registry exposes lookup utilities for screen definitions.
type Registry struct {
	nodes map[string]*Node
}

// BuildRegistry lists the built-in screens.
func BuildRegistry() *Registry {
	nodes := make(map[string]*Node)
	for id, build := range Builders() {
		nodes[id] = &Node{ID: id, Label: prettyLabel(id), Build: build}
	}
	return &Registry{nodes: nodes}
}

// Builders maps screen ids to their definitions.
func Builders() map[string]Builder {
	return map[string]Builder{
		"shop":  Shop,
		"stash": Stash,
	}
}

// Find locates a node by ID.
func (r *Registry) Find(id string) (*Node, bool) {
	node, ok := r.nodes[id]
	return node, ok
}

// IDs lists the registered screens in order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Build looks up id and builds its definition.
func (r *Registry) Build(id string, deps Deps) (*screen.Definition, error) {
	node, ok := r.Find(id)
	if !ok {
		return nil, fmt.Errorf("unknown screen %q (have %v)", id, r.IDs())
	}
	def, err := node.Build(deps)
	if err != nil {
		return nil, fmt.Errorf("build screen %q: %w", id, err)
	}
	return def, nil
}
