// Package menu declares the screens the host can open.
package menu

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/atomicstack/panegrid/internal/catalog"
	"github.com/atomicstack/panegrid/internal/surface"
)

// Deps are the collaborators screen definitions close over.
type Deps struct {
	// Catalog backs the shop. Nil leaves the shop unavailable.
	Catalog *catalog.Store
	// Categories are the shop's filter toggles.
	Categories []string
	// TTL is how long loaded catalog pages stay fresh.
	TTL time.Duration
	// Deliver hands bought stacks to the viewer's own inventory.
	Deliver func(viewer string, rep surface.Representation) bool
	// Context bounds database calls made from click handlers.
	Context context.Context
}

func (d Deps) ctx() context.Context {
	if d.Context != nil {
		return d.Context
	}
	return context.Background()
}

func prettyLabel(id string) string {
	if id == "" {
		return id
	}
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
