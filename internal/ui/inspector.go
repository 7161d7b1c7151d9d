package ui

import (
	"fmt"
	"strconv"

	"github.com/atomicstack/panegrid/internal/format/table"
	"github.com/atomicstack/panegrid/internal/logging"
)

var inspectorColumns = []table.Column{
	{Title: "pane"},
	{Title: "kind"},
	{Title: "bounds"},
	{Title: "cells", Align: table.AlignRight},
	{Title: "state"},
}

// inspectorLines tabulates the screen's panes with their live state.
func (m *Model) inspectorLines() []string {
	var rows [][]string
	for _, p := range m.viewer.Definition().Panes() {
		rows = append(rows, []string{
			p.Name(),
			p.Kind().String(),
			p.Bounds().String(),
			strconv.Itoa(p.Bounds().Capacity()),
			m.viewer.Suspense(p.Name()).String(),
		})
	}
	lines := table.Render(inspectorColumns, rows)
	hits, misses, cached := m.viewer.CacheStats()
	lines = append(lines, "",
		fmt.Sprintf("reactive: %d cached, %d hits, %d misses", cached, hits, misses),
		"log: "+logging.Path(),
	)
	return lines
}
