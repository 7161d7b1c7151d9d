package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/atomicstack/panegrid/internal/screen"
	"github.com/atomicstack/panegrid/internal/surface"
)

// cellWidth is the number of columns one grid cell takes, including the gap.
const cellWidth = 12

const detailMinWidth = 24

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 32)
	lines = append(lines, styledLine{text: m.viewer.Title(), style: styles.Title})

	def := m.viewer.Definition()
	focusRegion, focusCell := m.focus()
	for row := 0; row < def.Rows(); row++ {
		cells := make([]string, def.Width())
		for col := range cells {
			cell := row*def.Width() + col
			selected := focusRegion == screen.RegionScreen && focusCell == cell
			cells[col] = renderCell(m.grid.Cell(cell), selected)
		}
		lines = append(lines, styledLine{text: strings.Join(cells, ""), raw: true})
	}
	lines = append(lines, styledLine{text: separator("inventory", def.Width()*cellWidth-1), style: styles.Separator})
	for row := 0; row < inventoryRows; row++ {
		cells := make([]string, inventoryCols)
		for col := range cells {
			cell := row*inventoryCols + col
			selected := focusRegion == screen.RegionViewer && focusCell == cell
			cells[col] = renderCell(m.inventory.Cell(cell), selected)
		}
		lines = append(lines, styledLine{text: strings.Join(cells, ""), raw: true})
	}

	lines = append(lines, styledLine{})
	if m.inspecting {
		for _, line := range m.inspectorLines() {
			lines = append(lines, styledLine{text: line, style: styles.Info})
		}
	} else {
		lines = append(lines, m.detailLines()...)
	}

	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: m.statusLine(), style: styles.Status})
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.errMsg != "" {
		lines = append(lines, styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error})
	}
	if m.searching {
		lines = append(lines, styledLine{text: m.search.View(), raw: true})
	}
	if m.showFooter {
		lines = append(lines, styledLine{text: m.keys.help(), style: styles.Footer})
	}
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// renderCell draws one cell padded to cellWidth. Items with a blank name,
// such as fillers, are drawn as shading.
func renderCell(rep surface.Representation, selected bool) string {
	inner := cellWidth - 1
	var text string
	switch {
	case rep.IsEmpty():
		text = "·"
	case strings.TrimSpace(rep.Name) == "":
		text = strings.Repeat("░", inner)
	default:
		suffix := ""
		if rep.Amount > 1 {
			suffix = " x" + strconv.Itoa(rep.Amount)
		}
		text = ansi.Truncate(rep.Name, inner-len(suffix), "…") + suffix
	}
	if pad := inner - ansi.StringWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	style := styles.Material(rep.Material)
	if selected && styles.SelectedCell != nil {
		style = styles.SelectedCell.Copy()
	}
	return style.Render(text) + " "
}

func separator(label string, width int) string {
	head := "── " + label + " "
	if rest := width - ansi.StringWidth(head); rest > 0 {
		return head + strings.Repeat("─", rest)
	}
	return head
}

// focused returns what the cursor is on.
func (m *Model) focused() surface.Representation {
	region, cell := m.focus()
	if region == screen.RegionViewer {
		return m.inventory.Cell(cell)
	}
	return m.grid.Cell(cell)
}

func (m *Model) detailLines() []styledLine {
	rep := m.focused()
	if rep.IsEmpty() || strings.TrimSpace(rep.Name) == "" {
		return nil
	}
	width := max(m.width, detailMinWidth)
	if m.width <= 0 {
		width = m.viewer.Definition().Width()*cellWidth - 1
	}
	lines := []styledLine{{text: rep.Name, style: styles.DetailTitle}}
	for _, lore := range rep.Lore {
		for _, wrapped := range strings.Split(wordwrap.String(lore, width), "\n") {
			lines = append(lines, styledLine{text: wrapped, style: styles.DetailBody})
		}
	}
	return lines
}

func (m *Model) statusLine() string {
	parts := make([]string, 0, 4)
	if m.held.IsEmpty() {
		parts = append(parts, "Holding nothing")
	} else {
		parts = append(parts, fmt.Sprintf("Holding %s x%d", heldName(m.held), m.held.Amount))
	}
	for _, p := range m.viewer.Definition().Panes() {
		if p.Kind() == screen.KindStatic {
			continue
		}
		parts = append(parts, m.paneStatus(p))
	}
	return strings.Join(parts, " · ")
}

func (m *Model) paneStatus(p screen.Pane) string {
	name := p.Name()
	status := name
	if pg, err := m.viewer.Pager(name); err == nil {
		status = fmt.Sprintf("%s %d/%d", name, pg.Page()+1, max(pg.TotalPages(), 1))
	}
	if s := m.viewer.Suspense(name); s != screen.SuspenseLoaded {
		status += " " + s.String()
	}
	if p.Kind() == screen.KindAsyncPaginated {
		if at := m.viewer.LoadedAt(name); !at.IsZero() {
			status += ", loaded " + humanize.Time(at)
		}
	}
	return status
}

func heldName(rep surface.Representation) string {
	if strings.TrimSpace(rep.Name) != "" {
		return rep.Name
	}
	return string(rep.Material)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Truncate(text, width, "…")
}
