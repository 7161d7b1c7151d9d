package ui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/panegrid/internal/logging"
	"github.com/atomicstack/panegrid/internal/screen"
)

// rows counts the grid rows followed by the inventory rows; the cursor moves
// across both.
func (m *Model) rows() int {
	return m.viewer.Definition().Rows() + inventoryRows
}

func (m *Model) cols() int {
	return m.viewer.Definition().Width()
}

// focus maps the cursor to a region and cell index.
func (m *Model) focus() (screen.Region, int) {
	gridRows := m.viewer.Definition().Rows()
	if m.row < gridRows {
		return screen.RegionScreen, m.row*m.cols() + m.col
	}
	return screen.RegionViewer, (m.row-gridRows)*inventoryCols + m.col
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.searching {
		return m.handleSearchKey(keyMsg)
	}
	m.errMsg = ""
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(keyMsg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(keyMsg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(keyMsg, m.keys.Click):
		m.clickFocused(screen.ClickLeft)
	case key.Matches(keyMsg, m.keys.RightClick):
		m.clickFocused(screen.ClickRight)
	case key.Matches(keyMsg, m.keys.MiddleClick):
		m.clickFocused(screen.ClickMiddle)
	case key.Matches(keyMsg, m.keys.NextPage):
		m.page(true)
	case key.Matches(keyMsg, m.keys.PrevPage):
		m.page(false)
	case key.Matches(keyMsg, m.keys.Refresh):
		if err := m.registry.Refresh(m.viewer.ID()); err != nil {
			m.errMsg = err.Error()
		} else if m.verbose {
			m.setInfo("Refreshed")
		}
	case key.Matches(keyMsg, m.keys.Inspect):
		m.inspecting = !m.inspecting
	case key.Matches(keyMsg, m.keys.Search):
		return m.startSearch()
	}
	return nil
}

func (m *Model) rowWidth(row int) int {
	if row < m.viewer.Definition().Rows() {
		return m.cols()
	}
	return inventoryCols
}

func (m *Model) moveCursor(dRow, dCol int) {
	m.row = min(max(m.row+dRow, 0), m.rows()-1)
	m.col = min(max(m.col+dCol, 0), m.rowWidth(m.row)-1)
}

func (m *Model) clickFocused(kind screen.ClickKind) {
	region, cell := m.focus()
	m.click(region, cell, kind)
}

// click routes one click through the registry and applies the verdict to
// what the viewer holds. Inventory mutations are the host's to perform once
// the registry allows them.
func (m *Model) click(region screen.Region, cell int, kind screen.ClickKind) {
	d := m.registry.Click(screen.Click{
		Viewer: m.viewer.ID(),
		Cell:   cell,
		Kind:   kind,
		Region: region,
		Cursor: m.held,
	})
	if d.Err != nil {
		m.errMsg = clickMessage(d.Err)
	}
	if d.Cancel {
		return
	}
	if region == screen.RegionViewer {
		slot, held, ok := screen.Transfer(kind, m.inventory.Cell(cell), m.held)
		if ok {
			m.inventory.SetCell(cell, slot)
			m.held = held
		}
		return
	}
	m.held = d.Cursor
}

// clickMessage strips the routing context from handler errors for display.
func clickMessage(err error) string {
	var herr *screen.HandlerError
	if errors.As(err, &herr) && herr.Err != nil {
		return herr.Err.Error()
	}
	return err.Error()
}

func (m *Model) page(forward bool) {
	pane, ok := m.focusedPager()
	if !ok {
		return
	}
	var err error
	if forward {
		_, err = m.viewer.NextPage(pane)
	} else {
		_, err = m.viewer.PreviousPage(pane)
	}
	if err != nil {
		m.errMsg = err.Error()
	}
}

// focusedPager picks the paginated pane under the cursor, or the first one
// on the screen.
func (m *Model) focusedPager() (string, bool) {
	def := m.viewer.Definition()
	if region, cell := m.focus(); region == screen.RegionScreen {
		if p, ok := def.PaneAt(cell); ok && p.Kind() != screen.KindStatic {
			return p.Name(), true
		}
	}
	for _, p := range def.Panes() {
		if p.Kind() != screen.KindStatic {
			return p.Name(), true
		}
	}
	return "", false
}

func (m *Model) startSearch() tea.Cmd {
	pane, ok := m.focusedPager()
	if !ok {
		m.setInfo("Nothing to search on this screen")
		return nil
	}
	pg, err := m.viewer.Pager(pane)
	if err != nil {
		m.errMsg = err.Error()
		return nil
	}
	m.searching = true
	m.searchPane = pane
	m.search.SetValue(pg.Query())
	m.search.CursorEnd()
	return m.search.Focus()
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return nil
	case tea.KeyCtrlC:
		return tea.Quit
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if query := m.search.Value(); query != before {
		if err := m.viewer.Search(m.searchPane, query); err != nil {
			logging.Error(err)
			m.errMsg = err.Error()
		}
	}
	return cmd
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || ev.Action != tea.MouseActionPress {
		return nil
	}
	var kind screen.ClickKind
	switch ev.Button {
	case tea.MouseButtonLeft:
		kind = screen.ClickLeft
	case tea.MouseButtonRight:
		kind = screen.ClickRight
	case tea.MouseButtonMiddle:
		kind = screen.ClickMiddle
	default:
		return nil
	}
	row, col, ok := m.cellAt(ev.X, ev.Y)
	if !ok {
		return nil
	}
	m.errMsg = ""
	m.row, m.col = row, col
	m.clickFocused(kind)
	return nil
}

// cellAt converts terminal coordinates into a cursor position. The layout
// is one title line, the grid rows, one separator, then the inventory.
func (m *Model) cellAt(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 1 {
		return 0, 0, false
	}
	col = x / cellWidth
	if col >= m.cols() {
		return 0, 0, false
	}
	gridRows := m.viewer.Definition().Rows()
	switch {
	case y <= gridRows:
		return y - 1, col, true
	case y == gridRows+1:
		return 0, 0, false
	case y < gridRows+2+inventoryRows:
		if col >= inventoryCols {
			return 0, 0, false
		}
		return y - 2, col, true
	}
	return 0, 0, false
}
