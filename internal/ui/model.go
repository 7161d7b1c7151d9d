package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/panegrid/internal/backend"
	"github.com/atomicstack/panegrid/internal/data/dispatcher"
	"github.com/atomicstack/panegrid/internal/screen"
	"github.com/atomicstack/panegrid/internal/surface"
	"github.com/atomicstack/panegrid/internal/theme"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Registry *screen.Registry
	Viewer   string
	// Inventory is the viewer's own storage. Nil allocates an empty one.
	Inventory *Inventory
	// Pool delivers async completions. Nil when the registry schedules
	// inline.
	Pool       *backend.Pool
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Model implements the Bubble Tea model hosting one screen session.
type Model struct {
	registry   *screen.Registry
	viewer     *screen.Viewer
	grid       *surface.Buffer
	inventory  *Inventory
	held       surface.Representation
	pool       *backend.Pool
	dispatcher *dispatcher.Dispatcher

	keys       keyMap
	search     textinput.Model
	searching  bool
	searchPane string
	inspecting bool

	row, col    int
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	handlers map[reflect.Type]msgHandler
}

// NewModel opens the viewer's session on a fresh grid buffer.
func NewModel(opts Options) (*Model, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("ui: registry is required")
	}
	grid := surface.NewBuffer(opts.Registry.Definition().Size())
	v, err := opts.Registry.Open(opts.Viewer, grid)
	if err != nil {
		return nil, fmt.Errorf("open session for %s: %w", opts.Viewer, err)
	}
	inv := opts.Inventory
	if inv == nil {
		inv = NewInventory()
	}
	input := textinput.New()
	input.Prompt = "» "
	input.Placeholder = "(type to search)"
	input.CharLimit = 64
	input.Cursor.SetMode(cursor.CursorStatic)
	if styles.FilterPrompt != nil {
		input.PromptStyle = styles.FilterPrompt.Copy()
	}

	m := &Model{
		registry:   opts.Registry,
		viewer:     v,
		grid:       grid,
		inventory:  inv,
		pool:       opts.Pool,
		dispatcher: dispatcher.New(),
		keys:       defaultKeys(),
		search:     input,
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m, nil
}

// Viewer exposes the hosted session.
func (m *Model) Viewer() *screen.Viewer {
	return m.viewer
}

// Held is the stack the viewer is carrying on the cursor.
func (m *Model) Held() surface.Representation {
	return m.held
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.pool == nil {
		return nil
	}
	return waitForPoolEvent(m.pool)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(poolEventMsg{}):      m.handlePoolEventMsg,
		reflect.TypeOf(poolDoneMsg{}):       m.handlePoolDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.viewer.Flush()
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

// Close ends the viewer's session.
func (m *Model) Close() {
	_ = m.registry.Close(m.viewer.ID())
}
