package events

import "github.com/atomicstack/panegrid/internal/logging"

// ScreenTracer records definition builds and pane renders.
type ScreenTracer struct{}

// SessionTracer records viewer session lifecycle and state writes.
type SessionTracer struct{}

var (
	// Screen traces building and drawing screens.
	Screen = ScreenTracer{}
	// Session traces opening, refreshing and closing viewer sessions.
	Session = SessionTracer{}
)

func (ScreenTracer) Build(title string, rows int, panes []string) {
	logging.Trace("screen.build", map[string]interface{}{"title": title, "rows": rows, "panes": panes})
}

func (ScreenTracer) BuildFailed(title string, err error) {
	logging.Trace("screen.build.error", map[string]interface{}{"title": title, "error": err.Error()})
}

func (ScreenTracer) RenderPane(viewer, pane, suspense string, painted int) {
	logging.Trace("screen.render.pane", map[string]interface{}{
		"viewer":   viewer,
		"pane":     pane,
		"suspense": suspense,
		"painted":  painted,
	})
}

func (SessionTracer) Open(viewer, token string, reused bool) {
	logging.Trace("session.open", map[string]interface{}{"viewer": viewer, "token": token, "reused": reused})
}

func (SessionTracer) Close(viewer string) {
	logging.Trace("session.close", map[string]interface{}{"viewer": viewer})
}

func (SessionTracer) Refresh(viewer, pane string) {
	logging.Trace("session.refresh", map[string]interface{}{"viewer": viewer, "pane": pane})
}

func (SessionTracer) StateSet(viewer, key string) {
	logging.Trace("session.state.set", map[string]interface{}{"viewer": viewer, "key": key})
}
