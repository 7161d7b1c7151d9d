package events

import "github.com/atomicstack/panegrid/internal/logging"

// AppTracer records process start and exit.
type AppTracer struct{}

// App traces the process lifecycle.
var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(screen string, code int, err error) {
	payload := map[string]interface{}{"screen": screen, "code": code}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.exit", payload)
}
