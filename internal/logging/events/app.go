package events

import "github.com/mfenwick/couchtv/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) LineupLoaded(rows, channels int) {
	logging.Trace("app.lineup", map[string]interface{}{"rows": rows, "channels": channels})
}
