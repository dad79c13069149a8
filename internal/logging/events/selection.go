package events

import "github.com/mfenwick/couchtv/internal/logging"

type SelectionTracer struct{}

var Selection = SelectionTracer{}

func (SelectionTracer) Enter() {
	logging.Trace("selection.enter", nil)
}

func (SelectionTracer) Toggle(id string, ordinal, count int, added bool) {
	logging.Trace("selection.toggle", map[string]interface{}{
		"id":      id,
		"ordinal": ordinal,
		"count":   count,
		"added":   added,
	})
}

func (SelectionTracer) CapReached(id string) {
	logging.Trace("selection.cap", map[string]interface{}{"id": id})
}

func (SelectionTracer) Confirm(trigger string, count int) {
	logging.Trace("selection.confirm", map[string]interface{}{"trigger": trigger, "count": count})
}

func (SelectionTracer) End(outcome string, count int) {
	logging.Trace("selection.end", map[string]interface{}{"outcome": outcome, "count": count})
}
