package events

import "github.com/mfenwick/couchtv/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
)

func (UITracer) Cursor(row, col int) {
	logging.Trace("ui.cursor", map[string]interface{}{"row": row, "col": col})
}

func (UITracer) OverlayOpen(name string) {
	logging.Trace("ui.overlay-open", map[string]interface{}{"overlay": name})
}

func (UITracer) OverlayClose(name string) {
	logging.Trace("ui.overlay-close", map[string]interface{}{"overlay": name})
}

func (UITracer) Launch(ids []string) {
	logging.Trace("ui.launch", map[string]interface{}{"channels": ids})
}

func (FilterTracer) Edit(buffer string) {
	logging.Trace("filter.edit", map[string]interface{}{"buffer": buffer})
}

func (FilterTracer) Commit(value string, matches int) {
	logging.Trace("filter.commit", map[string]interface{}{"value": value, "matches": matches})
}

func (FilterTracer) Revert(committed string) {
	logging.Trace("filter.revert", map[string]interface{}{"committed": committed})
}
