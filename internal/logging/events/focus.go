package events

import "github.com/mfenwick/couchtv/internal/logging"

type FocusTracer struct{}

var Focus = FocusTracer{}

func (FocusTracer) Landed(element string, row int) {
	logging.Trace("focus.landed", map[string]interface{}{"element": element, "row": row})
}

func (FocusTracer) Settled(element string) {
	logging.Trace("focus.settled", map[string]interface{}{"element": element})
}

func (FocusTracer) ScrollIssued(element string, offset float64, cached bool) {
	logging.Trace("focus.scroll", map[string]interface{}{"element": element, "offset": offset, "cached": cached})
}

func (FocusTracer) MeasureFailed(element string, attempts int, err error) {
	payload := map[string]interface{}{"element": element, "attempts": attempts}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("focus.measure-failed", payload)
}

func (FocusTracer) CacheInvalidated(reason string, dropped int) {
	logging.Trace("focus.cache-invalidate", map[string]interface{}{"reason": reason, "dropped": dropped})
}

func (FocusTracer) Prefetch(fromRow int) {
	logging.Trace("focus.prefetch", map[string]interface{}{"from": fromRow})
}
