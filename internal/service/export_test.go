package service

import "time"

// SetNowFunc overrides the insights clock so trailing windows are
// deterministic in tests.
func SetNowFunc(svc InsightsService, fn func() time.Time) {
	svc.(*insightsService).now = fn
}
