package loggers

import (
	"github.com/getsentry/sentry-go"
	ed "github.com/rickchristie/eventdispatcher"
)

// Reporter is the subset of *sentry.Hub used by SentryHook.
type Reporter interface {
	AddBreadcrumb(breadcrumb *sentry.Breadcrumb, hint *sentry.BreadcrumbHint)
	CaptureException(exception error) *sentry.EventID
}

// SentryHook reports failed dispatches to Sentry. Listener invocations are
// recorded as breadcrumbs; the error of a failed top-level dispatch is captured
// once, so a failure bubbling out of nested dispatches is not reported twice.
type SentryHook struct {
	reporter Reporter
}

// NewSentryHook creates a SentryHook. A nil reporter uses sentry.CurrentHub().
func NewSentryHook(reporter Reporter) *SentryHook {
	if reporter == nil {
		reporter = sentry.CurrentHub()
	}
	return &SentryHook{reporter: reporter}
}

// OnAfterListener records a breadcrumb for the invocation.
func (h *SentryHook) OnAfterListener(e ed.AfterListenerEvent) {
	level := sentry.LevelInfo
	if e.Error != nil {
		level = sentry.LevelError
	}
	h.reporter.AddBreadcrumb(&sentry.Breadcrumb{
		Category: "dispatch",
		Message:  e.EventName,
		Level:    level,
		Data: map[string]any{
			"index":   e.Index,
			"kind":    string(e.Kind),
			"stopped": string(e.Stopped),
			"depth":   e.Depth,
		},
	}, nil)
}

// OnAfterDispatch captures the error of a failed top-level dispatch.
func (h *SentryHook) OnAfterDispatch(e ed.AfterDispatchEvent) {
	if e.Error == nil || e.Depth > 1 {
		return
	}
	h.reporter.CaptureException(e.Error)
}
