// Package loggers provides ready-made dispatch hooks for logging and error
// reporting.
package loggers

import (
	ed "github.com/rickchristie/eventdispatcher"
	"go.uber.org/zap"
)

// ZapHook writes structured logs for every dispatch. Dispatch start and
// listener invocations are logged at Debug, outcomes at Info, failures at Error.
type ZapHook struct {
	logger *zap.Logger
}

// NewZapHook creates a ZapHook. A nil logger disables output.
func NewZapHook(logger *zap.Logger) *ZapHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapHook{logger: logger.Named("dispatch")}
}

var (
	_ ed.BeforeDispatchHook = (*ZapHook)(nil)
	_ ed.AfterListenerHook  = (*ZapHook)(nil)
	_ ed.AfterDispatchHook  = (*ZapHook)(nil)
)

// OnBeforeDispatch logs the event name and listener count.
func (h *ZapHook) OnBeforeDispatch(e ed.BeforeDispatchEvent) {
	h.logger.Debug("dispatch started",
		zap.String("event", e.EventName),
		zap.Int("listeners", e.Listeners),
		zap.Int("depth", e.Depth),
	)
}

// OnAfterListener logs each invocation.
func (h *ZapHook) OnAfterListener(e ed.AfterListenerEvent) {
	h.logger.Debug("listener invoked",
		zap.String("event", e.EventName),
		zap.Int("index", e.Index),
		zap.String("kind", string(e.Kind)),
		zap.String("stopped", string(e.Stopped)),
		zap.Duration("duration", e.Duration),
		zap.Error(e.Error),
	)
}

// OnAfterDispatch logs the outcome.
func (h *ZapHook) OnAfterDispatch(e ed.AfterDispatchEvent) {
	fields := []zap.Field{
		zap.String("event", e.EventName),
		zap.Int("invoked", e.Invoked),
		zap.String("stopped", string(e.Stopped)),
		zap.Duration("duration", e.Duration),
		zap.Int("depth", e.Depth),
	}
	if e.Error != nil {
		h.logger.Error("dispatch failed", append(fields, zap.Error(e.Error))...)
		return
	}
	h.logger.Info("dispatch finished", fields...)
}
