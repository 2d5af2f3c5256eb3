package config

import (
	"fmt"

	ed "github.com/rickchristie/eventdispatcher"
	"github.com/rickchristie/eventdispatcher/dispatcher"
	"github.com/rickchristie/eventdispatcher/hooks"
	"github.com/rickchristie/eventdispatcher/loggers"
	"go.uber.org/zap"
)

// Subscribable is the part of the dispatcher Bootstrap needs.
type Subscribable interface {
	Subscribe(subscriber any) error
}

// Bootstrap subscribes every configured identifier in order and stops at the
// first failure.
func Bootstrap(d Subscribable, cfg *Config) error {
	for i, id := range cfg.Subscribers {
		if err := d.Subscribe(id); err != nil {
			return fmt.Errorf("subscriber %d (%q): %w", i, id, err)
		}
	}
	return nil
}

// NewDispatcher builds a dispatcher from cfg and bootstraps its subscribers.
// The resolver must know every configured identifier. A nil logger is built
// from the configured level. With Trace set, a loggers.ZapHook writing to that
// logger is added to registry.
func NewDispatcher(
	cfg *Config,
	resolver ed.Resolver,
	registry *hooks.Registry,
	logger *zap.Logger,
) (*dispatcher.Dispatcher, error) {
	if logger == nil {
		var err error
		if logger, err = cfg.Logger(); err != nil {
			return nil, err
		}
	}

	if cfg.Trace {
		if registry == nil {
			registry = hooks.NewRegistry()
		}
		registry.Register(loggers.NewZapHook(logger))
	}

	d := dispatcher.New(dispatcher.Config{
		Resolver:     resolver,
		Hooks:        registry,
		Logger:       logger,
		MaxRecursion: cfg.MaxRecursion,
	})
	if err := Bootstrap(d, cfg); err != nil {
		return nil, err
	}

	logger.Info("dispatcher ready",
		zap.Strings("subscribers", cfg.Subscribers),
		zap.Strings("events", d.Events()),
	)
	return d, nil
}
