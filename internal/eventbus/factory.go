package eventbus

import (
	"fmt"
	"time"

	"github.com/annel0/blockworld/internal/config"
)

// NewFromConfig создаёт шину по конфигурации. Для kind=none возвращает nil, nil.
func NewFromConfig(cfg config.EventBusConfig) (EventBus, error) {
	switch cfg.Kind {
	case "", "memory":
		return NewMemoryBus(cfg.Buffer), nil
	case "jetstream":
		bus, err := NewJetStreamBus(cfg.URL, cfg.Stream, time.Duration(cfg.Retention)*time.Hour)
		if err != nil {
			return nil, err
		}
		return bus, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: неизвестный тип шины %q", config.ErrInvalidConfig, cfg.Kind)
	}
}

// PublisherFromConfig создаёт OutcomePublisher с учётом флага сжатия
func PublisherFromConfig(bus EventBus, cfg config.EventBusConfig, source string) (*OutcomePublisher, error) {
	var opts []PublisherOption
	if cfg.Compress {
		codec, err := NewCodec()
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithCompression(codec))
	}
	return NewOutcomePublisher(bus, source, opts...), nil
}
