package eventbus

import (
	"context"

	"github.com/annel0/blockworld/internal/logging"
)

// StartLoggingListener подписывается на все события и пишет их в лог.
// Исходы мира раскрываются до позиции и звукового сигнала.
// Функция неблокирующая.
func StartLoggingListener(bus EventBus, logger *logging.Logger) (Subscription, error) {
	sub, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		o, err := DecodeOutcome(ev)
		if err != nil {
			logger.Debug("[EventBus] %s %s src=%s prio=%d size=%dB", ev.ID, ev.EventType, ev.Source, ev.Priority, len(ev.Payload))
			return
		}
		if o.Accepted() {
			logger.Debug("[EventBus] %s %s %s at %s cue=%s", ev.ID, o.Operation, o.BlockType, o.Position, o.SoundCue())
			return
		}
		logger.Debug("[EventBus] %s %s rejected at %s: %s", ev.ID, o.Operation, o.Position, o.Reason)
	})
	if err != nil {
		return nil, err
	}
	logger.Info("LoggingListener: подписка на все события активирована")
	return sub, nil
}
