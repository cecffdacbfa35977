package eventbus

import (
	"context"

	"github.com/annel0/gopaint/internal/logging"
)

// StartLoggingListener подписывается на все события и пишет их в лог шины.
// Функция неблокирующая.
func StartLoggingListener(bus EventBus) (Subscription, error) {
	logger := logging.GetEventBusLogger()
	sub, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		switch ev.EventType {
		case TypeBrushApplied:
			var p BrushApplied
			if err := ev.Decode(&p); err == nil {
				logger.Debug("[EventBus] %s %s actor=%s brush=%q cells=%d", ev.ID, ev.EventType, p.Actor, p.Brush, p.Cells)
				return
			}
		case TypeBrushUndone:
			var p BrushUndone
			if err := ev.Decode(&p); err == nil {
				logger.Debug("[EventBus] %s %s actor=%s cells=%d", ev.ID, ev.EventType, p.Actor, p.Cells)
				return
			}
		}
		logger.Debug("[EventBus] %s %s src=%s prio=%d size=%dB", ev.ID, ev.EventType, ev.Source, ev.Priority, len(ev.Payload))
	})
	if err != nil {
		return nil, err
	}
	logger.Info("🪵 LoggingListener: подписка на все события активирована")
	return sub, nil
}
