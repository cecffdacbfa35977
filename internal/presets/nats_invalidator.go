package presets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/annel0/gopaint/internal/logging"
	"github.com/nats-io/nats.go"
)

const defaultInvalidationSubject = "gopaint.presets.invalidate"

// InvalidatorConfig содержит конфигурацию NATS инвалидатора
type InvalidatorConfig struct {
	NATSURL       string        `yaml:"nats_url"`
	Subject       string        `yaml:"subject"`
	MaxReconnects int           `yaml:"max_reconnects"`
	ReconnectWait time.Duration `yaml:"reconnect_wait"`
}

// InvalidationMessage - уведомление об изменении пресета
type InvalidationMessage struct {
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	NodeID    string    `json:"node_id"`
}

// NATSInvalidator реализует Invalidator через NATS Pub/Sub.
// Собственные сообщения узла игнорируются.
type NATSInvalidator struct {
	publishedCount int64
	receivedCount  int64
	errorsCount    int64

	conn    *nats.Conn
	subject string
	nodeID  string

	mu           sync.Mutex
	subscription *nats.Subscription
}

var _ Invalidator = (*NATSInvalidator)(nil)

// NewNATSInvalidator подключается к NATS
func NewNATSInvalidator(config InvalidatorConfig, nodeID string) (*NATSInvalidator, error) {
	if config.Subject == "" {
		config.Subject = defaultInvalidationSubject
	}
	if config.MaxReconnects == 0 {
		config.MaxReconnects = 10
	}
	if config.ReconnectWait == 0 {
		config.ReconnectWait = 2 * time.Second
	}

	log := logging.GetPresetsLogger()
	conn, err := nats.Connect(config.NATSURL,
		nats.Name("gopaint-presets"),
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected to %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info("Preset invalidator initialized: %s (subject: %s)", config.NATSURL, config.Subject)
	return &NATSInvalidator{conn: conn, subject: config.Subject, nodeID: nodeID}, nil
}

// Publish отправляет уведомление об изменении пресета
func (n *NATSInvalidator) Publish(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(InvalidationMessage{
		Name:      name,
		Timestamp: time.Now().UTC(),
		NodeID:    n.nodeID,
	})
	if err != nil {
		atomic.AddInt64(&n.errorsCount, 1)
		return fmt.Errorf("failed to marshal invalidation message: %w", err)
	}
	if err := n.conn.Publish(n.subject, data); err != nil {
		atomic.AddInt64(&n.errorsCount, 1)
		return fmt.Errorf("failed to publish invalidation: %w", err)
	}
	atomic.AddInt64(&n.publishedCount, 1)
	return nil
}

// Subscribe подписывается на уведомления других узлов
func (n *NATSInvalidator) Subscribe(handler func(name string)) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subscription != nil {
		return errors.New("already subscribed to invalidations")
	}

	sub, err := n.conn.Subscribe(n.subject, func(msg *nats.Msg) {
		atomic.AddInt64(&n.receivedCount, 1)

		var m InvalidationMessage
		if err := json.Unmarshal(msg.Data, &m); err != nil {
			atomic.AddInt64(&n.errorsCount, 1)
			logging.GetPresetsLogger().Error("Failed to unmarshal invalidation message: %v", err)
			return
		}
		if m.NodeID == n.nodeID {
			return
		}
		handler(m.Name)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to invalidations: %w", err)
	}
	n.subscription = sub
	return nil
}

// Counters возвращает число отправленных, полученных сообщений и ошибок
func (n *NATSInvalidator) Counters() (published, received, errs int64) {
	return atomic.LoadInt64(&n.publishedCount),
		atomic.LoadInt64(&n.receivedCount),
		atomic.LoadInt64(&n.errorsCount)
}

// Close отписывается и закрывает соединение
func (n *NATSInvalidator) Close() error {
	n.mu.Lock()
	if n.subscription != nil {
		_ = n.subscription.Unsubscribe()
		n.subscription = nil
	}
	n.mu.Unlock()

	n.conn.Close()
	return nil
}
