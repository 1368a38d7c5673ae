package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/usecase/interfaces"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NotifierQueue is the queue group shared by notifier replicas so each
// event is mailed once.
const NotifierQueue = "notifier"

type natsPublisher interface {
	Publish(subject string, data []byte) error
}

// NATSPublisher emits lifecycle events as JSON on a subject. The notifier
// process consumes them with Subscribe.
type NATSPublisher struct {
	nc      natsPublisher
	subject string
}

var _ interfaces.IEventPublisher = (*NATSPublisher)(nil)

func NewNATSPublisher(nc *nats.Conn, subject string) *NATSPublisher {
	return &NATSPublisher{nc: nc, subject: subject}
}

func (p *NATSPublisher) Publish(_ context.Context, ev entities.LifecycleEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode lifecycle event: %w", err)
	}
	return p.nc.Publish(p.subject, b)
}

// Subscribe feeds every event received on subject into sink.
func Subscribe(nc *nats.Conn, subject string, sink interfaces.IEventPublisher, logger *zap.Logger) (*nats.Subscription, error) {
	return nc.QueueSubscribe(subject, NotifierQueue, func(m *nats.Msg) {
		handleMessage(m.Data, sink, logger)
	})
}

func handleMessage(data []byte, sink interfaces.IEventPublisher, logger *zap.Logger) {
	var ev entities.LifecycleEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		logger.Warn("[notify][nats] malformed event", zap.Error(err))
		return
	}
	if err := sink.Publish(context.Background(), ev); err != nil {
		logger.Warn("[notify][nats] event not queued",
			zap.String("service_id", ev.ServiceID), zap.Error(err))
	}
}
