package notifications

import (
	"context"
	"errors"
	"fmt"

	"mecanica_hub/internal/config"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var ErrNATSNotConfigured = errors.New("NATS_URL is required to run the notifier")

// RunNotifier mails the lifecycle events published on NATS until ctx ends.
func RunNotifier(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	if cfg.NATSURL == "" {
		return ErrNATSNotConfigured
	}
	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return fmt.Errorf("connect nats: %w", err)
	}
	defer nc.Close()

	dispatcher := NewAsyncDispatcher(NewMailer(cfg.SMTP, logger), cfg.NotifyWorkers, cfg.NotifyQueueSize, cfg.NotifyTimeout, logger)
	dispatcher.Start()
	defer dispatcher.Close()

	sub, err := Subscribe(nc, cfg.NATSSubject, dispatcher, logger)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", cfg.NATSSubject, err)
	}
	logger.Info("[notify][notifier] consuming", zap.String("subject", cfg.NATSSubject), zap.String("queue", NotifierQueue))

	<-ctx.Done()
	if err := sub.Unsubscribe(); err != nil {
		logger.Warn("[notify][notifier] unsubscribe failed", zap.Error(err))
	}
	return nil
}
