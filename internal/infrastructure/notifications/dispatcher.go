package notifications

import (
	"context"
	"errors"
	"sync"
	"time"

	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/infrastructure/metrics"
	"mecanica_hub/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var (
	ErrQueueFull        = errors.New("notification queue full")
	ErrDispatcherClosed = errors.New("notification dispatcher closed")
)

// AsyncDispatcher queues lifecycle events and mails them from a fixed pool
// of workers. Publish never blocks; a full queue drops the event.
type AsyncDispatcher struct {
	mailer  Mailer
	workers int
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan entities.LifecycleEvent
	wg     sync.WaitGroup
}

var _ interfaces.IEventPublisher = (*AsyncDispatcher)(nil)

func NewAsyncDispatcher(mailer Mailer, workers, queueSize int, timeout time.Duration, logger *zap.Logger) *AsyncDispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsyncDispatcher{
		mailer:  mailer,
		workers: workers,
		timeout: timeout,
		logger:  logger,
		queue:   make(chan entities.LifecycleEvent, queueSize),
	}
}

// Start launches the workers. Call Close to drain the queue and stop them.
func (d *AsyncDispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
}

func (d *AsyncDispatcher) Publish(_ context.Context, ev entities.LifecycleEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- ev:
		return nil
	default:
		metrics.ObserveNotification(metrics.OutcomeDropped)
		d.logger.Warn("[notify][dispatcher] queue full, dropping event",
			zap.String("service_id", ev.ServiceID), zap.String("type", string(ev.Type)))
		return ErrQueueFull
	}
}

// Close stops accepting events and waits until queued ones are delivered.
func (d *AsyncDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *AsyncDispatcher) work() {
	defer d.wg.Done()
	for ev := range d.queue {
		for _, msg := range BuildMessages(ev) {
			d.deliver(ev, msg)
		}
	}
}

func (d *AsyncDispatcher) deliver(ev entities.LifecycleEvent, msg Message) {
	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := d.mailer.Send(ctx, msg); err != nil {
		metrics.ObserveNotification(metrics.OutcomeError)
		d.logger.Warn("[notify][dispatcher] send failed",
			zap.String("service_id", ev.ServiceID), zap.Strings("to", msg.To), zap.Error(err))
		return
	}
	metrics.ObserveNotification(metrics.OutcomeOK)
}
