package routes

import (
	"context"
	"fmt"
	"mecanica_hub/internal/adapter/http/handlers"
	"mecanica_hub/internal/adapter/persistence/memory"
	"mecanica_hub/internal/adapter/persistence/repository"
	"mecanica_hub/internal/config"
	"mecanica_hub/internal/infrastructure/database"
	"mecanica_hub/internal/infrastructure/notifications"
	"mecanica_hub/internal/infrastructure/payments"
	"mecanica_hub/internal/usecase"
	"mecanica_hub/internal/usecase/interfaces"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Backend is one storage driver's set of repositories.
type Backend struct {
	Requests  interfaces.IServiceRequestRepository
	History   interfaces.IStatusHistoryRepository
	Directory interfaces.IDirectory
	Payments  interfaces.IServicePaymentRepository
}

func MemoryBackend(store *memory.Store) Backend {
	return Backend{Requests: store, History: store, Directory: store, Payments: store.Payments()}
}

func DynamoBackend(ddb repository.DynamoAPI, tables config.Tables) Backend {
	return Backend{
		Requests:  repository.NewServiceRequestDynamoRepository(ddb, tables),
		History:   repository.NewStatusHistoryDynamoRepository(ddb, tables.StatusHistory),
		Directory: repository.NewDirectoryDynamoRepository(ddb, tables.Users, tables.ServiceTypes),
		Payments:  repository.NewServicePaymentDynamoRepository(ddb, tables.Payments),
	}
}

// NewHandlers builds the use cases on top of b. gateway may be nil when the
// payment options run in mock mode.
func NewHandlers(b Backend, publisher interfaces.IEventPublisher, gateway interfaces.IPaymentGateway, opts usecase.PaymentOptions, logger *zap.Logger) Handlers {
	history := usecase.NewStatusHistoryRecorder(b.History)
	requests := usecase.NewServiceRequestUseCase(b.Requests, history, b.Directory, publisher, logger)
	paymentsUC := usecase.NewServicePaymentUseCase(b.Payments, b.Requests, gateway, opts, logger)

	return Handlers{
		ServiceRequests: handlers.NewServiceRequestHandler(requests, history, logger),
		Payments:        handlers.NewServicePaymentHandler(paymentsUC, logger),
	}
}

type application struct {
	handlers Handlers
	closers  []func()
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func wire(ctx context.Context, cfg config.Config, logger *zap.Logger) (*application, error) {
	app := &application{}

	var backend Backend
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("[wire] using in-memory storage; data is lost on restart")
		backend = MemoryBackend(memory.NewStore())
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB, logger)
		if err != nil {
			return nil, err
		}
		backend = DynamoBackend(ddb, cfg.Tables)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	publisher, err := newPublisher(cfg, logger, app)
	if err != nil {
		app.close()
		return nil, err
	}

	app.handlers = NewHandlers(backend, publisher, newPaymentGateway(cfg, logger), paymentOptions(cfg), logger)
	return app, nil
}

// newPublisher emits events on NATS when configured so a separate notifier
// process mails them; otherwise emails go out from this process.
func newPublisher(cfg config.Config, logger *zap.Logger, app *application) (interfaces.IEventPublisher, error) {
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			return nil, fmt.Errorf("connect nats: %w", err)
		}
		app.closers = append(app.closers, func() { _ = nc.Drain() })
		logger.Info("[wire] publishing lifecycle events to nats", zap.String("subject", cfg.NATSSubject))
		return notifications.NewNATSPublisher(nc, cfg.NATSSubject), nil
	}

	dispatcher := notifications.NewAsyncDispatcher(
		notifications.NewMailer(cfg.SMTP, logger),
		cfg.NotifyWorkers, cfg.NotifyQueueSize, cfg.NotifyTimeout, logger,
	)
	dispatcher.Start()
	app.closers = append(app.closers, dispatcher.Close)
	return dispatcher, nil
}

func newPaymentGateway(cfg config.Config, logger *zap.Logger) interfaces.IPaymentGateway {
	if cfg.Payments.Mock {
		logger.Info("[wire] payment gateway in mock mode")
		return nil
	}
	gw, err := payments.NewMercadoPagoGateway(cfg.Payments.AccessToken, logger)
	if err != nil {
		logger.Warn("[wire] mercado pago gateway not configured", zap.Error(err))
		return nil
	}
	return gw
}

func paymentOptions(cfg config.Config) usecase.PaymentOptions {
	return usecase.PaymentOptions{
		Mock:            cfg.Payments.Mock,
		AccessToken:     cfg.Payments.AccessToken,
		TestPayerEmail:  cfg.Payments.TestPayerEmail,
		TestPayerUserID: cfg.Payments.TestPayerUserID,
	}
}
