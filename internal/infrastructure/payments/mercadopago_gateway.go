package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"mecanica_hub/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// paymentCreator is the part of payment.Client the gateway calls.
type paymentCreator interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
}

type MercadoPagoGateway struct {
	client paymentCreator
	logger *zap.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, logger *zap.Logger) (*MercadoPagoGateway, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if accessToken == "" {
		logger.Warn("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		logger.Error("[payment][gateway] failed creating sdk config", zap.Error(err))
		return nil, err
	}
	logger.Info("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg), logger: logger}, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error) {
	if g == nil || g.client == nil {
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	g.logger.Info("[payment][gateway] create start", zap.Int("payload_len", len(requestPayload)))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		g.logger.Warn("[payment][gateway] payload unmarshal failed", zap.Error(err))
		return "", "", nil, err
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		g.logger.Warn("[payment][gateway] sdk create failed", zap.Error(err))
		return "", "", nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		g.logger.Error("[payment][gateway] response marshal failed", zap.Error(err))
		return "", "", nil, err
	}
	id := fmt.Sprintf("%d", resp.ID)
	g.logger.Info("[payment][gateway] create success",
		zap.String("provider_payment_id", id), zap.String("provider_status", resp.Status))

	return id, resp.Status, b, nil
}
