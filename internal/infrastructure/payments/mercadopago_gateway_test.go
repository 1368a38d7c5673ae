package payments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCreator struct {
	got  payment.Request
	resp *payment.Response
	err  error
}

func (f *fakeCreator) Create(_ context.Context, req payment.Request) (*payment.Response, error) {
	f.got = req
	return f.resp, f.err
}

func TestNewMercadoPagoGateway_RequiresToken(t *testing.T) {
	_, err := NewMercadoPagoGateway("", nil)
	assert.ErrorIs(t, err, ErrMissingMercadoPagoAccessToken)
}

func TestMercadoPagoGateway_CreatePayment(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		var g *MercadoPagoGateway
		_, _, _, err := g.CreatePayment(context.Background(), json.RawMessage(`{}`))
		assert.ErrorIs(t, err, ErrMercadoPagoGatewayNotConfigured)
	})

	t.Run("invalid payload", func(t *testing.T) {
		g := &MercadoPagoGateway{client: &fakeCreator{}, logger: zap.NewNop()}
		_, _, _, err := g.CreatePayment(context.Background(), json.RawMessage(`{`))
		assert.Error(t, err)
	})

	t.Run("sdk error", func(t *testing.T) {
		boom := errors.New(`{"status":400}`)
		g := &MercadoPagoGateway{client: &fakeCreator{err: boom}, logger: zap.NewNop()}
		_, _, _, err := g.CreatePayment(context.Background(), json.RawMessage(`{"transaction_amount":10}`))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("success", func(t *testing.T) {
		fake := &fakeCreator{resp: &payment.Response{ID: 42, Status: "approved"}}
		g := &MercadoPagoGateway{client: fake, logger: zap.NewNop()}

		id, status, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`{"transaction_amount":77.2,"payment_method_id":"pix"}`))
		require.NoError(t, err)
		assert.Equal(t, "42", id)
		assert.Equal(t, "approved", status)
		assert.True(t, json.Valid(raw))
		assert.Equal(t, 77.2, fake.got.TransactionAmount)
		assert.Equal(t, "pix", fake.got.PaymentMethodID)
	})
}
