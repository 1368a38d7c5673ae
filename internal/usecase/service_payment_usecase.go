package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrPaymentNotFound                = errors.New("payment not found")
	ErrInvalidPaymentID               = errors.New("invalid payment id")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrServiceNotPayable              = errors.New("service request is not payable")
	ErrServiceAlreadyPaid             = errors.New("service request already paid")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// IServicePaymentUseCase charges finished service requests.
//
//   - Pay           => client pays a FINALIZADO request that has a price
//   - ListPayments  => payments of a request, oldest first
type IServicePaymentUseCase interface {
	Pay(ctx context.Context, serviceID, clientID string, mpPayload json.RawMessage) (entities.ServicePayment, error)
	GetByID(ctx context.Context, id string) (entities.ServicePayment, error)
	ListPayments(ctx context.Context, serviceID string, role entities.Role, actorID string) ([]entities.ServicePayment, error)
}

// PaymentOptions tunes the Mercado Pago flow. In Mock mode the gateway is
// never called and every payment is approved locally.
type PaymentOptions struct {
	Mock            bool
	AccessToken     string
	TestPayerEmail  string
	TestPayerUserID string
}

type ServicePaymentUseCase struct {
	repo     interfaces.IServicePaymentRepository
	requests interfaces.IServiceRequestRepository
	gateway  interfaces.IPaymentGateway
	opts     PaymentOptions
	logger   *zap.Logger
	now      func() time.Time
}

var _ IServicePaymentUseCase = (*ServicePaymentUseCase)(nil)

func NewServicePaymentUseCase(
	repo interfaces.IServicePaymentRepository,
	requests interfaces.IServiceRequestRepository,
	gateway interfaces.IPaymentGateway,
	opts PaymentOptions,
	logger *zap.Logger,
) *ServicePaymentUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServicePaymentUseCase{
		repo:     repo,
		requests: requests,
		gateway:  gateway,
		opts:     opts,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *ServicePaymentUseCase) Pay(ctx context.Context, serviceID, clientID string, mpPayload json.RawMessage) (entities.ServicePayment, error) {
	serviceID = strings.TrimSpace(serviceID)
	clientID = strings.TrimSpace(clientID)
	log := u.logger.With(zap.String("service_id", serviceID))
	log.Info("[payment][usecase] pay start", zap.Int("payload_len", len(mpPayload)))

	if serviceID == "" {
		return entities.ServicePayment{}, ErrInvalidServiceRequestID
	}
	if clientID == "" {
		return entities.ServicePayment{}, ErrInvalidClientID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !u.opts.Mock {
			log.Info("[payment][usecase] invalid payload")
			return entities.ServicePayment{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if !u.opts.Mock && u.gateway == nil {
		log.Error("[payment][usecase] gateway not configured")
		return entities.ServicePayment{}, ErrPaymentGatewayNotConfigured
	}

	sr, err := u.requests.GetByID(ctx, serviceID)
	if err != nil {
		log.Error("[payment][usecase] failed loading service request", zap.Error(err))
		return entities.ServicePayment{}, storageErr(err)
	}
	if sr.ID == "" {
		return entities.ServicePayment{}, ErrServiceRequestNotFound
	}
	if sr.ClientID != clientID {
		return entities.ServicePayment{}, ErrForbidden
	}
	if sr.Status != entities.StatusFinalizado || sr.Price == nil {
		log.Info("[payment][usecase] not payable", zap.String("status", string(sr.Status)), zap.Bool("priced", sr.Price != nil))
		return entities.ServicePayment{}, ErrServiceNotPayable
	}

	existing, err := u.repo.ListByServiceRequestID(ctx, serviceID)
	if err != nil {
		return entities.ServicePayment{}, storageErr(err)
	}
	for _, p := range existing {
		if p.Status == entities.PaymentStatusAprobado {
			return entities.ServicePayment{}, ErrServiceAlreadyPaid
		}
	}

	amount := *sr.Price
	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		if !u.opts.Mock {
			return entities.ServicePayment{}, ErrInvalidMPPayload
		}
		reqMap = map[string]any{}
	}
	if !u.opts.Mock {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Info("[payment][usecase] missing payment_method_id")
			return entities.ServicePayment{}, ErrInvalidMPPayload
		}
		u.normalizeSandboxPayer(reqMap)
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			log.Info("[payment][usecase] missing/invalid payer")
			return entities.ServicePayment{}, ErrInvalidMPPayload
		}
	}

	// Mercado Pago uses external_reference to reconcile webhook events.
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = sr.CaseNumber
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Servicio %s", sr.CaseNumber)
	}
	// The stored price is the source of truth for the amount.
	reqMap["transaction_amount"] = amount
	mpPayload, err = json.Marshal(reqMap)
	if err != nil {
		return entities.ServicePayment{}, err
	}

	var (
		providerPaymentID string
		providerStatus    string
		providerResp      json.RawMessage
	)
	if u.opts.Mock {
		log.Info("[payment][usecase] mock mode enabled; skipping external payment gateway")
		providerPaymentID, providerStatus, providerResp, err = mockProviderResponse(reqMap, u.now())
		if err != nil {
			return entities.ServicePayment{}, err
		}
	} else {
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, mpPayload)
		if err != nil {
			log.Warn("[payment][usecase] payment gateway failed", zap.Error(err))
			return entities.ServicePayment{}, mapGatewayError(err)
		}
	}
	log.Info("[payment][usecase] payment gateway success",
		zap.String("provider_payment_id", providerPaymentID), zap.String("provider_status", providerStatus))

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Warn("[payment][usecase] provider response unmarshal failed", zap.Error(err))
	}

	p := entities.ServicePayment{
		ID:               providerPaymentID,
		ServiceRequestID: serviceID,
		ClientID:         clientID,
		Amount:           amount,
		Date:             u.now(),
		Status:           entities.PaymentStatusFromProvider(providerStatus),
		MPPayloadRaw:     providerResp,
		MPPayload:        parsed,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Error("[payment][usecase] payment repository create failed", zap.String("payment_id", p.ID), zap.Error(err))
		return entities.ServicePayment{}, storageErr(err)
	}
	log.Info("[payment][usecase] pay success", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))
	return created, nil
}

func (u *ServicePaymentUseCase) GetByID(ctx context.Context, id string) (entities.ServicePayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServicePayment{}, ErrInvalidPaymentID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ServicePayment{}, storageErr(err)
	}
	if p.ID == "" {
		return entities.ServicePayment{}, ErrPaymentNotFound
	}
	return p, nil
}

// ListPayments is visible to the owning client, the assigned mechanic and admins.
func (u *ServicePaymentUseCase) ListPayments(ctx context.Context, serviceID string, role entities.Role, actorID string) ([]entities.ServicePayment, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return nil, ErrInvalidServiceRequestID
	}

	sr, err := u.requests.GetByID(ctx, serviceID)
	if err != nil {
		return nil, storageErr(err)
	}
	if sr.ID == "" {
		return nil, ErrServiceRequestNotFound
	}
	if !actsFor(sr, role, strings.TrimSpace(actorID)) {
		return nil, ErrForbidden
	}

	items, err := u.repo.ListByServiceRequestID(ctx, serviceID)
	if err != nil {
		return nil, storageErr(err)
	}
	return items, nil
}

func mockProviderResponse(req map[string]any, now time.Time) (string, string, json.RawMessage, error) {
	id := uuid.NewString()
	resp := make(map[string]any, len(req)+5)
	for k, v := range req {
		resp[k] = v
	}
	ts := now.Format(time.RFC3339Nano)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = ts
	resp["date_approved"] = ts
	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, "approved", b, nil
}

func mapGatewayError(err error) error {
	switch {
	case isGatewayCustomerNotFound(err):
		return ErrPaymentGatewayCustomerNotFound
	case isGatewayInvalidUsers(err):
		return ErrPaymentGatewayInvalidUsers
	case isGatewayUnauthorized(err):
		return ErrPaymentGatewayUnauthorized
	case isGatewayBadRequest(err):
		return ErrPaymentGatewayBadRequest
	default:
		return err
	}
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func (u *ServicePaymentUseCase) sandbox() bool {
	return strings.HasPrefix(u.opts.AccessToken, "TEST-")
}

func (u *ServicePaymentUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// Sandbox accepts either payer.id or payer.email; fill email only when both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if u.opts.TestPayerEmail != "" {
			payer["email"] = u.opts.TestPayerEmail
		} else if u.sandbox() {
			payer["email"] = "test_user_br@testuser.com"
		}
	}
}

// normalizeSandboxPayer swaps the configured sandbox payer id for its email,
// which is the only form the sandbox accepts for test users.
func (u *ServicePaymentUseCase) normalizeSandboxPayer(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok || !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if !u.sandbox() || u.opts.TestPayerUserID == "" || u.opts.TestPayerEmail == "" {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != u.opts.TestPayerUserID {
		return
	}
	payer["email"] = u.opts.TestPayerEmail
	delete(payer, "id")
	u.logger.Info("[payment][usecase] mapped sandbox payer user_id to payer.email")
}

func isGatewayBadRequest(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}
