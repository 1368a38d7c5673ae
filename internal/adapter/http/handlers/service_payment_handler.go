package handlers

import (
	"encoding/json"
	"errors"
	response "mecanica_hub/internal/adapter/http/dto/response"
	"mecanica_hub/internal/adapter/http/middleware"
	"mecanica_hub/internal/usecase"
	"mecanica_hub/pkg"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ServicePaymentHandler handles payments of finished service requests.
type ServicePaymentHandler struct {
	usecase usecase.IServicePaymentUseCase
	logger  *zap.Logger
}

func NewServicePaymentHandler(uc usecase.IServicePaymentUseCase, logger *zap.Logger) *ServicePaymentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServicePaymentHandler{usecase: uc, logger: logger}
}

// Pay charges the request identified by :id. The body is either the Mercado
// Pago payload itself or wrapped as {"mp_payload": {...}}.
func (h *ServicePaymentHandler) Pay(c *gin.Context) {
	serviceID := c.Param("id")
	log := h.logger.With(zap.String("service_id", serviceID))
	log.Info("[payment][handler] pay start")

	mpPayload, err := readMPPayload(c)
	if err != nil {
		// The use case decides whether an unreadable payload is fatal.
		log.Info("[payment][handler] unreadable payload", zap.Error(err))
		mpPayload = nil
	}

	created, err := h.usecase.Pay(c.Request.Context(), serviceID, middleware.ActorID(c), mpPayload)
	if err != nil {
		appErr := mapPaymentError(err)
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			log.Error("[payment][handler] pay failed", zap.Error(err))
		} else {
			log.Info("[payment][handler] pay rejected", zap.Error(err))
		}
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Info("[payment][handler] pay success", zap.String("payment_id", created.ID), zap.String("status", string(created.Status)))

	c.JSON(http.StatusCreated, response.FromServicePayment(created))
}

func (h *ServicePaymentHandler) List(c *gin.Context) {
	serviceID := c.Param("id")
	items, err := h.usecase.ListPayments(c.Request.Context(), serviceID, middleware.Role(c), middleware.ActorID(c))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromServicePayments(items))
}

func (h *ServicePaymentHandler) GetByID(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("payment_id"))
	if err != nil {
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromServicePayment(p))
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if trimmed := strings.TrimSpace(string(wrapped)); trimmed == "" || trimmed == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidServiceRequestID), errors.Is(err, usecase.ErrInvalidClientID),
		errors.Is(err, usecase.ErrInvalidPaymentID), errors.Is(err, usecase.ErrInvalidMPPayload),
		errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrServiceRequestNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_REQUEST_NOT_FOUND", "Service request not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Not allowed to act on this service request", http.StatusForbidden)
	case errors.Is(err, usecase.ErrServiceNotPayable):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_PAYABLE", "Service request must be finished and priced", http.StatusConflict)
	case errors.Is(err, usecase.ErrServiceAlreadyPaid):
		return pkg.NewDomainErrorSimple("SERVICE_ALREADY_PAID", "Service request already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
