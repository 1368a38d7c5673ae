package handlers

import (
	"errors"
	request "mecanica_hub/internal/adapter/http/dto/request"
	response "mecanica_hub/internal/adapter/http/dto/response"
	"mecanica_hub/internal/adapter/http/middleware"
	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/usecase"
	"mecanica_hub/pkg"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errInvalidServiceRequestPayload = pkg.NewDomainErrorSimple("INVALID_SERVICE_REQUEST_INPUT", "Invalid service request payload", http.StatusBadRequest)
	errInvalidScheduledAt           = pkg.NewDomainErrorSimple("INVALID_SCHEDULED_AT", "scheduled_at must be an RFC3339 date in the future", http.StatusBadRequest)
	errInvalidPrice                 = pkg.NewDomainErrorSimple("INVALID_PRICE", "price must be greater than zero", http.StatusBadRequest)
	errMechanicIDRequired           = pkg.NewDomainErrorSimple("INVALID_REQUEST", "mechanic_id is required", http.StatusBadRequest)
)

// ServiceRequestHandler exposes the service request lifecycle. The acting
// user and role always come from the bearer token.
type ServiceRequestHandler struct {
	usecase usecase.IServiceRequestUseCase
	history usecase.IStatusHistoryUseCase
	logger  *zap.Logger
}

func NewServiceRequestHandler(uc usecase.IServiceRequestUseCase, history usecase.IStatusHistoryUseCase, logger *zap.Logger) *ServiceRequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServiceRequestHandler{usecase: uc, history: history, logger: logger}
}

func (h *ServiceRequestHandler) Create(c *gin.Context) {
	var payload request.CreateServiceRequestRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidServiceRequestPayload.HTTPStatus, errInvalidServiceRequestPayload.ToHTTPError())
		return
	}

	scheduledAt, err := payload.ResolveScheduledAt()
	if err != nil {
		c.JSON(errInvalidScheduledAt.HTTPStatus, errInvalidScheduledAt.ToHTTPError())
		return
	}
	price, err := payload.ResolvePrice()
	if err != nil {
		c.JSON(errInvalidPrice.HTTPStatus, errInvalidPrice.ToHTTPError())
		return
	}

	details, err := h.usecase.Create(c.Request.Context(), usecase.CreateServiceRequestCommand{
		ClientID:      middleware.ActorID(c),
		ServiceTypeID: payload.ServiceTypeID,
		Description:   payload.Description,
		Address:       payload.Address,
		ScheduledAt:   scheduledAt,
		Price:         price,
	})
	if err != nil {
		h.fail(c, "create", "", err)
		return
	}

	c.JSON(http.StatusCreated, response.FromServiceRequestDetails(details))
}

func (h *ServiceRequestHandler) Get(c *gin.Context) {
	details, err := h.usecase.Get(c.Request.Context(), c.Param("id"), middleware.Role(c), middleware.ActorID(c))
	if err != nil {
		h.fail(c, "get", c.Param("id"), err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceRequestDetails(details))
}

// History is visible to whoever may view the request itself.
func (h *ServiceRequestHandler) History(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.usecase.Get(c.Request.Context(), id, middleware.Role(c), middleware.ActorID(c)); err != nil {
		h.fail(c, "history", id, err)
		return
	}

	entries, err := h.history.History(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "history", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromStatusHistory(entries))
}

func (h *ServiceRequestHandler) AllowedTransitions(c *gin.Context) {
	id := c.Param("id")
	statuses, err := h.usecase.AllowedTransitions(c.Request.Context(), id, middleware.Role(c), middleware.ActorID(c))
	if err != nil {
		h.fail(c, "transitions", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAllowedTransitions(id, statuses))
}

// ListAvailable accepts repeated or comma separated service_type_id values.
func (h *ServiceRequestHandler) ListAvailable(c *gin.Context) {
	var typeIDs []string
	for _, v := range c.QueryArray("service_type_id") {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				typeIDs = append(typeIDs, id)
			}
		}
	}

	list, err := h.usecase.ListAvailable(c.Request.Context(), typeIDs)
	if err != nil {
		h.fail(c, "list-available", "", err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceRequests(list))
}

func (h *ServiceRequestHandler) ListAssigned(c *gin.Context) {
	list, err := h.usecase.ListAssignedTo(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		h.fail(c, "list-assigned", "", err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceRequests(list))
}

func (h *ServiceRequestHandler) ListMine(c *gin.Context) {
	list, err := h.usecase.ListByClient(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		h.fail(c, "list-mine", "", err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceRequests(list))
}

// Assign takes the request for the calling mechanic. Admins name the
// mechanic in the body.
func (h *ServiceRequestHandler) Assign(c *gin.Context) {
	id := c.Param("id")
	mechanicID := middleware.ActorID(c)

	if middleware.Role(c) == entities.RoleAdmin {
		var payload request.AssignServiceRequestRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidServiceRequestPayload.HTTPStatus, errInvalidServiceRequestPayload.ToHTTPError())
			return
		}
		mechanicID = strings.TrimSpace(payload.MechanicID)
		if mechanicID == "" {
			c.JSON(errMechanicIDRequired.HTTPStatus, errMechanicIDRequired.ToHTTPError())
			return
		}
	}

	details, err := h.usecase.Assign(c.Request.Context(), id, mechanicID, middleware.Role(c), middleware.ActorID(c))
	if err != nil {
		h.fail(c, "assign", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceRequestDetails(details))
}

func (h *ServiceRequestHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	var payload request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidServiceRequestPayload.HTTPStatus, errInvalidServiceRequestPayload.ToHTTPError())
		return
	}

	target := entities.ServiceStatus(payload.ResolveStatus())
	details, err := h.usecase.Transition(c.Request.Context(), id, target, middleware.Role(c), middleware.ActorID(c))
	if err != nil {
		h.fail(c, "status", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceRequestDetails(details))
}

func (h *ServiceRequestHandler) UpdateQuote(c *gin.Context) {
	id := c.Param("id")
	var payload request.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidServiceRequestPayload.HTTPStatus, errInvalidServiceRequestPayload.ToHTTPError())
		return
	}
	price, err := payload.ResolvePrice()
	if err != nil {
		c.JSON(errInvalidPrice.HTTPStatus, errInvalidPrice.ToHTTPError())
		return
	}

	details, err := h.usecase.UpdateQuote(c.Request.Context(), id, middleware.ActorID(c), price, payload.Notes)
	if err != nil {
		h.fail(c, "quote", id, err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceRequestDetails(details))
}

func (h *ServiceRequestHandler) fail(c *gin.Context, op, id string, err error) {
	appErr := mapServiceRequestError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error("[service-request][handler] "+op+" failed", zap.String("service_id", id), zap.Error(err))
	} else {
		h.logger.Debug("[service-request][handler] "+op+" rejected", zap.String("service_id", id), zap.Error(err))
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapServiceRequestError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidScheduledAt):
		return errInvalidScheduledAt
	case errors.Is(err, usecase.ErrInvalidPrice):
		return errInvalidPrice
	case errors.Is(err, usecase.ErrInvalidServiceRequestID),
		errors.Is(err, usecase.ErrInvalidClientID),
		errors.Is(err, usecase.ErrInvalidMechanicID),
		errors.Is(err, usecase.ErrInvalidServiceTypeID),
		errors.Is(err, usecase.ErrInvalidDescription),
		errors.Is(err, usecase.ErrInvalidAddress),
		errors.Is(err, usecase.ErrInvalidNotes),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidRole):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrServiceRequestNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_REQUEST_NOT_FOUND", "Service request not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Not allowed to act on this service request", http.StatusForbidden)
	case errors.Is(err, usecase.ErrMechanicBusy):
		return pkg.NewDomainErrorSimple("MECHANIC_BUSY", "Mechanic already has an active service request", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_TRANSITION", "Status transition not allowed", http.StatusConflict)
	case errors.Is(err, usecase.ErrCaseNumberExhausted):
		return pkg.NewDomainError("CASE_NUMBER_UNAVAILABLE", "Could not allocate a case number, retry later", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
