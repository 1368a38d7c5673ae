package usecase

import (
	"context"
	"errors"
	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/domain/lifecycle"
	"mecanica_hub/internal/infrastructure/metrics"
	"mecanica_hub/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxNotesLength = 2000

// IServiceRequestUseCase is the lifecycle core consumed by the HTTP handlers.
//
//   - Create            => client opens a request (PENDIENTE)
//   - Assign            => mechanic takes a pending request (PENDIENTE -> ACEPTADO)
//   - Transition        => role-scoped status change
//   - UpdateQuote       => assigned mechanic sets price/notes
type IServiceRequestUseCase interface {
	Create(ctx context.Context, cmd CreateServiceRequestCommand) (entities.ServiceRequestDetails, error)
	Assign(ctx context.Context, id, mechanicID string, role entities.Role, actorID string) (entities.ServiceRequestDetails, error)
	Transition(ctx context.Context, id string, target entities.ServiceStatus, role entities.Role, actorID string) (entities.ServiceRequestDetails, error)
	UpdateQuote(ctx context.Context, id, mechanicID string, price *float64, notes string) (entities.ServiceRequestDetails, error)
	Get(ctx context.Context, id string, role entities.Role, actorID string) (entities.ServiceRequestDetails, error)
	AllowedTransitions(ctx context.Context, id string, role entities.Role, actorID string) ([]entities.ServiceStatus, error)
	ListAvailable(ctx context.Context, serviceTypeIDs []string) ([]entities.ServiceRequest, error)
	ListAssignedTo(ctx context.Context, mechanicID string) ([]entities.ServiceRequest, error)
	ListByClient(ctx context.Context, clientID string) ([]entities.ServiceRequest, error)
}

// CreateServiceRequestCommand carries the client's input for Create.
type CreateServiceRequestCommand struct {
	ClientID      string
	ServiceTypeID string
	Description   string
	Address       string
	ScheduledAt   time.Time
	Price         *float64
}

type ServiceRequestUseCase struct {
	repo       interfaces.IServiceRequestRepository
	directory  interfaces.IDirectory
	publisher  interfaces.IEventPublisher
	history    *StatusHistoryRecorder
	logger     *zap.Logger
	now        func() time.Time
	caseNumber func(time.Time) (string, error)
}

var _ IServiceRequestUseCase = (*ServiceRequestUseCase)(nil)

func NewServiceRequestUseCase(
	repo interfaces.IServiceRequestRepository,
	history *StatusHistoryRecorder,
	directory interfaces.IDirectory,
	publisher interfaces.IEventPublisher,
	logger *zap.Logger,
) *ServiceRequestUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServiceRequestUseCase{
		repo:       repo,
		directory:  directory,
		publisher:  publisher,
		history:    history,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		caseNumber: NewCaseNumber,
	}
}

func (u *ServiceRequestUseCase) Create(ctx context.Context, cmd CreateServiceRequestCommand) (entities.ServiceRequestDetails, error) {
	cmd.ClientID = strings.TrimSpace(cmd.ClientID)
	cmd.ServiceTypeID = strings.TrimSpace(cmd.ServiceTypeID)
	cmd.Description = strings.TrimSpace(cmd.Description)
	cmd.Address = strings.TrimSpace(cmd.Address)

	switch {
	case cmd.ClientID == "":
		return entities.ServiceRequestDetails{}, ErrInvalidClientID
	case cmd.ServiceTypeID == "":
		return entities.ServiceRequestDetails{}, ErrInvalidServiceTypeID
	case cmd.Description == "":
		return entities.ServiceRequestDetails{}, ErrInvalidDescription
	case cmd.Address == "":
		return entities.ServiceRequestDetails{}, ErrInvalidAddress
	case cmd.Price != nil && *cmd.Price <= 0:
		return entities.ServiceRequestDetails{}, ErrInvalidPrice
	}

	now := u.now()
	if !cmd.ScheduledAt.After(now) {
		return entities.ServiceRequestDetails{}, ErrInvalidScheduledAt
	}

	sr := entities.ServiceRequest{
		ID:            uuid.NewString(),
		ClientID:      cmd.ClientID,
		ServiceTypeID: cmd.ServiceTypeID,
		Description:   cmd.Description,
		Address:       cmd.Address,
		ScheduledAt:   cmd.ScheduledAt.UTC(),
		Price:         cmd.Price,
		Status:        entities.StatusPendiente,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for attempt := 1; attempt <= maxCaseNumberAttempts; attempt++ {
		caseNumber, err := u.caseNumber(now)
		if err != nil {
			return entities.ServiceRequestDetails{}, err
		}
		sr.CaseNumber = caseNumber

		created, err := u.repo.Create(ctx, sr)
		if errors.Is(err, interfaces.ErrCaseNumberTaken) {
			u.logger.Warn("[service-request][usecase] case number collision",
				zap.String("case_number", caseNumber), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			u.logger.Error("[service-request][usecase] create failed", zap.String("client_id", sr.ClientID), zap.Error(err))
			return entities.ServiceRequestDetails{}, storageErr(err)
		}

		u.logger.Info("[service-request][usecase] created",
			zap.String("service_id", created.ID), zap.String("case_number", created.CaseNumber))
		details := u.details(ctx, created)
		u.publish(ctx, entities.NewLifecycleEvent(entities.EventCreated, details, "", entities.RoleClient, created.ClientID, now))
		return details, nil
	}

	return entities.ServiceRequestDetails{}, ErrCaseNumberExhausted
}

// Assign gives a pending request to mechanicID. Mechanics may only take
// requests for themselves; admins assign on a mechanic's behalf and are
// recorded as the actor in the history.
func (u *ServiceRequestUseCase) Assign(ctx context.Context, id, mechanicID string, role entities.Role, actorID string) (entities.ServiceRequestDetails, error) {
	id = strings.TrimSpace(id)
	mechanicID = strings.TrimSpace(mechanicID)
	actorID = strings.TrimSpace(actorID)
	if id == "" {
		return entities.ServiceRequestDetails{}, ErrInvalidServiceRequestID
	}
	if mechanicID == "" {
		return entities.ServiceRequestDetails{}, ErrInvalidMechanicID
	}
	if !role.IsValid() || actorID == "" {
		return entities.ServiceRequestDetails{}, ErrInvalidRole
	}
	if role == entities.RoleClient || (role == entities.RoleMechanic && actorID != mechanicID) {
		return entities.ServiceRequestDetails{}, ErrForbidden
	}

	current, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequestDetails{}, err
	}
	if current.Status != entities.StatusPendiente || current.MechanicID != "" {
		metrics.ObserveAssignment(metrics.OutcomeRejected)
		return entities.ServiceRequestDetails{}, ErrInvalidTransition
	}

	entry := u.history.Entry(id, entities.StatusPendiente, entities.StatusAceptado, role, actorID)
	updated, err := u.repo.Assign(ctx, id, mechanicID, entry)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrStatusConflict):
			metrics.ObserveAssignment(metrics.OutcomeRejected)
			return entities.ServiceRequestDetails{}, ErrInvalidTransition
		case errors.Is(err, interfaces.ErrMechanicSlotTaken):
			metrics.ObserveAssignment(metrics.OutcomeRejected)
			u.logger.Info("[service-request][usecase] mechanic busy",
				zap.String("service_id", id), zap.String("mechanic_id", mechanicID))
			return entities.ServiceRequestDetails{}, ErrMechanicBusy
		default:
			metrics.ObserveAssignment(metrics.OutcomeError)
			u.logger.Error("[service-request][usecase] assign failed", zap.String("service_id", id), zap.Error(err))
			return entities.ServiceRequestDetails{}, storageErr(err)
		}
	}

	metrics.ObserveAssignment(metrics.OutcomeOK)
	u.logger.Info("[service-request][usecase] assigned",
		zap.String("service_id", id), zap.String("mechanic_id", mechanicID))
	details := u.details(ctx, updated)
	u.publish(ctx, entities.NewLifecycleEvent(entities.EventAssigned, details, entities.StatusPendiente, role, actorID, entry.RecordedAt))
	return details, nil
}

func (u *ServiceRequestUseCase) Transition(ctx context.Context, id string, target entities.ServiceStatus, role entities.Role, actorID string) (entities.ServiceRequestDetails, error) {
	id = strings.TrimSpace(id)
	actorID = strings.TrimSpace(actorID)
	if id == "" {
		return entities.ServiceRequestDetails{}, ErrInvalidServiceRequestID
	}
	if !role.IsValid() || actorID == "" {
		return entities.ServiceRequestDetails{}, ErrInvalidRole
	}
	if !target.IsValid() {
		return entities.ServiceRequestDetails{}, ErrInvalidStatus
	}

	current, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequestDetails{}, err
	}

	reject := func(err error) (entities.ServiceRequestDetails, error) {
		metrics.ObserveTransition(string(role), string(current.Status), string(target), metrics.OutcomeRejected)
		return entities.ServiceRequestDetails{}, err
	}

	if current.Status.IsTerminal() {
		return reject(ErrInvalidTransition)
	}
	if !actsFor(current, role, actorID) {
		return reject(ErrForbidden)
	}
	if !lifecycle.CanMove(role, current, target) {
		return reject(ErrInvalidTransition)
	}

	entry := u.history.Entry(id, current.Status, target, role, actorID)
	updated, err := u.repo.UpdateStatus(ctx, current, target, entry)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrStatusConflict):
			return reject(ErrInvalidTransition)
		case errors.Is(err, interfaces.ErrMechanicSlotTaken):
			return reject(ErrMechanicBusy)
		default:
			metrics.ObserveTransition(string(role), string(current.Status), string(target), metrics.OutcomeError)
			u.logger.Error("[service-request][usecase] transition failed",
				zap.String("service_id", id), zap.String("to", string(target)), zap.Error(err))
			return entities.ServiceRequestDetails{}, storageErr(err)
		}
	}

	metrics.ObserveTransition(string(role), string(current.Status), string(target), metrics.OutcomeOK)
	u.logger.Info("[service-request][usecase] transition",
		zap.String("service_id", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(target)),
		zap.String("role", string(role)))
	details := u.details(ctx, updated)
	u.publish(ctx, entities.NewLifecycleEvent(entities.EventStatusChanged, details, current.Status, role, actorID, entry.RecordedAt))
	return details, nil
}

func (u *ServiceRequestUseCase) UpdateQuote(ctx context.Context, id, mechanicID string, price *float64, notes string) (entities.ServiceRequestDetails, error) {
	id = strings.TrimSpace(id)
	mechanicID = strings.TrimSpace(mechanicID)
	notes = strings.TrimSpace(notes)
	if id == "" {
		return entities.ServiceRequestDetails{}, ErrInvalidServiceRequestID
	}
	if mechanicID == "" {
		return entities.ServiceRequestDetails{}, ErrInvalidMechanicID
	}
	if price != nil && *price <= 0 {
		return entities.ServiceRequestDetails{}, ErrInvalidPrice
	}
	if len(notes) > maxNotesLength {
		return entities.ServiceRequestDetails{}, ErrInvalidNotes
	}

	current, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequestDetails{}, err
	}
	if current.MechanicID != mechanicID {
		return entities.ServiceRequestDetails{}, ErrForbidden
	}
	if !current.Status.IsActive() {
		return entities.ServiceRequestDetails{}, ErrInvalidTransition
	}
	if price == nil {
		price = current.Price
	}

	updated, err := u.repo.UpdateQuote(ctx, id, mechanicID, price, notes)
	if err != nil {
		if errors.Is(err, interfaces.ErrStatusConflict) {
			return entities.ServiceRequestDetails{}, ErrInvalidTransition
		}
		u.logger.Error("[service-request][usecase] quote update failed", zap.String("service_id", id), zap.Error(err))
		return entities.ServiceRequestDetails{}, storageErr(err)
	}

	details := u.details(ctx, updated)
	u.publish(ctx, entities.NewLifecycleEvent(entities.EventQuoteUpdated, details, updated.Status, entities.RoleMechanic, mechanicID, u.now()))
	return details, nil
}

func (u *ServiceRequestUseCase) Get(ctx context.Context, id string, role entities.Role, actorID string) (entities.ServiceRequestDetails, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceRequestDetails{}, ErrInvalidServiceRequestID
	}
	if !role.IsValid() {
		return entities.ServiceRequestDetails{}, ErrInvalidRole
	}

	sr, err := u.load(ctx, id)
	if err != nil {
		return entities.ServiceRequestDetails{}, err
	}
	if !canView(sr, role, strings.TrimSpace(actorID)) {
		return entities.ServiceRequestDetails{}, ErrForbidden
	}
	return u.details(ctx, sr), nil
}

// AllowedTransitions lists the statuses the actor could move the request to
// right now. Actors who do not own the request get ErrForbidden.
func (u *ServiceRequestUseCase) AllowedTransitions(ctx context.Context, id string, role entities.Role, actorID string) ([]entities.ServiceStatus, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidServiceRequestID
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	sr, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actsFor(sr, role, strings.TrimSpace(actorID)) {
		return nil, ErrForbidden
	}
	return lifecycle.AllowedMoves(role, sr), nil
}

func (u *ServiceRequestUseCase) ListAvailable(ctx context.Context, serviceTypeIDs []string) ([]entities.ServiceRequest, error) {
	ids := make([]string, 0, len(serviceTypeIDs))
	seen := make(map[string]struct{}, len(serviceTypeIDs))
	for _, id := range serviceTypeIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return []entities.ServiceRequest{}, nil
	}

	items, err := u.repo.ListAvailable(ctx, ids)
	if err != nil {
		return nil, storageErr(err)
	}
	return items, nil
}

func (u *ServiceRequestUseCase) ListAssignedTo(ctx context.Context, mechanicID string) ([]entities.ServiceRequest, error) {
	mechanicID = strings.TrimSpace(mechanicID)
	if mechanicID == "" {
		return nil, ErrInvalidMechanicID
	}
	items, err := u.repo.ListByMechanicID(ctx, mechanicID)
	if err != nil {
		return nil, storageErr(err)
	}
	return items, nil
}

func (u *ServiceRequestUseCase) ListByClient(ctx context.Context, clientID string) ([]entities.ServiceRequest, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, ErrInvalidClientID
	}
	items, err := u.repo.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, storageErr(err)
	}
	return items, nil
}

func (u *ServiceRequestUseCase) load(ctx context.Context, id string) (entities.ServiceRequest, error) {
	sr, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceRequest{}, storageErr(err)
	}
	if sr.ID == "" {
		return entities.ServiceRequest{}, ErrServiceRequestNotFound
	}
	return sr, nil
}

// details attaches client, mechanic and service type. Lookup failures only
// degrade the payload; the caller's write has already committed.
func (u *ServiceRequestUseCase) details(ctx context.Context, sr entities.ServiceRequest) entities.ServiceRequestDetails {
	d := entities.ServiceRequestDetails{ServiceRequest: sr}
	if u.directory == nil {
		return d
	}

	if client, err := u.directory.GetUser(ctx, sr.ClientID); err != nil {
		u.logger.Warn("[service-request][usecase] client lookup failed", zap.String("client_id", sr.ClientID), zap.Error(err))
	} else {
		d.Client = client
	}
	if sr.MechanicID != "" {
		if mechanic, err := u.directory.GetUser(ctx, sr.MechanicID); err != nil {
			u.logger.Warn("[service-request][usecase] mechanic lookup failed", zap.String("mechanic_id", sr.MechanicID), zap.Error(err))
		} else if mechanic.ID != "" {
			d.Mechanic = &mechanic
		}
	}
	if st, err := u.directory.GetServiceType(ctx, sr.ServiceTypeID); err != nil {
		u.logger.Warn("[service-request][usecase] service type lookup failed", zap.String("service_type_id", sr.ServiceTypeID), zap.Error(err))
	} else {
		d.ServiceType = st
	}
	return d
}

func (u *ServiceRequestUseCase) publish(ctx context.Context, event entities.LifecycleEvent) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, event); err != nil {
		u.logger.Warn("[service-request][usecase] event publish failed",
			zap.String("service_id", event.ServiceID), zap.String("type", string(event.Type)), zap.Error(err))
	}
}

// actsFor reports whether actorID may drive transitions on sr in role.
func actsFor(sr entities.ServiceRequest, role entities.Role, actorID string) bool {
	switch role {
	case entities.RoleAdmin:
		return true
	case entities.RoleClient:
		return actorID != "" && sr.ClientID == actorID
	case entities.RoleMechanic:
		return actorID != "" && sr.MechanicID == actorID
	default:
		return false
	}
}

func canView(sr entities.ServiceRequest, role entities.Role, actorID string) bool {
	if actsFor(sr, role, actorID) {
		return true
	}
	return role == entities.RoleMechanic && sr.Status == entities.StatusPendiente && sr.MechanicID == ""
}
