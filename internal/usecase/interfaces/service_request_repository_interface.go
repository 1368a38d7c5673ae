package interfaces

import (
	"context"
	"errors"
	"mecanica_hub/internal/domain/entities"
)

// Conflict signals raised by repositories when a guarded write loses.
var (
	ErrStatusConflict    = errors.New("service request changed concurrently")
	ErrMechanicSlotTaken = errors.New("mechanic already holds an active service request")
	ErrCaseNumberTaken   = errors.New("case number already taken")
)

// IServiceRequestRepository abstracts persistence for ServiceRequest.
//
// Lookups return the zero value (ID == "") when nothing matches.
// Mutations are atomic: the request row, its history entry and the
// one-active-job guard are written together or not at all.
type IServiceRequestRepository interface {
	// Create fails with ErrCaseNumberTaken when the case number is not unique.
	Create(ctx context.Context, sr entities.ServiceRequest) (entities.ServiceRequest, error)
	GetByID(ctx context.Context, id string) (entities.ServiceRequest, error)
	ListAvailable(ctx context.Context, serviceTypeIDs []string) ([]entities.ServiceRequest, error)
	ListByMechanicID(ctx context.Context, mechanicID string) ([]entities.ServiceRequest, error)
	ListByClientID(ctx context.Context, clientID string) ([]entities.ServiceRequest, error)

	// Assign binds mechanicID to a PENDIENTE, unassigned request and moves it to
	// ACEPTADO. Fails with ErrStatusConflict when the request is no longer
	// assignable and ErrMechanicSlotTaken when the mechanic is busy.
	Assign(ctx context.Context, id, mechanicID string, entry entities.StatusHistory) (entities.ServiceRequest, error)

	// UpdateStatus moves current to next only if the stored status still equals
	// current.Status, otherwise ErrStatusConflict. The mechanic guard is released
	// when the request leaves the active set and taken when it enters it.
	UpdateStatus(ctx context.Context, current entities.ServiceRequest, next entities.ServiceStatus, entry entities.StatusHistory) (entities.ServiceRequest, error)

	// UpdateQuote sets price and mechanic notes while mechanicID holds the
	// request in an active status, otherwise ErrStatusConflict.
	UpdateQuote(ctx context.Context, id, mechanicID string, price *float64, notes string) (entities.ServiceRequest, error)
}
