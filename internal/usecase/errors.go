package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrServiceRequestNotFound = errors.New("service request not found")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrMechanicBusy           = errors.New("mechanic already has an active service request")
	ErrStorage                = errors.New("storage error")
	ErrCaseNumberExhausted    = errors.New("could not allocate a unique case number")

	ErrInvalidServiceRequestID = errors.New("invalid service request id")
	ErrInvalidClientID         = errors.New("invalid client_id")
	ErrInvalidMechanicID       = errors.New("invalid mechanic_id")
	ErrInvalidServiceTypeID    = errors.New("invalid service_type_id")
	ErrInvalidDescription      = errors.New("invalid description")
	ErrInvalidAddress          = errors.New("invalid address")
	ErrInvalidScheduledAt      = errors.New("scheduled_at must be in the future")
	ErrInvalidPrice            = errors.New("invalid price")
	ErrInvalidNotes            = errors.New("invalid notes")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidRole             = errors.New("invalid role")
)

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
