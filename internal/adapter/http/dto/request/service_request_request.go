package request

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidScheduledAt = errors.New("scheduled_at must be RFC3339")
	ErrInvalidPrice       = errors.New("price must be greater than zero")
)

// CreateServiceRequestRequest is the client's payload to open a request.
type CreateServiceRequestRequest struct {
	ServiceTypeID string   `json:"service_type_id" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	ScheduledAt   string   `json:"scheduled_at" binding:"required"`
	Price         *float64 `json:"price"`
}

// ResolveScheduledAt parses scheduled_at. Whether it lies in the future is
// checked by the use case against its own clock.
func (r CreateServiceRequestRequest) ResolveScheduledAt() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(r.ScheduledAt))
	if err != nil {
		return time.Time{}, ErrInvalidScheduledAt
	}
	return t.UTC(), nil
}

func (r CreateServiceRequestRequest) ResolvePrice() (*float64, error) {
	return resolvePrice(r.Price)
}

// AssignServiceRequestRequest lets an admin assign on a mechanic's behalf.
// Mechanics send an empty body.
type AssignServiceRequestRequest struct {
	MechanicID string `json:"mechanic_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateStatusRequest) ResolveStatus() string {
	return strings.ToUpper(strings.TrimSpace(r.Status))
}

// UpdateQuoteRequest keeps the current price when price is omitted.
type UpdateQuoteRequest struct {
	Price *float64 `json:"price"`
	Notes string   `json:"notes"`
}

func (r UpdateQuoteRequest) ResolvePrice() (*float64, error) {
	return resolvePrice(r.Price)
}

func resolvePrice(p *float64) (*float64, error) {
	if p == nil {
		return nil, nil
	}
	if *p <= 0 {
		return nil, ErrInvalidPrice
	}
	v := *p
	return &v, nil
}
