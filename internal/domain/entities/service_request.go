package entities

import "time"

// ServiceStatus represents the lifecycle of a service request.
//
// Domain notes:
//   - PENDIENTE is the only creation status.
//   - FINALIZADO and CANCELADO are terminal; requests are never deleted.
type ServiceStatus string

const (
	StatusPendiente  ServiceStatus = "PENDIENTE"
	StatusAceptado   ServiceStatus = "ACEPTADO"
	StatusEnCamino   ServiceStatus = "EN_CAMINO"
	StatusEnProceso  ServiceStatus = "EN_PROCESO"
	StatusFinalizado ServiceStatus = "FINALIZADO"
	StatusCancelado  ServiceStatus = "CANCELADO"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []ServiceStatus{
	StatusPendiente,
	StatusAceptado,
	StatusEnCamino,
	StatusEnProceso,
	StatusFinalizado,
	StatusCancelado,
}

func (s ServiceStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s ServiceStatus) IsTerminal() bool {
	return s == StatusFinalizado || s == StatusCancelado
}

// IsActive reports whether a request in this status occupies its mechanic.
func (s ServiceStatus) IsActive() bool {
	return s == StatusAceptado || s == StatusEnCamino || s == StatusEnProceso
}

// ServiceRequest is a client's request for a mechanic visit.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI status-index: status
//   - GSI mechanic_id-index: mechanic_id
//   - GSI client_id-index: client_id
//
// MechanicID stays empty until assignment. Price is optional and set by the
// client at creation or quoted later by the assigned mechanic.
type ServiceRequest struct {
	ID            string        `json:"id"`
	CaseNumber    string        `json:"case_number"`
	ClientID      string        `json:"client_id"`
	MechanicID    string        `json:"mechanic_id,omitempty"`
	ServiceTypeID string        `json:"service_type_id"`
	Description   string        `json:"description"`
	Address       string        `json:"address"`
	ScheduledAt   time.Time     `json:"scheduled_at"`
	Price         *float64      `json:"price,omitempty"`
	MechanicNotes string        `json:"mechanic_notes,omitempty"`
	Status        ServiceStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// HoldsMechanic reports whether the request counts against its mechanic's
// one-active-job limit.
func (r ServiceRequest) HoldsMechanic() bool {
	return r.MechanicID != "" && r.Status.IsActive()
}

// ServiceRequestDetails is a request with the related records a caller needs
// to build notifications or responses. Missing relations are left zero.
type ServiceRequestDetails struct {
	ServiceRequest
	Client      User        `json:"client"`
	Mechanic    *User       `json:"mechanic,omitempty"`
	ServiceType ServiceType `json:"service_type"`
}
