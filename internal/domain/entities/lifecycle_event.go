package entities

import "time"

type LifecycleEventType string

const (
	EventCreated       LifecycleEventType = "created"
	EventAssigned      LifecycleEventType = "assigned"
	EventStatusChanged LifecycleEventType = "status_changed"
	EventQuoteUpdated  LifecycleEventType = "quote_updated"
)

// LifecycleEvent is emitted after a committed change to a service request.
// It carries everything the notification side needs, so consumers never read
// the store back.
type LifecycleEvent struct {
	Type        LifecycleEventType `json:"type"`
	ServiceID   string             `json:"service_id"`
	CaseNumber  string             `json:"case_number"`
	From        ServiceStatus      `json:"from,omitempty"`
	To          ServiceStatus      `json:"to"`
	Role        Role               `json:"role"`
	ActorID     string             `json:"actor_id"`
	Client      User               `json:"client"`
	Mechanic    *User              `json:"mechanic,omitempty"`
	ServiceType ServiceType        `json:"service_type"`
	Address     string             `json:"address"`
	Notes       string             `json:"notes,omitempty"`
	Price       *float64           `json:"price,omitempty"`
	At          time.Time          `json:"at"`
}

// NewLifecycleEvent copies the related data of d into an event.
func NewLifecycleEvent(t LifecycleEventType, d ServiceRequestDetails, from ServiceStatus, role Role, actorID string, at time.Time) LifecycleEvent {
	return LifecycleEvent{
		Type:        t,
		ServiceID:   d.ID,
		CaseNumber:  d.CaseNumber,
		From:        from,
		To:          d.Status,
		Role:        role,
		ActorID:     actorID,
		Client:      d.Client,
		Mechanic:    d.Mechanic,
		ServiceType: d.ServiceType,
		Address:     d.Address,
		Notes:       d.MechanicNotes,
		Price:       d.Price,
		At:          at,
	}
}
