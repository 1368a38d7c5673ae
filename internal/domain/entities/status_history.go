package entities

import "time"

// StatusHistory is one append-only audit row per accepted transition.
//
// Storage model (DynamoDB):
//   - PK: service_id
//   - SK: recorded_at#id (ascending time order)
type StatusHistory struct {
	ID             string        `json:"id"`
	ServiceID      string        `json:"service_id"`
	PreviousStatus ServiceStatus `json:"previous_status"`
	NewStatus      ServiceStatus `json:"new_status"`
	ChangedBy      string        `json:"changed_by,omitempty"`
	Role           Role          `json:"role,omitempty"`
	RecordedAt     time.Time     `json:"recorded_at"`
}
