package response

import (
	"mecanica_hub/internal/domain/entities"
	"time"
)

type StatusHistoryResponse struct {
	ID             string    `json:"id"`
	ServiceID      string    `json:"service_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ChangedBy      string    `json:"changed_by,omitempty"`
	Role           string    `json:"role,omitempty"`
	RecordedAt     time.Time `json:"recorded_at"`
}

func FromStatusHistory(list []entities.StatusHistory) []StatusHistoryResponse {
	out := make([]StatusHistoryResponse, 0, len(list))
	for _, h := range list {
		out = append(out, StatusHistoryResponse{
			ID:             h.ID,
			ServiceID:      h.ServiceID,
			PreviousStatus: string(h.PreviousStatus),
			NewStatus:      string(h.NewStatus),
			ChangedBy:      h.ChangedBy,
			Role:           string(h.Role),
			RecordedAt:     h.RecordedAt,
		})
	}
	return out
}
