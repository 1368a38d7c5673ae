package interfaces

import (
	"context"
	"mecanica_hub/internal/domain/entities"
)

// IStatusHistoryRepository reads the audit trail. Writes happen inside the
// IServiceRequestRepository mutations so they commit with the status change.
type IStatusHistoryRepository interface {
	ListByServiceID(ctx context.Context, serviceID string) ([]entities.StatusHistory, error)
}
