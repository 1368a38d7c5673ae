package usecase

import (
	"context"
	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/usecase/interfaces"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IStatusHistoryUseCase exposes the audit trail of a service request.
type IStatusHistoryUseCase interface {
	History(ctx context.Context, serviceID string) ([]entities.StatusHistory, error)
}

// StatusHistoryRecorder builds history entries for the engines and reads them
// back for display. Entries are persisted by the repository together with the
// status change they describe; nothing here feeds back into transition rules.
type StatusHistoryRecorder struct {
	repo interfaces.IStatusHistoryRepository
	now  func() time.Time
}

var _ IStatusHistoryUseCase = (*StatusHistoryRecorder)(nil)

func NewStatusHistoryRecorder(repo interfaces.IStatusHistoryRepository) *StatusHistoryRecorder {
	return &StatusHistoryRecorder{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Entry returns the row describing serviceID moving from previous to next.
func (r *StatusHistoryRecorder) Entry(serviceID string, previous, next entities.ServiceStatus, role entities.Role, actorID string) entities.StatusHistory {
	return entities.StatusHistory{
		ID:             uuid.NewString(),
		ServiceID:      serviceID,
		PreviousStatus: previous,
		NewStatus:      next,
		ChangedBy:      actorID,
		Role:           role,
		RecordedAt:     r.now(),
	}
}

func (r *StatusHistoryRecorder) History(ctx context.Context, serviceID string) ([]entities.StatusHistory, error) {
	serviceID = strings.TrimSpace(serviceID)
	if serviceID == "" {
		return nil, ErrInvalidServiceRequestID
	}

	items, err := r.repo.ListByServiceID(ctx, serviceID)
	if err != nil {
		return nil, storageErr(err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].RecordedAt.Before(items[j].RecordedAt)
	})
	return items, nil
}
