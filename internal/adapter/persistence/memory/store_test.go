package memory

import (
	"context"
	"testing"
	"time"

	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pending(id, caseNumber, serviceType string, createdAt time.Time) entities.ServiceRequest {
	return entities.ServiceRequest{
		ID:            id,
		CaseNumber:    caseNumber,
		ClientID:      "client-1",
		ServiceTypeID: serviceType,
		Status:        entities.StatusPendiente,
		CreatedAt:     createdAt,
	}
}

func entry(serviceID string, from, to entities.ServiceStatus) entities.StatusHistory {
	return entities.StatusHistory{ID: serviceID + string(to), ServiceID: serviceID, PreviousStatus: from, NewStatus: to, RecordedAt: time.Now()}
}

func TestStore_CreateRejectsDuplicateCaseNumber(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()

	_, err := s.Create(ctx, pending("sr-1", "MH-1", "oil", now))
	require.NoError(t, err)

	_, err = s.Create(ctx, pending("sr-2", "MH-1", "oil", now))
	assert.ErrorIs(t, err, interfaces.ErrCaseNumberTaken)

	got, err := s.GetByID(ctx, "sr-2")
	require.NoError(t, err)
	assert.Empty(t, got.ID)
}

func TestStore_AssignGuardsMechanicSlot(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()
	_, _ = s.Create(ctx, pending("sr-1", "MH-1", "oil", now))
	_, _ = s.Create(ctx, pending("sr-2", "MH-2", "oil", now))

	sr, err := s.Assign(ctx, "sr-1", "mech-1", entry("sr-1", entities.StatusPendiente, entities.StatusAceptado))
	require.NoError(t, err)
	assert.Equal(t, entities.StatusAceptado, sr.Status)
	assert.Equal(t, "mech-1", sr.MechanicID)

	_, err = s.Assign(ctx, "sr-2", "mech-1", entry("sr-2", entities.StatusPendiente, entities.StatusAceptado))
	assert.ErrorIs(t, err, interfaces.ErrMechanicSlotTaken)

	_, err = s.Assign(ctx, "sr-1", "mech-2", entry("sr-1", entities.StatusPendiente, entities.StatusAceptado))
	assert.ErrorIs(t, err, interfaces.ErrStatusConflict)

	h, _ := s.ListByServiceID(ctx, "sr-2")
	assert.Empty(t, h)
}

func TestStore_UpdateStatusReleasesAndTakesSlot(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()
	_, _ = s.Create(ctx, pending("sr-1", "MH-1", "oil", now))
	_, _ = s.Create(ctx, pending("sr-2", "MH-2", "oil", now))

	sr1, err := s.Assign(ctx, "sr-1", "mech-1", entry("sr-1", entities.StatusPendiente, entities.StatusAceptado))
	require.NoError(t, err)

	_, err = s.UpdateStatus(ctx, sr1, entities.StatusCancelado, entry("sr-1", entities.StatusAceptado, entities.StatusCancelado))
	require.NoError(t, err)
	assert.Equal(t, 0, s.ActiveCount("mech-1"))

	_, err = s.Assign(ctx, "sr-2", "mech-1", entry("sr-2", entities.StatusPendiente, entities.StatusAceptado))
	require.NoError(t, err)

	_, err = s.UpdateStatus(ctx, sr1, entities.StatusEnCamino, entry("sr-1", entities.StatusAceptado, entities.StatusEnCamino))
	assert.ErrorIs(t, err, interfaces.ErrStatusConflict, "stale current status must lose")
}

func TestStore_UpdateStatusReenteringActiveSetWhileBusy(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()
	_, _ = s.Create(ctx, pending("sr-1", "MH-1", "oil", now))
	_, _ = s.Create(ctx, pending("sr-2", "MH-2", "oil", now))

	sr1, _ := s.Assign(ctx, "sr-1", "mech-1", entry("sr-1", entities.StatusPendiente, entities.StatusAceptado))
	sr1, err := s.UpdateStatus(ctx, sr1, entities.StatusPendiente, entry("sr-1", entities.StatusAceptado, entities.StatusPendiente))
	require.NoError(t, err)
	_, err = s.Assign(ctx, "sr-2", "mech-1", entry("sr-2", entities.StatusPendiente, entities.StatusAceptado))
	require.NoError(t, err)

	_, err = s.UpdateStatus(ctx, sr1, entities.StatusEnCamino, entry("sr-1", entities.StatusPendiente, entities.StatusEnCamino))
	assert.ErrorIs(t, err, interfaces.ErrMechanicSlotTaken)
	assert.Equal(t, 1, s.ActiveCount("mech-1"))
}

func TestStore_ListAvailableAndOrdering(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Now()
	_, _ = s.Create(ctx, pending("old", "MH-1", "oil", base))
	_, _ = s.Create(ctx, pending("new", "MH-2", "brakes", base.Add(time.Minute)))
	_, _ = s.Create(ctx, pending("other", "MH-3", "tires", base))
	_, _ = s.Assign(ctx, "old", "mech-1", entry("old", entities.StatusPendiente, entities.StatusAceptado))

	items, err := s.ListAvailable(ctx, []string{"oil", "brakes"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].ID)

	mine, _ := s.ListByClientID(ctx, "client-1")
	require.Len(t, mine, 3)
	assert.Equal(t, "new", mine[0].ID)

	assigned, _ := s.ListByMechanicID(ctx, "mech-1")
	require.Len(t, assigned, 1)
	assert.Equal(t, "old", assigned[0].ID)
}

func TestStore_UpdateQuote(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, _ = s.Create(ctx, pending("sr-1", "MH-1", "oil", time.Now()))
	price := 120.0

	_, err := s.UpdateQuote(ctx, "sr-1", "mech-1", &price, "x")
	assert.ErrorIs(t, err, interfaces.ErrStatusConflict)

	_, _ = s.Assign(ctx, "sr-1", "mech-1", entry("sr-1", entities.StatusPendiente, entities.StatusAceptado))
	sr, err := s.UpdateQuote(ctx, "sr-1", "mech-1", &price, "needs new pads")
	require.NoError(t, err)
	assert.Equal(t, 120.0, *sr.Price)
	assert.Equal(t, "needs new pads", sr.MechanicNotes)
}

func TestStore_DirectoryAndPayments(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.SeedUser(entities.User{ID: "u1", Name: "Ana"})
	s.SeedServiceType(entities.ServiceType{ID: "oil", Name: "Cambio de aceite"})

	u, _ := s.GetUser(ctx, "u1")
	assert.Equal(t, "Ana", u.Name)
	missing, _ := s.GetUser(ctx, "nope")
	assert.Empty(t, missing.ID)
	st, _ := s.GetServiceType(ctx, "oil")
	assert.Equal(t, "Cambio de aceite", st.Name)

	payments := s.Payments()
	now := time.Now()
	_, err := payments.Create(ctx, entities.ServicePayment{ID: "p2", ServiceRequestID: "sr-1", Date: now})
	require.NoError(t, err)
	_, err = payments.Create(ctx, entities.ServicePayment{ID: "p1", ServiceRequestID: "sr-1", Date: now.Add(-time.Hour)})
	require.NoError(t, err)
	_, err = payments.Create(ctx, entities.ServicePayment{ID: "p1"})
	assert.ErrorIs(t, err, interfaces.ErrStatusConflict)

	list, _ := payments.ListByServiceRequestID(ctx, "sr-1")
	require.Len(t, list, 2)
	assert.Equal(t, "p1", list[0].ID)
	got, _ := payments.GetByID(ctx, "p2")
	assert.Equal(t, "sr-1", got.ServiceRequestID)
}
