package lifecycle

import (
	"testing"

	"mecanica_hub/internal/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_MechanicTable(t *testing.T) {
	cases := []struct {
		from, to entities.ServiceStatus
		want     bool
	}{
		{entities.StatusPendiente, entities.StatusAceptado, false},
		{entities.StatusPendiente, entities.StatusCancelado, false},
		{entities.StatusAceptado, entities.StatusEnCamino, true},
		{entities.StatusAceptado, entities.StatusCancelado, true},
		{entities.StatusAceptado, entities.StatusEnProceso, false},
		{entities.StatusEnCamino, entities.StatusEnProceso, true},
		{entities.StatusEnCamino, entities.StatusCancelado, true},
		{entities.StatusEnCamino, entities.StatusFinalizado, false},
		{entities.StatusEnProceso, entities.StatusFinalizado, true},
		{entities.StatusEnProceso, entities.StatusCancelado, false},
		{entities.StatusEnProceso, entities.StatusEnProceso, false},
	}
	for _, tc := range cases {
		got := CanTransition(entities.RoleMechanic, tc.from, tc.to)
		assert.Equalf(t, tc.want, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransition_ClientOnlyCancelsPending(t *testing.T) {
	for _, from := range entities.AllStatuses {
		for _, to := range entities.AllStatuses {
			want := from == entities.StatusPendiente && to == entities.StatusCancelado
			assert.Equalf(t, want, CanTransition(entities.RoleClient, from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_AdminOverridesNonTerminal(t *testing.T) {
	for _, from := range entities.AllStatuses {
		for _, to := range entities.AllStatuses {
			assert.Equalf(t, !from.IsTerminal(), CanTransition(entities.RoleAdmin, from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_TerminalIsSink(t *testing.T) {
	roles := []entities.Role{entities.RoleClient, entities.RoleMechanic, entities.RoleAdmin}
	for _, role := range roles {
		for _, to := range entities.AllStatuses {
			assert.False(t, CanTransition(role, entities.StatusFinalizado, to))
			assert.False(t, CanTransition(role, entities.StatusCancelado, to))
		}
	}
}

func TestCanTransition_UnknownValues(t *testing.T) {
	assert.False(t, CanTransition(entities.RoleAdmin, entities.StatusAceptado, "BOGUS"))
	assert.False(t, CanTransition(entities.RoleAdmin, "BOGUS", entities.StatusCancelado))
	assert.False(t, CanTransition("GUEST", entities.StatusPendiente, entities.StatusCancelado))
}

func TestAllowedTransitions(t *testing.T) {
	assert.Equal(t,
		[]entities.ServiceStatus{entities.StatusEnCamino, entities.StatusCancelado},
		AllowedTransitions(entities.RoleMechanic, entities.StatusAceptado))
	assert.Equal(t,
		[]entities.ServiceStatus{entities.StatusCancelado},
		AllowedTransitions(entities.RoleClient, entities.StatusPendiente))
	assert.Empty(t, AllowedTransitions(entities.RoleMechanic, entities.StatusPendiente))
	assert.Empty(t, AllowedTransitions(entities.RoleAdmin, entities.StatusFinalizado))
	assert.Len(t, AllowedTransitions(entities.RoleAdmin, entities.StatusEnCamino), len(entities.AllStatuses))
}

func TestCanMove_ActiveStatusNeedsMechanic(t *testing.T) {
	unassigned := entities.ServiceRequest{ID: "sr-1", Status: entities.StatusPendiente}
	for _, target := range []entities.ServiceStatus{entities.StatusAceptado, entities.StatusEnCamino, entities.StatusEnProceso} {
		assert.Falsef(t, CanMove(entities.RoleAdmin, unassigned, target), "admin PENDIENTE -> %s", target)
	}
	assert.True(t, CanMove(entities.RoleAdmin, unassigned, entities.StatusCancelado))

	assigned := entities.ServiceRequest{ID: "sr-1", MechanicID: "mech-1", Status: entities.StatusAceptado}
	assert.True(t, CanMove(entities.RoleAdmin, assigned, entities.StatusEnProceso))
	assert.True(t, CanMove(entities.RoleMechanic, assigned, entities.StatusEnCamino))

	moves := AllowedMoves(entities.RoleAdmin, unassigned)
	assert.Contains(t, moves, entities.StatusCancelado)
	assert.NotContains(t, moves, entities.StatusAceptado)
	assert.NotContains(t, moves, entities.StatusEnCamino)
	assert.NotContains(t, moves, entities.StatusEnProceso)
}
