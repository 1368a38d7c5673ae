// Package lifecycle holds the role-keyed transition table for service requests.
package lifecycle

import "mecanica_hub/internal/domain/entities"

type statusSet map[entities.ServiceStatus]struct{}

func setOf(statuses ...entities.ServiceStatus) statusSet {
	s := make(statusSet, len(statuses))
	for _, st := range statuses {
		s[st] = struct{}{}
	}
	return s
}

// table maps (role, current status) to the legal targets. ADMIN has no entry:
// admins may move any non-terminal request to any status.
var table = map[entities.Role]map[entities.ServiceStatus]statusSet{
	entities.RoleClient: {
		entities.StatusPendiente: setOf(entities.StatusCancelado),
	},
	entities.RoleMechanic: {
		entities.StatusAceptado:  setOf(entities.StatusEnCamino, entities.StatusCancelado),
		entities.StatusEnCamino:  setOf(entities.StatusEnProceso, entities.StatusCancelado),
		entities.StatusEnProceso: setOf(entities.StatusFinalizado),
	},
}

// CanTransition reports whether role may move a request from current to target.
// Terminal statuses accept nothing, whatever the role.
func CanTransition(role entities.Role, current, target entities.ServiceStatus) bool {
	if current.IsTerminal() || !target.IsValid() {
		return false
	}
	if role == entities.RoleAdmin {
		return current.IsValid()
	}
	_, ok := table[role][current][target]
	return ok
}

// AllowedTransitions returns the legal targets in lifecycle order.
func AllowedTransitions(role entities.Role, current entities.ServiceStatus) []entities.ServiceStatus {
	out := []entities.ServiceStatus{}
	for _, target := range entities.AllStatuses {
		if CanTransition(role, current, target) {
			out = append(out, target)
		}
	}
	return out
}

// CanMove is CanTransition for a concrete request: active statuses also need
// an assigned mechanic, so an admin cannot skip assignment.
func CanMove(role entities.Role, sr entities.ServiceRequest, target entities.ServiceStatus) bool {
	if target.IsActive() && sr.MechanicID == "" {
		return false
	}
	return CanTransition(role, sr.Status, target)
}

// AllowedMoves returns the targets CanMove accepts, in lifecycle order.
func AllowedMoves(role entities.Role, sr entities.ServiceRequest) []entities.ServiceStatus {
	out := []entities.ServiceStatus{}
	for _, target := range AllowedTransitions(role, sr.Status) {
		if CanMove(role, sr, target) {
			out = append(out, target)
		}
	}
	return out
}
