// Package memory is an in-process storage driver with the same atomicity
// guarantees as the DynamoDB repositories. It backs STORAGE_DRIVER=memory and
// the lifecycle property tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/usecase/interfaces"
)

// Store keeps every table behind one mutex, so each mutation is a single
// serialized unit just like a DynamoDB transaction.
type Store struct {
	mu sync.Mutex

	requests     map[string]entities.ServiceRequest
	caseNumbers  map[string]string
	activeByMech map[string]string
	history      map[string][]entities.StatusHistory
	payments     map[string]entities.ServicePayment
	users        map[string]entities.User
	serviceTypes map[string]entities.ServiceType
}

var (
	_ interfaces.IServiceRequestRepository = (*Store)(nil)
	_ interfaces.IStatusHistoryRepository  = (*Store)(nil)
	_ interfaces.IDirectory                = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		requests:     map[string]entities.ServiceRequest{},
		caseNumbers:  map[string]string{},
		activeByMech: map[string]string{},
		history:      map[string][]entities.StatusHistory{},
		payments:     map[string]entities.ServicePayment{},
		users:        map[string]entities.User{},
		serviceTypes: map[string]entities.ServiceType{},
	}
}

// SeedUser adds a directory user.
func (s *Store) SeedUser(u entities.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// SeedServiceType adds a catalog entry.
func (s *Store) SeedServiceType(st entities.ServiceType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serviceTypes[st.ID] = st
}

func (s *Store) Create(_ context.Context, sr entities.ServiceRequest) (entities.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.caseNumbers[sr.CaseNumber]; taken {
		return entities.ServiceRequest{}, interfaces.ErrCaseNumberTaken
	}
	if _, exists := s.requests[sr.ID]; exists {
		return entities.ServiceRequest{}, interfaces.ErrStatusConflict
	}
	s.caseNumbers[sr.CaseNumber] = sr.ID
	s.requests[sr.ID] = sr
	return sr, nil
}

func (s *Store) GetByID(_ context.Context, id string) (entities.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[id], nil
}

func (s *Store) ListAvailable(_ context.Context, serviceTypeIDs []string) ([]entities.ServiceRequest, error) {
	wanted := make(map[string]struct{}, len(serviceTypeIDs))
	for _, id := range serviceTypeIDs {
		wanted[id] = struct{}{}
	}
	return s.filter(func(sr entities.ServiceRequest) bool {
		_, ok := wanted[sr.ServiceTypeID]
		return ok && sr.Status == entities.StatusPendiente && sr.MechanicID == ""
	}), nil
}

func (s *Store) ListByMechanicID(_ context.Context, mechanicID string) ([]entities.ServiceRequest, error) {
	return s.filter(func(sr entities.ServiceRequest) bool { return sr.MechanicID == mechanicID }), nil
}

func (s *Store) ListByClientID(_ context.Context, clientID string) ([]entities.ServiceRequest, error) {
	return s.filter(func(sr entities.ServiceRequest) bool { return sr.ClientID == clientID }), nil
}

func (s *Store) Assign(_ context.Context, id, mechanicID string, entry entities.StatusHistory) (entities.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sr, ok := s.requests[id]
	if !ok || sr.Status != entities.StatusPendiente || sr.MechanicID != "" {
		return entities.ServiceRequest{}, interfaces.ErrStatusConflict
	}
	if _, busy := s.activeByMech[mechanicID]; busy {
		return entities.ServiceRequest{}, interfaces.ErrMechanicSlotTaken
	}

	sr.MechanicID = mechanicID
	sr.Status = entities.StatusAceptado
	sr.UpdatedAt = entry.RecordedAt
	s.requests[id] = sr
	s.activeByMech[mechanicID] = id
	s.history[id] = append(s.history[id], entry)
	return sr, nil
}

func (s *Store) UpdateStatus(_ context.Context, current entities.ServiceRequest, next entities.ServiceStatus, entry entities.StatusHistory) (entities.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sr, ok := s.requests[current.ID]
	if !ok || sr.Status != current.Status {
		return entities.ServiceRequest{}, interfaces.ErrStatusConflict
	}

	wasHolding := sr.HoldsMechanic()
	sr.Status = next
	sr.UpdatedAt = entry.RecordedAt
	nowHolding := sr.HoldsMechanic()

	if !wasHolding && nowHolding {
		if holder, busy := s.activeByMech[sr.MechanicID]; busy && holder != sr.ID {
			return entities.ServiceRequest{}, interfaces.ErrMechanicSlotTaken
		}
		s.activeByMech[sr.MechanicID] = sr.ID
	}
	if wasHolding && !nowHolding && s.activeByMech[sr.MechanicID] == sr.ID {
		delete(s.activeByMech, sr.MechanicID)
	}

	s.requests[sr.ID] = sr
	s.history[sr.ID] = append(s.history[sr.ID], entry)
	return sr, nil
}

func (s *Store) UpdateQuote(_ context.Context, id, mechanicID string, price *float64, notes string) (entities.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sr, ok := s.requests[id]
	if !ok || sr.MechanicID != mechanicID || !sr.Status.IsActive() {
		return entities.ServiceRequest{}, interfaces.ErrStatusConflict
	}
	sr.Price = price
	sr.MechanicNotes = notes
	s.requests[id] = sr
	return sr, nil
}

func (s *Store) ListByServiceID(_ context.Context, serviceID string) ([]entities.StatusHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.StatusHistory, len(s.history[serviceID]))
	copy(out, s.history[serviceID])
	return out, nil
}

func (s *Store) GetUser(_ context.Context, id string) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id], nil
}

func (s *Store) GetServiceType(_ context.Context, id string) (entities.ServiceType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serviceTypes[id], nil
}

// ActiveCount returns how many active requests reference mechanicID.
func (s *Store) ActiveCount(mechanicID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, sr := range s.requests {
		if sr.MechanicID == mechanicID && sr.Status.IsActive() {
			n++
		}
	}
	return n
}

// filter returns matches newest first.
func (s *Store) filter(match func(entities.ServiceRequest) bool) []entities.ServiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []entities.ServiceRequest{}
	for _, sr := range s.requests {
		if match(sr) {
			out = append(out, sr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
