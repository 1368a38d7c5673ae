package memory

import (
	"context"
	"sort"

	"mecanica_hub/internal/domain/entities"
	"mecanica_hub/internal/usecase/interfaces"
)

// Payments adapts Store to IServicePaymentRepository. Store already has
// Create/GetByID for service requests, so payments get their own receiver.
type Payments struct {
	store *Store
}

var _ interfaces.IServicePaymentRepository = Payments{}

func (s *Store) Payments() Payments {
	return Payments{store: s}
}

func (p Payments) Create(_ context.Context, payment entities.ServicePayment) (entities.ServicePayment, error) {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	if _, exists := p.store.payments[payment.ID]; exists {
		return entities.ServicePayment{}, interfaces.ErrStatusConflict
	}
	p.store.payments[payment.ID] = payment
	return payment, nil
}

func (p Payments) GetByID(_ context.Context, id string) (entities.ServicePayment, error) {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	return p.store.payments[id], nil
}

func (p Payments) ListByServiceRequestID(_ context.Context, serviceRequestID string) ([]entities.ServicePayment, error) {
	p.store.mu.Lock()
	defer p.store.mu.Unlock()
	out := []entities.ServicePayment{}
	for _, payment := range p.store.payments {
		if payment.ServiceRequestID == serviceRequestID {
			out = append(out, payment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
