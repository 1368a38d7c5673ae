package interfaces

import (
	"context"
	"mecanica_hub/internal/domain/entities"
)

// IServicePaymentRepository abstracts persistence for ServicePayment.
type IServicePaymentRepository interface {
	Create(ctx context.Context, p entities.ServicePayment) (entities.ServicePayment, error)
	GetByID(ctx context.Context, id string) (entities.ServicePayment, error)
	ListByServiceRequestID(ctx context.Context, serviceRequestID string) ([]entities.ServicePayment, error)
}
