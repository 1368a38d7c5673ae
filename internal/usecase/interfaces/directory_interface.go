package interfaces

import (
	"context"
	"mecanica_hub/internal/domain/entities"
)

// IDirectory resolves users and service types owned by other parts of the
// product. Missing records come back as zero values.
type IDirectory interface {
	GetUser(ctx context.Context, id string) (entities.User, error)
	GetServiceType(ctx context.Context, id string) (entities.ServiceType, error)
}
