package interfaces

import (
	"context"
	"mecanica_hub/internal/domain/entities"
)

// IEventPublisher receives lifecycle events after commit. Delivery is best
// effort; callers log and drop the returned error.
type IEventPublisher interface {
	Publish(ctx context.Context, event entities.LifecycleEvent) error
}
