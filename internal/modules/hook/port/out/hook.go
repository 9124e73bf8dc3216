package out

import (
	"context"

	"studyclock/internal/modules/hook/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	DeliverSession(ctx context.Context, manifest domain.Manifest, event domain.SessionEvent) (domain.DeliveryResult, error)
}
