package out

import (
	"context"

	"studyclock/internal/modules/session/domain"
)

// KeyValueStore is the persistent backing collaborator. Get reports
// found=false for a key that was never written or was removed.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

type Exporter interface {
	ExportDay(ctx context.Context, date string, records []domain.Record) (string, error)
}

type Notifier interface {
	SessionRecorded(ctx context.Context, record domain.Indexed) error
}
