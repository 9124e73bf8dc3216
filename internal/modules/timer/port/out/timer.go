package out

import (
	"context"
	"time"
)

// CompletionHook is told when a study phase runs to zero. startedAt is nil
// if the phase start was never observed.
type CompletionHook interface {
	StudyPhaseCompleted(ctx context.Context, startedAt *time.Time, configuredMinutes float64) error
}
