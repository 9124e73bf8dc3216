package service

import (
	"context"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"studyclock/internal/modules/session/domain"
	"studyclock/internal/platform/clock"
)

// Recorder turns a finished study phase into a persisted Record.
type Recorder struct {
	clock clock.Clock
	store *HistoryStore
	log   hclog.Logger
}

func NewRecorder(clock clock.Clock, store *HistoryStore, log hclog.Logger) *Recorder {
	return &Recorder{clock: clock, store: store, log: log}
}

// OnStudyPhaseComplete stamps the record with the phase start when known,
// otherwise with the completion time.
func (r *Recorder) OnStudyPhaseComplete(ctx context.Context, startedAt *time.Time, configuredMinutes float64) (domain.Indexed, error) {
	now := r.clock.Now()
	minutes := domain.ReconcileMinutes(startedAt, now, configuredMinutes)
	stamp := now
	if startedAt != nil {
		stamp = *startedAt
	}
	record := domain.NewRecord(stamp, minutes)
	index, err := r.store.Append(ctx, record)
	if err != nil {
		return domain.Indexed{}, err
	}
	r.log.Info("study session recorded", "date", record.Date, "time", record.Time, "duration", record.Duration, "index", index)
	return domain.Indexed{Index: index, Record: record}, nil
}
