package out

import (
	"context"
	"time"

	sessiondto "studyclock/internal/modules/session/dto"
	sessionin "studyclock/internal/modules/session/port/in"
	timerout "studyclock/internal/modules/timer/port/out"
)

// SessionRecorderAdapter records finished study phases in the session module.
type SessionRecorderAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionRecorderAdapter(sessions sessionin.Usecase) timerout.CompletionHook {
	return &SessionRecorderAdapter{sessions: sessions}
}

func (a *SessionRecorderAdapter) StudyPhaseCompleted(ctx context.Context, startedAt *time.Time, configuredMinutes float64) error {
	_, err := a.sessions.RecordCompletion(ctx, sessiondto.CompleteInput{
		StartedAt:         startedAt,
		ConfiguredMinutes: configuredMinutes,
	})
	return err
}
