package domain

import (
	"fmt"
	"math"
	"time"

	apperrors "studyclock/internal/platform/errors"
)

type Phase int

const (
	PhaseStudy Phase = iota
	PhaseBreak
)

func (p Phase) String() string {
	switch p {
	case PhaseStudy:
		return "study"
	case PhaseBreak:
		return "break"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Next is the phase that follows p. Study and Break strictly alternate.
func (p Phase) Next() Phase {
	if p == PhaseStudy {
		return PhaseBreak
	}
	return PhaseStudy
}

// Durations holds the configured phase lengths in minutes.
type Durations struct {
	StudyMinutes float64
	BreakMinutes float64
}

func (d Durations) Validate() error {
	if toSeconds(d.StudyMinutes) < 1 {
		return fmt.Errorf("%w: study length must be at least one second", apperrors.ErrInvalidInput)
	}
	if toSeconds(d.BreakMinutes) < 1 {
		return fmt.Errorf("%w: break length must be at least one second", apperrors.ErrInvalidInput)
	}
	return nil
}

// Seconds is the length of phase p in whole seconds.
func (d Durations) Seconds(p Phase) int {
	if p == PhaseBreak {
		return toSeconds(d.BreakMinutes)
	}
	return toSeconds(d.StudyMinutes)
}

func toSeconds(minutes float64) int {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return 0
	}
	return int(math.Round(minutes * 60))
}

// State is the observable timer state. StartedAt is only ever set during a
// study phase and survives pause.
type State struct {
	Phase     Phase
	Remaining int
	Running   bool
	StartedAt *time.Time
}

func Initial(d Durations) State {
	return State{Phase: PhaseStudy, Remaining: d.Seconds(PhaseStudy)}
}

// Clone copies s so that StartedAt is not shared with the owner.
func (s State) Clone() State {
	if s.StartedAt != nil {
		at := *s.StartedAt
		s.StartedAt = &at
	}
	return s
}

// FormatClock renders seconds as M:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
