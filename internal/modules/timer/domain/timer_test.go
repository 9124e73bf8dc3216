package domain_test

import (
	"errors"
	"testing"
	"time"

	"studyclock/internal/modules/timer/domain"
	apperrors "studyclock/internal/platform/errors"
)

func TestFormatClock(t *testing.T) {
	t.Parallel()
	cases := map[int]string{
		1500: "25:00",
		59:   "0:59",
		65:   "1:05",
		0:    "0:00",
		-3:   "0:00",
		3600: "60:00",
	}
	for seconds, want := range cases {
		if got := domain.FormatClock(seconds); got != want {
			t.Fatalf("FormatClock(%d) = %q, want %q", seconds, got, want)
		}
	}
}

func TestDurationsRoundToSeconds(t *testing.T) {
	t.Parallel()
	d := domain.Durations{StudyMinutes: 25, BreakMinutes: 1.0 / 60}
	if err := d.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := d.Seconds(domain.PhaseStudy); got != 1500 {
		t.Fatalf("expected 1500 study seconds, got %d", got)
	}
	if got := d.Seconds(domain.PhaseBreak); got != 1 {
		t.Fatalf("expected 1 break second, got %d", got)
	}

	tooShort := domain.Durations{StudyMinutes: 0.001, BreakMinutes: 5}
	if err := tooShort.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestPhaseAlternates(t *testing.T) {
	t.Parallel()
	if domain.PhaseStudy.Next() != domain.PhaseBreak || domain.PhaseBreak.Next() != domain.PhaseStudy {
		t.Fatalf("phases must alternate")
	}
	if domain.PhaseStudy.String() != "study" || domain.PhaseBreak.String() != "break" {
		t.Fatalf("unexpected phase names")
	}
}

func TestInitialAndClone(t *testing.T) {
	t.Parallel()
	s := domain.Initial(domain.Durations{StudyMinutes: 25, BreakMinutes: 5})
	if s.Phase != domain.PhaseStudy || s.Remaining != 1500 || s.Running || s.StartedAt != nil {
		t.Fatalf("unexpected initial state: %+v", s)
	}
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.StartedAt = &at
	c := s.Clone()
	*c.StartedAt = at.Add(time.Hour)
	if !s.StartedAt.Equal(at) {
		t.Fatalf("clone must not share the start timestamp")
	}
}
