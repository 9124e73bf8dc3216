package domain

import (
	"fmt"
	"math"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"

	// HistoryKey is the single persisted entry holding the full history.
	HistoryKey = "sessions"
)

// Record is one completed study phase. Records carry no id; they are
// addressed by their position in the History.
type Record struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration int    `json:"duration"`
}

func NewRecord(at time.Time, minutes int) Record {
	return Record{Date: at.Format(DateLayout), Time: at.Format(TimeLayout), Duration: minutes}
}

func (r Record) Validate() error {
	if r.Duration < 0 {
		return fmt.Errorf("duration must be non-negative, got %d", r.Duration)
	}
	return nil
}

// History is ordered oldest first.
type History []Record

func (h History) Clone() History {
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Newest returns the records newest first, paired with their position in h.
func (h History) Newest() []Indexed {
	out := make([]Indexed, 0, len(h))
	for i := len(h) - 1; i >= 0; i-- {
		out = append(out, Indexed{Index: i, Record: h[i]})
	}
	return out
}

type Indexed struct {
	Index int
	Record
}

// ReconcileMinutes picks the minutes to record for a finished study phase:
// wall-clock minutes since startedAt when known and positive, otherwise
// the configured length.
func ReconcileMinutes(startedAt *time.Time, now time.Time, configuredMinutes float64) int {
	minutes := configuredMinutes
	if startedAt != nil {
		elapsed := math.Round(float64(now.Sub(*startedAt).Milliseconds()) / 60000)
		if elapsed > 0 {
			minutes = elapsed
		}
	}
	rounded := int(math.Round(minutes))
	if rounded < 0 {
		return 0
	}
	return rounded
}
