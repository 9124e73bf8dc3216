// Package headless drives the timer without a terminal UI, printing one line
// per notable state change.
package headless

import (
	"context"
	"fmt"
	"io"

	timerdto "studyclock/internal/modules/timer/dto"
)

type timerPort interface {
	Start() timerdto.StateOutput
	Pause() timerdto.StateOutput
	Subscribe(fn func(timerdto.StateOutput)) func()
}

// Run starts the timer and reports until ctx is done. Lines are written when
// the phase or running flag changes and on every whole minute.
func Run(ctx context.Context, timer timerPort, w io.Writer) error {
	updates := make(chan timerdto.StateOutput, 64)
	unsub := timer.Subscribe(func(s timerdto.StateOutput) {
		select {
		case updates <- s:
		default:
		}
	})
	defer unsub()

	last := timer.Start()
	if err := writeState(w, last); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			timer.Pause()
			return nil
		case s := <-updates:
			if !Notable(last, s) {
				last = s
				continue
			}
			last = s
			if err := writeState(w, s); err != nil {
				return err
			}
		}
	}
}

// Notable reports whether next deserves a line after prev.
func Notable(prev, next timerdto.StateOutput) bool {
	if prev.Phase != next.Phase || prev.Running != next.Running {
		return true
	}
	return next.Running && next.Remaining%60 == 0 && next.Remaining != prev.Remaining
}

func writeState(w io.Writer, s timerdto.StateOutput) error {
	status := "paused"
	if s.Running {
		status = "running"
	}
	_, err := fmt.Fprintf(w, "%-5s %6s  %s\n", s.Phase, s.Clock, status)
	return err
}
