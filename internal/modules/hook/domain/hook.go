package domain

import (
	"errors"
	"fmt"
	"regexp"
)

type Event string

const EventSessionRecorded Event = "session_recorded"

var (
	ErrHookDisabled       = errors.New("hook is disabled")
	ErrChecksumMismatch   = errors.New("hook checksum mismatch")
	ErrEventNotSubscribed = errors.New("hook is not subscribed to event")
	ErrHookTimeout        = errors.New("hook timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest registers an external hook binary. Binaries are verified against
// SHA256 before every launch.
type Manifest struct {
	Name    string  `json:"name"`
	Version string  `json:"version"`
	Binary  string  `json:"binary"`
	SHA256  string  `json:"sha256"`
	Enabled bool    `json:"enabled"`
	Events  []Event `json:"events"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("hook name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("hook version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("hook binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("hook sha256 must be lowercase 64-char hex")
	}
	if len(m.Events) == 0 {
		return fmt.Errorf("hook events are required")
	}
	seen := map[Event]struct{}{}
	for _, event := range m.Events {
		if err := event.Validate(); err != nil {
			return err
		}
		if _, ok := seen[event]; ok {
			return fmt.Errorf("duplicate event: %s", event)
		}
		seen[event] = struct{}{}
	}
	return nil
}

func (e Event) Validate() error {
	switch e {
	case EventSessionRecorded:
		return nil
	default:
		return fmt.Errorf("unknown event: %s", e)
	}
}

func (m Manifest) Subscribes(event Event) bool {
	for _, e := range m.Events {
		if e == event {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name    string
	Version string
	Events  []Event
}

// SessionEvent is the payload delivered for EventSessionRecorded.
type SessionEvent struct {
	Index    int
	Date     string
	Time     string
	Duration int
}

func (e SessionEvent) Validate() error {
	if e.Date == "" || e.Time == "" {
		return fmt.Errorf("session date and time are required")
	}
	if e.Duration < 0 {
		return fmt.Errorf("session duration must not be negative")
	}
	return nil
}

type DeliveryResult struct {
	Accepted bool
	Message  string
}
