package domain_test

import (
	"strings"
	"testing"

	"studyclock/internal/modules/hook/domain"
)

func validManifest() domain.Manifest {
	return domain.Manifest{
		Name:    "notify",
		Version: "1.0.0",
		Binary:  "/tmp/notify",
		SHA256:  strings.Repeat("a", 64),
		Enabled: true,
		Events:  []domain.Event{domain.EventSessionRecorded},
	}
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	if err := validManifest().Validate(); err != nil {
		t.Fatalf("expected valid manifest: %v", err)
	}

	cases := map[string]func(m *domain.Manifest){
		"missing name":    func(m *domain.Manifest) { m.Name = "" },
		"bad checksum":    func(m *domain.Manifest) { m.SHA256 = "ABC" },
		"no events":       func(m *domain.Manifest) { m.Events = nil },
		"unknown event":   func(m *domain.Manifest) { m.Events = []domain.Event{"phase_started"} },
		"duplicate event": func(m *domain.Manifest) { m.Events = []domain.Event{domain.EventSessionRecorded, domain.EventSessionRecorded} },
	}
	for name, mutate := range cases {
		m := validManifest()
		mutate(&m)
		if err := m.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestSessionEventValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.SessionEvent{Date: "2026-03-01", Time: "09:00:00", Duration: 0}).Validate(); err != nil {
		t.Fatalf("zero duration is valid: %v", err)
	}
	if err := (domain.SessionEvent{Date: "2026-03-01", Time: "09:00:00", Duration: -1}).Validate(); err == nil {
		t.Fatalf("expected negative duration error")
	}
}
