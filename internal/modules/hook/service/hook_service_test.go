package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studyclock/internal/modules/hook/domain"
	"studyclock/internal/modules/hook/dto"
	"studyclock/internal/modules/hook/service"
	"studyclock/internal/platform/observability"
)

type staticStore struct {
	manifests []domain.Manifest
	err       error
}

func (s staticStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, s.err
}

type fakeHost struct {
	delivered []string
	events    []domain.SessionEvent
	failFor   map[string]error
}

func (h *fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return nil }

func (h *fakeHost) GetMetadata(_ context.Context, m domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: m.Name, Version: m.Version, Events: m.Events}, nil
}

func (h *fakeHost) DeliverSession(_ context.Context, m domain.Manifest, event domain.SessionEvent) (domain.DeliveryResult, error) {
	if err := h.failFor[m.Name]; err != nil {
		return domain.DeliveryResult{}, err
	}
	h.delivered = append(h.delivered, m.Name)
	h.events = append(h.events, event)
	return domain.DeliveryResult{Accepted: true, Message: "ok"}, nil
}

func writeBinary(t *testing.T, dir, name string) (string, string) {
	t.Helper()
	path := filepath.Join(dir, name)
	payload := []byte("#!/bin/sh\necho " + name + "\n")
	if err := os.WriteFile(path, payload, 0o755); err != nil {
		t.Fatalf("write hook binary: %v", err)
	}
	sum := sha256.Sum256(payload)
	return path, hex.EncodeToString(sum[:])
}

func manifest(name, binary, checksum string, enabled bool) domain.Manifest {
	return domain.Manifest{
		Name:    name,
		Version: "1.0.0",
		Binary:  binary,
		SHA256:  checksum,
		Enabled: enabled,
		Events:  []domain.Event{domain.EventSessionRecorded},
	}
}

var sampleEvent = dto.SessionEventInput{Index: 3, Date: "2026-03-01", Time: "09:00:00", Duration: 25}

func TestDispatchDeliversToEnabledVerifiedHooks(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	goodBin, goodSum := writeBinary(t, dir, "good")
	offBin, offSum := writeBinary(t, dir, "off")
	tamperedBin, _ := writeBinary(t, dir, "tampered")

	host := &fakeHost{}
	svc := service.NewHookService(staticStore{manifests: []domain.Manifest{
		manifest("good", goodBin, goodSum, true),
		manifest("off", offBin, offSum, false),
		manifest("tampered", tamperedBin, strings.Repeat("0", 64), true),
	}}, host, observability.Discard())

	out, err := svc.DispatchSessionRecorded(context.Background(), sampleEvent)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected deliveries for good and tampered, got %+v", out)
	}
	if !out[0].Accepted || out[0].HookName != "good" {
		t.Fatalf("expected good hook accepted, got %+v", out[0])
	}
	if out[1].Error == "" || !strings.Contains(out[1].Error, "checksum") {
		t.Fatalf("expected checksum failure for tampered hook, got %+v", out[1])
	}
	if len(host.delivered) != 1 || host.events[0].Duration != 25 || host.events[0].Index != 3 {
		t.Fatalf("unexpected host deliveries: %+v", host.events)
	}
}

func TestDispatchMapsDeadlineToTimeout(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bin, sum := writeBinary(t, dir, "slow")
	host := &fakeHost{failFor: map[string]error{"slow": context.DeadlineExceeded}}
	svc := service.NewHookService(staticStore{manifests: []domain.Manifest{manifest("slow", bin, sum, true)}}, host, observability.Discard())

	out, err := svc.DispatchSessionRecorded(context.Background(), sampleEvent)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(out) != 1 || !strings.Contains(out[0].Error, domain.ErrHookTimeout.Error()) {
		t.Fatalf("expected timeout error, got %+v", out)
	}
}

func TestDispatchRejectsInvalidEventAndManifests(t *testing.T) {
	t.Parallel()
	svc := service.NewHookService(staticStore{}, &fakeHost{}, observability.Discard())
	if _, err := svc.DispatchSessionRecorded(context.Background(), dto.SessionEventInput{Duration: 5}); err == nil {
		t.Fatalf("expected invalid event error")
	}

	dup := manifest("dup", "/bin/true", strings.Repeat("a", 64), true)
	svc = service.NewHookService(staticStore{manifests: []domain.Manifest{dup, dup}}, &fakeHost{}, observability.Discard())
	if _, err := svc.DispatchSessionRecorded(context.Background(), sampleEvent); err == nil {
		t.Fatalf("expected duplicate name error")
	}

	loadErr := errors.New("disk gone")
	svc = service.NewHookService(staticStore{err: loadErr}, &fakeHost{}, observability.Discard())
	if _, err := svc.List(context.Background()); !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bin, _ := writeBinary(t, dir, "demo")
	svc := service.NewHookService(staticStore{manifests: []domain.Manifest{
		manifest("demo", bin, strings.Repeat("0", 64), true),
		manifest("missing", filepath.Join(dir, "nope"), strings.Repeat("0", 64), true),
	}}, nil, observability.Discard())

	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected two results, got %d", len(results))
	}
	if results[0].ChecksumValid || !results[0].BinaryReachable {
		t.Fatalf("expected checksum mismatch on reachable binary: %+v", results[0])
	}
	if results[1].BinaryReachable || results[1].Error == "" {
		t.Fatalf("expected unreachable binary: %+v", results[1])
	}
}
