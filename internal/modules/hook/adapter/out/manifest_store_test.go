package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	hookout "studyclock/internal/modules/hook/adapter/out"
	"studyclock/internal/modules/hook/domain"
)

func writeHooksJSON(t *testing.T, base, raw string) {
	t.Helper()
	dir := filepath.Join(base, "hooks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir hooks: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "hooks.json"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write hooks.json: %v", err)
	}
}

func TestFileManifestStoreLoadMissingReturnsEmpty(t *testing.T) {
	t.Parallel()
	store := hookout.NewFileManifestStore(t.TempDir())
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("expected empty manifests, got %d", len(manifests))
	}
}

func TestFileManifestStoreResolvesRelativeBinary(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	writeHooksJSON(t, base, `[
  {
    "name": "reference",
    "version": "1.0.0",
    "binary": "hooks/reference-hook",
    "sha256": "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
    "enabled": true,
    "events": ["session_recorded"]
  }
]`)
	manifests, err := hookout.NewFileManifestStore(base).Load(context.Background())
	if err != nil {
		t.Fatalf("load manifests: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("expected one manifest, got %d", len(manifests))
	}
	if manifests[0].Binary != filepath.Join(base, "hooks", "reference-hook") {
		t.Fatalf("expected binary resolved against base, got %s", manifests[0].Binary)
	}
	if !manifests[0].Subscribes(domain.EventSessionRecorded) {
		t.Fatalf("expected session_recorded subscription")
	}
}

func TestFileManifestStoreRejectsUnknownField(t *testing.T) {
	t.Parallel()
	base := t.TempDir()
	writeHooksJSON(t, base, `[{"name": "x", "capabilities": ["command"]}]`)
	if _, err := hookout.NewFileManifestStore(base).Load(context.Background()); err == nil {
		t.Fatalf("expected unknown field error")
	}
}
