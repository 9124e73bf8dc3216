package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	hookout "studyclock/internal/modules/hook/adapter/out"
	"studyclock/internal/modules/hook/domain"
	"studyclock/internal/platform/observability"
)

func TestGRPCHostIntegrationReferenceHook(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the reference hook binary")
	}
	binPath, checksum := buildReferenceHook(t)
	manifest := domain.Manifest{
		Name:    "reference",
		Version: "1.0.0",
		Binary:  binPath,
		SHA256:  checksum,
		Enabled: true,
		Events:  []domain.Event{domain.EventSessionRecorded},
	}

	host := hookout.NewGRPCHost(observability.Discard())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "reference" || len(metadata.Events) != 1 {
		t.Fatalf("unexpected metadata: %+v", metadata)
	}

	result, err := host.DeliverSession(ctx, manifest, domain.SessionEvent{Index: 0, Date: "2026-03-01", Time: "09:00:00", Duration: 25})
	if err != nil {
		t.Fatalf("deliver session: %v", err)
	}
	if !result.Accepted {
		t.Fatalf("expected delivery accepted, got %+v", result)
	}
	if result.Message != "2026-03-01 09:00:00 25 min" {
		t.Fatalf("unexpected ack message: %q", result.Message)
	}
}

func buildReferenceHook(t *testing.T) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	binPath := filepath.Join(tmp, "reference-hook")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/reference")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build reference hook: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built hook: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
