package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"

	"studyclock/internal/modules/hook/domain"
	"studyclock/internal/modules/hook/dto"
	hookout "studyclock/internal/modules/hook/port/out"
)

type HookService struct {
	store hookout.ManifestStore
	host  hookout.Host
	log   hclog.Logger
}

func NewHookService(store hookout.ManifestStore, host hookout.Host, log hclog.Logger) *HookService {
	return &HookService{store: store, host: host, log: log}
}

func (s *HookService) List(ctx context.Context) ([]dto.HookInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HookInfo, 0, len(manifests))
	for _, m := range manifests {
		events := make([]string, 0, len(m.Events))
		for _, e := range m.Events {
			events = append(events, string(e))
		}
		out = append(out, dto.HookInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Events: events})
	}
	return out, nil
}

func (s *HookService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// DispatchSessionRecorded delivers the event to every enabled hook subscribed
// to it. A failing hook is reported in its output entry and does not stop
// delivery to the others.
func (s *HookService) DispatchSessionRecorded(ctx context.Context, input dto.SessionEventInput) ([]dto.DeliveryOutput, error) {
	event := domain.SessionEvent{Index: input.Index, Date: input.Date, Time: input.Time, Duration: input.Duration}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := []dto.DeliveryOutput{}
	for _, m := range manifests {
		if !m.Enabled || !m.Subscribes(domain.EventSessionRecorded) {
			continue
		}
		delivery := dto.DeliveryOutput{HookName: m.Name}
		result, err := s.deliver(ctx, m, event)
		if err != nil {
			delivery.Error = err.Error()
			s.log.Warn("hook delivery failed", "hook", m.Name, "error", err)
		} else {
			delivery.Accepted = result.Accepted
			delivery.Message = result.Message
			s.log.Debug("hook delivered", "hook", m.Name, "accepted", result.Accepted)
		}
		out = append(out, delivery)
	}
	return out, nil
}

func (s *HookService) deliver(ctx context.Context, m domain.Manifest, event domain.SessionEvent) (domain.DeliveryResult, error) {
	if err := checksumMatches(m.Binary, m.SHA256); err != nil {
		return domain.DeliveryResult{}, err
	}
	if s.host == nil {
		return domain.DeliveryResult{}, fmt.Errorf("hook host is not configured")
	}
	result, err := s.host.DeliverSession(ctx, m, event)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return domain.DeliveryResult{}, fmt.Errorf("%w: %s", domain.ErrHookTimeout, m.Name)
		}
		return domain.DeliveryResult{}, err
	}
	return result, nil
}

func (s *HookService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate hook name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read hook binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
