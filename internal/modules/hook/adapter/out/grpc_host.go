package out

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	hookrpc "studyclock/internal/modules/hook/adapter/out/rpc"
	"studyclock/internal/modules/hook/domain"
	hookout "studyclock/internal/modules/hook/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCHost launches each hook binary per call and talks to it over the
// go-plugin gRPC transport.
type GRPCHost struct {
	log hclog.Logger
}

func NewGRPCHost(log hclog.Logger) hookout.Host {
	return &GRPCHost{log: log}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	events := make([]domain.Event, 0, len(meta.Events))
	for _, e := range meta.Events {
		events = append(events, domain.Event(e))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Events: events}, nil
}

func (h *GRPCHost) DeliverSession(ctx context.Context, manifest domain.Manifest, event domain.SessionEvent) (domain.DeliveryResult, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.DeliveryResult{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	ack, err := client.OnSessionRecorded(callCtx, &hookrpc.SessionRecord{
		Index:    int32(event.Index),
		Date:     event.Date,
		Time:     event.Time,
		Duration: int32(event.Duration),
	})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.DeliveryResult{}, fmt.Errorf("%w: %s", domain.ErrHookTimeout, manifest.Name)
		}
		return domain.DeliveryResult{}, fmt.Errorf("deliver session: %w", err)
	}
	return domain.DeliveryResult{Accepted: ack.Accepted, Message: ack.Message}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (hookrpc.SessionHookClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  hookrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          hookrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           h.log.Named(manifest.Name),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start hook client: %w", err)
	}
	raw, err := rpcClient.Dispense(hookrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense hook: %w", err)
	}
	typed, ok := raw.(hookrpc.SessionHookClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("hook rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
