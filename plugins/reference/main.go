package main

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-plugin"

	hookrpc "studyclock/internal/modules/hook/adapter/out/rpc"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *hookrpc.Empty) (*hookrpc.Metadata, error) {
	return &hookrpc.Metadata{
		Name:    "reference",
		Version: "1.0.0",
		Events:  []string{"session_recorded"},
	}, nil
}

func (s *server) OnSessionRecorded(_ context.Context, in *hookrpc.SessionRecord) (*hookrpc.Ack, error) {
	if in.Duration < 0 {
		return &hookrpc.Ack{Accepted: false, Message: "negative duration"}, nil
	}
	return &hookrpc.Ack{
		Accepted: true,
		Message:  fmt.Sprintf("%s %s %d min", in.Date, in.Time, in.Duration),
	}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: hookrpc.HandshakeConfig,
		Plugins:         hookrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
