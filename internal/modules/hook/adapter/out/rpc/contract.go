package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey            = "studyclock_hook"
	serviceName             = "studyclock.hook.v1.SessionHook"
	jsonCodecName           = "json"
	methodGetMetadata       = "/" + serviceName + "/GetMetadata"
	methodOnSessionRecorded = "/" + serviceName + "/OnSessionRecorded"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "STUDYCLOCK_HOOK",
	MagicCookieValue: "studyclock",
}

// jsonCodec lets the hook contract travel over gRPC without generated
// protobuf types.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Events  []string `json:"events"`
}

type SessionRecord struct {
	Index    int32  `json:"index"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration int32  `json:"duration"`
}

type Ack struct {
	Accepted bool   `json:"accepted"`
	Message  string `json:"message"`
}

type SessionHookServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	OnSessionRecorded(ctx context.Context, in *SessionRecord) (*Ack, error)
}

type SessionHookClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	OnSessionRecorded(ctx context.Context, in *SessionRecord) (*Ack, error)
}

type sessionHookClient struct {
	conn *grpc.ClientConn
}

func NewSessionHookClient(conn *grpc.ClientConn) SessionHookClient {
	return &sessionHookClient{conn: conn}
}

func (c *sessionHookClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sessionHookClient) OnSessionRecorded(ctx context.Context, in *SessionRecord) (*Ack, error) {
	out := &Ack{}
	if err := c.conn.Invoke(ctx, methodOnSessionRecorded, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterSessionHookServer(server grpc.ServiceRegistrar, impl SessionHookServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*SessionHookServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "OnSessionRecorded",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &SessionRecord{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.OnSessionRecorded(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodOnSessionRecorded}
					handler := func(ctx context.Context, req any) (any, error) {
						record, ok := req.(*SessionRecord)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.OnSessionRecorded(ctx, record)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "studyclock/hook/v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl SessionHookServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterSessionHookServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewSessionHookClient(conn), nil
}

func PluginMap(impl SessionHookServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
