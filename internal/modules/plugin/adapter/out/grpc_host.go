package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	pluginrpc "mindful/internal/modules/plugin/adapter/out/rpc"
	"mindful/internal/modules/plugin/domain"
	pluginout "mindful/internal/modules/plugin/port/out"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// GRPCHost launches a plugin process per call and talks to it over go-plugin.
type GRPCHost struct {
	logger      hclog.Logger
	callTimeout time.Duration
}

type HostOption func(*GRPCHost)

// WithLogger receives the plugin's stderr and go-plugin's own diagnostics.
func WithLogger(logger hclog.Logger) HostOption {
	return func(h *GRPCHost) { h.logger = logger }
}

func WithCallTimeout(timeout time.Duration) HostOption {
	return func(h *GRPCHost) { h.callTimeout = timeout }
}

func NewGRPCHost(opts ...HostOption) pluginout.Host {
	h := &GRPCHost{
		logger:      hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
		callTimeout: defaultCallTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) Respond(ctx context.Context, manifest domain.Manifest, input domain.RespondRequest) (domain.RespondResult, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.RespondResult{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx)
	defer cancel()
	response, err := client.Respond(callCtx, &pluginrpc.RespondRequest{UserID: input.UserID, Message: input.Message})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return domain.RespondResult{}, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, manifest.Name)
		}
		return domain.RespondResult{}, fmt.Errorf("respond: %w", err)
	}
	return domain.RespondResult{Reply: response.Reply, Category: response.Category, Handled: response.Handled}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (pluginrpc.ResponderClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pluginrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          pluginrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.logger.Named(manifest.Name),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(pluginrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(pluginrpc.ResponderClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.callTimeout)
}
