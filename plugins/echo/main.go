package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-plugin"

	pluginrpc "mindful/internal/modules/plugin/adapter/out/rpc"
)

// Topics the built-in keyword replies already cover. The plugin declines
// them so the host falls back to its own answers.
var deferred = []string{
	"suicide", "kill myself", "end my life", "self harm", "hurt myself",
	"anxious", "anxiety", "worry",
	"depressed", "depression", "sad",
	"stress", "overwhelmed", "pressure",
}

const maxQuote = 80

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "echo",
		Version:      "1.0.0",
		Capabilities: []string{"respond"},
	}, nil
}

func (s *server) Respond(_ context.Context, in *pluginrpc.RespondRequest) (*pluginrpc.RespondResponse, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}
	lower := strings.ToLower(message)
	for _, keyword := range deferred {
		if strings.Contains(lower, keyword) {
			return &pluginrpc.RespondResponse{Handled: false}, nil
		}
	}
	quote := message
	if utf8.RuneCountInString(quote) > maxQuote {
		quote = string([]rune(quote)[:maxQuote]) + "..."
	}
	return &pluginrpc.RespondResponse{
		Reply:    fmt.Sprintf("It sounds like %q is on your mind. I'm listening, tell me more about it.", quote),
		Category: "general",
		Handled:  true,
	}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
