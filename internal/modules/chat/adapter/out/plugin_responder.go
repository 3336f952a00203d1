package out

import (
	"context"

	"mindful/internal/modules/chat/domain"
	chatout "mindful/internal/modules/chat/port/out"
	plugindto "mindful/internal/modules/plugin/dto"
	pluginin "mindful/internal/modules/plugin/port/in"
)

// PluginResponder asks a named responder plugin for replies.
type PluginResponder struct {
	plugins pluginin.Usecase
	name    string
}

func NewPluginResponder(plugins pluginin.Usecase, name string) *PluginResponder {
	return &PluginResponder{plugins: plugins, name: name}
}

var _ chatout.Responder = (*PluginResponder)(nil)

func (r *PluginResponder) Respond(ctx context.Context, userID, message string) (domain.Reply, bool, error) {
	out, err := r.plugins.Respond(ctx, plugindto.RespondInput{PluginName: r.name, UserID: userID, Message: message})
	if err != nil {
		return domain.Reply{}, false, err
	}
	return domain.Reply{Content: out.Reply, Category: domain.Category(out.Category)}, out.Handled, nil
}
