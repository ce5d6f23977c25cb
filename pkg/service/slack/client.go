package slack

import (
	"context"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	libslack "github.com/slack-go/slack"
)

// client implements Service interface
type client struct {
	api *libslack.Client
}

// New creates a new Slack service with the provided bot token
func New(token string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	return &client{api: libslack.New(token)}, nil
}

func (c *client) PostEphemeral(ctx context.Context, channelID types.ChannelID, userID types.UserID, text string, blocks ...libslack.Block) error {
	opts := []libslack.MsgOption{
		libslack.MsgOptionText(text, false),
	}
	if len(blocks) > 0 {
		opts = append(opts, libslack.MsgOptionBlocks(blocks...))
	}

	if _, err := c.api.PostEphemeralContext(ctx, channelID.String(), userID.String(), opts...); err != nil {
		return goerr.Wrap(err, "failed to post ephemeral message",
			goerr.V("channel_id", channelID), goerr.V("user_id", userID))
	}
	return nil
}

func (c *client) PostChannel(ctx context.Context, channelID types.ChannelID, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID.String(), libslack.MsgOptionText(text, false))
	if err != nil {
		return goerr.Wrap(err, "failed to post channel message", goerr.V("channel_id", channelID))
	}
	return nil
}

func (c *client) RespondText(ctx context.Context, responseURL, text string) error {
	msg := &libslack.WebhookMessage{
		Text:            text,
		ReplaceOriginal: true,
		ResponseType:    libslack.ResponseTypeEphemeral,
	}
	if err := libslack.PostWebhookContext(ctx, responseURL, msg); err != nil {
		return goerr.Wrap(err, "failed to respond via response URL")
	}
	return nil
}

func (c *client) DeleteEphemeral(ctx context.Context, responseURL string) error {
	msg := &libslack.WebhookMessage{
		DeleteOriginal: true,
	}
	if err := libslack.PostWebhookContext(ctx, responseURL, msg); err != nil {
		return goerr.Wrap(err, "failed to delete ephemeral message")
	}
	return nil
}
