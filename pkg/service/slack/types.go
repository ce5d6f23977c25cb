package slack

import (
	"context"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	libslack "github.com/slack-go/slack"
)

// Service is the narrow messaging contract the workflow engine consumes:
// requester-only prompts, channel broadcasts, and retraction of an
// ephemeral prompt via its response handle.
type Service interface {
	// PostEphemeral sends a requester-only message to the channel
	PostEphemeral(ctx context.Context, channelID types.ChannelID, userID types.UserID, text string, blocks ...libslack.Block) error

	// PostChannel broadcasts a message to the channel
	PostChannel(ctx context.Context, channelID types.ChannelID, text string) error

	// RespondText replaces the ephemeral message behind the response
	// handle with a plain text message.
	RespondText(ctx context.Context, responseURL, text string) error

	// DeleteEphemeral retracts the ephemeral message behind the response
	// handle.
	DeleteEphemeral(ctx context.Context, responseURL string) error
}
