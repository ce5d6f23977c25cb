package slack

import (
	"strings"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	libslack "github.com/slack-go/slack"
)

// Event is a decoded messaging-platform interaction. Payloads are decoded
// once at the HTTP boundary into one of the variants below; everything
// past the boundary dispatches on the concrete type, never on raw payload
// fields.
type Event interface {
	isEvent()
}

// CommandInvoked is a slash command invocation (e.g. /checkin, /checkout)
type CommandInvoked struct {
	Command     string
	Text        string
	UserID      types.UserID
	ChannelID   types.ChannelID
	ResponseURL string
	TriggerID   string
}

func (*CommandInvoked) isEvent() {}

// ActionTriggered is a single interactive action (button click or menu
// selection) from a confirmation prompt. ResponseURL is the response
// handle used to replace or retract the ephemeral prompt.
type ActionTriggered struct {
	ActionID    string
	Value       string
	UserID      types.UserID
	ChannelID   types.ChannelID
	ResponseURL string
}

func (*ActionTriggered) isEvent() {}

// NewCommandInvoked decodes a slash command payload into an event variant
func NewCommandInvoked(cmd *libslack.SlashCommand) *CommandInvoked {
	if cmd == nil {
		return nil
	}
	return &CommandInvoked{
		Command:     cmd.Command,
		Text:        strings.TrimSpace(cmd.Text),
		UserID:      types.UserID(cmd.UserID),
		ChannelID:   types.ChannelID(cmd.ChannelID),
		ResponseURL: cmd.ResponseURL,
		TriggerID:   cmd.TriggerID,
	}
}

// NewActionsTriggered decodes an interaction callback into action events.
// Non block-action callbacks yield nil.
func NewActionsTriggered(cb *libslack.InteractionCallback) []*ActionTriggered {
	if cb == nil || cb.Type != libslack.InteractionTypeBlockActions {
		return nil
	}

	var events []*ActionTriggered
	for _, action := range cb.ActionCallback.BlockActions {
		if action == nil {
			continue
		}
		value := action.Value
		if value == "" && action.SelectedOption.Value != "" {
			value = action.SelectedOption.Value
		}
		events = append(events, &ActionTriggered{
			ActionID:    action.ActionID,
			Value:       value,
			UserID:      types.UserID(cb.User.ID),
			ChannelID:   types.ChannelID(cb.Channel.ID),
			ResponseURL: cb.ResponseURL,
		})
	}
	return events
}
