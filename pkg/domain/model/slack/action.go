package slack

import (
	"strings"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Action IDs used in confirmation prompts. Slack echoes these back in
// block_actions callbacks; the workflow engine dispatches on them.
const (
	ActionIDCheckInAcceptOriginal  = "checkin_accept_original"
	ActionIDCheckInAcceptSuggested = "checkin_accept_suggested"
	ActionIDCheckInCancel          = "checkin_cancel"
	ActionIDCheckInMood            = "checkin_mood"

	ActionIDCheckOutSubmit   = "checkout_submit"
	ActionIDCheckOutCancel   = "checkout_cancel"
	ActionIDCheckOutMood     = "checkout_mood"
	ActionIDCheckOutGoalsMet = "checkout_goals_met"
)

// EncodeActionValue packs the pending draft key into an action value.
// Format: "{channelID}:{date}". The user ID comes from the callback
// itself, so it is not encoded.
func EncodeActionValue(channelID types.ChannelID, date types.Date) string {
	return channelID.String() + ":" + date.String()
}

// EncodeActionValueWith packs the draft key plus an extra payload (e.g. a
// selected mood). Format: "{channelID}:{date}:{extra}".
func EncodeActionValueWith(channelID types.ChannelID, date types.Date, extra string) string {
	return EncodeActionValue(channelID, date) + ":" + extra
}

// ParseActionValue unpacks an action value into the draft key and the
// optional extra payload.
func ParseActionValue(value string) (types.ChannelID, types.Date, string, error) {
	parts := strings.SplitN(value, ":", 3)
	if len(parts) < 2 {
		return "", "", "", goerr.New("malformed action value", goerr.V("value", value))
	}

	channelID := types.ChannelID(parts[0])
	if err := channelID.Validate(); err != nil {
		return "", "", "", goerr.Wrap(err, "malformed channel in action value", goerr.V("value", value))
	}

	date, err := types.ParseDate(parts[1])
	if err != nil {
		return "", "", "", goerr.Wrap(err, "malformed date in action value", goerr.V("value", value))
	}

	var extra string
	if len(parts) == 3 {
		extra = parts[2]
	}
	return channelID, date, extra, nil
}
