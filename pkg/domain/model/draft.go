package model

import (
	"time"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
)

// CheckInDraft is the pending state of a check-in between the command
// invocation and a terminal action. Drafts are in-memory only; a lost
// draft just means the member re-runs the command.
type CheckInDraft struct {
	UserID      types.UserID
	ChannelID   types.ChannelID
	Date        types.Date
	GoalText    string
	BlockerText string
	Mood        types.CheckInMood
	Suggestion  GoalSuggestion
	CreatedAt   time.Time
}

// CheckOutDraft is the pending state of a check-out awaiting confirmation
type CheckOutDraft struct {
	UserID      types.UserID
	ChannelID   types.ChannelID
	Date        types.Date
	UpdateText  string
	BlockerText string
	Mood        types.CheckOutMood
	GoalsMet    bool
	CreatedAt   time.Time
}
