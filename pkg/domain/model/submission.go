package model

import (
	"time"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Submission is an immutable record of a confirmed check-in or check-out.
// It is keyed by (user, channel, calendar date in the user's local
// timezone); at most one submission of each kind may exist per key.
type Submission struct {
	ID        types.SubmissionID   `json:"id" firestore:"id"`
	Kind      types.SubmissionKind `json:"kind" firestore:"kind"`
	UserID    types.UserID         `json:"user_id" firestore:"user_id"`
	ChannelID types.ChannelID      `json:"channel_id" firestore:"channel_id"`
	Date      types.Date           `json:"date" firestore:"date"`

	// Check-in fields
	GoalText     string            `json:"goal_text,omitempty" firestore:"goal_text"`
	SmartVerdict bool              `json:"smart_verdict,omitempty" firestore:"smart_verdict"`
	CheckInMood  types.CheckInMood `json:"check_in_mood,omitempty" firestore:"check_in_mood"`

	// Check-out fields
	UpdateText   string             `json:"update_text,omitempty" firestore:"update_text"`
	GoalsMet     bool               `json:"goals_met,omitempty" firestore:"goals_met"`
	CheckOutMood types.CheckOutMood `json:"check_out_mood,omitempty" firestore:"check_out_mood"`

	BlockerText string    `json:"blocker_text,omitempty" firestore:"blocker_text"`
	CreatedAt   time.Time `json:"created_at" firestore:"created_at"`
}

// Validate checks if the submission is valid
func (s *Submission) Validate() error {
	if !s.Kind.IsValid() {
		return goerr.New("invalid submission kind", goerr.V("kind", s.Kind))
	}
	if err := s.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user ID")
	}
	if err := s.ChannelID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid channel ID", goerr.V("user_id", s.UserID))
	}
	if err := s.Date.Validate(); err != nil {
		return goerr.Wrap(err, "invalid date", goerr.V("user_id", s.UserID))
	}

	switch s.Kind {
	case types.SubmissionKindCheckIn:
		if s.GoalText == "" {
			return goerr.New("check-in requires goal text", goerr.V("user_id", s.UserID))
		}
		if !s.CheckInMood.IsValid() {
			return goerr.New("invalid check-in mood", goerr.V("mood", s.CheckInMood))
		}
	case types.SubmissionKindCheckOut:
		if s.UpdateText == "" {
			return goerr.New("check-out requires update text", goerr.V("user_id", s.UserID))
		}
		if !s.CheckOutMood.IsValid() {
			return goerr.New("invalid check-out mood", goerr.V("mood", s.CheckOutMood))
		}
	}

	return nil
}

// IsBlocked reports whether the submission carries a non-empty blocker
func (s *Submission) IsBlocked() bool {
	return s.BlockerText != ""
}

// Key returns the natural uniqueness key of the submission
func (s *Submission) Key() string {
	return SubmissionKey(s.Kind, s.UserID, s.ChannelID, s.Date)
}

// SubmissionKey builds the natural uniqueness key for a submission
func SubmissionKey(kind types.SubmissionKind, userID types.UserID, channelID types.ChannelID, date types.Date) string {
	return kind.String() + "_" + userID.String() + "_" + channelID.String() + "_" + date.String()
}
