package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// UserID represents a unique identifier for a member, issued by the
// external identity provider (e.g. a Slack user ID).
type UserID string

// Validate checks if the UserID is valid
func (u UserID) Validate() error {
	if u == "" {
		return goerr.New("user ID cannot be empty")
	}
	if !idPattern.MatchString(string(u)) {
		return goerr.New("user ID contains invalid characters", goerr.V("id", u))
	}
	return nil
}

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}

// TeamID represents a unique identifier for a team
type TeamID string

// Validate checks if the TeamID is valid
func (t TeamID) Validate() error {
	if t == "" {
		return goerr.New("team ID cannot be empty")
	}
	if !idPattern.MatchString(string(t)) {
		return goerr.New("team ID contains invalid characters", goerr.V("id", t))
	}
	return nil
}

// String returns the string representation of TeamID
func (t TeamID) String() string {
	return string(t)
}

// ChannelID represents a messaging channel identifier
type ChannelID string

// Validate checks if the ChannelID is valid
func (c ChannelID) Validate() error {
	if c == "" {
		return goerr.New("channel ID cannot be empty")
	}
	if !idPattern.MatchString(string(c)) {
		return goerr.New("channel ID contains invalid characters", goerr.V("id", c))
	}
	return nil
}

// String returns the string representation of ChannelID
func (c ChannelID) String() string {
	return string(c)
}

// SubmissionID represents a unique identifier for a submission
type SubmissionID string

// String returns the string representation of SubmissionID
func (s SubmissionID) String() string {
	return string(s)
}
