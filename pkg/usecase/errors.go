package usecase

import "errors"

// Sentinel errors for the use case layer. Friendly rejections (already
// checked in, missing check-in, not opted in) are delivered to the member
// as ephemeral messages and are not errors; these sentinels cover the
// cases callers need to distinguish programmatically.
var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrUnknownActionID = errors.New("unknown action ID")
)
