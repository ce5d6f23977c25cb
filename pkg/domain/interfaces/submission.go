package interfaces

import (
	"context"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
)

// SubmissionRepository defines persistence for check-in/check-out
// submissions. Submissions are immutable; there is no update operation.
type SubmissionRepository interface {
	// Create inserts a new submission. It fails with ErrAlreadyExists when
	// a submission of the same kind already exists for the (user, channel,
	// date) key; this is the last line of defense against duplicates.
	Create(ctx context.Context, s *model.Submission) error

	// Get retrieves a submission by its natural key, ErrNotFound if absent
	Get(ctx context.Context, kind types.SubmissionKind, userID types.UserID, channelID types.ChannelID, date types.Date) (*model.Submission, error)

	// ListByDateRange returns all submissions of the given kind with
	// start <= date <= end.
	ListByDateRange(ctx context.Context, kind types.SubmissionKind, start, end types.Date) ([]*model.Submission, error)
}
