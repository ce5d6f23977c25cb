package memory

import (
	"context"
	"sync"
	"time"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/interfaces"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type submissionRepository struct {
	mu          sync.RWMutex
	submissions map[string]*model.Submission
}

func newSubmissionRepository() *submissionRepository {
	return &submissionRepository{
		submissions: make(map[string]*model.Submission),
	}
}

func copySubmission(s *model.Submission) *model.Submission {
	c := *s
	return &c
}

func (r *submissionRepository) Create(ctx context.Context, s *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := s.Key()
	if _, exists := r.submissions[key]; exists {
		return goerr.Wrap(interfaces.ErrAlreadyExists, "submission already exists", goerr.V("key", key))
	}

	created := copySubmission(s)
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	r.submissions[key] = created
	return nil
}

func (r *submissionRepository) Get(ctx context.Context, kind types.SubmissionKind, userID types.UserID, channelID types.ChannelID, date types.Date) (*model.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.submissions[model.SubmissionKey(kind, userID, channelID, date)]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "submission not found",
			goerr.V("kind", kind), goerr.V("user_id", userID),
			goerr.V("channel_id", channelID), goerr.V("date", date))
	}
	return copySubmission(s), nil
}

func (r *submissionRepository) ListByDateRange(ctx context.Context, kind types.SubmissionKind, start, end types.Date) ([]*model.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Submission
	for _, s := range r.submissions {
		if s.Kind != kind {
			continue
		}
		if s.Date.Before(start) || s.Date.After(end) {
			continue
		}
		result = append(result, copySubmission(s))
	}
	return result, nil
}
