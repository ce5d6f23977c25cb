package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/interfaces"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type submissionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSubmissionRepository(client *firestore.Client) *submissionRepository {
	return &submissionRepository{client: client}
}

func (r *submissionRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_submissions"
	}
	return "submissions"
}

func (r *submissionRepository) docRef(kind types.SubmissionKind, userID types.UserID, channelID types.ChannelID, date types.Date) *firestore.DocumentRef {
	return r.client.Collection(r.collection()).Doc(model.SubmissionKey(kind, userID, channelID, date))
}

func (r *submissionRepository) Create(ctx context.Context, s *model.Submission) error {
	created := *s
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	_, err := r.docRef(s.Kind, s.UserID, s.ChannelID, s.Date).Create(ctx, &created)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(interfaces.ErrAlreadyExists, "submission already exists", goerr.V("key", s.Key()))
		}
		return goerr.Wrap(err, "failed to create submission", goerr.V("key", s.Key()))
	}
	return nil
}

func (r *submissionRepository) Get(ctx context.Context, kind types.SubmissionKind, userID types.UserID, channelID types.ChannelID, date types.Date) (*model.Submission, error) {
	snap, err := r.docRef(kind, userID, channelID, date).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "submission not found",
				goerr.V("kind", kind), goerr.V("user_id", userID),
				goerr.V("channel_id", channelID), goerr.V("date", date))
		}
		return nil, goerr.Wrap(err, "failed to get submission",
			goerr.V("kind", kind), goerr.V("user_id", userID),
			goerr.V("channel_id", channelID), goerr.V("date", date))
	}

	var s model.Submission
	if err := snap.DataTo(&s); err != nil {
		return nil, goerr.Wrap(err, "failed to decode submission")
	}
	return &s, nil
}

func (r *submissionRepository) ListByDateRange(ctx context.Context, kind types.SubmissionKind, start, end types.Date) ([]*model.Submission, error) {
	iter := r.client.Collection(r.collection()).
		Where("kind", "==", kind.String()).
		Where("date", ">=", start.String()).
		Where("date", "<=", end.String()).
		Documents(ctx)
	defer iter.Stop()

	var result []*model.Submission
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate submissions",
				goerr.V("kind", kind), goerr.V("start", start), goerr.V("end", end))
		}

		var s model.Submission
		if err := snap.DataTo(&s); err != nil {
			return nil, goerr.Wrap(err, "failed to decode submission")
		}
		result = append(result, &s)
	}
	return result, nil
}
