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

type memberRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newMemberRepository(client *firestore.Client) *memberRepository {
	return &memberRepository{client: client}
}

func (r *memberRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_members"
	}
	return "members"
}

func (r *memberRepository) Put(ctx context.Context, m *model.Member) error {
	ref := r.client.Collection(r.collection()).Doc(m.ID.String())

	now := time.Now().UTC()
	stored := *m
	stored.UpdatedAt = now
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}

	if snap, err := ref.Get(ctx); err == nil {
		var existing model.Member
		if err := snap.DataTo(&existing); err == nil {
			stored.CreatedAt = existing.CreatedAt
		}
	}

	if _, err := ref.Set(ctx, &stored); err != nil {
		return goerr.Wrap(err, "failed to put member", goerr.V("id", m.ID))
	}
	return nil
}

func (r *memberRepository) Get(ctx context.Context, id types.UserID) (*model.Member, error) {
	snap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "member not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get member", goerr.V("id", id))
	}

	var m model.Member
	if err := snap.DataTo(&m); err != nil {
		return nil, goerr.Wrap(err, "failed to decode member")
	}
	return &m, nil
}

func (r *memberRepository) List(ctx context.Context) ([]*model.Member, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var members []*model.Member
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate members")
		}

		var m model.Member
		if err := snap.DataTo(&m); err != nil {
			return nil, goerr.Wrap(err, "failed to decode member")
		}
		members = append(members, &m)
	}
	return members, nil
}

func (r *memberRepository) Delete(ctx context.Context, id types.UserID) error {
	if _, err := r.client.Collection(r.collection()).Doc(id.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete member", goerr.V("id", id))
	}
	return nil
}
