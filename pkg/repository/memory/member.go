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

type memberRepository struct {
	mu      sync.RWMutex
	members map[types.UserID]*model.Member
}

func newMemberRepository() *memberRepository {
	return &memberRepository{
		members: make(map[types.UserID]*model.Member),
	}
}

func copyMember(m *model.Member) *model.Member {
	c := *m
	c.ManagedTeamIDs = append([]types.TeamID(nil), m.ManagedTeamIDs...)
	return &c
}

func (r *memberRepository) Put(ctx context.Context, m *model.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := copyMember(m)
	if existing, ok := r.members[m.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	r.members[m.ID] = stored
	return nil
}

func (r *memberRepository) Get(ctx context.Context, id types.UserID) (*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.members[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "member not found", goerr.V("id", id))
	}
	return copyMember(m), nil
}

func (r *memberRepository) List(ctx context.Context) ([]*model.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*model.Member, 0, len(r.members))
	for _, m := range r.members {
		members = append(members, copyMember(m))
	}
	return members, nil
}

func (r *memberRepository) Delete(ctx context.Context, id types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.members, id)
	return nil
}
