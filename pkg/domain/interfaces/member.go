package interfaces

import (
	"context"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
)

// MemberRepository defines persistence for the member mirror. The
// identity provider owns the data; this is the local read model the core
// consults for roster generation and report scoping.
type MemberRepository interface {
	// Put creates or replaces a member record
	Put(ctx context.Context, m *model.Member) error

	// Get retrieves a member by ID, ErrNotFound if absent
	Get(ctx context.Context, id types.UserID) (*model.Member, error)

	// List returns all member records
	List(ctx context.Context) ([]*model.Member, error)

	// Delete removes a member record. Deleting an absent member is not an
	// error.
	Delete(ctx context.Context, id types.UserID) error
}
