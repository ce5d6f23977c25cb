package interfaces

import (
	"context"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
)

// AttendanceRepository defines persistence for the daily attendance ledger.
type AttendanceRepository interface {
	// Create inserts a new row. It fails with ErrAlreadyExists when a row
	// for the same (user, team, date) key is already present; callers rely
	// on this for idempotent generation.
	Create(ctx context.Context, row *model.AttendanceRow) error

	// Get retrieves a single row by its natural key, ErrNotFound if absent
	Get(ctx context.Context, userID types.UserID, teamID types.TeamID, date types.Date) (*model.AttendanceRow, error)

	// Exists reports whether a row for the key is present
	Exists(ctx context.Context, userID types.UserID, teamID types.TeamID, date types.Date) (bool, error)

	// Update overwrites an existing row, ErrNotFound if absent
	Update(ctx context.Context, row *model.AttendanceRow) error

	// Delete removes a row by its natural key. Deleting an absent row is
	// not an error.
	Delete(ctx context.Context, userID types.UserID, teamID types.TeamID, date types.Date) error

	// LatestDate returns the most recent date in the whole ledger.
	// ok is false when the ledger is empty.
	LatestDate(ctx context.Context) (date types.Date, ok bool, err error)

	// FirstDate returns the earliest date in the whole ledger.
	// ok is false when the ledger is empty.
	FirstDate(ctx context.Context) (date types.Date, ok bool, err error)

	// ListByDateRange returns all rows with start <= date <= end. A
	// non-empty teamIDs set restricts the result to those teams.
	ListByDateRange(ctx context.Context, start, end types.Date, teamIDs []types.TeamID) ([]*model.AttendanceRow, error)

	// ListByUserTeamFrom returns the rows of one (user, team) pair with
	// date >= from.
	ListByUserTeamFrom(ctx context.Context, userID types.UserID, teamID types.TeamID, from types.Date) ([]*model.AttendanceRow, error)
}
