package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/interfaces"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// MembershipUseCase keeps the attendance ledger consistent when a member
// joins or leaves a team. It never touches completed history.
type MembershipUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

// MembershipOption is a functional option for MembershipUseCase
type MembershipOption func(*MembershipUseCase)

// WithMembershipClock overrides the time source, mainly for tests
func WithMembershipClock(now func() time.Time) MembershipOption {
	return func(uc *MembershipUseCase) {
		uc.now = now
	}
}

// NewMembershipUseCase creates a new MembershipUseCase instance
func NewMembershipUseCase(repo interfaces.Repository, opts ...MembershipOption) *MembershipUseCase {
	uc := &MembershipUseCase{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// HandleJoin backfills attendance rows for a member who just joined a
// team, from today (UTC) through the latest date the ledger already
// covers. An empty ledger means there is no horizon to backfill against,
// so nothing happens.
func (uc *MembershipUseCase) HandleJoin(ctx context.Context, userID types.UserID, teamID types.TeamID) error {
	logger := logging.From(ctx)

	member, err := uc.repo.Member().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrMemberNotFound, "cannot backfill for unknown member", goerr.V("user_id", userID))
		}
		return goerr.Wrap(err, "failed to get member", goerr.V("user_id", userID))
	}

	latest, ok, err := uc.repo.Attendance().LatestDate(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to determine latest ledger date")
	}
	if !ok {
		logger.Info("ledger is empty, skipping backfill", "user_id", userID, "team_id", teamID)
		return nil
	}

	today := types.DateOf(uc.now().UTC())
	created := 0
	for _, date := range types.DatesBetween(today, latest) {
		exists, err := uc.repo.Attendance().Exists(ctx, userID, teamID, date)
		if err != nil {
			return goerr.Wrap(err, "failed to check attendance row existence",
				goerr.V("user_id", userID), goerr.V("team_id", teamID), goerr.V("date", date))
		}
		if exists {
			continue
		}

		row := &model.AttendanceRow{
			UserID:   userID,
			TeamID:   teamID,
			Date:     date,
			IsActive: member.CheckInOptIn,
		}
		if err := uc.repo.Attendance().Create(ctx, row); err != nil {
			if errors.Is(err, interfaces.ErrAlreadyExists) {
				continue
			}
			return goerr.Wrap(err, "failed to backfill attendance row", goerr.V("key", row.Key()))
		}
		created++
	}

	logger.Info("membership backfill finished",
		"user_id", userID,
		"team_id", teamID,
		"through", latest,
		"rows_created", created,
	)

	return nil
}

// HandleLeave removes forward-looking attendance rows for a member who
// left a team: rows strictly in the future, and today's row only while
// no check-in happened yet. Past rows, and today's row once a check-in
// exists, are preserved.
func (uc *MembershipUseCase) HandleLeave(ctx context.Context, userID types.UserID, teamID types.TeamID) error {
	logger := logging.From(ctx)

	today := types.DateOf(uc.now().UTC())
	rows, err := uc.repo.Attendance().ListByUserTeamFrom(ctx, userID, teamID, today)
	if err != nil {
		return goerr.Wrap(err, "failed to list attendance rows",
			goerr.V("user_id", userID), goerr.V("team_id", teamID))
	}

	deleted := 0
	for _, row := range rows {
		keep := row.Date == today && row.HasCheckedIn
		if keep {
			continue
		}
		if err := uc.repo.Attendance().Delete(ctx, row.UserID, row.TeamID, row.Date); err != nil {
			return goerr.Wrap(err, "failed to delete attendance row", goerr.V("key", row.Key()))
		}
		deleted++
	}

	logger.Info("membership cleanup finished",
		"user_id", userID,
		"team_id", teamID,
		"rows_deleted", deleted,
	)

	return nil
}
