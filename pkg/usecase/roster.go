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

// DefaultRosterWindow is how many future days the generator pre-populates
// per run.
const DefaultRosterWindow = 2

// RosterUseCase materializes future attendance rows for every opted-in
// member. It runs on an external schedule; overlapping concurrent runs
// are not coordinated and remain the operator's responsibility.
type RosterUseCase struct {
	repo   interfaces.Repository
	window int
	now    func() time.Time
}

// RosterOption is a functional option for RosterUseCase configuration
type RosterOption func(*RosterUseCase)

// WithRosterWindow sets the forward window in days
func WithRosterWindow(days int) RosterOption {
	return func(uc *RosterUseCase) {
		if days > 0 {
			uc.window = days
		}
	}
}

// WithRosterClock overrides the time source, mainly for tests
func WithRosterClock(now func() time.Time) RosterOption {
	return func(uc *RosterUseCase) {
		uc.now = now
	}
}

// NewRosterUseCase creates a new RosterUseCase instance
func NewRosterUseCase(repo interfaces.Repository, opts ...RosterOption) *RosterUseCase {
	uc := &RosterUseCase{
		repo:   repo,
		window: DefaultRosterWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Generate inserts one attendance row per active member and per date in
// the forward window. The anchor date is the day after the latest ledger
// date, or today (UTC) when the ledger is empty. Each insert is guarded
// by a per-tuple existence check, so re-running after a partial failure
// skips rows that already made it in.
func (uc *RosterUseCase) Generate(ctx context.Context) (int, error) {
	logger := logging.From(ctx)

	anchor := types.DateOf(uc.now().UTC())
	if latest, ok, err := uc.repo.Attendance().LatestDate(ctx); err != nil {
		return 0, goerr.Wrap(err, "failed to determine latest ledger date")
	} else if ok {
		anchor = latest.AddDays(1)
	}

	members, err := uc.repo.Member().List(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list members")
	}

	created := 0
	for _, date := range types.DatesBetween(anchor, anchor.AddDays(uc.window-1)) {
		for _, m := range members {
			if !m.Active {
				continue
			}

			exists, err := uc.repo.Attendance().Exists(ctx, m.ID, m.TeamID, date)
			if err != nil {
				return created, goerr.Wrap(err, "failed to check attendance row existence",
					goerr.V("user_id", m.ID), goerr.V("team_id", m.TeamID), goerr.V("date", date))
			}
			if exists {
				continue
			}

			row := &model.AttendanceRow{
				UserID:   m.ID,
				TeamID:   m.TeamID,
				Date:     date,
				IsActive: m.CheckInOptIn,
			}
			if err := uc.repo.Attendance().Create(ctx, row); err != nil {
				// A row created between the existence check and the insert
				// means another run got there first; that is fine.
				if errors.Is(err, interfaces.ErrAlreadyExists) {
					continue
				}
				return created, goerr.Wrap(err, "failed to create attendance row", goerr.V("key", row.Key()))
			}
			created++
		}
	}

	logger.Info("roster generation finished",
		"anchor", anchor,
		"window", uc.window,
		"members", len(members),
		"rows_created", created,
	)

	return created, nil
}
