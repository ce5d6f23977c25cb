package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/repository/memory"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/usecase"
)

func TestRosterGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("empty ledger anchors on today", func(t *testing.T) {
		repo := memory.New()
		putMember(t, repo, &model.Member{ID: "U100", TeamID: "T1", CheckInOptIn: true, Active: true})
		putMember(t, repo, &model.Member{ID: "U200", TeamID: "T1", CheckInOptIn: true, Active: true})

		uc := usecase.NewRosterUseCase(repo,
			usecase.WithRosterWindow(2),
			usecase.WithRosterClock(fixedClock(t, "2025-01-10T07:00:00Z")))

		created, err := uc.Generate(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, created).Equal(4)

		for _, user := range []types.UserID{"U100", "U200"} {
			for _, date := range []string{"2025-01-10", "2025-01-11"} {
				ok, err := repo.Attendance().Exists(ctx, user, "T1", mustDate(t, date))
				gt.NoError(t, err).Required()
				gt.Bool(t, ok).True()
			}
		}
	})

	t.Run("non-empty ledger anchors after the latest date", func(t *testing.T) {
		repo := memory.New()
		putMember(t, repo, &model.Member{ID: "U100", TeamID: "T1", CheckInOptIn: true, Active: true})
		gt.NoError(t, repo.Attendance().Create(ctx, &model.AttendanceRow{
			UserID: "U100", TeamID: "T1", Date: mustDate(t, "2025-01-11"), IsActive: true,
		})).Required()

		uc := usecase.NewRosterUseCase(repo,
			usecase.WithRosterWindow(2),
			usecase.WithRosterClock(fixedClock(t, "2025-01-10T07:00:00Z")))

		created, err := uc.Generate(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, created).Equal(2)

		for _, date := range []string{"2025-01-12", "2025-01-13"} {
			ok, err := repo.Attendance().Exists(ctx, "U100", "T1", mustDate(t, date))
			gt.NoError(t, err).Required()
			gt.Bool(t, ok).True()
		}
	})

	t.Run("repeated runs never duplicate a row", func(t *testing.T) {
		repo := memory.New()
		putMember(t, repo, &model.Member{ID: "U100", TeamID: "T1", CheckInOptIn: true, Active: true})

		uc := usecase.NewRosterUseCase(repo,
			usecase.WithRosterWindow(2),
			usecase.WithRosterClock(fixedClock(t, "2025-01-10T07:00:00Z")))

		first, err := uc.Generate(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, first).Equal(2)

		// The second run anchors past the first one's rows; existing
		// dates are never touched again.
		second, err := uc.Generate(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, second).Equal(2)

		rows, err := repo.Attendance().ListByDateRange(ctx,
			mustDate(t, "2025-01-10"), mustDate(t, "2025-01-13"), nil)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(4)

		seen := map[types.Date]bool{}
		for _, row := range rows {
			gt.Bool(t, seen[row.Date]).False()
			seen[row.Date] = true
		}
	})

	t.Run("a resumed run skips rows that already made it in", func(t *testing.T) {
		repo := memory.New()
		putMember(t, repo, &model.Member{ID: "U100", TeamID: "T1", CheckInOptIn: true, Active: true})
		putMember(t, repo, &model.Member{ID: "U200", TeamID: "T1", CheckInOptIn: true, Active: true})

		// As if a previous run died after inserting only the last row of
		// its window.
		gt.NoError(t, repo.Attendance().Create(ctx, &model.AttendanceRow{
			UserID: "U100", TeamID: "T1", Date: mustDate(t, "2025-01-09"), IsActive: true,
		})).Required()

		uc := usecase.NewRosterUseCase(repo,
			usecase.WithRosterWindow(2),
			usecase.WithRosterClock(fixedClock(t, "2025-01-08T07:00:00Z")))

		created, err := uc.Generate(ctx)
		gt.NoError(t, err).Required()

		// Anchor lands on 2025-01-10; the pre-existing 01-09 row stays a
		// single copy and both members are covered for the new window.
		gt.Value(t, created).Equal(4)
		rows, err := repo.Attendance().ListByDateRange(ctx,
			mustDate(t, "2025-01-09"), mustDate(t, "2025-01-09"), nil)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(1)
	})

	t.Run("inactive members are skipped, opted-out members get inactive rows", func(t *testing.T) {
		repo := memory.New()
		putMember(t, repo, &model.Member{ID: "U100", TeamID: "T1", CheckInOptIn: true, Active: true})
		putMember(t, repo, &model.Member{ID: "U200", TeamID: "T1", CheckInOptIn: false, Active: true})
		putMember(t, repo, &model.Member{ID: "U300", TeamID: "T1", CheckInOptIn: true, Active: false})

		uc := usecase.NewRosterUseCase(repo,
			usecase.WithRosterWindow(1),
			usecase.WithRosterClock(fixedClock(t, "2025-01-10T07:00:00Z")))

		created, err := uc.Generate(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, created).Equal(2)

		row, err := repo.Attendance().Get(ctx, "U200", "T1", mustDate(t, "2025-01-10"))
		gt.NoError(t, err).Required()
		gt.Bool(t, row.IsActive).False()

		ok, err := repo.Attendance().Exists(ctx, "U300", "T1", mustDate(t, "2025-01-10"))
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()
	})
}
