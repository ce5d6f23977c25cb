package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/repository/memory"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/usecase"
)

func TestMembershipJoin(t *testing.T) {
	ctx := context.Background()

	t.Run("backfills from today through the ledger horizon", func(t *testing.T) {
		repo := memory.New()
		putMember(t, repo, &model.Member{ID: "U100", TeamID: "T1", CheckInOptIn: true, Active: true})
		putMember(t, repo, &model.Member{ID: "U200", TeamID: "T1", CheckInOptIn: true, Active: true})

		// Existing roster coverage through 2025-01-12
		for _, ds := range []string{"2025-01-10", "2025-01-11", "2025-01-12"} {
			gt.NoError(t, repo.Attendance().Create(ctx, &model.AttendanceRow{
				UserID: "U100", TeamID: "T1", Date: mustDate(t, ds), IsActive: true,
			})).Required()
		}

		uc := usecase.NewMembershipUseCase(repo,
			usecase.WithMembershipClock(fixedClock(t, "2025-01-10T12:00:00Z")))

		gt.NoError(t, uc.HandleJoin(ctx, "U200", "T1")).Required()

		for _, ds := range []string{"2025-01-10", "2025-01-11", "2025-01-12"} {
			ok, err := repo.Attendance().Exists(ctx, "U200", "T1", mustDate(t, ds))
			gt.NoError(t, err).Required()
			gt.Bool(t, ok).True()
		}
		ok, err := repo.Attendance().Exists(ctx, "U200", "T1", mustDate(t, "2025-01-09"))
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()
	})

	t.Run("empty ledger means nothing to backfill", func(t *testing.T) {
		repo := memory.New()
		putMember(t, repo, &model.Member{ID: "U100", TeamID: "T1", CheckInOptIn: true, Active: true})

		uc := usecase.NewMembershipUseCase(repo,
			usecase.WithMembershipClock(fixedClock(t, "2025-01-10T12:00:00Z")))

		gt.NoError(t, uc.HandleJoin(ctx, "U100", "T1")).Required()

		_, ok, err := repo.Attendance().LatestDate(ctx)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()
	})

	t.Run("unknown member is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewMembershipUseCase(repo)

		err := uc.HandleJoin(ctx, "U999", "T1")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrMemberNotFound)).True()
	})
}

func TestMembershipLeave(t *testing.T) {
	ctx := context.Background()

	seedRows := func(t *testing.T, repo *memory.Memory, todayCheckedIn bool) {
		t.Helper()
		past := &model.AttendanceRow{
			UserID: "U100", TeamID: "T1", Date: mustDate(t, "2025-01-09"),
			IsActive: true, HasCheckedIn: true,
		}
		today := &model.AttendanceRow{
			UserID: "U100", TeamID: "T1", Date: mustDate(t, "2025-01-10"),
			IsActive: true, HasCheckedIn: todayCheckedIn,
		}
		future := &model.AttendanceRow{
			UserID: "U100", TeamID: "T1", Date: mustDate(t, "2025-01-11"),
			IsActive: true,
		}
		for _, row := range []*model.AttendanceRow{past, today, future} {
			gt.NoError(t, repo.Attendance().Create(ctx, row)).Required()
		}
	}

	t.Run("removes today's unchecked row and the future rows", func(t *testing.T) {
		repo := memory.New()
		seedRows(t, repo, false)

		uc := usecase.NewMembershipUseCase(repo,
			usecase.WithMembershipClock(fixedClock(t, "2025-01-10T12:00:00Z")))

		gt.NoError(t, uc.HandleLeave(ctx, "U100", "T1")).Required()

		ok, err := repo.Attendance().Exists(ctx, "U100", "T1", mustDate(t, "2025-01-09"))
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()

		for _, ds := range []string{"2025-01-10", "2025-01-11"} {
			ok, err := repo.Attendance().Exists(ctx, "U100", "T1", mustDate(t, ds))
			gt.NoError(t, err).Required()
			gt.Bool(t, ok).False()
		}
	})

	t.Run("preserves today's row once a check-in happened", func(t *testing.T) {
		repo := memory.New()
		seedRows(t, repo, true)

		uc := usecase.NewMembershipUseCase(repo,
			usecase.WithMembershipClock(fixedClock(t, "2025-01-10T12:00:00Z")))

		gt.NoError(t, uc.HandleLeave(ctx, "U100", "T1")).Required()

		ok, err := repo.Attendance().Exists(ctx, "U100", "T1", mustDate(t, "2025-01-10"))
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()

		ok, err = repo.Attendance().Exists(ctx, "U100", "T1", mustDate(t, "2025-01-11"))
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()
	})
}
