package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/interfaces"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/repository/firestore"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/repository/memory"
)

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

func mustDate(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	gt.NoError(t, err).Required()
	return d
}

func runAttendanceRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create then Get round-trips a row", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		row := &model.AttendanceRow{
			UserID:   "U100",
			TeamID:   "T1",
			Date:     mustDate(t, "2025-01-10"),
			IsActive: true,
		}
		gt.NoError(t, repo.Attendance().Create(ctx, row)).Required()

		got, err := repo.Attendance().Get(ctx, "U100", "T1", mustDate(t, "2025-01-10"))
		gt.NoError(t, err).Required()
		gt.Value(t, got.UserID).Equal(types.UserID("U100"))
		gt.Value(t, got.TeamID).Equal(types.TeamID("T1"))
		gt.Bool(t, got.IsActive).True()
		gt.Bool(t, got.HasCheckedIn).False()
		gt.Bool(t, got.CreatedAt.IsZero()).False()
	})

	t.Run("Create rejects a duplicate key", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		row := &model.AttendanceRow{UserID: "U100", TeamID: "T1", Date: mustDate(t, "2025-01-10"), IsActive: true}
		gt.NoError(t, repo.Attendance().Create(ctx, row)).Required()

		err := repo.Attendance().Create(ctx, row)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrAlreadyExists)).True()
	})

	t.Run("Get returns ErrNotFound for an absent key", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Attendance().Get(ctx, "U999", "T1", mustDate(t, "2025-01-10"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Exists reflects presence", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		ok, err := repo.Attendance().Exists(ctx, "U100", "T1", mustDate(t, "2025-01-10"))
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()

		gt.NoError(t, repo.Attendance().Create(ctx, &model.AttendanceRow{
			UserID: "U100", TeamID: "T1", Date: mustDate(t, "2025-01-10"), IsActive: true,
		})).Required()

		ok, err = repo.Attendance().Exists(ctx, "U100", "T1", mustDate(t, "2025-01-10"))
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()
	})

	t.Run("Update overwrites flags", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		row := &model.AttendanceRow{UserID: "U100", TeamID: "T1", Date: mustDate(t, "2025-01-10"), IsActive: true}
		gt.NoError(t, repo.Attendance().Create(ctx, row)).Required()

		row.HasCheckedIn = true
		row.IsBlocked = true
		row.SmartGoalScore = 1.0
		gt.NoError(t, repo.Attendance().Update(ctx, row)).Required()

		got, err := repo.Attendance().Get(ctx, "U100", "T1", mustDate(t, "2025-01-10"))
		gt.NoError(t, err).Required()
		gt.Bool(t, got.HasCheckedIn).True()
		gt.Bool(t, got.IsBlocked).True()
		gt.Value(t, got.SmartGoalScore).Equal(1.0)
	})

	t.Run("Delete removes a row and tolerates absence", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Attendance().Create(ctx, &model.AttendanceRow{
			UserID: "U100", TeamID: "T1", Date: mustDate(t, "2025-01-10"), IsActive: true,
		})).Required()

		gt.NoError(t, repo.Attendance().Delete(ctx, "U100", "T1", mustDate(t, "2025-01-10")))

		ok, err := repo.Attendance().Exists(ctx, "U100", "T1", mustDate(t, "2025-01-10"))
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()

		// Deleting again is not an error
		gt.NoError(t, repo.Attendance().Delete(ctx, "U100", "T1", mustDate(t, "2025-01-10")))
	})

	t.Run("LatestDate and FirstDate track the ledger boundaries", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, ok, err := repo.Attendance().LatestDate(ctx)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()

		for _, ds := range []string{"2025-01-12", "2025-01-10", "2025-01-11"} {
			gt.NoError(t, repo.Attendance().Create(ctx, &model.AttendanceRow{
				UserID: "U100", TeamID: "T1", Date: mustDate(t, ds), IsActive: true,
			})).Required()
		}

		latest, ok, err := repo.Attendance().LatestDate(ctx)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()
		gt.Value(t, latest).Equal(mustDate(t, "2025-01-12"))

		first, ok, err := repo.Attendance().FirstDate(ctx)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()
		gt.Value(t, first).Equal(mustDate(t, "2025-01-10"))
	})

	t.Run("ListByDateRange filters by range and teams", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, tc := range []struct {
			user types.UserID
			team types.TeamID
			date string
		}{
			{"U100", "T1", "2025-01-09"},
			{"U100", "T1", "2025-01-10"},
			{"U200", "T2", "2025-01-10"},
			{"U200", "T2", "2025-01-13"},
		} {
			gt.NoError(t, repo.Attendance().Create(ctx, &model.AttendanceRow{
				UserID: tc.user, TeamID: tc.team, Date: mustDate(t, tc.date), IsActive: true,
			})).Required()
		}

		rows, err := repo.Attendance().ListByDateRange(ctx, mustDate(t, "2025-01-10"), mustDate(t, "2025-01-12"), nil)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(2)

		rows, err = repo.Attendance().ListByDateRange(ctx, mustDate(t, "2025-01-09"), mustDate(t, "2025-01-13"),
			[]types.TeamID{"T2"})
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(2)
		for _, row := range rows {
			gt.Value(t, row.TeamID).Equal(types.TeamID("T2"))
		}
	})

	t.Run("ListByUserTeamFrom returns rows from the given date on", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, ds := range []string{"2025-01-09", "2025-01-10", "2025-01-11"} {
			gt.NoError(t, repo.Attendance().Create(ctx, &model.AttendanceRow{
				UserID: "U100", TeamID: "T1", Date: mustDate(t, ds), IsActive: true,
			})).Required()
		}
		gt.NoError(t, repo.Attendance().Create(ctx, &model.AttendanceRow{
			UserID: "U200", TeamID: "T1", Date: mustDate(t, "2025-01-11"), IsActive: true,
		})).Required()

		rows, err := repo.Attendance().ListByUserTeamFrom(ctx, "U100", "T1", mustDate(t, "2025-01-10"))
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(2)
		for _, row := range rows {
			gt.Value(t, row.UserID).Equal(types.UserID("U100"))
			gt.Bool(t, row.Date.Before(mustDate(t, "2025-01-10"))).False()
		}
	})
}

func TestMemoryAttendanceRepository(t *testing.T) {
	runAttendanceRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreAttendanceRepository(t *testing.T) {
	runAttendanceRepositoryTest(t, newFirestoreRepository)
}
