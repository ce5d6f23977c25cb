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

// maxInFilter is Firestore's limit on values in a single "in" filter
const maxInFilter = 30

type attendanceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAttendanceRepository(client *firestore.Client) *attendanceRepository {
	return &attendanceRepository{client: client}
}

func (r *attendanceRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_attendance"
	}
	return "attendance"
}

func (r *attendanceRepository) docRef(userID types.UserID, teamID types.TeamID, date types.Date) *firestore.DocumentRef {
	return r.client.Collection(r.collection()).Doc(model.AttendanceKey(userID, teamID, date))
}

func (r *attendanceRepository) Create(ctx context.Context, row *model.AttendanceRow) error {
	now := time.Now().UTC()
	created := *row
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err := r.docRef(row.UserID, row.TeamID, row.Date).Create(ctx, &created)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(interfaces.ErrAlreadyExists, "attendance row already exists", goerr.V("key", row.Key()))
		}
		return goerr.Wrap(err, "failed to create attendance row", goerr.V("key", row.Key()))
	}
	return nil
}

func (r *attendanceRepository) Get(ctx context.Context, userID types.UserID, teamID types.TeamID, date types.Date) (*model.AttendanceRow, error) {
	snap, err := r.docRef(userID, teamID, date).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "attendance row not found",
				goerr.V("user_id", userID), goerr.V("team_id", teamID), goerr.V("date", date))
		}
		return nil, goerr.Wrap(err, "failed to get attendance row",
			goerr.V("user_id", userID), goerr.V("team_id", teamID), goerr.V("date", date))
	}

	var row model.AttendanceRow
	if err := snap.DataTo(&row); err != nil {
		return nil, goerr.Wrap(err, "failed to decode attendance row")
	}
	return &row, nil
}

func (r *attendanceRepository) Exists(ctx context.Context, userID types.UserID, teamID types.TeamID, date types.Date) (bool, error) {
	_, err := r.docRef(userID, teamID, date).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to check attendance row existence",
			goerr.V("user_id", userID), goerr.V("team_id", teamID), goerr.V("date", date))
	}
	return true, nil
}

func (r *attendanceRepository) Update(ctx context.Context, row *model.AttendanceRow) error {
	ref := r.docRef(row.UserID, row.TeamID, row.Date)
	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "attendance row not found", goerr.V("key", row.Key()))
		}
		return goerr.Wrap(err, "failed to get attendance row for update", goerr.V("key", row.Key()))
	}

	var existing model.AttendanceRow
	if err := snap.DataTo(&existing); err != nil {
		return goerr.Wrap(err, "failed to decode attendance row")
	}

	updated := *row
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := ref.Set(ctx, &updated); err != nil {
		return goerr.Wrap(err, "failed to update attendance row", goerr.V("key", row.Key()))
	}
	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, userID types.UserID, teamID types.TeamID, date types.Date) error {
	if _, err := r.docRef(userID, teamID, date).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete attendance row",
			goerr.V("user_id", userID), goerr.V("team_id", teamID), goerr.V("date", date))
	}
	return nil
}

func (r *attendanceRepository) boundaryDate(ctx context.Context, dir firestore.Direction) (types.Date, bool, error) {
	iter := r.client.Collection(r.collection()).OrderBy("date", dir).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return "", false, nil
	}
	if err != nil {
		return "", false, goerr.Wrap(err, "failed to query ledger boundary date")
	}

	var row model.AttendanceRow
	if err := snap.DataTo(&row); err != nil {
		return "", false, goerr.Wrap(err, "failed to decode attendance row")
	}
	return row.Date, true, nil
}

func (r *attendanceRepository) LatestDate(ctx context.Context) (types.Date, bool, error) {
	return r.boundaryDate(ctx, firestore.Desc)
}

func (r *attendanceRepository) FirstDate(ctx context.Context) (types.Date, bool, error) {
	return r.boundaryDate(ctx, firestore.Asc)
}

func (r *attendanceRepository) ListByDateRange(ctx context.Context, start, end types.Date, teamIDs []types.TeamID) ([]*model.AttendanceRow, error) {
	query := r.client.Collection(r.collection()).
		Where("date", ">=", start.String()).
		Where("date", "<=", end.String())

	// Small team sets filter server side; larger ones fall back to a
	// client-side filter to stay within the "in" operator limit.
	clientFilter := map[types.TeamID]bool{}
	if n := len(teamIDs); n > 0 && n <= maxInFilter {
		ids := make([]string, 0, n)
		for _, id := range teamIDs {
			ids = append(ids, id.String())
		}
		query = query.Where("team_id", "in", ids)
	} else if n > maxInFilter {
		for _, id := range teamIDs {
			clientFilter[id] = true
		}
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var rows []*model.AttendanceRow
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate attendance rows",
				goerr.V("start", start), goerr.V("end", end))
		}

		var row model.AttendanceRow
		if err := snap.DataTo(&row); err != nil {
			return nil, goerr.Wrap(err, "failed to decode attendance row")
		}
		if len(clientFilter) > 0 && !clientFilter[row.TeamID] {
			continue
		}
		rows = append(rows, &row)
	}
	return rows, nil
}

func (r *attendanceRepository) ListByUserTeamFrom(ctx context.Context, userID types.UserID, teamID types.TeamID, from types.Date) ([]*model.AttendanceRow, error) {
	iter := r.client.Collection(r.collection()).
		Where("user_id", "==", userID.String()).
		Where("team_id", "==", teamID.String()).
		Where("date", ">=", from.String()).
		Documents(ctx)
	defer iter.Stop()

	var rows []*model.AttendanceRow
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate attendance rows",
				goerr.V("user_id", userID), goerr.V("team_id", teamID), goerr.V("from", from))
		}

		var row model.AttendanceRow
		if err := snap.DataTo(&row); err != nil {
			return nil, goerr.Wrap(err, "failed to decode attendance row")
		}
		rows = append(rows, &row)
	}
	return rows, nil
}
