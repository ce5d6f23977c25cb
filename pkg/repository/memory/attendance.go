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

type attendanceRepository struct {
	mu   sync.RWMutex
	rows map[string]*model.AttendanceRow
}

func newAttendanceRepository() *attendanceRepository {
	return &attendanceRepository{
		rows: make(map[string]*model.AttendanceRow),
	}
}

func copyRow(r *model.AttendanceRow) *model.AttendanceRow {
	c := *r
	return &c
}

func (r *attendanceRepository) Create(ctx context.Context, row *model.AttendanceRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := row.Key()
	if _, exists := r.rows[key]; exists {
		return goerr.Wrap(interfaces.ErrAlreadyExists, "attendance row already exists", goerr.V("key", key))
	}

	now := time.Now().UTC()
	created := copyRow(row)
	created.CreatedAt = now
	created.UpdatedAt = now
	r.rows[key] = created
	return nil
}

func (r *attendanceRepository) Get(ctx context.Context, userID types.UserID, teamID types.TeamID, date types.Date) (*model.AttendanceRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, exists := r.rows[model.AttendanceKey(userID, teamID, date)]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "attendance row not found",
			goerr.V("user_id", userID), goerr.V("team_id", teamID), goerr.V("date", date))
	}
	return copyRow(row), nil
}

func (r *attendanceRepository) Exists(ctx context.Context, userID types.UserID, teamID types.TeamID, date types.Date) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.rows[model.AttendanceKey(userID, teamID, date)]
	return exists, nil
}

func (r *attendanceRepository) Update(ctx context.Context, row *model.AttendanceRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := row.Key()
	existing, exists := r.rows[key]
	if !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "attendance row not found", goerr.V("key", key))
	}

	updated := copyRow(row)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.rows[key] = updated
	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, userID types.UserID, teamID types.TeamID, date types.Date) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, model.AttendanceKey(userID, teamID, date))
	return nil
}

func (r *attendanceRepository) LatestDate(ctx context.Context) (types.Date, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest types.Date
	for _, row := range r.rows {
		if row.Date.After(latest) {
			latest = row.Date
		}
	}
	if latest == "" {
		return "", false, nil
	}
	return latest, true, nil
}

func (r *attendanceRepository) FirstDate(ctx context.Context) (types.Date, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var first types.Date
	for _, row := range r.rows {
		if first == "" || row.Date.Before(first) {
			first = row.Date
		}
	}
	if first == "" {
		return "", false, nil
	}
	return first, true, nil
}

func (r *attendanceRepository) ListByDateRange(ctx context.Context, start, end types.Date, teamIDs []types.TeamID) ([]*model.AttendanceRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teamSet := make(map[types.TeamID]bool, len(teamIDs))
	for _, id := range teamIDs {
		teamSet[id] = true
	}

	var rows []*model.AttendanceRow
	for _, row := range r.rows {
		if row.Date.Before(start) || row.Date.After(end) {
			continue
		}
		if len(teamSet) > 0 && !teamSet[row.TeamID] {
			continue
		}
		rows = append(rows, copyRow(row))
	}
	return rows, nil
}

func (r *attendanceRepository) ListByUserTeamFrom(ctx context.Context, userID types.UserID, teamID types.TeamID, from types.Date) ([]*model.AttendanceRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rows []*model.AttendanceRow
	for _, row := range r.rows {
		if row.UserID != userID || row.TeamID != teamID {
			continue
		}
		if row.Date.Before(from) {
			continue
		}
		rows = append(rows, copyRow(row))
	}
	return rows, nil
}
