package model

import (
	"time"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// AttendanceRow is one ledger record per (user, team, date) representing
// expected and actual daily participation. Rows are created by the roster
// generator or the membership handler, and mutated only by a confirmed
// submission or by the membership handler's future-row cleanup.
type AttendanceRow struct {
	UserID         types.UserID `json:"user_id" firestore:"user_id"`
	TeamID         types.TeamID `json:"team_id" firestore:"team_id"`
	Date           types.Date   `json:"date" firestore:"date"`
	IsActive       bool         `json:"is_active" firestore:"is_active"`
	HasCheckedIn   bool         `json:"has_checked_in" firestore:"has_checked_in"`
	IsBlocked      bool         `json:"is_blocked" firestore:"is_blocked"`
	SmartGoalScore float64      `json:"smart_goal_score" firestore:"smart_goal_score"`
	CreatedAt      time.Time    `json:"created_at" firestore:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" firestore:"updated_at"`
}

// Validate checks if the attendance row is valid
func (r *AttendanceRow) Validate() error {
	if err := r.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user ID")
	}
	if err := r.TeamID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid team ID", goerr.V("user_id", r.UserID))
	}
	if err := r.Date.Validate(); err != nil {
		return goerr.Wrap(err, "invalid date", goerr.V("user_id", r.UserID), goerr.V("team_id", r.TeamID))
	}
	return nil
}

// Key returns the natural uniqueness key of the row
func (r *AttendanceRow) Key() string {
	return AttendanceKey(r.UserID, r.TeamID, r.Date)
}

// AttendanceKey builds the natural uniqueness key for a (user, team, date)
// tuple. The same encoding is used as the document ID in persistent
// backends, which is what makes repeated inserts collide instead of
// duplicating rows.
func AttendanceKey(userID types.UserID, teamID types.TeamID, date types.Date) string {
	return userID.String() + "_" + teamID.String() + "_" + date.String()
}
