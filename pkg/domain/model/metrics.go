package model

import (
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// MetricsQuery describes a metrics aggregation request. RequestingUserID
// determines the visible scope; TeamID and UserIDs narrow it further.
type MetricsQuery struct {
	StartDate        types.Date     `json:"start_date"`
	EndDate          types.Date     `json:"end_date"`
	TeamID           types.TeamID   `json:"team_id,omitempty"`
	UserIDs          []types.UserID `json:"user_ids,omitempty"`
	RequestingUserID types.UserID   `json:"requesting_user_id"`
}

// Validate checks if the metrics query is valid
func (q *MetricsQuery) Validate() error {
	if err := q.StartDate.Validate(); err != nil {
		return goerr.Wrap(err, "invalid start date")
	}
	if err := q.EndDate.Validate(); err != nil {
		return goerr.Wrap(err, "invalid end date")
	}
	if q.StartDate.After(q.EndDate) {
		return goerr.New("start date is after end date",
			goerr.V("start", q.StartDate), goerr.V("end", q.EndDate))
	}
	if err := q.RequestingUserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid requesting user ID")
	}
	if q.TeamID != "" {
		if err := q.TeamID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid team ID")
		}
	}
	for _, id := range q.UserIDs {
		if err := id.Validate(); err != nil {
			return goerr.Wrap(err, "invalid user ID in filter")
		}
	}
	return nil
}

// RatePoint is one date bucket of a percentage series. Percentage is
// rounded to the nearest integer; dates without any underlying rows are
// present with a zero value.
type RatePoint struct {
	Date       types.Date `json:"date"`
	Percentage int        `json:"percentage"`
}

// SmartScorePoint is one (user, date) bucket of the SMART goal score
// series. Score is the mean of the ledger scores for that user and date,
// rounded to two decimal places.
type SmartScorePoint struct {
	Date   types.Date   `json:"date"`
	UserID types.UserID `json:"user_id"`
	Score  float64      `json:"score"`
}

// MetricsReport bundles the three series returned by the aggregator
type MetricsReport struct {
	Participation []RatePoint       `json:"participation"`
	Blocked       []RatePoint       `json:"blocked"`
	SmartScores   []SmartScorePoint `json:"smart_scores"`
}
