package usecase

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/interfaces"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// MetricsUseCase aggregates the attendance ledger into per-day series.
// It is read-only; nothing here mutates persistent state.
type MetricsUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

// MetricsOption is a functional option for MetricsUseCase configuration
type MetricsOption func(*MetricsUseCase)

// WithMetricsClock overrides the time source, mainly for tests
func WithMetricsClock(now func() time.Time) MetricsOption {
	return func(uc *MetricsUseCase) {
		uc.now = now
	}
}

// NewMetricsUseCase creates a new MetricsUseCase instance
func NewMetricsUseCase(repo interfaces.Repository, opts ...MetricsOption) *MetricsUseCase {
	uc := &MetricsUseCase{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Report aggregates participation rate, blocked rate and SMART goal
// scores over the query range. The range is clipped to [first ledger
// date, today]; the series are dense, with a zero point for every date in
// the clipped range even when no rows exist. Rows that fail validation
// are skipped and logged, never fatal.
func (uc *MetricsUseCase) Report(ctx context.Context, query *model.MetricsQuery) (*model.MetricsReport, error) {
	logger := logging.From(ctx)

	if err := query.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid metrics query")
	}

	requester, err := uc.repo.Member().Get(ctx, query.RequestingUserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrMemberNotFound, "unknown requesting user",
				goerr.V("user_id", query.RequestingUserID))
		}
		return nil, goerr.Wrap(err, "failed to get requesting member")
	}

	scope := requester.VisibleTeams()
	if query.TeamID != "" {
		if scope != nil && !containsTeam(scope, query.TeamID) {
			// Out-of-scope team filter yields an empty but well-formed
			// report rather than an authorization error, so callers cannot
			// probe for team existence.
			logger.Info("team filter outside visible scope",
				"user_id", query.RequestingUserID, "team_id", query.TeamID)
			scope = []types.TeamID{}
		} else {
			scope = []types.TeamID{query.TeamID}
		}
	}

	start, end := query.StartDate, query.EndDate

	today := types.DateOf(uc.now().UTC())
	if end.After(today) {
		end = today
	}
	if first, ok, err := uc.repo.Attendance().FirstDate(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to determine first ledger date")
	} else if ok && start.Before(first) {
		start = first
	}

	dates := types.DatesBetween(start, end)
	if len(dates) == 0 {
		return emptyReport(nil), nil
	}

	// An empty non-nil scope means nothing is visible; the repository
	// treats an empty team set as "no filter", so short-circuit here.
	if scope != nil && len(scope) == 0 {
		return emptyReport(dates), nil
	}

	var rows []*model.AttendanceRow
	var checkIns []*model.Submission
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		if rows, err = uc.repo.Attendance().ListByDateRange(egCtx, start, end, scope); err != nil {
			return goerr.Wrap(err, "failed to list attendance rows")
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if checkIns, err = uc.repo.Submission().ListByDateRange(egCtx, types.SubmissionKindCheckIn, start, end); err != nil {
			return goerr.Wrap(err, "failed to list check-in submissions")
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	userFilter := make(map[types.UserID]bool, len(query.UserIDs))
	for _, id := range query.UserIDs {
		userFilter[id] = true
	}

	// A confirmed check-in submission counts even before the ledger flip
	// lands, covering the window between the two writes.
	submitted := make(map[string]bool, len(checkIns))
	for _, s := range checkIns {
		submitted[s.UserID.String()+"_"+s.Date.String()] = true
	}

	type dayAgg struct {
		total   int
		checked int
		blocked int
	}
	days := make(map[types.Date]*dayAgg, len(dates))
	for _, d := range dates {
		days[d] = &dayAgg{}
	}

	type scoreKey struct {
		date   types.Date
		userID types.UserID
	}
	scoreSums := make(map[scoreKey]float64)
	scoreCounts := make(map[scoreKey]int)

	skipped := 0
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			skipped++
			logger.Warn("skipping malformed attendance row", "key", row.Key(), "error", err.Error())
			continue
		}
		if len(userFilter) > 0 && !userFilter[row.UserID] {
			continue
		}
		agg, ok := days[row.Date]
		if !ok {
			continue
		}

		// Denominators count every row for the date, inactive ones included
		agg.total++
		if row.HasCheckedIn || submitted[row.UserID.String()+"_"+row.Date.String()] {
			agg.checked++
		}
		if row.IsBlocked {
			agg.blocked++
		}

		k := scoreKey{row.Date, row.UserID}
		scoreSums[k] += row.SmartGoalScore
		scoreCounts[k]++
	}
	if skipped > 0 {
		logger.Warn("metrics aggregation skipped malformed rows", "count", skipped)
	}

	report := &model.MetricsReport{
		Participation: make([]model.RatePoint, 0, len(dates)),
		Blocked:       make([]model.RatePoint, 0, len(dates)),
		SmartScores:   make([]model.SmartScorePoint, 0, len(scoreSums)),
	}
	for _, d := range dates {
		agg := days[d]
		report.Participation = append(report.Participation, model.RatePoint{
			Date:       d,
			Percentage: percentage(agg.checked, agg.total),
		})
		report.Blocked = append(report.Blocked, model.RatePoint{
			Date:       d,
			Percentage: percentage(agg.blocked, agg.total),
		})
	}

	for k, sum := range scoreSums {
		mean := sum / float64(scoreCounts[k])
		report.SmartScores = append(report.SmartScores, model.SmartScorePoint{
			Date:   k.date,
			UserID: k.userID,
			Score:  math.Round(mean*100) / 100,
		})
	}
	sort.Slice(report.SmartScores, func(i, j int) bool {
		a, b := report.SmartScores[i], report.SmartScores[j]
		if a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		return a.UserID < b.UserID
	})

	return report, nil
}

// emptyReport builds a well-formed report with a zero point per date
func emptyReport(dates []types.Date) *model.MetricsReport {
	report := &model.MetricsReport{
		Participation: make([]model.RatePoint, 0, len(dates)),
		Blocked:       make([]model.RatePoint, 0, len(dates)),
		SmartScores:   []model.SmartScorePoint{},
	}
	for _, d := range dates {
		report.Participation = append(report.Participation, model.RatePoint{Date: d})
		report.Blocked = append(report.Blocked, model.RatePoint{Date: d})
	}
	return report
}

// percentage rounds part/total to the nearest whole percent, zero when
// total is zero.
func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func containsTeam(teams []types.TeamID, id types.TeamID) bool {
	for _, t := range teams {
		if t == id {
			return true
		}
	}
	return false
}
