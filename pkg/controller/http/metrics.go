package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/usecase"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/errutil"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/safe"
)

// requestingUserHeader carries the identity of the caller as resolved by
// the operator's perimeter.
const requestingUserHeader = "X-Requesting-User"

// handleMetrics serves GET /api/metrics. Query parameters: start, end
// (required, YYYY-MM-DD), team (optional) and users (optional,
// comma-separated).
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	start, err := types.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid start parameter"), http.StatusBadRequest)
		return
	}
	end, err := types.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid end parameter"), http.StatusBadRequest)
		return
	}

	query := &model.MetricsQuery{
		StartDate:        start,
		EndDate:          end,
		TeamID:           types.TeamID(r.URL.Query().Get("team")),
		RequestingUserID: types.UserID(r.Header.Get(requestingUserHeader)),
	}
	if users := r.URL.Query().Get("users"); users != "" {
		for _, raw := range strings.Split(users, ",") {
			if raw = strings.TrimSpace(raw); raw != "" {
				query.UserIDs = append(query.UserIDs, types.UserID(raw))
			}
		}
	}

	if err := query.Validate(); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid metrics query"), http.StatusBadRequest)
		return
	}

	report, err := s.uc.Metrics.Report(ctx, query)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrMemberNotFound) {
			status = http.StatusForbidden
		}
		errutil.HandleHTTP(ctx, w, err, status)
		return
	}

	writeJSON(ctx, w, report)
}

// handleRosterRun serves POST /api/roster/run, triggering one generator
// pass.
func (s *Server) handleRosterRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	created, err := s.uc.Roster.Generate(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, map[string]int{"rows_created": created})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(ctx, w, data)
}
