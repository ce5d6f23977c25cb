package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/interfaces"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/errutil"
)

// handleMemberList serves GET /api/members
func (s *Server) handleMemberList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	members, err := s.repo.Member().List(ctx)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to list members"), http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, members)
}

// handleMemberGet serves GET /api/members/{userID}
func (s *Server) handleMemberGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := types.UserID(chi.URLParam(r, "userID"))

	member, err := s.repo.Member().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "member not found"), http.StatusNotFound)
			return
		}
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to get member"), http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, member)
}

// handleMemberPut serves PUT /api/members/{userID}. It upserts the member
// record and reconciles the attendance ledger: a new member or a team
// change triggers a backfill on the new team, and a team change also
// cleans up forward-looking rows on the old one.
func (s *Server) handleMemberPut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := types.UserID(chi.URLParam(r, "userID"))

	var member model.Member
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode member"), http.StatusBadRequest)
		return
	}
	member.ID = userID
	member.Role = member.Role.Normalize()

	if err := member.Validate(); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid member"), http.StatusBadRequest)
		return
	}

	var previousTeam types.TeamID
	if prev, err := s.repo.Member().Get(ctx, userID); err == nil {
		previousTeam = prev.TeamID
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to get member"), http.StatusInternalServerError)
		return
	}

	if err := s.repo.Member().Put(ctx, &member); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to save member"), http.StatusInternalServerError)
		return
	}

	if previousTeam != member.TeamID {
		if previousTeam != "" {
			if err := s.uc.Membership.HandleLeave(ctx, userID, previousTeam); err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to clean up old team rows"), http.StatusInternalServerError)
				return
			}
		}
		if err := s.uc.Membership.HandleJoin(ctx, userID, member.TeamID); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to backfill new team rows"), http.StatusInternalServerError)
			return
		}
	}

	writeJSON(ctx, w, &member)
}

// handleMemberDelete serves DELETE /api/members/{userID}. Forward-looking
// attendance rows are removed before the member record itself.
func (s *Server) handleMemberDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := types.UserID(chi.URLParam(r, "userID"))

	member, err := s.repo.Member().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "member not found"), http.StatusNotFound)
			return
		}
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to get member"), http.StatusInternalServerError)
		return
	}

	if err := s.uc.Membership.HandleLeave(ctx, userID, member.TeamID); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to clean up attendance rows"), http.StatusInternalServerError)
		return
	}
	if err := s.repo.Member().Delete(ctx, userID); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to delete member"), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
