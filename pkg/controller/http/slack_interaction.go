package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	libslack "github.com/slack-go/slack"

	slackmodel "github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model/slack"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/async"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/errutil"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/logging"
)

// handleSlackInteraction decodes a block-actions interaction payload and
// acknowledges it immediately. Each action in the payload dispatches as
// its own event.
func (s *Server) handleSlackInteraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload := r.FormValue("payload")
	if payload == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("missing interaction payload"), http.StatusBadRequest)
		return
	}

	var callback libslack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse interaction payload"), http.StatusBadRequest)
		return
	}

	events := slackmodel.NewActionsTriggered(&callback)
	if len(events) == 0 {
		logging.From(ctx).Warn("interaction payload carried no block actions", "type", callback.Type)
		w.WriteHeader(http.StatusOK)
		return
	}

	w.WriteHeader(http.StatusOK)

	async.Dispatch(ctx, func(ctx context.Context) error {
		for _, event := range events {
			if err := s.uc.CheckIn.HandleEvent(ctx, event); err != nil {
				return goerr.Wrap(err, "failed to handle interaction",
					goerr.V("action_id", event.ActionID), goerr.V("user_id", event.UserID))
			}
		}
		return nil
	})
}
