package http

import (
	"context"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	libslack "github.com/slack-go/slack"

	slackmodel "github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model/slack"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/async"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/errutil"
)

// handleSlackCommand decodes a slash command payload and acknowledges it
// immediately; the workflow runs asynchronously to stay inside the
// platform's 3-second response window.
func (s *Server) handleSlackCommand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cmd, err := libslack.SlashCommandParse(r)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slash command"), http.StatusBadRequest)
		return
	}

	event := slackmodel.NewCommandInvoked(&cmd)
	if event == nil {
		errutil.HandleHTTP(ctx, w, goerr.New("empty slash command payload"), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)

	async.Dispatch(ctx, func(ctx context.Context) error {
		if err := s.uc.CheckIn.HandleEvent(ctx, event); err != nil {
			return goerr.Wrap(err, "failed to handle slash command",
				goerr.V("command", event.Command), goerr.V("user_id", event.UserID))
		}
		return nil
	})
}
