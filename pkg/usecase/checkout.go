package usecase

import (
	"context"
	"errors"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/interfaces"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	slackmodel "github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model/slack"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/errutil"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/logging"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// StartCheckOut processes a /checkout command. A confirmed check-in for
// the same (user, channel, date) is a hard precondition; a confirmed
// check-out for the key blocks a second one.
func (uc *CheckInUseCase) StartCheckOut(ctx context.Context, cmd *slackmodel.CommandInvoked) error {
	logger := logging.From(ctx)

	if err := cmd.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid user in command payload")
	}
	if err := cmd.ChannelID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid channel in command payload")
	}

	member, err := uc.repo.Member().Get(ctx, cmd.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			uc.respond(ctx, cmd.ResponseURL, msgNotRegistered)
			return nil
		}
		return goerr.Wrap(err, "failed to get member", goerr.V("user_id", cmd.UserID))
	}
	if !member.CheckInOptIn {
		uc.respond(ctx, cmd.ResponseURL, msgNotOptedIn)
		return nil
	}

	date := uc.localDate(member)

	// Check-out only makes sense after a check-in on the same key
	if _, err := uc.repo.Submission().Get(ctx, types.SubmissionKindCheckIn, cmd.UserID, cmd.ChannelID, date); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			uc.respond(ctx, cmd.ResponseURL, msgCheckInRequired)
			return nil
		}
		return goerr.Wrap(err, "failed to verify check-in precondition")
	}

	if _, err := uc.repo.Submission().Get(ctx, types.SubmissionKindCheckOut, cmd.UserID, cmd.ChannelID, date); err == nil {
		logger.Info("duplicate check-out attempt rejected",
			"user_id", cmd.UserID, "channel_id", cmd.ChannelID, "date", date)
		uc.respond(ctx, cmd.ResponseURL, msgAlreadyCheckedOut)
		return nil
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(err, "failed to check for existing check-out")
	}

	updateText, blockerText := splitDraftText(cmd.Text)
	if updateText == "" {
		uc.respond(ctx, cmd.ResponseURL, msgCheckOutUsage)
		return nil
	}

	draft := &model.CheckOutDraft{
		UserID:      cmd.UserID,
		ChannelID:   cmd.ChannelID,
		Date:        date,
		UpdateText:  updateText,
		BlockerText: blockerText,
		Mood:        types.CheckOutMoodNeutral,
		GoalsMet:    false,
		CreatedAt:   uc.now().UTC(),
	}
	uc.drafts.PutCheckOut(draft)

	if err := uc.slackService.PostEphemeral(ctx, cmd.ChannelID, cmd.UserID,
		"Confirm your check-out", slackmodel.CheckOutPrompt(draft)...); err != nil {
		uc.drafts.DeleteCheckOut(cmd.UserID, cmd.ChannelID, date)
		return goerr.Wrap(err, "failed to post confirmation prompt")
	}

	return nil
}

// handleCheckOutSubmit is the check-out accept path: duplicate re-check,
// submission write, ledger blocker flip, broadcast and prompt retraction.
func (uc *CheckInUseCase) handleCheckOutSubmit(ctx context.Context, ev *slackmodel.ActionTriggered) error {
	logger := logging.From(ctx)

	channelID, date, _, err := slackmodel.ParseActionValue(ev.Value)
	if err != nil {
		return goerr.Wrap(err, "failed to parse check-out action value")
	}

	draft := uc.drafts.GetCheckOut(ev.UserID, channelID, date)
	if draft == nil {
		uc.respond(ctx, ev.ResponseURL, msgDraftExpired)
		return nil
	}

	member, err := uc.repo.Member().Get(ctx, ev.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			uc.drafts.DeleteCheckOut(ev.UserID, channelID, date)
			uc.respond(ctx, ev.ResponseURL, msgNotRegistered)
			return nil
		}
		return goerr.Wrap(err, "failed to get member", goerr.V("user_id", ev.UserID))
	}

	if _, err := uc.repo.Submission().Get(ctx, types.SubmissionKindCheckOut, ev.UserID, channelID, date); err == nil {
		uc.drafts.DeleteCheckOut(ev.UserID, channelID, date)
		uc.respond(ctx, ev.ResponseURL, msgAlreadyCheckedOut)
		return nil
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(err, "failed to re-check for existing check-out")
	}

	submission := &model.Submission{
		ID:           types.SubmissionID(uuid.Must(uuid.NewV7()).String()),
		Kind:         types.SubmissionKindCheckOut,
		UserID:       ev.UserID,
		ChannelID:    channelID,
		Date:         date,
		UpdateText:   draft.UpdateText,
		GoalsMet:     draft.GoalsMet,
		CheckOutMood: draft.Mood,
		BlockerText:  draft.BlockerText,
	}
	if err := uc.repo.Submission().Create(ctx, submission); err != nil {
		if errors.Is(err, interfaces.ErrAlreadyExists) {
			uc.drafts.DeleteCheckOut(ev.UserID, channelID, date)
			uc.respond(ctx, ev.ResponseURL, msgAlreadyCheckedOut)
			return nil
		}
		// Keep the draft so the member can retry the same prompt
		uc.respond(ctx, ev.ResponseURL, msgTransientError)
		return goerr.Wrap(err, "failed to persist check-out submission")
	}

	uc.flipLedgerOnCheckOut(ctx, member, submission)

	if err := uc.slackService.PostChannel(ctx, channelID,
		slackmodel.CheckOutBroadcast(member.DisplayName, submission)); err != nil {
		_ = errutil.Handle(ctx, err, "failed to broadcast check-out")
	}

	logger.Info("check-out confirmed",
		"user_id", ev.UserID,
		"channel_id", channelID,
		"date", date,
		"goals_met", submission.GoalsMet,
	)

	uc.drafts.DeleteCheckOut(ev.UserID, channelID, date)
	uc.retract(ctx, ev.ResponseURL)
	return nil
}

// flipLedgerOnCheckOut updates the attendance row's blocker flag. The
// check-in flag stays as-is; a check-out never rewrites check-in state.
func (uc *CheckInUseCase) flipLedgerOnCheckOut(ctx context.Context, member *model.Member, s *model.Submission) {
	row, err := uc.repo.Attendance().Get(ctx, s.UserID, member.TeamID, s.Date)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to load attendance row on check-out")
		return
	}

	row.IsBlocked = s.IsBlocked()
	if err := uc.repo.Attendance().Update(ctx, row); err != nil {
		_ = errutil.Handle(ctx, err, "failed to update attendance row on check-out")
	}
}

// handleCheckOutCancel discards the draft without any persistence
func (uc *CheckInUseCase) handleCheckOutCancel(ctx context.Context, ev *slackmodel.ActionTriggered) error {
	channelID, date, _, err := slackmodel.ParseActionValue(ev.Value)
	if err != nil {
		return goerr.Wrap(err, "failed to parse check-out cancel value")
	}

	uc.drafts.DeleteCheckOut(ev.UserID, channelID, date)
	uc.retract(ctx, ev.ResponseURL)
	return nil
}

// handleCheckOutMood records a mood selection on the pending draft
func (uc *CheckInUseCase) handleCheckOutMood(ctx context.Context, ev *slackmodel.ActionTriggered) error {
	channelID, date, extra, err := slackmodel.ParseActionValue(ev.Value)
	if err != nil {
		return goerr.Wrap(err, "failed to parse check-out mood value")
	}

	mood, err := types.ParseCheckOutMood(extra)
	if err != nil {
		return goerr.Wrap(err, "invalid mood selection")
	}

	uc.drafts.SetCheckOutMood(ev.UserID, channelID, date, mood)
	return nil
}

// handleCheckOutGoalsMet records the goals-met selection on the pending
// draft.
func (uc *CheckInUseCase) handleCheckOutGoalsMet(ctx context.Context, ev *slackmodel.ActionTriggered) error {
	channelID, date, extra, err := slackmodel.ParseActionValue(ev.Value)
	if err != nil {
		return goerr.Wrap(err, "failed to parse goals-met value")
	}

	uc.drafts.SetCheckOutGoalsMet(ev.UserID, channelID, date, extra == "yes")
	return nil
}
