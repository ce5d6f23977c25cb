package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/interfaces"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	slackmodel "github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model/slack"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	slacksvc "github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/service/slack"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/service/smart"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/errutil"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/utils/logging"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// Slash commands handled by the workflow engine
const (
	CommandCheckIn  = "/checkin"
	CommandCheckOut = "/checkout"
)

// User-facing messages. Rejections are friendly notices, never internal
// errors.
const (
	msgNotRegistered     = "You're not registered for check-ins yet. Ask your team admin to add you."
	msgNotOptedIn        = "You're currently opted out of daily check-ins."
	msgAlreadyCheckedIn  = "You've already checked in today. See you at check-out!"
	msgAlreadyCheckedOut = "You've already checked out today. Have a good evening!"
	msgCheckInRequired   = "You haven't checked in today yet, so there's nothing to check out from. Run /checkin first."
	msgCheckInUsage      = "Tell me your goal for today: `/checkin <goal>` or `/checkin <goal> | <blocker>`"
	msgCheckOutUsage     = "Tell me how the day went: `/checkout <update>` or `/checkout <update> | <blocker>`"
	msgDraftExpired      = "That confirmation has expired. Please run the command again."
	msgTransientError    = "Something went wrong while saving. Please try again in a moment."
)

// CheckInUseCase is the per-(user, channel, local date) conversational
// workflow engine behind /checkin and /checkout. One external interaction
// event is handled per invocation; the HTTP layer acknowledges the event
// before any of this code runs.
type CheckInUseCase struct {
	repo         interfaces.Repository
	slackService slacksvc.Service
	classifier   smart.Classifier
	rewriter     smart.Rewriter
	drafts       *DraftStore
	defaultTZ    *time.Location
	now          func() time.Time

	actionHandlers map[string]func(ctx context.Context, ev *slackmodel.ActionTriggered) error
}

// CheckInOption is a functional option for CheckInUseCase configuration
type CheckInOption func(*CheckInUseCase)

// WithDefaultTimezone sets the fallback timezone for members without one
func WithDefaultTimezone(loc *time.Location) CheckInOption {
	return func(uc *CheckInUseCase) {
		if loc != nil {
			uc.defaultTZ = loc
		}
	}
}

// WithCheckInClock overrides the time source, mainly for tests
func WithCheckInClock(now func() time.Time) CheckInOption {
	return func(uc *CheckInUseCase) {
		uc.now = now
	}
}

// NewCheckInUseCase creates a new CheckInUseCase instance. The classifier
// and rewriter may be nil; the workflow then always uses the fallback
// verdict and the original goal text.
func NewCheckInUseCase(repo interfaces.Repository, slackService slacksvc.Service, classifier smart.Classifier, rewriter smart.Rewriter, opts ...CheckInOption) *CheckInUseCase {
	uc := &CheckInUseCase{
		repo:         repo,
		slackService: slackService,
		classifier:   classifier,
		rewriter:     rewriter,
		drafts:       NewDraftStore(),
		defaultTZ:    time.UTC,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}

	// Explicit dispatch table: event variant in, handler out. Handlers
	// receive everything they need as arguments; there is no ambient
	// state.
	uc.actionHandlers = map[string]func(ctx context.Context, ev *slackmodel.ActionTriggered) error{
		slackmodel.ActionIDCheckInAcceptOriginal:  uc.handleCheckInAcceptOriginal,
		slackmodel.ActionIDCheckInAcceptSuggested: uc.handleCheckInAcceptSuggested,
		slackmodel.ActionIDCheckInCancel:          uc.handleCheckInCancel,
		slackmodel.ActionIDCheckInMood:            uc.handleCheckInMood,
		slackmodel.ActionIDCheckOutSubmit:         uc.handleCheckOutSubmit,
		slackmodel.ActionIDCheckOutCancel:         uc.handleCheckOutCancel,
		slackmodel.ActionIDCheckOutMood:           uc.handleCheckOutMood,
		slackmodel.ActionIDCheckOutGoalsMet:       uc.handleCheckOutGoalsMet,
	}

	return uc
}

// HandleEvent dispatches one decoded interaction event to its handler
func (uc *CheckInUseCase) HandleEvent(ctx context.Context, event slackmodel.Event) error {
	switch ev := event.(type) {
	case *slackmodel.CommandInvoked:
		switch ev.Command {
		case CommandCheckIn:
			return uc.StartCheckIn(ctx, ev)
		case CommandCheckOut:
			return uc.StartCheckOut(ctx, ev)
		default:
			return goerr.Wrap(ErrUnknownCommand, "unhandled slash command", goerr.V("command", ev.Command))
		}

	case *slackmodel.ActionTriggered:
		handler, ok := uc.actionHandlers[ev.ActionID]
		if !ok {
			return goerr.Wrap(ErrUnknownActionID, "unhandled action", goerr.V("action_id", ev.ActionID))
		}
		return handler(ctx, ev)

	default:
		return goerr.New("unknown event variant")
	}
}

// localDate resolves the member's current calendar date
func (uc *CheckInUseCase) localDate(m *model.Member) types.Date {
	return types.DateOf(uc.now().In(m.Location(uc.defaultTZ)))
}

// respond replaces the ephemeral message behind the response handle.
// Messaging failures are logged, not propagated; the member can always
// retry the command.
func (uc *CheckInUseCase) respond(ctx context.Context, responseURL, text string) {
	if err := uc.slackService.RespondText(ctx, responseURL, text); err != nil {
		_ = errutil.Handle(ctx, err, "failed to send ephemeral response")
	}
}

// retract removes the ephemeral confirmation prompt. Always the final
// step of a terminal action.
func (uc *CheckInUseCase) retract(ctx context.Context, responseURL string) {
	if err := uc.slackService.DeleteEphemeral(ctx, responseURL); err != nil {
		_ = errutil.Handle(ctx, err, "failed to retract ephemeral prompt")
	}
}

// splitDraftText splits command text into the main text and an optional
// blocker, separated by "|".
func splitDraftText(text string) (main, blocker string) {
	parts := strings.SplitN(text, "|", 2)
	main = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		blocker = strings.TrimSpace(parts[1])
	}
	return main, blocker
}

// StartCheckIn processes a /checkin command: guards, SMART gate, draft
// storage and the confirmation prompt.
func (uc *CheckInUseCase) StartCheckIn(ctx context.Context, cmd *slackmodel.CommandInvoked) error {
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

	// Entry guard: a confirmed check-in for today on this channel blocks
	// a new draft outright.
	if _, err := uc.repo.Submission().Get(ctx, types.SubmissionKindCheckIn, cmd.UserID, cmd.ChannelID, date); err == nil {
		logger.Info("duplicate check-in attempt rejected",
			"user_id", cmd.UserID, "channel_id", cmd.ChannelID, "date", date)
		uc.respond(ctx, cmd.ResponseURL, msgAlreadyCheckedIn)
		return nil
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(err, "failed to check for existing check-in")
	}

	goalText, blockerText := splitDraftText(cmd.Text)
	if goalText == "" {
		uc.respond(ctx, cmd.ResponseURL, msgCheckInUsage)
		return nil
	}

	suggestion := uc.evaluateGoal(ctx, goalText)

	draft := &model.CheckInDraft{
		UserID:      cmd.UserID,
		ChannelID:   cmd.ChannelID,
		Date:        date,
		GoalText:    goalText,
		BlockerText: blockerText,
		Mood:        types.CheckInMoodNeutral,
		Suggestion:  suggestion,
		CreatedAt:   uc.now().UTC(),
	}
	uc.drafts.PutCheckIn(draft)

	if err := uc.slackService.PostEphemeral(ctx, cmd.ChannelID, cmd.UserID,
		"Confirm your check-in", slackmodel.CheckInPrompt(draft)...); err != nil {
		uc.drafts.DeleteCheckIn(cmd.UserID, cmd.ChannelID, date)
		return goerr.Wrap(err, "failed to post confirmation prompt")
	}

	return nil
}

// evaluateGoal runs the two best-effort AI capabilities. Either may fail
// or time out; the verdict then defaults to false and the suggestion to
// the original text. Degradation is logged internally and never shown to
// the member.
func (uc *CheckInUseCase) evaluateGoal(ctx context.Context, goalText string) model.GoalSuggestion {
	logger := logging.From(ctx)

	suggestion := model.GoalSuggestion{
		Original:  goalText,
		Rewritten: goalText,
		IsSmart:   false,
	}

	if uc.classifier != nil {
		if verdict, err := uc.classifier.Classify(ctx, goalText); err != nil {
			logger.Warn("SMART classifier degraded, using fallback verdict", "error", err.Error())
		} else {
			suggestion.IsSmart = verdict
		}
	}

	if uc.rewriter != nil {
		if rewritten, err := uc.rewriter.Rewrite(ctx, goalText); err != nil {
			logger.Warn("SMART rewriter degraded, keeping original text", "error", err.Error())
		} else if rewritten != "" {
			suggestion.Rewritten = rewritten
		}
	}

	return suggestion
}

func (uc *CheckInUseCase) handleCheckInAcceptOriginal(ctx context.Context, ev *slackmodel.ActionTriggered) error {
	return uc.confirmCheckIn(ctx, ev, false)
}

func (uc *CheckInUseCase) handleCheckInAcceptSuggested(ctx context.Context, ev *slackmodel.ActionTriggered) error {
	return uc.confirmCheckIn(ctx, ev, true)
}

// confirmCheckIn is the accept path: duplicate re-check, submission
// write, ledger flip, broadcast, and prompt retraction, in that order.
func (uc *CheckInUseCase) confirmCheckIn(ctx context.Context, ev *slackmodel.ActionTriggered, useSuggestion bool) error {
	logger := logging.From(ctx)

	channelID, date, _, err := slackmodel.ParseActionValue(ev.Value)
	if err != nil {
		return goerr.Wrap(err, "failed to parse check-in action value")
	}

	draft := uc.drafts.GetCheckIn(ev.UserID, channelID, date)
	if draft == nil {
		uc.respond(ctx, ev.ResponseURL, msgDraftExpired)
		return nil
	}

	member, err := uc.repo.Member().Get(ctx, ev.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			uc.drafts.DeleteCheckIn(ev.UserID, channelID, date)
			uc.respond(ctx, ev.ResponseURL, msgNotRegistered)
			return nil
		}
		return goerr.Wrap(err, "failed to get member", goerr.V("user_id", ev.UserID))
	}

	// Close the duplicate race immediately before the persisting write
	if _, err := uc.repo.Submission().Get(ctx, types.SubmissionKindCheckIn, ev.UserID, channelID, date); err == nil {
		uc.drafts.DeleteCheckIn(ev.UserID, channelID, date)
		uc.respond(ctx, ev.ResponseURL, msgAlreadyCheckedIn)
		return nil
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(err, "failed to re-check for existing check-in")
	}

	goalText := draft.GoalText
	if useSuggestion && draft.Suggestion.HasAlternative() {
		goalText = draft.Suggestion.Rewritten
	}

	submission := &model.Submission{
		ID:           types.SubmissionID(uuid.Must(uuid.NewV7()).String()),
		Kind:         types.SubmissionKindCheckIn,
		UserID:       ev.UserID,
		ChannelID:    channelID,
		Date:         date,
		GoalText:     goalText,
		SmartVerdict: draft.Suggestion.IsSmart,
		CheckInMood:  draft.Mood,
		BlockerText:  draft.BlockerText,
	}
	if err := uc.repo.Submission().Create(ctx, submission); err != nil {
		if errors.Is(err, interfaces.ErrAlreadyExists) {
			uc.drafts.DeleteCheckIn(ev.UserID, channelID, date)
			uc.respond(ctx, ev.ResponseURL, msgAlreadyCheckedIn)
			return nil
		}
		// Keep the draft so the member can retry the same prompt
		uc.respond(ctx, ev.ResponseURL, msgTransientError)
		return goerr.Wrap(err, "failed to persist check-in submission")
	}

	uc.flipLedgerOnCheckIn(ctx, member, submission)

	if err := uc.slackService.PostChannel(ctx, channelID,
		slackmodel.CheckInBroadcast(member.DisplayName, submission)); err != nil {
		_ = errutil.Handle(ctx, err, "failed to broadcast check-in")
	}

	logger.Info("check-in confirmed",
		"user_id", ev.UserID,
		"channel_id", channelID,
		"date", date,
		"smart", submission.SmartVerdict,
		"used_suggestion", useSuggestion,
	)

	uc.drafts.DeleteCheckIn(ev.UserID, channelID, date)
	uc.retract(ctx, ev.ResponseURL)
	return nil
}

// flipLedgerOnCheckIn marks the attendance row checked in. The submission
// is already durable at this point; a failure here leaves the accepted
// eventual-consistency window between the two writes, so it is logged and
// not propagated.
func (uc *CheckInUseCase) flipLedgerOnCheckIn(ctx context.Context, member *model.Member, s *model.Submission) {
	score := 0.0
	if s.SmartVerdict {
		score = 1.0
	}

	row, err := uc.repo.Attendance().Get(ctx, s.UserID, member.TeamID, s.Date)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			// The generator has not covered this date yet; create the row
			// directly so the ledger still reflects the check-in.
			row = &model.AttendanceRow{
				UserID:         s.UserID,
				TeamID:         member.TeamID,
				Date:           s.Date,
				IsActive:       member.CheckInOptIn,
				HasCheckedIn:   true,
				IsBlocked:      s.IsBlocked(),
				SmartGoalScore: score,
			}
			if err := uc.repo.Attendance().Create(ctx, row); err != nil {
				_ = errutil.Handle(ctx, err, "failed to create attendance row on check-in")
			}
			return
		}
		_ = errutil.Handle(ctx, err, "failed to load attendance row on check-in")
		return
	}

	row.HasCheckedIn = true
	row.IsBlocked = s.IsBlocked()
	row.SmartGoalScore = score
	if err := uc.repo.Attendance().Update(ctx, row); err != nil {
		_ = errutil.Handle(ctx, err, "failed to update attendance row on check-in")
	}
}

// handleCheckInCancel discards the draft without any persistence, then
// retracts the prompt.
func (uc *CheckInUseCase) handleCheckInCancel(ctx context.Context, ev *slackmodel.ActionTriggered) error {
	channelID, date, _, err := slackmodel.ParseActionValue(ev.Value)
	if err != nil {
		return goerr.Wrap(err, "failed to parse check-in cancel value")
	}

	uc.drafts.DeleteCheckIn(ev.UserID, channelID, date)
	uc.retract(ctx, ev.ResponseURL)
	return nil
}

// handleCheckInMood records a mood selection on the pending draft. A
// missing draft is ignored; the terminal action will report expiry.
func (uc *CheckInUseCase) handleCheckInMood(ctx context.Context, ev *slackmodel.ActionTriggered) error {
	channelID, date, extra, err := slackmodel.ParseActionValue(ev.Value)
	if err != nil {
		return goerr.Wrap(err, "failed to parse check-in mood value")
	}

	mood, err := types.ParseCheckInMood(extra)
	if err != nil {
		return goerr.Wrap(err, "invalid mood selection")
	}

	uc.drafts.SetCheckInMood(ev.UserID, channelID, date, mood)
	return nil
}
