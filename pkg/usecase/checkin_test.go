package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/interfaces"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	slackmodel "github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model/slack"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/repository/memory"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/usecase"
)

type checkInFixture struct {
	repo  *memory.Memory
	slack *mockSlack
	uc    *usecase.CheckInUseCase
	date  types.Date
}

func newCheckInFixture(t *testing.T, opts ...usecase.CheckInOption) *checkInFixture {
	t.Helper()

	repo := memory.New()
	slack := &mockSlack{}
	putMember(t, repo, &model.Member{
		ID: "U100", TeamID: "T1", DisplayName: "Alice",
		CheckInOptIn: true, Active: true,
	})

	classifier := classifierFunc(func(ctx context.Context, goalText string) (bool, error) {
		return strings.Contains(goalText, "by"), nil
	})
	rewriter := rewriterFunc(func(ctx context.Context, goalText string) (string, error) {
		return "Rewritten: " + goalText, nil
	})

	all := append([]usecase.CheckInOption{
		usecase.WithCheckInClock(fixedClock(t, "2025-01-10T09:00:00Z")),
	}, opts...)

	return &checkInFixture{
		repo:  repo,
		slack: slack,
		uc:    usecase.NewCheckInUseCase(repo, slack, classifier, rewriter, all...),
		date:  mustDate(t, "2025-01-10"),
	}
}

func (f *checkInFixture) command(text string) *slackmodel.CommandInvoked {
	return &slackmodel.CommandInvoked{
		Command:     usecase.CommandCheckIn,
		Text:        text,
		UserID:      "U100",
		ChannelID:   "C1",
		ResponseURL: "https://hooks.example.com/cmd",
	}
}

func (f *checkInFixture) action(actionID, value string) *slackmodel.ActionTriggered {
	return &slackmodel.ActionTriggered{
		ActionID:    actionID,
		Value:       value,
		UserID:      "U100",
		ChannelID:   "C1",
		ResponseURL: "https://hooks.example.com/action",
	}
}

func (f *checkInFixture) draftKey() string {
	return slackmodel.EncodeActionValue("C1", f.date)
}

func TestCheckInStart(t *testing.T) {
	ctx := context.Background()

	t.Run("posts a confirmation prompt without persisting", func(t *testing.T) {
		f := newCheckInFixture(t)

		gt.NoError(t, f.uc.HandleEvent(ctx, f.command("Ship the report by Friday"))).Required()

		gt.Array(t, f.slack.ephemerals).Length(1)
		gt.Value(t, f.slack.ephemerals[0].userID).Equal(types.UserID("U100"))

		_, err := f.repo.Submission().Get(ctx, types.SubmissionKindCheckIn, "U100", "C1", f.date)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("rejects an unregistered user with a friendly message", func(t *testing.T) {
		f := newCheckInFixture(t)
		cmd := f.command("whatever")
		cmd.UserID = "U999"

		gt.NoError(t, f.uc.HandleEvent(ctx, cmd)).Required()

		gt.Array(t, f.slack.ephemerals).Length(0)
		gt.String(t, f.slack.lastResponse(t).text).Contains("not registered")
	})

	t.Run("rejects an opted-out member", func(t *testing.T) {
		f := newCheckInFixture(t)
		putMember(t, f.repo, &model.Member{
			ID: "U200", TeamID: "T1", DisplayName: "Bob", CheckInOptIn: false, Active: true,
		})
		cmd := f.command("whatever")
		cmd.UserID = "U200"

		gt.NoError(t, f.uc.HandleEvent(ctx, cmd)).Required()

		gt.Array(t, f.slack.ephemerals).Length(0)
		gt.String(t, f.slack.lastResponse(t).text).Contains("opted out")
	})

	t.Run("rejects a second check-in for the same day", func(t *testing.T) {
		f := newCheckInFixture(t)
		gt.NoError(t, f.repo.Submission().Create(ctx, &model.Submission{
			ID: "existing", Kind: types.SubmissionKindCheckIn,
			UserID: "U100", ChannelID: "C1", Date: f.date,
			GoalText: "done already", CheckInMood: types.CheckInMoodNeutral,
		})).Required()

		gt.NoError(t, f.uc.HandleEvent(ctx, f.command("another goal"))).Required()

		gt.Array(t, f.slack.ephemerals).Length(0)
		gt.String(t, f.slack.lastResponse(t).text).Contains("already checked in")
	})

	t.Run("asks for a goal when the command text is empty", func(t *testing.T) {
		f := newCheckInFixture(t)

		gt.NoError(t, f.uc.HandleEvent(ctx, f.command("  "))).Required()

		gt.Array(t, f.slack.ephemerals).Length(0)
		gt.String(t, f.slack.lastResponse(t).text).Contains("/checkin")
	})

	t.Run("still prompts when the classifier fails", func(t *testing.T) {
		f := newCheckInFixture(t)
		f.uc = usecase.NewCheckInUseCase(f.repo, f.slack,
			classifierFunc(func(ctx context.Context, goalText string) (bool, error) {
				return false, goerr.New("deadline exceeded")
			}),
			rewriterFunc(func(ctx context.Context, goalText string) (string, error) {
				return "", goerr.New("deadline exceeded")
			}),
			usecase.WithCheckInClock(fixedClock(t, "2025-01-10T09:00:00Z")),
		)

		gt.NoError(t, f.uc.HandleEvent(ctx, f.command("Ship the report"))).Required()
		gt.Array(t, f.slack.ephemerals).Length(1)

		// Fallback verdict carries through to the confirmed submission
		gt.NoError(t, f.uc.HandleEvent(ctx,
			f.action(slackmodel.ActionIDCheckInAcceptOriginal, f.draftKey()))).Required()

		s, err := f.repo.Submission().Get(ctx, types.SubmissionKindCheckIn, "U100", "C1", f.date)
		gt.NoError(t, err).Required()
		gt.Bool(t, s.SmartVerdict).False()
		gt.Value(t, s.GoalText).Equal("Ship the report")
	})

	t.Run("works without AI capabilities wired", func(t *testing.T) {
		f := newCheckInFixture(t)
		f.uc = usecase.NewCheckInUseCase(f.repo, f.slack, nil, nil,
			usecase.WithCheckInClock(fixedClock(t, "2025-01-10T09:00:00Z")))

		gt.NoError(t, f.uc.HandleEvent(ctx, f.command("Ship the report"))).Required()
		gt.Array(t, f.slack.ephemerals).Length(1)
	})
}

func TestCheckInConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("accept original persists the submission and flips the ledger", func(t *testing.T) {
		f := newCheckInFixture(t)
		gt.NoError(t, f.repo.Attendance().Create(ctx, &model.AttendanceRow{
			UserID: "U100", TeamID: "T1", Date: f.date, IsActive: true,
		})).Required()

		gt.NoError(t, f.uc.HandleEvent(ctx, f.command("Ship the report by Friday | waiting on data"))).Required()
		gt.NoError(t, f.uc.HandleEvent(ctx,
			f.action(slackmodel.ActionIDCheckInAcceptOriginal, f.draftKey()))).Required()

		s, err := f.repo.Submission().Get(ctx, types.SubmissionKindCheckIn, "U100", "C1", f.date)
		gt.NoError(t, err).Required()
		gt.Value(t, s.GoalText).Equal("Ship the report by Friday")
		gt.Value(t, s.BlockerText).Equal("waiting on data")
		gt.Bool(t, s.SmartVerdict).True()

		row, err := f.repo.Attendance().Get(ctx, "U100", "T1", f.date)
		gt.NoError(t, err).Required()
		gt.Bool(t, row.HasCheckedIn).True()
		gt.Bool(t, row.IsBlocked).True()
		gt.Value(t, row.SmartGoalScore).Equal(1.0)

		gt.Array(t, f.slack.broadcasts).Length(1)
		gt.String(t, f.slack.broadcasts[0].text).Contains("Alice")
		gt.Array(t, f.slack.deletes).Length(1)
	})

	t.Run("accept suggested uses the rewritten goal", func(t *testing.T) {
		f := newCheckInFixture(t)

		gt.NoError(t, f.uc.HandleEvent(ctx, f.command("Ship the report"))).Required()
		gt.NoError(t, f.uc.HandleEvent(ctx,
			f.action(slackmodel.ActionIDCheckInAcceptSuggested, f.draftKey()))).Required()

		s, err := f.repo.Submission().Get(ctx, types.SubmissionKindCheckIn, "U100", "C1", f.date)
		gt.NoError(t, err).Required()
		gt.Value(t, s.GoalText).Equal("Rewritten: Ship the report")
	})

	t.Run("creates the ledger row when the generator has not covered the date", func(t *testing.T) {
		f := newCheckInFixture(t)

		gt.NoError(t, f.uc.HandleEvent(ctx, f.command("Ship the report"))).Required()
		gt.NoError(t, f.uc.HandleEvent(ctx,
			f.action(slackmodel.ActionIDCheckInAcceptOriginal, f.draftKey()))).Required()

		row, err := f.repo.Attendance().Get(ctx, "U100", "T1", f.date)
		gt.NoError(t, err).Required()
		gt.Bool(t, row.HasCheckedIn).True()
	})

	t.Run("mood selection carries into the submission", func(t *testing.T) {
		f := newCheckInFixture(t)

		gt.NoError(t, f.uc.HandleEvent(ctx, f.command("Ship the report"))).Required()
		gt.NoError(t, f.uc.HandleEvent(ctx,
			f.action(slackmodel.ActionIDCheckInMood,
				slackmodel.EncodeActionValueWith("C1", f.date, "energized")))).Required()
		gt.NoError(t, f.uc.HandleEvent(ctx,
			f.action(slackmodel.ActionIDCheckInAcceptOriginal, f.draftKey()))).Required()

		s, err := f.repo.Submission().Get(ctx, types.SubmissionKindCheckIn, "U100", "C1", f.date)
		gt.NoError(t, err).Required()
		gt.Value(t, s.CheckInMood).Equal(types.CheckInMoodEnergized)
	})

	t.Run("cancel leaves no trace", func(t *testing.T) {
		f := newCheckInFixture(t)

		gt.NoError(t, f.uc.HandleEvent(ctx, f.command("Ship the report"))).Required()
		gt.NoError(t, f.uc.HandleEvent(ctx,
			f.action(slackmodel.ActionIDCheckInCancel, f.draftKey()))).Required()

		_, err := f.repo.Submission().Get(ctx, types.SubmissionKindCheckIn, "U100", "C1", f.date)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
		gt.Array(t, f.slack.broadcasts).Length(0)
		gt.Array(t, f.slack.deletes).Length(1)

		// The draft is gone: accepting afterwards reports expiry
		gt.NoError(t, f.uc.HandleEvent(ctx,
			f.action(slackmodel.ActionIDCheckInAcceptOriginal, f.draftKey()))).Required()
		gt.String(t, f.slack.lastResponse(t).text).Contains("expired")
	})

	t.Run("duplicate detected at accept time wins over the draft", func(t *testing.T) {
		f := newCheckInFixture(t)

		gt.NoError(t, f.uc.HandleEvent(ctx, f.command("Ship the report"))).Required()
		gt.NoError(t, f.repo.Submission().Create(ctx, &model.Submission{
			ID: "raced", Kind: types.SubmissionKindCheckIn,
			UserID: "U100", ChannelID: "C1", Date: f.date,
			GoalText: "raced in first", CheckInMood: types.CheckInMoodNeutral,
		})).Required()

		gt.NoError(t, f.uc.HandleEvent(ctx,
			f.action(slackmodel.ActionIDCheckInAcceptOriginal, f.draftKey()))).Required()

		gt.Array(t, f.slack.broadcasts).Length(0)
		gt.String(t, f.slack.lastResponse(t).text).Contains("already checked in")

		s, err := f.repo.Submission().Get(ctx, types.SubmissionKindCheckIn, "U100", "C1", f.date)
		gt.NoError(t, err).Required()
		gt.Value(t, s.GoalText).Equal("raced in first")
	})
}

func TestCheckInDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown command yields a sentinel error", func(t *testing.T) {
		f := newCheckInFixture(t)
		cmd := f.command("whatever")
		cmd.Command = "/unknown"

		err := f.uc.HandleEvent(ctx, cmd)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrUnknownCommand)).True()
	})

	t.Run("unknown action ID yields a sentinel error", func(t *testing.T) {
		f := newCheckInFixture(t)

		err := f.uc.HandleEvent(ctx, f.action("mystery_button", f.draftKey()))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrUnknownActionID)).True()
	})
}
