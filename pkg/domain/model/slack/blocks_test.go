package slack_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	libslack "github.com/slack-go/slack"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model/slack"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
)

func promptButtons(t *testing.T, blocks []libslack.Block) []*libslack.ButtonBlockElement {
	t.Helper()
	var buttons []*libslack.ButtonBlockElement
	for _, b := range blocks {
		action, ok := b.(*libslack.ActionBlock)
		if !ok {
			continue
		}
		for _, el := range action.Elements.ElementSet {
			if btn, ok := el.(*libslack.ButtonBlockElement); ok {
				buttons = append(buttons, btn)
			}
		}
	}
	return buttons
}

func TestCheckInPrompt(t *testing.T) {
	draft := &model.CheckInDraft{
		UserID:    "U100",
		ChannelID: "C1",
		Date:      "2025-01-10",
		GoalText:  "Ship the report",
		Mood:      types.CheckInMoodNeutral,
	}

	t.Run("offers the suggestion button only when a rewrite exists", func(t *testing.T) {
		d := *draft
		d.Suggestion = model.GoalSuggestion{Original: d.GoalText, Rewritten: d.GoalText}

		buttons := promptButtons(t, slack.CheckInPrompt(&d))
		gt.Array(t, buttons).Length(2)
		gt.Value(t, buttons[0].ActionID).Equal(slack.ActionIDCheckInAcceptOriginal)
		gt.Value(t, buttons[1].ActionID).Equal(slack.ActionIDCheckInCancel)

		d.Suggestion.Rewritten = "Ship the report by Friday EOD"
		buttons = promptButtons(t, slack.CheckInPrompt(&d))
		gt.Array(t, buttons).Length(3)
	})

	t.Run("buttons carry the draft key", func(t *testing.T) {
		d := *draft
		d.Suggestion = model.GoalSuggestion{Original: d.GoalText, Rewritten: d.GoalText}

		for _, b := range promptButtons(t, slack.CheckInPrompt(&d)) {
			gt.Value(t, b.Value).Equal(slack.EncodeActionValue("C1", "2025-01-10"))
		}
	})
}

func TestCheckOutPrompt(t *testing.T) {
	draft := &model.CheckOutDraft{
		UserID:     "U100",
		ChannelID:  "C1",
		Date:       "2025-01-10",
		UpdateText: "Report drafted",
		Mood:       types.CheckOutMoodNeutral,
	}

	buttons := promptButtons(t, slack.CheckOutPrompt(draft))
	gt.Array(t, buttons).Length(2)
	gt.Value(t, buttons[0].ActionID).Equal(slack.ActionIDCheckOutSubmit)
	gt.Value(t, buttons[1].ActionID).Equal(slack.ActionIDCheckOutCancel)
}
