package slack

import (
	"fmt"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	libslack "github.com/slack-go/slack"
)

// CheckInPrompt builds the ephemeral confirmation message for a pending
// check-in: the original goal, the AI-rewritten alternative, the SMART
// verdict, the blocker, a mood selector and the three terminal actions.
func CheckInPrompt(d *model.CheckInDraft) []libslack.Block {
	key := EncodeActionValue(d.ChannelID, d.Date)

	verdict := "Your goal doesn't look SMART yet (Specific, Measurable, Achievable, Relevant, Time-bound)."
	if d.Suggestion.IsSmart {
		verdict = "Your goal looks SMART. Nice."
	}

	blocks := []libslack.Block{
		libslack.NewSectionBlock(
			libslack.NewTextBlockObject(libslack.MarkdownType,
				fmt.Sprintf("*Check-in for %s*\n%s", d.Date, verdict), false, false),
			nil, nil),
		libslack.NewSectionBlock(
			libslack.NewTextBlockObject(libslack.MarkdownType,
				fmt.Sprintf("*Your goal:*\n%s", d.GoalText), false, false),
			nil, nil),
	}

	if d.Suggestion.HasAlternative() {
		blocks = append(blocks, libslack.NewSectionBlock(
			libslack.NewTextBlockObject(libslack.MarkdownType,
				fmt.Sprintf("*Suggested rewrite:*\n%s", d.Suggestion.Rewritten), false, false),
			nil, nil))
	}

	if d.BlockerText != "" {
		blocks = append(blocks, libslack.NewSectionBlock(
			libslack.NewTextBlockObject(libslack.MarkdownType,
				fmt.Sprintf("*Blocker:*\n%s", d.BlockerText), false, false),
			nil, nil))
	}

	moodOptions := make([]*libslack.OptionBlockObject, 0, len(types.AllCheckInMoods()))
	for _, mood := range types.AllCheckInMoods() {
		moodOptions = append(moodOptions, libslack.NewOptionBlockObject(
			EncodeActionValueWith(d.ChannelID, d.Date, mood.String()),
			libslack.NewTextBlockObject(libslack.PlainTextType, moodLabel(mood.String()), true, false),
			nil))
	}
	moodSelect := libslack.NewOptionsSelectBlockElement(
		libslack.OptTypeStatic,
		libslack.NewTextBlockObject(libslack.PlainTextType, "How are you feeling?", false, false),
		ActionIDCheckInMood,
		moodOptions...)
	blocks = append(blocks, libslack.NewActionBlock("checkin_mood_block", moodSelect))

	acceptOriginal := libslack.NewButtonBlockElement(ActionIDCheckInAcceptOriginal, key,
		libslack.NewTextBlockObject(libslack.PlainTextType, "Keep my goal", false, false))
	acceptOriginal.Style = libslack.StylePrimary
	buttons := []libslack.BlockElement{acceptOriginal}

	if d.Suggestion.HasAlternative() {
		buttons = append(buttons,
			libslack.NewButtonBlockElement(ActionIDCheckInAcceptSuggested, key,
				libslack.NewTextBlockObject(libslack.PlainTextType, "Use suggestion", false, false)))
	}

	cancel := libslack.NewButtonBlockElement(ActionIDCheckInCancel, key,
		libslack.NewTextBlockObject(libslack.PlainTextType, "Cancel", false, false))
	cancel.Style = libslack.StyleDanger
	buttons = append(buttons, cancel)

	blocks = append(blocks, libslack.NewActionBlock("checkin_actions_block", buttons...))

	return blocks
}

// CheckOutPrompt builds the ephemeral confirmation message for a pending
// check-out: the update text, blocker, mood selector, goals-met toggle
// and submit/cancel actions.
func CheckOutPrompt(d *model.CheckOutDraft) []libslack.Block {
	key := EncodeActionValue(d.ChannelID, d.Date)

	blocks := []libslack.Block{
		libslack.NewSectionBlock(
			libslack.NewTextBlockObject(libslack.MarkdownType,
				fmt.Sprintf("*Check-out for %s*", d.Date), false, false),
			nil, nil),
		libslack.NewSectionBlock(
			libslack.NewTextBlockObject(libslack.MarkdownType,
				fmt.Sprintf("*Your update:*\n%s", d.UpdateText), false, false),
			nil, nil),
	}

	if d.BlockerText != "" {
		blocks = append(blocks, libslack.NewSectionBlock(
			libslack.NewTextBlockObject(libslack.MarkdownType,
				fmt.Sprintf("*Blocker:*\n%s", d.BlockerText), false, false),
			nil, nil))
	}

	moodOptions := make([]*libslack.OptionBlockObject, 0, len(types.AllCheckOutMoods()))
	for _, mood := range types.AllCheckOutMoods() {
		moodOptions = append(moodOptions, libslack.NewOptionBlockObject(
			EncodeActionValueWith(d.ChannelID, d.Date, mood.String()),
			libslack.NewTextBlockObject(libslack.PlainTextType, moodLabel(mood.String()), true, false),
			nil))
	}
	moodSelect := libslack.NewOptionsSelectBlockElement(
		libslack.OptTypeStatic,
		libslack.NewTextBlockObject(libslack.PlainTextType, "How are you feeling?", false, false),
		ActionIDCheckOutMood,
		moodOptions...)

	goalsMetOptions := []*libslack.OptionBlockObject{
		libslack.NewOptionBlockObject(
			EncodeActionValueWith(d.ChannelID, d.Date, "yes"),
			libslack.NewTextBlockObject(libslack.PlainTextType, "Goals met", false, false), nil),
		libslack.NewOptionBlockObject(
			EncodeActionValueWith(d.ChannelID, d.Date, "no"),
			libslack.NewTextBlockObject(libslack.PlainTextType, "Goals not met", false, false), nil),
	}
	goalsMetSelect := libslack.NewOptionsSelectBlockElement(
		libslack.OptTypeStatic,
		libslack.NewTextBlockObject(libslack.PlainTextType, "Did you meet today's goals?", false, false),
		ActionIDCheckOutGoalsMet,
		goalsMetOptions...)

	blocks = append(blocks, libslack.NewActionBlock("checkout_mood_block", moodSelect, goalsMetSelect))

	submit := libslack.NewButtonBlockElement(ActionIDCheckOutSubmit, key,
		libslack.NewTextBlockObject(libslack.PlainTextType, "Submit check-out", false, false))
	submit.Style = libslack.StylePrimary
	cancel := libslack.NewButtonBlockElement(ActionIDCheckOutCancel, key,
		libslack.NewTextBlockObject(libslack.PlainTextType, "Cancel", false, false))
	cancel.Style = libslack.StyleDanger

	blocks = append(blocks, libslack.NewActionBlock("checkout_actions_block", submit, cancel))

	return blocks
}

// CheckInBroadcast builds the channel message announcing a confirmed
// check-in.
func CheckInBroadcast(displayName string, s *model.Submission) string {
	text := fmt.Sprintf(":white_check_mark: *%s* checked in (%s)\n*Goal:* %s",
		displayName, moodLabel(s.CheckInMood.String()), s.GoalText)
	if s.BlockerText != "" {
		text += fmt.Sprintf("\n:construction: *Blocker:* %s", s.BlockerText)
	}
	return text
}

// CheckOutBroadcast builds the channel message announcing a confirmed
// check-out.
func CheckOutBroadcast(displayName string, s *model.Submission) string {
	met := "goals not met"
	if s.GoalsMet {
		met = "goals met"
	}
	text := fmt.Sprintf(":wave: *%s* checked out (%s, %s)\n*Update:* %s",
		displayName, moodLabel(s.CheckOutMood.String()), met, s.UpdateText)
	if s.BlockerText != "" {
		text += fmt.Sprintf("\n:construction: *Blocker:* %s", s.BlockerText)
	}
	return text
}

func moodLabel(mood string) string {
	switch mood {
	case "energized":
		return "⚡ Energized"
	case "happy":
		return "😊 Happy"
	case "neutral":
		return "😐 Neutral"
	case "stressed":
		return "😰 Stressed"
	case "tired":
		return "😴 Tired"
	default:
		return mood
	}
}
