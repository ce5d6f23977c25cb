package usecase

import (
	"sync"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
)

type draftKey struct {
	userID    types.UserID
	channelID types.ChannelID
	date      types.Date
}

// DraftStore holds pending drafts between the command invocation and a
// terminal action. It is deliberately in-memory: a draft is worthless
// after the ephemeral prompt is gone, and losing one only means the
// member re-runs the command.
type DraftStore struct {
	mu        sync.Mutex
	checkIns  map[draftKey]*model.CheckInDraft
	checkOuts map[draftKey]*model.CheckOutDraft
}

// NewDraftStore creates an empty draft store
func NewDraftStore() *DraftStore {
	return &DraftStore{
		checkIns:  make(map[draftKey]*model.CheckInDraft),
		checkOuts: make(map[draftKey]*model.CheckOutDraft),
	}
}

// PutCheckIn stores (or replaces) a pending check-in draft
func (s *DraftStore) PutCheckIn(d *model.CheckInDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkIns[draftKey{d.UserID, d.ChannelID, d.Date}] = d
}

// GetCheckIn retrieves a pending check-in draft, nil if absent
func (s *DraftStore) GetCheckIn(userID types.UserID, channelID types.ChannelID, date types.Date) *model.CheckInDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkIns[draftKey{userID, channelID, date}]
}

// DeleteCheckIn removes a pending check-in draft
func (s *DraftStore) DeleteCheckIn(userID types.UserID, channelID types.ChannelID, date types.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.checkIns, draftKey{userID, channelID, date})
}

// SetCheckInMood updates the mood of a pending check-in draft, if any
func (s *DraftStore) SetCheckInMood(userID types.UserID, channelID types.ChannelID, date types.Date, mood types.CheckInMood) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.checkIns[draftKey{userID, channelID, date}]
	if !ok {
		return false
	}
	d.Mood = mood
	return true
}

// PutCheckOut stores (or replaces) a pending check-out draft
func (s *DraftStore) PutCheckOut(d *model.CheckOutDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkOuts[draftKey{d.UserID, d.ChannelID, d.Date}] = d
}

// GetCheckOut retrieves a pending check-out draft, nil if absent
func (s *DraftStore) GetCheckOut(userID types.UserID, channelID types.ChannelID, date types.Date) *model.CheckOutDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkOuts[draftKey{userID, channelID, date}]
}

// DeleteCheckOut removes a pending check-out draft
func (s *DraftStore) DeleteCheckOut(userID types.UserID, channelID types.ChannelID, date types.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.checkOuts, draftKey{userID, channelID, date})
}

// SetCheckOutMood updates the mood of a pending check-out draft, if any
func (s *DraftStore) SetCheckOutMood(userID types.UserID, channelID types.ChannelID, date types.Date, mood types.CheckOutMood) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.checkOuts[draftKey{userID, channelID, date}]
	if !ok {
		return false
	}
	d.Mood = mood
	return true
}

// SetCheckOutGoalsMet updates the goals-met flag of a pending check-out
// draft, if any.
func (s *DraftStore) SetCheckOutGoalsMet(userID types.UserID, channelID types.ChannelID, date types.Date, met bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.checkOuts[draftKey{userID, channelID, date}]
	if !ok {
		return false
	}
	d.GoalsMet = met
	return true
}
