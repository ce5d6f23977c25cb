package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	libslack "github.com/slack-go/slack"

	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/model"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/types"
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/repository/memory"
)

// mockSlack records every outbound message for assertion
type mockSlack struct {
	mu         sync.Mutex
	ephemerals []mockEphemeral
	broadcasts []mockBroadcast
	responses  []mockResponse
	deletes    []string
}

type mockEphemeral struct {
	channelID types.ChannelID
	userID    types.UserID
	text      string
	blocks    []libslack.Block
}

type mockBroadcast struct {
	channelID types.ChannelID
	text      string
}

type mockResponse struct {
	responseURL string
	text        string
}

func (m *mockSlack) PostEphemeral(ctx context.Context, channelID types.ChannelID, userID types.UserID, text string, blocks ...libslack.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ephemerals = append(m.ephemerals, mockEphemeral{channelID, userID, text, blocks})
	return nil
}

func (m *mockSlack) PostChannel(ctx context.Context, channelID types.ChannelID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcasts = append(m.broadcasts, mockBroadcast{channelID, text})
	return nil
}

func (m *mockSlack) RespondText(ctx context.Context, responseURL, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{responseURL, text})
	return nil
}

func (m *mockSlack) DeleteEphemeral(ctx context.Context, responseURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, responseURL)
	return nil
}

func (m *mockSlack) lastResponse(t *testing.T) mockResponse {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.responses) == 0 {
		t.Fatal("no ephemeral responses recorded")
	}
	return m.responses[len(m.responses)-1]
}

// classifierFunc adapts a function to the smart.Classifier interface
type classifierFunc func(ctx context.Context, goalText string) (bool, error)

func (f classifierFunc) Classify(ctx context.Context, goalText string) (bool, error) {
	return f(ctx, goalText)
}

// rewriterFunc adapts a function to the smart.Rewriter interface
type rewriterFunc func(ctx context.Context, goalText string) (string, error)

func (f rewriterFunc) Rewrite(ctx context.Context, goalText string) (string, error) {
	return f(ctx, goalText)
}

func fixedClock(t *testing.T, rfc3339 string) func() time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, rfc3339)
	if err != nil {
		t.Fatalf("invalid test clock %q: %v", rfc3339, err)
	}
	return func() time.Time { return ts }
}

func mustDate(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	if err != nil {
		t.Fatalf("invalid test date %q: %v", s, err)
	}
	return d
}

func putMember(t *testing.T, repo *memory.Memory, m *model.Member) {
	t.Helper()
	if m.Role == "" {
		m.Role = types.RoleMember
	}
	if err := repo.Member().Put(context.Background(), m); err != nil {
		t.Fatalf("failed to put member %s: %v", m.ID, err)
	}
}
