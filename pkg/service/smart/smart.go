package smart

import (
	"context"
	_ "embed"
	"encoding/json"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

//go:embed prompt/classify_system.md
var classifySystemPrompt string

//go:embed prompt/rewrite_system.md
var rewriteSystemPrompt string

// DefaultTimeout bounds each LLM call. The workflow engine proceeds with
// fallback values when a call exceeds it.
const DefaultTimeout = 8 * time.Second

// Classifier judges whether a goal statement meets the SMART criteria
type Classifier interface {
	Classify(ctx context.Context, goalText string) (bool, error)
}

// Rewriter rephrases a goal statement into a SMART form
type Rewriter interface {
	Rewrite(ctx context.Context, goalText string) (string, error)
}

// Service implements both capabilities on a single LLM client. Both
// operations are best-effort: callers must treat any error as a signal
// to fall back (verdict false, original text), never as a hard failure.
type Service struct {
	llm     gollem.LLMClient
	timeout time.Duration
}

var (
	_ Classifier = &Service{}
	_ Rewriter   = &Service{}
)

// Option is a functional option for Service configuration
type Option func(*Service)

// WithTimeout overrides the per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// New creates a new SMART goal service backed by the given LLM client
func New(llm gollem.LLMClient, opts ...Option) (*Service, error) {
	if llm == nil {
		return nil, goerr.New("LLM client is required")
	}

	s := &Service{
		llm:     llm,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) generate(ctx context.Context, systemPrompt, input string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	agent := gollem.New(s.llm, gollem.WithSystemPrompt(systemPrompt))
	resp, err := agent.Execute(ctx, gollem.Text(input))
	if err != nil {
		return "", goerr.Wrap(err, "LLM call failed")
	}

	text := strings.TrimSpace(strings.Join(resp.Texts, "\n"))
	if text == "" {
		return "", goerr.New("LLM returned empty response")
	}
	return text, nil
}

// Classify reports whether the goal text meets the SMART criteria
func (s *Service) Classify(ctx context.Context, goalText string) (bool, error) {
	out, err := s.generate(ctx, classifySystemPrompt, goalText)
	if err != nil {
		return false, err
	}

	// Models occasionally wrap JSON in code fences
	out = strings.TrimSpace(strings.Trim(out, "`"))
	if idx := strings.Index(out, "{"); idx > 0 {
		out = out[idx:]
	}

	var verdict struct {
		Smart bool `json:"smart"`
	}
	if err := json.Unmarshal([]byte(out), &verdict); err != nil {
		return false, goerr.Wrap(err, "failed to parse classifier verdict", goerr.V("output", out))
	}
	return verdict.Smart, nil
}

// Rewrite rephrases the goal text into a SMART form
func (s *Service) Rewrite(ctx context.Context, goalText string) (string, error) {
	out, err := s.generate(ctx, rewriteSystemPrompt, goalText)
	if err != nil {
		return "", err
	}
	return out, nil
}
