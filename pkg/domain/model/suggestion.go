package model

// GoalSuggestion holds the AI-rewritten alternative of a goal text shown
// during the confirmation step. It lives only in memory alongside the
// pending draft; it is never persisted unless the member accepts it, in
// which case the rewritten text becomes the submission's goal text.
type GoalSuggestion struct {
	Original  string `json:"original"`
	Rewritten string `json:"rewritten"`
	IsSmart   bool   `json:"is_smart"`
}

// HasAlternative reports whether the rewritten text differs from the
// original. When the rewriter degraded and echoed the input back there is
// nothing useful to offer.
func (g *GoalSuggestion) HasAlternative() bool {
	return g.Rewritten != "" && g.Rewritten != g.Original
}
