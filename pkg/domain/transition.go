package domain

// Transition is a directed edge leaving Source.
// Target is filled in when a binding resolves it and may be empty when the
// persisted target does not name a known state.
type Transition struct {
	Source StateID  `json:"source" yaml:"source"`
	Target StateRef `json:"target" yaml:"target"`

	// Expression is the guard source text, e.g. "after(1)" or "true".
	Expression string `json:"expression" yaml:"expression"`
}
