package narrative

import "context"

// TextGenerator defines a single-turn completion capability with no
// conversation state. A nil TextGenerator means the capability is absent;
// the synthesizer then goes straight to templated output.
type TextGenerator interface {
	// Complete sends one prompt and returns the generated text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Narrative 报告文本
type Narrative struct {
	Summary          string `json:"summary"`
	DetailedAnalysis string `json:"detailed_analysis"`
}
