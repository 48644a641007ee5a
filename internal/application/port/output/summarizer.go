package output

import "context"

// SummarizerPort is the language model capability consumed by the research
// pipeline. Single-shot, no streaming.
type SummarizerPort interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}
