package observability

import (
	"context"
	"time"

	"github.com/poiesic/mergen/ai"
)

// Embedder wraps an ai.Embedder and records the latency and outcome of
// every call under the "embedder" service label.
type Embedder struct {
	next ai.Embedder
}

// InstrumentEmbedder returns next wrapped with call metrics.
func InstrumentEmbedder(next ai.Embedder) *Embedder {
	return &Embedder{next: next}
}

func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	v, err := e.next.EmbedText(ctx, text)
	ObserveExternal("embedder", "embed_text", err, time.Since(start))
	return v, err
}

func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()
	v, err := e.next.EmbedTexts(ctx, texts)
	ObserveExternal("embedder", "embed_texts", err, time.Since(start))
	return v, err
}

// Completer wraps an ai.Completer and records the latency and outcome of
// every call under the "completer" service label.
type Completer struct {
	next ai.Completer
}

// InstrumentCompleter returns next wrapped with call metrics.
func InstrumentCompleter(next ai.Completer) *Completer {
	return &Completer{next: next}
}

func (c *Completer) Complete(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	op := "complete"
	if jsonMode {
		op = "complete_json"
	}
	start := time.Now()
	reply, err := c.next.Complete(ctx, prompt, jsonMode)
	ObserveExternal("completer", op, err, time.Since(start))
	return reply, err
}
