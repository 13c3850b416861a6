// Package predict produces structured match predictions by fanning out to
// the external completion service, one request per upcoming fixture.
package predict

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/soccerhub/soccerhub/internal/feeds"
	"github.com/soccerhub/soccerhub/internal/llm"
)

// systemPrompt instructs the model to answer as a strict JSON record.
const systemPrompt = "You are a football analyst. Predict the outcome of a match. " +
	"Provide odds, predicted score, and a brief analysis. Format the response " +
	"as a simple JSON object with keys: odds, predictedScore, and analysis."

// Result is one structured match prediction. The completion service produces
// it free-form; beyond decoding, no schema is enforced, so any field may be
// empty.
type Result struct {
	Odds           string `json:"odds"`
	PredictedScore string `json:"predictedScore"`
	Analysis       string `json:"analysis"`
}

// Orchestrator issues prediction requests against a completion provider.
type Orchestrator struct {
	provider llm.Provider
	opts     *llm.ChatOptions
}

// NewOrchestrator creates an orchestrator on the given provider. opts may be
// nil to use the provider's defaults.
func NewOrchestrator(provider llm.Provider, opts *llm.ChatOptions) *Orchestrator {
	return &Orchestrator{provider: provider, opts: opts}
}

// Predict requests a single prediction for a match title.
func (o *Orchestrator) Predict(ctx context.Context, title string) (Result, error) {
	resp, err := o.provider.Chat(ctx, []llm.Message{
		llm.SystemMessage(systemPrompt),
		llm.UserMessage("Predict the outcome of this match: " + title),
	}, o.opts)
	if err != nil {
		return Result{}, fmt.Errorf("predict %q: %w", title, err)
	}

	result, err := ParsePrediction(resp.Content)
	if err != nil {
		// Raw content stays server-side; callers only see the error kind.
		log.Printf("predict: unparseable completion for %q: %v", title, err)
		return Result{}, err
	}
	return result, nil
}

// PredictAll requests one prediction per fixture concurrently and returns
// them keyed by fixture title. An empty fixture list returns an empty map
// without issuing any call.
//
// This fan-out is fail-fast: the first failing request cancels the sibling
// calls and fails the whole batch, even if every other request would have
// succeeded. That is the deliberate opposite of the feed fetcher's fail-soft
// policy; do not make the two look alike when refactoring either.
func (o *Orchestrator) PredictAll(ctx context.Context, fixtures []feeds.Fixture) (map[string]Result, error) {
	results := make(map[string]Result, len(fixtures))
	if len(fixtures) == 0 {
		return results, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	for _, fx := range fixtures {
		fx := fx
		g.Go(func() error {
			result, err := o.Predict(gctx, fx.Title)
			if err != nil {
				return err
			}
			mu.Lock()
			results[fx.Title] = result
			mu.Unlock()
			return nil
		})
	}

	// Wait collects every goroutine before returning, so no prediction call
	// outlives the request that started it.
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
