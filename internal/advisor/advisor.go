package advisor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/voca-career/internal/llm"
	"github.com/jonathan/voca-career/internal/profile"
	"github.com/jonathan/voca-career/internal/types"
)

// Advisor runs the profile → prompt → completion → extraction pipeline.
// It holds no per-request state and is safe for concurrent use.
type Advisor struct {
	client llm.Client
}

// New creates an Advisor backed by client
func New(client llm.Client) *Advisor {
	return &Advisor{client: client}
}

// Prompt normalizes the profile in req and returns the prompt that would be sent to the provider.
func (a *Advisor) Prompt(req types.ProfileRequest) (string, error) {
	pctx, err := profile.Normalize(req.UserType, req.FormData)
	if err != nil {
		return "", err
	}
	return BuildPrompt(pctx), nil
}

// Advise produces a recommendation for one profile request.
// Errors are *profile.MalformedProfileError, *llm.UpstreamError,
// *UnparsableResponseError or *SchemaMismatchError.
func (a *Advisor) Advise(ctx context.Context, req types.ProfileRequest) (*types.CareerRecommendation, error) {
	prompt, err := a.Prompt(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := a.client.Complete(ctx, prompt)
	if err != nil {
		log.Printf("[advice] %s profile: completion via %s failed after %v: %v", req.UserType, a.client.Provider(), time.Since(start), err)
		return nil, err
	}

	rec, err := Extract(raw)
	if err != nil {
		log.Printf("[advice] %s profile: extraction failed: %v", req.UserType, err)
		return nil, err
	}

	log.Printf("[advice] %s profile: recommendation via %s in %v", req.UserType, a.client.Provider(), time.Since(start))
	return rec, nil
}

// String describes the advisor for startup logs
func (a *Advisor) String() string {
	return fmt.Sprintf("advisor(provider=%s)", a.client.Provider())
}
