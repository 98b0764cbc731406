package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider scripts one backend for orchestrator tests.
type fakeProvider struct {
	id       string
	content  string
	err      error
	delay    time.Duration
	attempts int
}

func (f *fakeProvider) ID() string   { return f.id }
func (f *fakeProvider) Name() string { return "Fake " + f.id }

func (f *fakeProvider) Generate(ctx context.Context, req Request) (*GenerationResult, error) {
	f.attempts++
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, &ProviderError{Provider: f.id, Err: ctx.Err()}
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &GenerationResult{
		Content:      f.content,
		Provider:     f.id,
		ProviderName: f.Name(),
	}, nil
}

func TestOrchestratorFirstHealthyWins(t *testing.T) {
	first := &fakeProvider{id: "groq", content: "modules: []"}
	second := &fakeProvider{id: "gemini", content: "unused"}

	o := NewOrchestrator([]Provider{first, second})
	result, err := o.Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)

	assert.Equal(t, "groq", result.Provider)
	assert.Equal(t, 1, first.attempts)
	assert.Equal(t, 0, second.attempts, "later providers must not be attempted")
	assert.NotEmpty(t, result.RequestID)
}

func TestOrchestratorFallback(t *testing.T) {
	failing := &fakeProvider{id: "groq", err: errors.New("rate limited")}
	alsoFailing := &fakeProvider{id: "openrouter", err: errors.New("auth failed")}
	healthy := &fakeProvider{id: "gemini", content: "modules: []"}
	never := &fakeProvider{id: "ollama", content: "unused"}

	o := NewOrchestrator([]Provider{failing, alsoFailing, healthy, never})
	result, err := o.Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)

	assert.Equal(t, "gemini", result.Provider)
	assert.Equal(t, 1, failing.attempts)
	assert.Equal(t, 1, alsoFailing.attempts)
	assert.Equal(t, 0, never.attempts)
}

func TestOrchestratorAllExhausted(t *testing.T) {
	a := &fakeProvider{id: "groq", err: errors.New("rate limited")}
	b := &fakeProvider{id: "openrouter", err: errors.New("timeout")}
	c := &fakeProvider{id: "gemini", err: &ProviderError{Provider: "gemini", Err: ErrMissingCredential}}

	o := NewOrchestrator([]Provider{a, b, c})
	_, err := o.Generate(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllProvidersExhausted)

	var exhausted *AllProvidersExhaustedError
	require.ErrorAs(t, err, &exhausted)

	// Exactly one failure entry per provider, in invocation order
	require.Len(t, exhausted.Failures, 3)
	assert.Equal(t, "groq", exhausted.Failures[0].Provider)
	assert.Equal(t, "openrouter", exhausted.Failures[1].Provider)
	assert.Equal(t, "gemini", exhausted.Failures[2].Provider)
	assert.Contains(t, exhausted.Failures[2].Reason, "credential")
}

func TestOrchestratorEmptyContentIsFailure(t *testing.T) {
	empty := &fakeProvider{id: "groq", content: "   \n"}
	healthy := &fakeProvider{id: "gemini", content: "modules: []"}

	o := NewOrchestrator([]Provider{empty, healthy})
	result, err := o.Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", result.Provider)
}

func TestOrchestratorPreferredPromotion(t *testing.T) {
	first := &fakeProvider{id: "groq", content: "from groq"}
	preferred := &fakeProvider{id: "ollama", content: "from ollama"}

	o := NewOrchestrator([]Provider{first, preferred})

	result, err := o.Generate(context.Background(), Request{Prompt: "x"}, "ollama")
	require.NoError(t, err)
	assert.Equal(t, "ollama", result.Provider)
	assert.Equal(t, 0, first.attempts)

	// Unknown preferred id falls back to the configured order
	result, err = o.Generate(context.Background(), Request{Prompt: "x"}, "nope")
	require.NoError(t, err)
	assert.Equal(t, "groq", result.Provider)
}

func TestOrchestratorPreferredFailureStillFallsBack(t *testing.T) {
	first := &fakeProvider{id: "groq", content: "from groq"}
	preferred := &fakeProvider{id: "ollama", err: errors.New("connection refused")}

	o := NewOrchestrator([]Provider{first, preferred})
	result, err := o.Generate(context.Background(), Request{Prompt: "x"}, "ollama")
	require.NoError(t, err)
	assert.Equal(t, "groq", result.Provider)
	assert.Equal(t, 1, preferred.attempts)
}

func TestOrchestratorTimeout(t *testing.T) {
	slow := &fakeProvider{id: "groq", content: "late", delay: time.Second}
	fast := &fakeProvider{id: "gemini", content: "modules: []"}

	o := NewOrchestrator([]Provider{slow, fast}, WithTimeout(20*time.Millisecond))
	result, err := o.Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", result.Provider, "timed-out result must be discarded")
}

func TestOrchestratorHealthIsCallScoped(t *testing.T) {
	flaky := &fakeProvider{id: "groq", err: errors.New("transient")}
	backup := &fakeProvider{id: "gemini", content: "modules: []"}

	o := NewOrchestrator([]Provider{flaky, backup})

	_, err := o.Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)

	// The earlier failure must not skip the provider on a fresh call
	flaky.err = nil
	flaky.content = "recovered"
	result, err := o.Generate(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "groq", result.Provider)
	assert.Equal(t, 2, flaky.attempts)
}

func TestOrchestratorOrderUnchangedByPromotion(t *testing.T) {
	a := &fakeProvider{id: "groq", err: errors.New("down")}
	b := &fakeProvider{id: "gemini", err: errors.New("down")}
	o := NewOrchestrator([]Provider{a, b})

	_, err := o.Generate(context.Background(), Request{Prompt: "x"}, "gemini")
	require.Error(t, err)

	var exhausted *AllProvidersExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "gemini", exhausted.Failures[0].Provider)
	assert.Equal(t, "groq", exhausted.Failures[1].Provider)

	// The orchestrator's own order is untouched
	providers := o.Providers()
	assert.Equal(t, "groq", providers[0].ID())
}
