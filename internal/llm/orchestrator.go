package llm

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultProviderTimeout bounds one backend invocation.
const DefaultProviderTimeout = 60 * time.Second

// Orchestrator tries providers strictly in priority order and returns the
// first non-empty result. Provider health is scoped to a single Generate
// call: a failure here never poisons a later, unrelated call.
type Orchestrator struct {
	providers []Provider
	timeout   time.Duration
	logger    *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTimeout sets the per-provider invocation timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// NewOrchestrator creates an orchestrator over the given priority-ordered
// providers.
func NewOrchestrator(providers []Provider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		providers: providers,
		timeout:   DefaultProviderTimeout,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Providers returns the configured invocation order.
func (o *Orchestrator) Providers() []Provider {
	out := make([]Provider, len(o.providers))
	copy(out, o.providers)
	return out
}

// Generate tries each provider in order until one yields a non-empty
// response. A preferred provider id, when given and known, is promoted to
// the front of the order for this call only. Timeout, transport failure,
// missing credential, and empty content all count as provider failure and
// advance the fallback; when every provider fails the ordered failure list
// is returned as AllProvidersExhaustedError.
func (o *Orchestrator) Generate(ctx context.Context, req Request, preferred ...string) (*GenerationResult, error) {
	order := o.invocationOrder(preferred...)

	var failures []ProviderFailure
	for _, p := range order {
		o.logger.Info("trying provider", zap.String("provider", p.ID()))

		pctx, cancel := context.WithTimeout(ctx, o.timeout)
		result, err := p.Generate(pctx, req)
		cancel()

		if err == nil && strings.TrimSpace(result.Content) == "" {
			err = &ProviderError{Provider: p.ID(), Err: ErrEmptyResponse}
		}
		if err != nil {
			o.logger.Warn("provider failed",
				zap.String("provider", p.ID()),
				zap.Error(err))
			failures = append(failures, ProviderFailure{Provider: p.ID(), Reason: err.Error()})
			continue
		}

		result.RequestID = uuid.New().String()
		o.logger.Info("generation succeeded",
			zap.String("provider", p.ID()),
			zap.String("model", result.Model),
			zap.Duration("duration", result.Duration))
		return result, nil
	}

	return nil, &AllProvidersExhaustedError{Failures: failures}
}

// invocationOrder copies the priority order, promoting a requested preferred
// provider to the front when it exists.
func (o *Orchestrator) invocationOrder(preferred ...string) []Provider {
	order := make([]Provider, len(o.providers))
	copy(order, o.providers)

	if len(preferred) == 0 || preferred[0] == "" {
		return order
	}

	id := preferred[0]
	for i, p := range order {
		if p.ID() == id {
			promoted := append([]Provider{p}, append(order[:i:i], order[i+1:]...)...)
			return promoted
		}
	}
	o.logger.Warn("preferred provider not configured", zap.String("provider", id))
	return order
}
