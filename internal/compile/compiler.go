// Package compile chains the provider orchestrator, the response sanitizer,
// and the relation graph resolver into the blueprint compilation pipeline.
package compile

import (
	"context"

	"go.uber.org/zap"

	"github.com/blueprint-lang/blueprint/internal/llm"
	"github.com/blueprint-lang/blueprint/internal/sanitize"
	"github.com/blueprint-lang/blueprint/internal/schema"
)

// Generator is the slice of the orchestrator the compiler depends on.
type Generator interface {
	Generate(ctx context.Context, req llm.Request, preferred ...string) (*llm.GenerationResult, error)
}

// Result is one finished compilation: the validated blueprint, its resolved
// relation graph, and the generation provenance. The blueprint is handed to
// the caller by reference and never mutated here afterward.
type Result struct {
	Blueprint  *schema.Blueprint
	Graph      *schema.RelationGraph
	Generation *llm.GenerationResult
	CleanYAML  string
}

// Compiler turns a free-form application description into a validated
// blueprint.
type Compiler struct {
	generator Generator
	logger    *zap.Logger
}

// New creates a Compiler on top of a generation backend.
func New(generator Generator, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{generator: generator, logger: logger}
}

// Compile runs description -> generation -> sanitization -> decode ->
// relation resolution. Every failure past the orchestrator's internal
// fallback is terminal and propagates with its diagnostic context; no
// partially valid blueprint is ever returned.
func (c *Compiler) Compile(ctx context.Context, description string, preferred ...string) (*Result, error) {
	gen, err := c.generator.Generate(ctx, buildRequest(description), preferred...)
	if err != nil {
		return nil, err
	}
	c.logger.Info("generation complete",
		zap.String("provider", gen.Provider),
		zap.Duration("duration", gen.Duration))

	cleaned, err := sanitize.Sanitize(gen.Content)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("response sanitized",
		zap.Int("stages", len(cleaned.Stages)))

	bp, err := schema.Decode(cleaned.Clean)
	if err != nil {
		return nil, err
	}

	graph, err := schema.Resolve(bp.Modules)
	if err != nil {
		return nil, err
	}
	c.logger.Info("blueprint resolved",
		zap.Int("modules", len(bp.Modules)),
		zap.Int("relations", graph.Len()))

	return &Result{
		Blueprint:  bp,
		Graph:      graph,
		Generation: gen,
		CleanYAML:  cleaned.Clean,
	}, nil
}

// Validate runs the sanitizer, decoder, and resolver over existing blueprint
// text without invoking any provider.
func Validate(text string) (*Result, error) {
	cleaned, err := sanitize.Sanitize(text)
	if err != nil {
		return nil, err
	}
	bp, err := schema.Decode(cleaned.Clean)
	if err != nil {
		return nil, err
	}
	graph, err := schema.Resolve(bp.Modules)
	if err != nil {
		return nil, err
	}
	return &Result{Blueprint: bp, Graph: graph, CleanYAML: cleaned.Clean}, nil
}
