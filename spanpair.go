// Package spanpair provides a top-level convenience entry point for sampling
// anchor/positive span pairs with minimal boilerplate.
//
// Usage:
//
//	import "github.com/BaSui01/spanpair"
//
//	anchors, positives, err := spanpair.SampleAnchorPositives(text, 2, 3, 64, 8, spanpair.StrategySubsuming)
//
//	s := spanpair.New(spanpair.WithSeed(42))
//	res, err := s.Sample(text, spanpair.Request{NumAnchors: 1, NumPositives: 4, MinSpanLen: 8, MaxSpanLen: 64})
//
// This is a thin wrapper around [sampling.NewSampler]; both produce identical results.
// Use this package when you prefer the shorter import path.
package spanpair

import (
	"fmt"

	"github.com/BaSui01/spanpair/config"
	"github.com/BaSui01/spanpair/internal/logging"
	"github.com/BaSui01/spanpair/sampling"
)

// Option configures the sampler created by [New].
type Option = sampling.Option

// Request describes one sampling call.
type Request = sampling.Request

// Result holds the index-level output of one sampling call.
type Result = sampling.Result

// Strategy controls where positives may fall relative to their anchor.
type Strategy = sampling.Strategy

// Re-export strategies so callers never need to import sampling/.
const (
	StrategyNone      = sampling.StrategyNone
	StrategySubsuming = sampling.StrategySubsuming
	StrategyAdjacent  = sampling.StrategyAdjacent
)

// Errors matched with errors.Is.
var (
	ErrInvalidConfig     = sampling.ErrInvalidConfig
	ErrSamplingExhausted = sampling.ErrSamplingExhausted
)

// New creates a [sampling.Sampler]. Without options it splits on whitespace
// and draws from a time-seeded source.
func New(opts ...Option) *sampling.Sampler {
	return sampling.NewSampler(opts...)
}

// NewFromConfig builds a sampler and its default request from cfg.
// The logger is created from cfg.Log.
func NewFromConfig(cfg *config.Config, opts ...Option) (*sampling.Sampler, Request, error) {
	if cfg == nil {
		return nil, Request{}, fmt.Errorf("config is nil")
	}
	s, err := sampling.NewSamplerFromConfig(cfg, logging.New(cfg.Log), opts...)
	if err != nil {
		return nil, Request{}, err
	}
	req, err := sampling.RequestFromConfig(cfg.Sampling)
	if err != nil {
		return nil, Request{}, err
	}
	return s, req, nil
}

// Load reads a YAML config file (environment overrides applied) and calls [NewFromConfig].
// An empty path uses defaults plus environment.
func Load(path string, opts ...Option) (*sampling.Sampler, Request, error) {
	cfg, err := config.NewLoader().WithConfigPath(path).Load()
	if err != nil {
		return nil, Request{}, fmt.Errorf("load config: %w", err)
	}
	return NewFromConfig(cfg, opts...)
}

// SampleAnchorPositives samples numAnchors anchors and numPositives positives
// per anchor from text using a fresh time-seeded sampler.
// Positives are returned grouped by anchor.
func SampleAnchorPositives(text string, numAnchors, numPositives, maxSpanLen, minSpanLen int, strategy Strategy) ([]string, []string, error) {
	return New().SampleAnchorPositives(text, Request{
		NumAnchors:   numAnchors,
		NumPositives: numPositives,
		MinSpanLen:   minSpanLen,
		MaxSpanLen:   maxSpanLen,
		Strategy:     strategy,
	})
}

// WithTokenizer sets the tokenizer.
var WithTokenizer = sampling.WithTokenizer

// WithSeed makes output reproducible.
var WithSeed = sampling.WithSeed

// WithRand sets a custom random source.
var WithRand = sampling.WithRand

// WithMaxAttempts bounds anchor redraws.
var WithMaxAttempts = sampling.WithMaxAttempts

// WithMinDocumentTokens sets the shortest accepted document; 0 disables the floor.
var WithMinDocumentTokens = sampling.WithMinDocumentTokens

// WithConcurrency sets the SampleDocuments worker limit.
var WithConcurrency = sampling.WithConcurrency

// WithLogger sets a custom zap logger.
var WithLogger = sampling.WithLogger

// WithMetrics sets a metrics recorder.
var WithMetrics = sampling.WithMetrics

// WithTracer sets an OpenTelemetry tracer.
var WithTracer = sampling.WithTracer
