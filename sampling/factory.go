// Config → sampling 桥接层。
//
// 提供工厂函数，将全局 config.Config 转换为 sampling 包的运行时实例，
// 消除 config 包和 sampling 包之间的手动配置映射。
package sampling

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/BaSui01/spanpair/config"
	"github.com/BaSui01/spanpair/internal/metrics"
	"github.com/BaSui01/spanpair/tokenizer"
)

// NewSamplerFromConfig 根据全局配置创建 Sampler。
// 额外的 opts 在配置之后应用，可覆盖配置中的任何项。
// 启用指标时会向默认 Prometheus Registry 注册，同一 namespace 只能创建一次。
func NewSamplerFromConfig(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Sampler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tok, err := tokenizer.NewFromConfig(cfg.Tokenizer)
	if err != nil {
		return nil, fmt.Errorf("create tokenizer: %w", err)
	}

	sc := cfg.Sampling
	base := []Option{
		WithTokenizer(tok),
		WithMaxAttempts(sc.MaxAttempts),
		WithMinDocumentTokens(sc.MinDocumentTokens),
		WithConcurrency(sc.Concurrency),
		WithLogger(logger),
	}
	if sc.Seed != 0 {
		base = append(base, WithSeed(sc.Seed))
	}
	if cfg.Metrics.Enabled {
		base = append(base, WithMetrics(metrics.NewCollector(cfg.Metrics.Namespace, logger)))
	}

	logger.Info("span sampler created",
		zap.String("tokenizer", tok.Name()),
		zap.Int("max_attempts", sc.MaxAttempts),
		zap.Int("min_document_tokens", sc.MinDocumentTokens),
		zap.Bool("seeded", sc.Seed != 0),
		zap.Bool("metrics", cfg.Metrics.Enabled))

	return NewSampler(append(base, opts...)...), nil
}

// RequestFromConfig 将采样配置转换为 Request。
func RequestFromConfig(cfg config.SamplingConfig) (Request, error) {
	strategy, err := ParseStrategy(cfg.Strategy)
	if err != nil {
		return Request{}, err
	}
	req := Request{
		NumAnchors:   cfg.NumAnchors,
		NumPositives: cfg.NumPositives,
		MinSpanLen:   cfg.MinSpanLen,
		MaxSpanLen:   cfg.MaxSpanLen,
		Strategy:     strategy,
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}
