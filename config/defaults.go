// =============================================================================
// 📦 spanpair 默认配置
// =============================================================================
// 提供所有配置项的合理默认值
// =============================================================================
package config

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Sampling:  DefaultSamplingConfig(),
		Tokenizer: DefaultTokenizerConfig(),
		Log:       DefaultLogConfig(),
		Metrics:   DefaultMetricsConfig(),
	}
}

// DefaultSamplingConfig 返回默认采样配置
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		NumAnchors:        1,
		NumPositives:      1,
		MinSpanLen:        32,
		MaxSpanLen:        512,
		Strategy:          "none",
		MaxAttempts:       1000,
		MinDocumentTokens: 10,
		Seed:              0,
		Concurrency:       4,
	}
}

// DefaultTokenizerConfig 返回默认分词器配置
func DefaultTokenizerConfig() TokenizerConfig {
	return TokenizerConfig{
		Type:  "whitespace",
		Model: "gpt-4o",
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{"stdout"},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   false,
		Namespace: "spanpair",
	}
}
