// 配置加载器与默认配置测试。
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/spanpair/types"
)

// --- Loader 测试 ---

func TestLoader_LoadDefaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 1, cfg.Sampling.NumAnchors)
	assert.Equal(t, "whitespace", cfg.Tokenizer.Type)
}

func TestLoader_LoadFromYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "spanpair.yaml")

	yamlContent := `
sampling:
  num_anchors: 2
  num_positives: 3
  min_span_len: 4
  max_span_len: 16
  strategy: "adjacent"
  max_attempts: 50
  min_document_tokens: 0
  seed: 42
  concurrency: 8

tokenizer:
  type: "tiktoken"
  model: "gpt-4"

log:
  level: "debug"
  format: "console"

metrics:
  enabled: true
  namespace: "pairs"
`
	err := os.WriteFile(configPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := NewLoader().
		WithConfigPath(configPath).
		Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Sampling.NumAnchors)
	assert.Equal(t, 3, cfg.Sampling.NumPositives)
	assert.Equal(t, 4, cfg.Sampling.MinSpanLen)
	assert.Equal(t, 16, cfg.Sampling.MaxSpanLen)
	assert.Equal(t, "adjacent", cfg.Sampling.Strategy)
	assert.Equal(t, 50, cfg.Sampling.MaxAttempts)
	assert.Equal(t, 0, cfg.Sampling.MinDocumentTokens)
	assert.Equal(t, int64(42), cfg.Sampling.Seed)
	assert.Equal(t, 8, cfg.Sampling.Concurrency)

	assert.Equal(t, "tiktoken", cfg.Tokenizer.Type)
	assert.Equal(t, "gpt-4", cfg.Tokenizer.Model)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "pairs", cfg.Metrics.Namespace)
}

func TestLoader_LoadFromEnv(t *testing.T) {
	t.Setenv("SPANPAIR_SAMPLING_NUM_ANCHORS", "4")
	t.Setenv("SPANPAIR_SAMPLING_STRATEGY", "subsuming")
	t.Setenv("SPANPAIR_SAMPLING_SEED", "7")
	t.Setenv("SPANPAIR_TOKENIZER_TYPE", "regex")
	t.Setenv("SPANPAIR_LOG_OUTPUT_PATHS", "stdout, /tmp/spanpair.log")
	t.Setenv("SPANPAIR_METRICS_ENABLED", "true")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Sampling.NumAnchors)
	assert.Equal(t, "subsuming", cfg.Sampling.Strategy)
	assert.Equal(t, int64(7), cfg.Sampling.Seed)
	assert.Equal(t, "regex", cfg.Tokenizer.Type)
	assert.Equal(t, []string{"stdout", "/tmp/spanpair.log"}, cfg.Log.OutputPaths)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoader_EnvOverridesYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "spanpair.yaml")

	yamlContent := `
sampling:
  num_positives: 2
  max_span_len: 64
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	t.Setenv("SPANPAIR_SAMPLING_MAX_SPAN_LEN", "128")

	cfg, err := NewLoader().WithConfigPath(configPath).Load()
	require.NoError(t, err)

	// 环境变量优先于 YAML
	assert.Equal(t, 128, cfg.Sampling.MaxSpanLen)
	assert.Equal(t, 2, cfg.Sampling.NumPositives)
}

func TestLoader_CustomEnvPrefix(t *testing.T) {
	t.Setenv("MYAPP_SAMPLING_MIN_SPAN_LEN", "3")

	cfg, err := NewLoader().WithEnvPrefix("MYAPP").Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Sampling.MinSpanLen)
}

func TestLoader_InvalidEnvValue(t *testing.T) {
	t.Setenv("SPANPAIR_SAMPLING_NUM_ANCHORS", "many")

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPANPAIR_SAMPLING_NUM_ANCHORS")
}

func TestLoader_EnvListDropsEmptyItems(t *testing.T) {
	t.Setenv("SPANPAIR_LOG_OUTPUT_PATHS", " stderr, , /tmp/a.log,")
	t.Setenv("SPANPAIR_SAMPLING_CONCURRENCY", " 8 ")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"stderr", "/tmp/a.log"}, cfg.Log.OutputPaths)
	assert.Equal(t, 8, cfg.Sampling.Concurrency)
}

func TestLoader_InvalidEnvBool(t *testing.T) {
	t.Setenv("SPANPAIR_METRICS_ENABLED", "sometimes")

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPANPAIR_METRICS_ENABLED")
}

func TestEnvBindings_Keys(t *testing.T) {
	cfg := DefaultConfig()
	keys := make(map[string]bool)
	for _, b := range envBindings(reflect.ValueOf(cfg).Elem(), "P") {
		keys[b.key] = true
	}

	for _, want := range []string{
		"P_SAMPLING_NUM_ANCHORS",
		"P_SAMPLING_MIN_DOCUMENT_TOKENS",
		"P_TOKENIZER_PATTERN",
		"P_LOG_OUTPUT_PATHS",
		"P_METRICS_NAMESPACE",
	} {
		assert.True(t, keys[want], want)
	}
	assert.False(t, keys["P_SAMPLING"], "nested structs are expanded, not bound")
}

func TestLoader_WithValidator(t *testing.T) {
	t.Setenv("SPANPAIR_SAMPLING_MIN_SPAN_LEN", "600")

	_, err := NewLoader().
		WithValidator(func(c *Config) error { return c.Validate() }).
		Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_span_len must be >= min_span_len")
}

func TestLoader_NonExistentFile(t *testing.T) {
	cfg, err := NewLoader().
		WithConfigPath("/nonexistent/spanpair.yaml").
		Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSamplingConfig(), cfg.Sampling)
}

func TestLoader_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	require.NoError(t, os.WriteFile(configPath, []byte("sampling: [unclosed"), 0644))

	_, err := NewLoader().WithConfigPath(configPath).Load()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "default config is valid",
			modify: func(c *Config) {},
		},
		{
			name:    "zero anchors",
			modify:  func(c *Config) { c.Sampling.NumAnchors = 0 },
			wantErr: "num_anchors",
		},
		{
			name:    "zero positives",
			modify:  func(c *Config) { c.Sampling.NumPositives = 0 },
			wantErr: "num_positives",
		},
		{
			name:    "zero min span",
			modify:  func(c *Config) { c.Sampling.MinSpanLen = 0 },
			wantErr: "min_span_len must be >= 1",
		},
		{
			name: "min greater than max",
			modify: func(c *Config) {
				c.Sampling.MinSpanLen = 10
				c.Sampling.MaxSpanLen = 9
			},
			wantErr: "max_span_len must be >= min_span_len",
		},
		{
			name:    "unknown strategy",
			modify:  func(c *Config) { c.Sampling.Strategy = "overlapping" },
			wantErr: "unknown sampling.strategy",
		},
		{
			name:   "null strategy accepted",
			modify: func(c *Config) { c.Sampling.Strategy = "null" },
		},
		{
			name:    "zero attempts",
			modify:  func(c *Config) { c.Sampling.MaxAttempts = 0 },
			wantErr: "max_attempts",
		},
		{
			name:    "negative document floor",
			modify:  func(c *Config) { c.Sampling.MinDocumentTokens = -1 },
			wantErr: "min_document_tokens",
		},
		{
			name:    "zero concurrency",
			modify:  func(c *Config) { c.Sampling.Concurrency = 0 },
			wantErr: "concurrency",
		},
		{
			name:   "registered tokenizer name left to the factory",
			modify: func(c *Config) { c.Tokenizer.Type = "sentencepiece" },
		},
		{
			name:   "empty tokenizer type accepted",
			modify: func(c *Config) { c.Tokenizer.Type = "" },
		},
		{
			name: "metrics without namespace",
			modify: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.Namespace = ""
			},
			wantErr: "metrics.namespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, types.IsCode(err, types.ErrInvalidConfig))
		})
	}
}

func TestMustLoad_Success(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "spanpair.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("sampling:\n  num_anchors: 3\n"), 0644))

	cfg := MustLoad(configPath)
	assert.Equal(t, 3, cfg.Sampling.NumAnchors)
}

func TestMustLoad_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("sampling: [bad"), 0644))

	assert.Panics(t, func() { MustLoad(configPath) })
}

func TestLoadFromEnv_Function(t *testing.T) {
	t.Setenv("SPANPAIR_TOKENIZER_MODEL", "gpt-3.5-turbo")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "gpt-3.5-turbo", cfg.Tokenizer.Model)
}
