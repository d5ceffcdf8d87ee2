// =============================================================================
// 📦 spanpair 配置加载器
// =============================================================================
// 统一配置加载，支持 YAML 文件 + 环境变量覆盖
//
// 使用方法:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("spanpair.yaml").
//	    WithEnvPrefix("SPANPAIR").
//	    Load()
//
// 配置优先级: 默认值 → YAML 文件 → 环境变量
// =============================================================================
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BaSui01/spanpair/types"
)

// =============================================================================
// 🎯 核心配置结构
// =============================================================================

// Config 是 spanpair 的完整配置结构
type Config struct {
	// Sampling 采样配置
	Sampling SamplingConfig `yaml:"sampling" env:"SAMPLING"`

	// Tokenizer 分词器配置
	Tokenizer TokenizerConfig `yaml:"tokenizer" env:"TOKENIZER"`

	// Log 日志配置
	Log LogConfig `yaml:"log" env:"LOG"`

	// Metrics 指标配置
	Metrics MetricsConfig `yaml:"metrics" env:"METRICS"`
}

// SamplingConfig 锚点/正样本采样配置
type SamplingConfig struct {
	// 每个文档的锚点数
	NumAnchors int `yaml:"num_anchors" env:"NUM_ANCHORS"`
	// 每个锚点的正样本数
	NumPositives int `yaml:"num_positives" env:"NUM_POSITIVES"`
	// 最小片段长度（tokens）
	MinSpanLen int `yaml:"min_span_len" env:"MIN_SPAN_LEN"`
	// 最大片段长度（tokens）
	MaxSpanLen int `yaml:"max_span_len" env:"MAX_SPAN_LEN"`
	// 采样策略: subsuming, adjacent, none
	Strategy string `yaml:"strategy" env:"STRATEGY"`
	// 每个锚点的最大重采样次数
	MaxAttempts int `yaml:"max_attempts" env:"MAX_ATTEMPTS"`
	// 文档最少 token 数，0 表示不设下限
	MinDocumentTokens int `yaml:"min_document_tokens" env:"MIN_DOCUMENT_TOKENS"`
	// 随机种子，0 表示按时间播种
	Seed int64 `yaml:"seed" env:"SEED"`
	// 多文档采样并发度
	Concurrency int `yaml:"concurrency" env:"CONCURRENCY"`
}

// TokenizerConfig 分词器配置
type TokenizerConfig struct {
	// 类型: whitespace, regex, tiktoken
	Type string `yaml:"type" env:"TYPE"`
	// tiktoken 模型名（如 gpt-4o），仅 tiktoken 使用
	Model string `yaml:"model" env:"MODEL"`
	// 自定义正则，仅 regex 使用；为空时使用默认的词/标点模式
	Pattern string `yaml:"pattern" env:"PATTERN"`
}

// LogConfig 日志配置
type LogConfig struct {
	// 日志级别: debug, info, warn, error
	Level string `yaml:"level" env:"LEVEL"`
	// 输出格式: json, console
	Format string `yaml:"format" env:"FORMAT"`
	// 输出路径
	OutputPaths []string `yaml:"output_paths" env:"OUTPUT_PATHS"`
	// 是否启用调用者信息
	EnableCaller bool `yaml:"enable_caller" env:"ENABLE_CALLER"`
	// 是否启用堆栈跟踪
	EnableStacktrace bool `yaml:"enable_stacktrace" env:"ENABLE_STACKTRACE"`
}

// MetricsConfig Prometheus 指标配置
type MetricsConfig struct {
	// 是否启用
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// 指标命名空间
	Namespace string `yaml:"namespace" env:"NAMESPACE"`
}

// =============================================================================
// 🔧 配置加载器
// =============================================================================

// Loader 配置加载器（Builder 模式）
type Loader struct {
	configPath string
	envPrefix  string
	validators []func(*Config) error
}

// NewLoader 创建新的配置加载器
func NewLoader() *Loader {
	return &Loader{
		envPrefix:  "SPANPAIR",
		validators: make([]func(*Config) error, 0),
	}
}

// WithConfigPath 设置配置文件路径
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix 设置环境变量前缀
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithValidator 添加配置验证器
func (l *Loader) WithValidator(v func(*Config) error) *Loader {
	l.validators = append(l.validators, v)
	return l
}

// Load 加载配置
// 优先级: 默认值 → YAML 文件 → 环境变量
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := l.loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	for _, v := range l.validators {
		if err := v(cfg); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}

	return cfg, nil
}

// loadFromFile 从 YAML 文件加载配置
func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 文件不存在，使用默认值
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// loadFromEnv 从环境变量加载配置
// 键名由前缀与各级 env 标签以下划线拼接，如 SPANPAIR_SAMPLING_MAX_ATTEMPTS。
func (l *Loader) loadFromEnv(cfg *Config) error {
	for _, b := range envBindings(reflect.ValueOf(cfg).Elem(), l.envPrefix) {
		raw, ok := os.LookupEnv(b.key)
		if !ok || raw == "" {
			continue
		}
		if err := b.set(raw); err != nil {
			return fmt.Errorf("invalid value for %s: %w", b.key, err)
		}
	}
	return nil
}

// envBinding 是一个叶子字段与其环境变量键的绑定。
type envBinding struct {
	key   string
	field reflect.Value
}

// envBindings 展开嵌套结构体，返回所有带 env 标签且可写的叶子字段。
func envBindings(v reflect.Value, prefix string) []envBinding {
	var out []envBinding
	for _, sf := range reflect.VisibleFields(v.Type()) {
		tag := sf.Tag.Get("env")
		if tag == "" || tag == "-" || len(sf.Index) != 1 {
			continue
		}
		key := prefix + "_" + tag
		fv := v.FieldByIndex(sf.Index)
		if fv.Kind() == reflect.Struct {
			out = append(out, envBindings(fv, key)...)
			continue
		}
		if fv.CanSet() {
			out = append(out, envBinding{key: key, field: fv})
		}
	}
	return out
}

var durationType = reflect.TypeOf(time.Duration(0))

// set 按字段类型解析 raw 并写入；不支持的类型静默忽略。
func (b envBinding) set(raw string) error {
	f := b.field
	if f.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		f.SetInt(int64(d))
		return nil
	}

	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		f.SetBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetInt(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetFloat(v)
	case reflect.Slice:
		if f.Type().Elem().Kind() != reflect.String {
			return nil
		}
		// 逗号分隔，去掉空项
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		f.Set(reflect.ValueOf(items))
	}
	return nil
}

// =============================================================================
// 🔍 辅助函数
// =============================================================================

// MustLoad 加载配置，失败时 panic
func MustLoad(path string) *Config {
	cfg, err := NewLoader().WithConfigPath(path).Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// LoadFromEnv 仅从环境变量加载配置
func LoadFromEnv() (*Config, error) {
	return NewLoader().Load()
}

// Validate 验证配置
func (c *Config) Validate() error {
	var errs []string

	s := c.Sampling
	if s.NumAnchors < 1 {
		errs = append(errs, "sampling.num_anchors must be >= 1")
	}
	if s.NumPositives < 1 {
		errs = append(errs, "sampling.num_positives must be >= 1")
	}
	if s.MinSpanLen < 1 {
		errs = append(errs, "sampling.min_span_len must be >= 1")
	}
	if s.MaxSpanLen < s.MinSpanLen {
		errs = append(errs, "sampling.max_span_len must be >= min_span_len")
	}
	switch strings.ToLower(s.Strategy) {
	case "", "none", "null", "subsuming", "adjacent":
	default:
		errs = append(errs, fmt.Sprintf("unknown sampling.strategy %q", s.Strategy))
	}
	if s.MaxAttempts < 1 {
		errs = append(errs, "sampling.max_attempts must be >= 1")
	}
	if s.MinDocumentTokens < 0 {
		errs = append(errs, "sampling.min_document_tokens must be >= 0")
	}
	if s.Concurrency < 1 {
		errs = append(errs, "sampling.concurrency must be >= 1")
	}

	// tokenizer.type 在 tokenizer.NewFromConfig 中解析，可以是任意已注册的名称

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		errs = append(errs, "metrics.namespace must not be empty when metrics are enabled")
	}

	if len(errs) > 0 {
		return types.Errorf(types.ErrInvalidConfig, "config validation errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
