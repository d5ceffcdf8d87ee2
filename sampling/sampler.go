package sampling

import (
	"math/rand"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/BaSui01/spanpair/tokenizer"
	"github.com/BaSui01/spanpair/types"
)

const (
	// DefaultMaxAttempts 每个锚点的最大抽取次数。
	DefaultMaxAttempts = 1000
	// DefaultMinDocumentTokens 文档最少 token 数；低于此值的文档直接拒绝。
	DefaultMinDocumentTokens = 10
	// DefaultConcurrency SampleDocuments 的默认并发度。
	DefaultConcurrency = 4

	tracerName = "github.com/BaSui01/spanpair/sampling"
)

// RandSource 是采样使用的均匀整数源，*math/rand.Rand 满足该接口。
// Intn 返回 [0, n) 内的均匀整数。
type RandSource interface {
	Intn(n int) int
}

// MetricsRecorder 记录单次采样调用的结果。
type MetricsRecorder interface {
	RecordSample(strategy, status string, duration time.Duration, documentTokens, anchors, positives, resamples int)
}

// 采样调用状态，用作指标标签。
const (
	StatusSuccess        = "success"
	StatusInvalidConfig  = "invalid_config"
	StatusExhausted      = "exhausted"
	StatusTokenizerError = "tokenizer_error"
)

// Request 单次采样请求
type Request struct {
	NumAnchors   int      `json:"num_anchors"`   // 锚点数
	NumPositives int      `json:"num_positives"` // 每个锚点的正样本数
	MinSpanLen   int      `json:"min_span_len"`  // 最小片段长度（tokens）
	MaxSpanLen   int      `json:"max_span_len"`  // 最大片段长度（tokens）
	Strategy     Strategy `json:"strategy"`      // 采样策略
}

// Validate 检查与文档无关的请求参数。
func (r Request) Validate() error {
	if r.NumAnchors < 1 {
		return invalidConfigf("num_anchors must be >= 1, got %d", r.NumAnchors)
	}
	if r.NumPositives < 1 {
		return invalidConfigf("num_positives must be >= 1, got %d", r.NumPositives)
	}
	if r.MinSpanLen < 1 {
		return invalidConfigf("min_span_len must be >= 1, got %d", r.MinSpanLen)
	}
	if r.MinSpanLen > r.MaxSpanLen {
		return invalidConfigf("min_span_len (%d) must be <= max_span_len (%d)", r.MinSpanLen, r.MaxSpanLen)
	}
	if !r.Strategy.Valid() {
		return invalidConfigf("unknown sampling strategy %q", string(r.Strategy))
	}
	return nil
}

// Result 采样结果
type Result struct {
	// Tokens 文档的完整 token 序列
	Tokens []string `json:"tokens"`
	// Anchors 锚点片段，长度为 NumAnchors
	Anchors []Span `json:"anchors"`
	// Positives 正样本片段，按锚点分组，长度为 NumAnchors*NumPositives
	Positives []Span `json:"positives"`
	// NumPositives 每个锚点的正样本数
	NumPositives int `json:"num_positives"`

	tok tokenizer.Tokenizer
}

// Text 返回片段的文本形式（经分词器 Join 拼接）。
func (r *Result) Text(s Span) string {
	return tokenizer.Join(r.tok, r.Tokens[s.Start:s.End])
}

// AnchorTexts 返回所有锚点的文本。
func (r *Result) AnchorTexts() []string {
	return r.texts(r.Anchors)
}

// PositiveTexts 返回所有正样本的文本，顺序与 Positives 一致。
func (r *Result) PositiveTexts() []string {
	return r.texts(r.Positives)
}

// PositivesFor 返回第 i 个锚点的正样本。
func (r *Result) PositivesFor(i int) []Span {
	return r.Positives[i*r.NumPositives : (i+1)*r.NumPositives]
}

func (r *Result) texts(spans []Span) []string {
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = r.Text(s)
	}
	return out
}

// Sampler 锚点/正样本采样器。
// Sampler 持有自己的随机源，不可在多个 goroutine 间共享。
type Sampler struct {
	tokenizer         tokenizer.Tokenizer
	rng               RandSource
	maxAttempts       int
	minDocumentTokens int
	concurrency       int
	logger            *zap.Logger
	metrics           MetricsRecorder
	tracer            trace.Tracer
}

// Option 配置 Sampler。
type Option func(*Sampler)

// WithTokenizer 设置分词器，默认为空白分词。
func WithTokenizer(t tokenizer.Tokenizer) Option {
	return func(s *Sampler) {
		if t != nil {
			s.tokenizer = t
		}
	}
}

// WithRand 设置随机源。
func WithRand(r RandSource) Option {
	return func(s *Sampler) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithSeed 使用固定种子的随机源，输出可复现。
func WithSeed(seed int64) Option {
	return func(s *Sampler) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithMaxAttempts 设置每个锚点的最大抽取次数，n < 1 时忽略。
func WithMaxAttempts(n int) Option {
	return func(s *Sampler) {
		if n >= 1 {
			s.maxAttempts = n
		}
	}
}

// WithMinDocumentTokens 设置文档最少 token 数，0 表示不设下限。
func WithMinDocumentTokens(n int) Option {
	return func(s *Sampler) {
		if n >= 0 {
			s.minDocumentTokens = n
		}
	}
}

// WithConcurrency 设置 SampleDocuments 的并发度，n < 1 时忽略。
func WithConcurrency(n int) Option {
	return func(s *Sampler) {
		if n >= 1 {
			s.concurrency = n
		}
	}
}

// WithLogger 设置 logger。
func WithLogger(l *zap.Logger) Option {
	return func(s *Sampler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics 设置指标记录器。
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Sampler) {
		s.metrics = m
	}
}

// WithTracer 设置 OpenTelemetry tracer，默认使用全局 TracerProvider。
func WithTracer(t trace.Tracer) Option {
	return func(s *Sampler) {
		if t != nil {
			s.tracer = t
		}
	}
}

// NewSampler 创建采样器
func NewSampler(opts ...Option) *Sampler {
	s := &Sampler{
		tokenizer:         tokenizer.NewWhitespaceTokenizer(),
		maxAttempts:       DefaultMaxAttempts,
		minDocumentTokens: DefaultMinDocumentTokens,
		concurrency:       DefaultConcurrency,
		logger:            zap.NewNop(),
		tracer:            otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.logger = s.logger.With(zap.String("component", "span_sampler"))
	return s
}

// SampleAnchorPositives 采样并返回锚点文本与按锚点分组的正样本文本。
func (s *Sampler) SampleAnchorPositives(text string, req Request) (anchors, positives []string, err error) {
	res, err := s.Sample(text, req)
	if err != nil {
		return nil, nil, err
	}
	return res.AnchorTexts(), res.PositiveTexts(), nil
}

// Sample 对文档执行一次锚点/正样本采样，返回下标级结果。
// 任何配置错误都在抽样前返回，不会产生部分结果。
func (s *Sampler) Sample(text string, req Request) (*Result, error) {
	start := time.Now()
	res, numTokens, resamples, err := s.sample(text, req)
	s.record(req, start, res, numTokens, resamples, err)
	return res, err
}

func (s *Sampler) sample(text string, req Request) (*Result, int, int, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, 0, err
	}

	tokens, err := s.tokenizer.Tokenize(text)
	if err != nil {
		return nil, 0, 0, tokenizerError(err)
	}
	n := len(tokens)

	if err := s.checkDocument(n, req); err != nil {
		return nil, n, 0, err
	}

	res := &Result{
		Tokens:       tokens,
		Anchors:      make([]Span, 0, req.NumAnchors),
		Positives:    make([]Span, 0, req.NumAnchors*req.NumPositives),
		NumPositives: req.NumPositives,
		tok:          s.tokenizer,
	}

	resamples := 0
	for i := 0; i < req.NumAnchors; i++ {
		anchor, redraws, err := s.drawAnchor(n, req)
		resamples += redraws
		if err != nil {
			return nil, n, resamples, err
		}
		res.Anchors = append(res.Anchors, anchor)
		for j := 0; j < req.NumPositives; j++ {
			res.Positives = append(res.Positives, s.drawPositive(anchor, n, req))
		}
	}

	return res, n, resamples, nil
}

// checkDocument 检查请求对 n 个 token 的文档是否可满足。
func (s *Sampler) checkDocument(n int, req Request) error {
	if n < s.minDocumentTokens {
		return invalidConfigf("document has %d tokens, need at least %d", n, s.minDocumentTokens)
	}
	if req.MaxSpanLen > n {
		return invalidConfigf("max_span_len (%d) exceeds document length (%d tokens)", req.MaxSpanLen, n)
	}
	// 最短锚点两侧至少一侧要能放下最短正样本
	if req.Strategy == StrategyAdjacent && n < 2*req.MinSpanLen {
		return invalidConfigf("adjacent sampling needs at least %d tokens (2*min_span_len), document has %d",
			2*req.MinSpanLen, n)
	}
	return nil
}

// drawAnchor 在能容纳至少一个正样本的锚点中均匀抽取。
// 候选集按策略精确枚举，因此可行请求不会重抽；MaxAttempts 仅作为兜底上限，
// 候选集为空或抽到的锚点仍无正样本空间时返回耗尽错误。
// 返回值 redraws 为被丢弃的抽取次数。
func (s *Sampler) drawAnchor(n int, req Request) (Span, int, error) {
	total := anchorCount(n, req)
	attempt := 0
	for ; total > 0 && attempt < s.maxAttempts; attempt++ {
		anchor := nthAnchor(n, req, s.rng.Intn(total))
		if positiveSpace(anchor, n, req) > 0 {
			return anchor, attempt, nil
		}
	}
	s.logger.Warn("anchor sampling exhausted",
		zap.String("strategy", req.Strategy.String()),
		zap.Int("tokens", n),
		zap.Int("min_span_len", req.MinSpanLen),
		zap.Int("max_span_len", req.MaxSpanLen),
		zap.Int("candidates", total),
		zap.Int("attempts", attempt))
	return Span{}, attempt, exhaustedError(req.Strategy, attempt)
}

// anchorCount 返回满足策略的锚点候选数。
// subsuming 与 none 下任一合法片段都能容纳正样本（锚点长度 >= min）。
func anchorCount(n int, req Request) int {
	if req.Strategy == StrategyAdjacent {
		return adjacentAnchorCount(n, req.MinSpanLen, req.MaxSpanLen)
	}
	return spanCount(n, req.MinSpanLen, req.MaxSpanLen)
}

func nthAnchor(n int, req Request, k int) Span {
	if req.Strategy == StrategyAdjacent {
		return nthAdjacentAnchor(n, req.MinSpanLen, req.MaxSpanLen, k)
	}
	return nthSpan(0, n, req.MinSpanLen, req.MaxSpanLen, k)
}

// positiveSpace 返回给定锚点下满足策略的正样本候选数。
func positiveSpace(anchor Span, n int, req Request) int {
	lo, hi := req.MinSpanLen, req.MaxSpanLen
	switch req.Strategy {
	case StrategySubsuming:
		return spanCount(anchor.Len(), lo, hi)
	case StrategyAdjacent:
		return spanCount(anchor.Start, lo, hi) + spanCount(n-anchor.End, lo, hi)
	default:
		return spanCount(n, lo, hi)
	}
}

// drawPositive 在策略允许的候选中均匀抽取一个正样本。
func (s *Sampler) drawPositive(anchor Span, n int, req Request) Span {
	lo, hi := req.MinSpanLen, req.MaxSpanLen
	switch req.Strategy {
	case StrategySubsuming:
		return drawSpan(s.rng, anchor.Start, anchor.Len(), lo, hi)
	case StrategyAdjacent:
		// 左右两侧的候选合并后统一编号，保证整体均匀
		left := spanCount(anchor.Start, lo, hi)
		right := spanCount(n-anchor.End, lo, hi)
		k := s.rng.Intn(left + right)
		if k < left {
			return nthSpan(0, anchor.Start, lo, hi, k)
		}
		return nthSpan(anchor.End, n-anchor.End, lo, hi, k-left)
	default:
		return drawSpan(s.rng, 0, n, lo, hi)
	}
}

func (s *Sampler) record(req Request, start time.Time, res *Result, numTokens, resamples int, err error) {
	status := statusOf(err)

	anchors, positives := 0, 0
	if res != nil {
		anchors, positives = len(res.Anchors), len(res.Positives)
	}

	if s.metrics != nil {
		s.metrics.RecordSample(req.Strategy.String(), status, time.Since(start), numTokens, anchors, positives, resamples)
	}

	if err != nil {
		s.logger.Debug("sampling rejected",
			zap.String("strategy", req.Strategy.String()),
			zap.String("status", status),
			zap.Int("tokens", numTokens),
			zap.Error(err))
		return
	}
	s.logger.Debug("sampling completed",
		zap.String("strategy", req.Strategy.String()),
		zap.Int("tokens", numTokens),
		zap.Int("anchors", anchors),
		zap.Int("positives", positives),
		zap.Int("resamples", resamples))
}

// statusOf 将采样错误映射为指标状态。
func statusOf(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case types.IsCode(err, types.ErrSamplingExhausted):
		return StatusExhausted
	case types.IsCode(err, types.ErrTokenizerError):
		return StatusTokenizerError
	default:
		return StatusInvalidConfig
	}
}
