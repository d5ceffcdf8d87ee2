package sampling

import "github.com/BaSui01/spanpair/types"

// 哨兵错误，按错误码匹配：errors.Is(err, ErrInvalidConfig)。
var (
	// ErrInvalidConfig 表示请求对该文档不可满足：长度区间非法、文档过短、
	// 策略不可行，或重采样耗尽。
	ErrInvalidConfig = types.NewError(types.ErrInvalidConfig, "invalid sampling config")

	// ErrSamplingExhausted 表示没有可容纳正样本的锚点候选，或 MaxAttempts 次内没有抽到。
	// 它总是作为 ErrInvalidConfig 的 cause 出现。
	ErrSamplingExhausted = types.NewError(types.ErrSamplingExhausted, "sampling attempts exhausted")
)

func invalidConfigf(format string, args ...any) error {
	return types.Errorf(types.ErrInvalidConfig, format, args...)
}

func exhaustedError(strategy Strategy, attempts int) error {
	return types.Errorf(types.ErrInvalidConfig, "no anchor admits a positive under the %s strategy", strategy).
		WithCause(types.Errorf(types.ErrSamplingExhausted, "gave up after %d attempts", attempts))
}

func tokenizerError(err error) error {
	return types.NewError(types.ErrTokenizerError, "tokenize document").WithCause(err)
}
