// Config → Tokenizer 桥接层。
package tokenizer

import (
	"github.com/BaSui01/spanpair/config"
)

// NewFromConfig 根据分词器配置创建 Tokenizer。
// Type 为空时使用空白分词；内置类型之外的名称在注册表中查找（见 RegisterTokenizer），
// 找不到时返回 TOKENIZER_NOT_FOUND 错误。
func NewFromConfig(cfg config.TokenizerConfig) (Tokenizer, error) {
	switch cfg.Type {
	case WhitespaceName, "":
		return NewWhitespaceTokenizer(), nil
	case RegexName:
		t, err := NewRegexTokenizer(cfg.Pattern)
		if err != nil {
			return nil, err
		}
		return t, nil
	case "tiktoken":
		model := cfg.Model
		if model == "" {
			model = config.DefaultTokenizerConfig().Model
		}
		return NewTiktokenTokenizer(model), nil
	default:
		return GetTokenizer(cfg.Type)
	}
}
