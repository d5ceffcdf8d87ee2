package tokenizer

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/BaSui01/spanpair/types"
)

// TiktokenTokenizer 以 OpenAI 系列模型的 BPE 编码切分文本。
// 每个 token 是一个或多个相邻 token ID 解码后的片段（拆开的多字节字符会被合并），
// 拼接片段即可还原原文。
type TiktokenTokenizer struct {
	model    string
	encoding string
	enc      *tiktoken.Tiktoken
	once     sync.Once
	initErr  error
}

// 模型编码将模型名称映射到其 tiktoken 编码。
var modelEncodings = map[string]string{
	"gpt-4o":                 "o200k_base",
	"gpt-4o-mini":            "o200k_base",
	"gpt-4-turbo":            "cl100k_base",
	"gpt-4":                  "cl100k_base",
	"gpt-3.5-turbo":          "cl100k_base",
	"text-embedding-3-large": "cl100k_base",
	"text-embedding-3-small": "cl100k_base",
}

// defaultEncoding 用于未知模型。
const defaultEncoding = "cl100k_base"

// NewTiktokenTokenizer 为给定模型创建 tiktoken 分词器。
// 未知模型先尝试最长前缀匹配，再回退到 cl100k_base。
func NewTiktokenTokenizer(model string) *TiktokenTokenizer {
	encoding, ok := modelEncodings[model]
	if !ok {
		best := ""
		for prefix, e := range modelEncodings {
			if strings.HasPrefix(model, prefix) && len(prefix) > len(best) {
				best, encoding = prefix, e
			}
		}
		if best == "" {
			encoding = defaultEncoding
		}
	}

	return &TiktokenTokenizer{
		model:    model,
		encoding: encoding,
	}
}

// init lazily 初始化 tiktoken 编码(可以在第一次使用时下载数据).
func (t *TiktokenTokenizer) init() error {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(t.encoding)
		if err != nil {
			t.initErr = types.Errorf(types.ErrTokenizerError, "init tiktoken encoding %s", t.encoding).WithCause(err)
			return
		}
		t.enc = enc
	})
	return t.initErr
}

func (t *TiktokenTokenizer) Tokenize(text string) ([]string, error) {
	if err := t.init(); err != nil {
		return nil, err
	}
	ids := t.enc.Encode(text, nil, nil)
	pieces := make([]string, len(ids))
	for i, id := range ids {
		pieces[i] = t.enc.Decode([]int{id})
	}
	return mergeRunePieces(pieces), nil
}

// mergeRunePieces 合并字节级 BPE 片段，直到每个 token 都是合法 UTF-8。
// 多字节字符（中日韩文字、emoji）可能被拆到相邻的多个 ID 中，
// 单独解码会得到半个字符；合并后片段边界总落在字符边界上。
func mergeRunePieces(pieces []string) []string {
	tokens := make([]string, 0, len(pieces))
	pending := ""
	for _, p := range pieces {
		pending += p
		if utf8.ValidString(pending) {
			tokens = append(tokens, pending)
			pending = ""
		}
	}
	if pending != "" {
		tokens = append(tokens, pending)
	}
	return tokens
}

// Join 直接拼接 BPE 片段；片段自带前导空格。
func (t *TiktokenTokenizer) Join(tokens []string) string {
	return strings.Join(tokens, "")
}

// Encoding 返回所用编码名.
func (t *TiktokenTokenizer) Encoding() string {
	return t.encoding
}

func (t *TiktokenTokenizer) Name() string {
	return fmt.Sprintf("tiktoken[%s]", t.encoding)
}

// RegisterOpenAITokenizers 以模型名登记所有已知 OpenAI 模型的分词器。
func RegisterOpenAITokenizers() {
	for model := range modelEncodings {
		RegisterTokenizer(model, NewTiktokenTokenizer(model))
	}
}
