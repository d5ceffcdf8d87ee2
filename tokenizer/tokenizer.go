package tokenizer

import (
	"sort"
	"strings"
	"sync"

	"github.com/BaSui01/spanpair/types"
)

// Tokenizer 将文本切分为有序 token 序列。
type Tokenizer interface {
	// Tokenize 返回 text 的 token 序列，顺序有意义，允许重复。
	Tokenize(text string) ([]string, error)

	// Name 返回分词器的名称.
	Name() string
}

// Joiner 是可选接口：分词器可以提供比单空格拼接更精确的还原方式。
type Joiner interface {
	Join(tokens []string) string
}

// Join 将 token 子序列拼接为文本。
// tok 实现 Joiner 时使用其拼接方式，否则以单个空格分隔。
// 单空格拼接不保证还原原文的空白与标点间距。
func Join(tok Tokenizer, tokens []string) string {
	if j, ok := tok.(Joiner); ok {
		return j.Join(tokens)
	}
	return strings.Join(tokens, " ")
}

// 全局分词器注册表.
var (
	registry   = map[string]Tokenizer{}
	registryMu sync.RWMutex
)

func init() {
	RegisterTokenizer(WhitespaceName, NewWhitespaceTokenizer())
	RegisterTokenizer(RegexName, MustRegexTokenizer(""))
}

// RegisterTokenizer 为给定名称注册分词器，同名覆盖.
func RegisterTokenizer(name string, t Tokenizer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = t
}

// GetTokenizer 返回为给定名称注册的分词器。
// 精确匹配失败时使用最长前缀匹配(如 "gpt-4o-2024-08-06" 匹配 "gpt-4o").
func GetTokenizer(name string) (Tokenizer, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if t, ok := registry[name]; ok {
		return t, nil
	}

	best := ""
	for prefix := range registry {
		if strings.HasPrefix(name, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best != "" {
		return registry[best], nil
	}

	return nil, types.Errorf(types.ErrTokenizerNotFound, "no tokenizer registered for %q", name)
}

// Registered 返回已注册的分词器名称（已排序）.
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
