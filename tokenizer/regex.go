package tokenizer

import (
	"fmt"
	"regexp"

	"github.com/BaSui01/spanpair/types"
)

// RegexName is the registry name of the default regex tokenizer.
const RegexName = "regex"

// DefaultWordPattern matches words (optionally joined by - or _) and single
// non-space characters, so punctuation becomes its own token.
const DefaultWordPattern = `\w+(?:[-_]\w+)*|\S`

// RegexTokenizer emits every non-overlapping match of a pattern as a token.
type RegexTokenizer struct {
	re *regexp.Regexp
}

// NewRegexTokenizer compiles pattern; an empty pattern uses DefaultWordPattern.
func NewRegexTokenizer(pattern string) (*RegexTokenizer, error) {
	if pattern == "" {
		pattern = DefaultWordPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, types.NewError(types.ErrTokenizerError, "compile token pattern").WithCause(err)
	}
	return &RegexTokenizer{re: re}, nil
}

// MustRegexTokenizer is like NewRegexTokenizer but panics on a bad pattern.
func MustRegexTokenizer(pattern string) *RegexTokenizer {
	t, err := NewRegexTokenizer(pattern)
	if err != nil {
		panic(err)
	}
	return t
}

func (r *RegexTokenizer) Tokenize(text string) ([]string, error) {
	tokens := r.re.FindAllString(text, -1)
	if tokens == nil {
		return []string{}, nil
	}
	return tokens, nil
}

func (r *RegexTokenizer) Name() string {
	return fmt.Sprintf("regex[%s]", r.re.String())
}
