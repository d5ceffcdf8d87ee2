package tokenizer

import "strings"

// WhitespaceName is the registry name of the whitespace tokenizer.
const WhitespaceName = "whitespace"

// WhitespaceTokenizer splits text on runs of Unicode whitespace.
// It is the reference tokenizer: rejoining its tokens with single spaces
// collapses the original spacing.
type WhitespaceTokenizer struct{}

// NewWhitespaceTokenizer creates a whitespace tokenizer.
func NewWhitespaceTokenizer() *WhitespaceTokenizer {
	return &WhitespaceTokenizer{}
}

func (w *WhitespaceTokenizer) Tokenize(text string) ([]string, error) {
	return strings.Fields(text), nil
}

func (w *WhitespaceTokenizer) Name() string {
	return WhitespaceName
}
