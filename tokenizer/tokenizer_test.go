package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/spanpair/types"
)

// --- hand-written mock for Tokenizer ---

type mockTokenizer struct {
	tokens []string
	err    error
}

func (m *mockTokenizer) Tokenize(_ string) ([]string, error) { return m.tokens, m.err }
func (m *mockTokenizer) Name() string                         { return "mock" }

type concatTokenizer struct{ mockTokenizer }

func (c *concatTokenizer) Join(tokens []string) string {
	out := ""
	for _, t := range tokens {
		out += t
	}
	return out
}

func TestWhitespaceTokenizer_Tokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "only whitespace",
			input:    " \t\n ",
			expected: []string{},
		},
		{
			name:     "collapses runs of whitespace",
			input:    "  a\tb\n\nc  ",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "punctuation stays attached",
			input:    "They may take our lives, but they'll never take our freedom!",
			expected: []string{"They", "may", "take", "our", "lives,", "but", "they'll", "never", "take", "our", "freedom!"},
		},
		{
			name:     "unicode spaces",
			input:    "你好　世界",
			expected: []string{"你好", "世界"},
		},
	}

	tok := NewWhitespaceTokenizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tok.Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
	assert.Equal(t, "whitespace", tok.Name())
}

func TestRegexTokenizer_Tokenize(t *testing.T) {
	tok, err := NewRegexTokenizer("")
	require.NoError(t, err)

	got, err := tok.Tokenize("they'll never, ok-go!")
	require.NoError(t, err)
	assert.Equal(t, []string{"they", "'", "ll", "never", ",", "ok-go", "!"}, got)

	empty, err := tok.Tokenize("   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)
}

func TestRegexTokenizer_CustomPattern(t *testing.T) {
	tok, err := NewRegexTokenizer(`[a-z]+`)
	require.NoError(t, err)

	got, err := tok.Tokenize("abc 123 def")
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "def"}, got)
	assert.Equal(t, "regex[[a-z]+]", tok.Name())
}

func TestRegexTokenizer_InvalidPattern(t *testing.T) {
	_, err := NewRegexTokenizer(`(unclosed`)
	require.Error(t, err)
	assert.Equal(t, types.ErrTokenizerError, types.GetErrorCode(err))

	assert.Panics(t, func() { MustRegexTokenizer(`(unclosed`) })
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name     string
		tok      Tokenizer
		tokens   []string
		expected string
	}{
		{
			name:     "default joins with single space",
			tok:      &mockTokenizer{},
			tokens:   []string{"a", "b", "c"},
			expected: "a b c",
		},
		{
			name:     "empty tokens",
			tok:      &mockTokenizer{},
			tokens:   nil,
			expected: "",
		},
		{
			name:     "joiner is preferred",
			tok:      &concatTokenizer{},
			tokens:   []string{"He", "llo", " world"},
			expected: "Hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Join(tt.tok, tt.tokens))
		})
	}
}

func TestRegistry_BuiltinsRegistered(t *testing.T) {
	ws, err := GetTokenizer(WhitespaceName)
	require.NoError(t, err)
	assert.Equal(t, "whitespace", ws.Name())

	re, err := GetTokenizer(RegexName)
	require.NoError(t, err)
	assert.Contains(t, re.Name(), "regex")

	assert.Subset(t, Registered(), []string{WhitespaceName, RegexName})
}

func TestRegistry_LongestPrefixMatch(t *testing.T) {
	short := &mockTokenizer{tokens: []string{"short"}}
	long := &mockTokenizer{tokens: []string{"long"}}
	RegisterTokenizer("test-model", short)
	RegisterTokenizer("test-model-large", long)

	got, err := GetTokenizer("test-model-large-v2")
	require.NoError(t, err)
	assert.Same(t, long, got)

	got, err = GetTokenizer("test-model-small")
	require.NoError(t, err)
	assert.Same(t, short, got)
}

func TestRegistry_NotFound(t *testing.T) {
	_, err := GetTokenizer("no-such-tokenizer")
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrTokenizerNotFound))
}
