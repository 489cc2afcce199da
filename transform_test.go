package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commentedPython = `
# This is a comment
def hello():
    """This is a docstring"""
    print("Hello")  # Inline comment
    return True

# Another comment
`

func TestRegexStripper(t *testing.T) {
	stripped := regexStripper{}.Apply(commentedPython)

	assert.NotContains(t, stripped, "#")
	assert.NotContains(t, stripped, `"""`)
	assert.Contains(t, stripped, "def hello():")
	assert.Contains(t, stripped, `print("Hello")`)
	assert.Equal(t, "def hello():\n    print(\"Hello\")  \n    return True", stripped)
}

func TestRegexStripperRemovesAllTripleQuotedStrings(t *testing.T) {
	in := "a = 1  # c\n\n'''doc'''\nb = '''not a docstring'''\nc = 2\n"
	assert.Equal(t, "a = 1  \nb = \nc = 2", regexStripper{}.Apply(in))
}

func TestRegexStripperIdempotent(t *testing.T) {
	inputs := []string{
		commentedPython,
		"",
		"x = 1",
		"x = '#'  # the hash inside quotes also goes\n",
		`''"""a"""'`,
		`"""a""" """b""" """c`,
		`'''a''"""b"""'c'''` + "\nz = 1\n",
		"a\r\nb\rc\u2028d\n\n",
		"s = \"\"\"\nmulti\nline\n\"\"\"\n# tail",
	}

	for _, in := range inputs {
		once := regexStripper{}.Apply(in)
		assert.Equal(t, once, regexStripper{}.Apply(once), "input %q", in)
	}
}

func TestLexerStripper(t *testing.T) {
	s, err := newLexerStripper()
	require.NoError(t, err)

	in := "# comment\ndef f():\n    \"\"\"Doc.\"\"\"\n    return 1  # trailing\n"
	stripped := s.Apply(in)

	assert.Contains(t, stripped, "def f():")
	assert.Contains(t, stripped, "return 1")
	assert.NotContains(t, stripped, "comment")
	assert.NotContains(t, stripped, "Doc.")
	assert.NotContains(t, stripped, "trailing")
	assert.Equal(t, stripped, s.Apply(stripped))
}

func TestLexerStripperDropsTripleQuotedStrings(t *testing.T) {
	s, err := newLexerStripper()
	require.NoError(t, err)

	in := "def f():\n" +
		"    \"\"\"Summary with %s and {x}.\n\n    More \"quoted\" text.\n    \"\"\"\n" +
		"    x = r'''raw\n    block'''\n" +
		"    y = f\"keep {x}\"\n" +
		"    return '' + \"\"\n"
	stripped := s.Apply(in)

	assert.Equal(t, "def f():\n    x =\n    y = f\"keep {x}\"\n    return '' + \"\"", stripped)
	assert.Equal(t, stripped, s.Apply(stripped))
}

func TestNewCommentStripper(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{"", false},
		{"regex", false},
		{"LEXER", false},
		{"ast", true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			stripper, err := newCommentStripper(tt.mode)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, stripper)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, stripper)
		})
	}
}
