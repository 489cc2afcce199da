package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// pythonExtension is the only extension comment stripping applies to.
const pythonExtension = ".py"

// contentTransform rewrites file content before it is recorded.
type contentTransform interface {
	Apply(content string) string
}

var (
	tripleQuotedPattern = regexp.MustCompile(`(?s)""".*?"""|'''.*?'''`)
	hashCommentPattern  = regexp.MustCompile(`#.*`)
)

// regexStripper removes '#' comments and triple-quoted spans with regular
// expressions. It is a heuristic: any triple-quoted string goes, not only
// docstrings, and '#' inside string literals also starts a comment.
type regexStripper struct{}

func (regexStripper) Apply(content string) string {
	// Removing one span can join quotes into a new pair, so repeat until stable.
	for {
		next := tripleQuotedPattern.ReplaceAllString(content, "")
		if next == content {
			break
		}
		content = next
	}
	content = hashCommentPattern.ReplaceAllString(content, "")
	return dropBlankLines(content, false)
}

// lexerStripper drops comment tokens and triple-quoted strings as classified
// by the chroma Python lexer. The lexer only marks some docstrings as
// LiteralStringDoc, so any string token opening with a triple quote is
// dropped along with the rest of that string.
type lexerStripper struct {
	lexer chroma.Lexer
}

func newLexerStripper() (*lexerStripper, error) {
	lexer := lexers.Get("python")
	if lexer == nil {
		return nil, fmt.Errorf("no python lexer available")
	}
	return &lexerStripper{lexer: chroma.Coalesce(lexer)}, nil
}

func (s *lexerStripper) Apply(content string) string {
	iterator, err := s.lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	var (
		b     strings.Builder
		open  string // closing delimiter of the string being dropped
		affix string // pending string prefix such as r or b
	)
	for token := iterator(); token != chroma.EOF; token = iterator() {
		if open != "" {
			if token.Type.InSubCategory(chroma.LiteralString) && strings.HasSuffix(token.Value, open) {
				open = ""
			}
			continue
		}
		if token.Type == chroma.LiteralStringAffix {
			b.WriteString(affix)
			affix = token.Value
			continue
		}
		if token.Type.InSubCategory(chroma.LiteralString) {
			if delim := tripleQuote(token.Value); delim != "" {
				affix = ""
				if len(token.Value) < 6 || !strings.HasSuffix(token.Value, delim) {
					open = delim
				}
				continue
			}
		}
		b.WriteString(affix)
		affix = ""
		if token.Type.InCategory(chroma.Comment) || token.Type == chroma.LiteralStringDoc {
			continue
		}
		b.WriteString(token.Value)
	}
	b.WriteString(affix)
	return dropBlankLines(b.String(), true)
}

// tripleQuote returns the triple-quote delimiter value starts with, if any.
func tripleQuote(value string) string {
	for _, delim := range []string{`"""`, `'''`} {
		if strings.HasPrefix(value, delim) {
			return delim
		}
	}
	return ""
}

func dropBlankLines(content string, trimRight bool) string {
	var kept []string
	for _, line := range splitLines(content) {
		if trimRight {
			line = strings.TrimRight(line, " \t")
		}
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// newCommentStripper returns the stripper for mode ("regex" or "lexer").
func newCommentStripper(mode string) (contentTransform, error) {
	switch strings.ToLower(mode) {
	case "", "regex":
		return regexStripper{}, nil
	case "lexer":
		s, err := newLexerStripper()
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported strip mode: %s. Use 'regex' or 'lexer'", mode)
	}
}
