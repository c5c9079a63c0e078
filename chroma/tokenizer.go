// Package chroma provides syntax highlighting using the chroma library.
package chroma

import (
	"errors"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/diffcard"
)

// Compile-time interface verification.
var _ diffcard.Tokenizer = (*Tokenizer)(nil)

// StyleFunc maps chroma token types to diffcard styles.
type StyleFunc func(chromalib.TokenType) diffcard.Style

// Tokenizer lexes source code with chroma and styles each token.
type Tokenizer struct {
	styleFunc StyleFunc
}

// NewTokenizer creates a Tokenizer. Use StyleFromPalette to derive styleFunc
// from a theme.
func NewTokenizer(styleFunc StyleFunc) (*Tokenizer, error) {
	if styleFunc == nil {
		return nil, errors.New("chroma: styleFunc cannot be nil")
	}
	return &Tokenizer{styleFunc: styleFunc}, nil
}

// Tokenize lexes source as one piece. It returns nil for unknown languages
// and an empty slice for empty source.
func (t *Tokenizer) Tokenize(language, source string) []diffcard.Token {
	if source == "" {
		return []diffcard.Token{}
	}
	raw := t.lex(language, source)
	if raw == nil {
		return nil
	}
	return t.convert(raw)
}

// TokenizeLines lexes the whole source and returns the tokens of each line
// without their newlines. Tokens spanning lines, such as block comments, are
// cut at line ends and keep their style on every line.
func (t *Tokenizer) TokenizeLines(language, source string) [][]diffcard.Token {
	if source == "" {
		return [][]diffcard.Token{}
	}
	raw := t.lex(language, source)
	if raw == nil {
		return nil
	}
	split := chromalib.SplitTokensIntoLines(raw)
	lines := make([][]diffcard.Token, len(split))
	for i, line := range split {
		for j := range line {
			line[j].Value = strings.TrimSuffix(line[j].Value, "\n")
		}
		lines[i] = t.convert(line)
	}
	return lines
}

// lex returns chroma's tokens for source, or nil for unknown languages.
// A newline the lexer appends to unterminated source is removed.
func (t *Tokenizer) lex(language, source string) []chromalib.Token {
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	it, err := chromalib.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return nil
	}
	tokens := it.Tokens()
	if !strings.HasSuffix(source, "\n") && len(tokens) > 0 {
		last := &tokens[len(tokens)-1]
		last.Value = strings.TrimSuffix(last.Value, "\n")
		if last.Value == "" {
			tokens = tokens[:len(tokens)-1]
		}
	}
	return tokens
}

// convert styles tokens, skipping empty ones.
func (t *Tokenizer) convert(raw []chromalib.Token) []diffcard.Token {
	out := make([]diffcard.Token, 0, len(raw))
	for _, tok := range raw {
		if tok.Value == "" {
			continue
		}
		out = append(out, diffcard.Token{Text: tok.Value, Style: t.styleFunc(tok.Type)})
	}
	return out
}
