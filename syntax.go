package diffcard

// Token is a run of source text sharing one syntax style.
type Token struct {
	Text  string
	Style Style
}

// Style is the syntax color of a token. An empty Foreground keeps the
// line's own color.
type Style struct {
	Foreground string
	Bold       bool
}

// Tokenizer splits source code into syntax tokens. Both methods return nil
// for languages they do not know.
type Tokenizer interface {
	Tokenize(language, source string) []Token
	// TokenizeLines lexes the whole source at once and returns the tokens of
	// each line, so constructs spanning lines keep their style.
	TokenizeLines(language, source string) [][]Token
}

// LanguageDetector picks the syntax language for a file name, or "" when
// it cannot tell.
type LanguageDetector interface {
	DetectFromPath(path string) string
}
