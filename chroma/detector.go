package chroma

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/diffcard"
)

// Compile-time interface verification.
var _ diffcard.LanguageDetector = (*Detector)(nil)

// Detector detects programming languages from file names using chroma.
type Detector struct {
	fixed string
}

// NewDetector creates a detector that matches each path against chroma's
// lexer registry.
func NewDetector() *Detector {
	return &Detector{}
}

// NewFixedDetector creates a detector that reports language for every path.
// This reproduces a card where all files share one language tag.
func NewFixedDetector(language string) *Detector {
	return &Detector{fixed: language}
}

// DetectFromPath returns the language name for the given path,
// or an empty string if the language cannot be determined.
// Strips "a/" or "b/" prefixes common in diff output.
func (d *Detector) DetectFromPath(path string) string {
	if d.fixed != "" {
		if lexer := lexers.Get(d.fixed); lexer != nil {
			return lexer.Config().Name
		}
		return ""
	}

	path = strings.TrimPrefix(path, "a/")
	path = strings.TrimPrefix(path, "b/")

	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
