package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/diffcard"
)

// StyleFromPalette maps chroma token categories onto palette colors.
// Keywords are bold; type keywords take the type color.
func StyleFromPalette(p diffcard.Palette) StyleFunc {
	fg := func(c diffcard.Color) diffcard.Style { return diffcard.Style{Foreground: string(c)} }
	bold := func(c diffcard.Color) diffcard.Style { return diffcard.Style{Foreground: string(c), Bold: true} }

	return func(tt chromalib.TokenType) diffcard.Style {
		switch {
		case tt == chromalib.KeywordType:
			return bold(p.Type)
		case tt.InCategory(chromalib.Keyword):
			return bold(p.Keyword)
		case tt.InCategory(chromalib.Comment):
			return fg(p.Comment)
		case tt.InSubCategory(chromalib.LiteralString):
			return fg(p.String)
		case tt.InSubCategory(chromalib.LiteralNumber):
			return fg(p.Number)
		case tt.InCategory(chromalib.Operator):
			return fg(p.Operator)
		case tt == chromalib.NameClass:
			return fg(p.Type)
		case tt == chromalib.NameFunction, tt == chromalib.NameFunctionMagic:
			return fg(p.Function)
		case tt == chromalib.NameConstant, tt == chromalib.NameBuiltin, tt == chromalib.NameBuiltinPseudo:
			return fg(p.Constant)
		case tt == chromalib.Punctuation:
			return fg(p.Punctuation)
		case tt == chromalib.GenericHeading, tt == chromalib.GenericSubheading:
			return bold(p.Function)
		case tt == chromalib.GenericStrong:
			return diffcard.Style{Bold: true}
		}
		return diffcard.Style{}
	}
}
