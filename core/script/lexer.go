package script

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// specials take precedence over the letter/digit/punctuation classes.
var specials = map[rune]Kind{
	'\\': Backslash,
	'#':  Comment,
	'\'': SingleQuote,
	'"':  DoubleQuote,
	'?':  VariableSigil,
	'(':  GroupOpen,
	')':  GroupClose,
	'-':  Dash,
	' ':  Whitespace,
	'\t': Whitespace,
	'\r': Whitespace,
	'\n': StatementEnd,
	';':  StatementEnd,
}

// Classify returns the token kind of r. The second return value is false for
// characters that have no class.
func Classify(r rune) (Kind, bool) {
	if kind, ok := specials[r]; ok {
		return kind, true
	}

	switch {
	case unicode.IsLetter(r):
		return Letter, true
	case unicode.IsDigit(r):
		return Digit, true
	case unicode.IsPunct(r), unicode.IsSymbol(r):
		return Punctuation, true
	default:
		return 0, false
	}
}

// Lex turns text into tokens. Unknown characters are dropped and reported.
func Lex(text string) ([]Token, []Diagnostic) {
	tokens := make([]Token, 0, len(text))
	var diags []Diagnostic

	pos := Position{Line: 1, Col: 1}
	for i, r := range text {
		kind, ok := Classify(r)
		if r == utf8.RuneError {
			// Only a literal U+FFFD is three bytes long; anything else is a
			// byte that isn't valid UTF-8.
			_, width := utf8.DecodeRuneInString(text[i:])
			ok = ok && width > 1
		}
		if ok {
			tokens = append(tokens, Token{Kind: kind, Char: r, Pos: pos})
		} else {
			diags = append(diags, Diagnostic{
				Pos:      pos,
				Severity: SeverityError,
				Kind:     DiagUnknownCharacter,
				Message:  fmt.Sprintf("unknown symbol %q at %s", r, pos),
			})
		}

		if r == '\n' {
			pos.Line++
			pos.Col = 1
		} else {
			pos.Col++
		}
	}

	return tokens, diags
}
