package script

import "fmt"

// Kind is the lexical class of a single character.
type Kind int

const (
	Letter Kind = iota
	Digit
	Punctuation
	Backslash
	Comment
	SingleQuote
	DoubleQuote
	VariableSigil
	GroupOpen
	GroupClose
	Dash
	Whitespace
	StatementEnd
)

var kindNames = [...]string{
	Letter:        "Letter",
	Digit:         "Digit",
	Punctuation:   "Punctuation",
	Backslash:     "Backslash",
	Comment:       "Comment",
	SingleQuote:   "SingleQuote",
	DoubleQuote:   "DoubleQuote",
	VariableSigil: "VariableSigil",
	GroupOpen:     "GroupOpen",
	GroupClose:    "GroupClose",
	Dash:          "Dash",
	Whitespace:    "Whitespace",
	StatementEnd:  "StatementEnd",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Position is a 1-based location in the source text.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is a classified character.
type Token struct {
	Kind Kind
	Char rune
	Pos  Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Char, t.Pos)
}
