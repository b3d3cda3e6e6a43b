package script

import (
	"strings"
)

// PartKind says how a Part contributes text to its Word.
type PartKind int

const (
	// PartLiteral is text copied as-is.
	PartLiteral PartKind = iota
	// PartVariable is a reference resolved at dispatch time. Its Text is the
	// raw name buffer, including the parentheses of a grouped reference.
	PartVariable
)

// Part is a run of a Word.
type Part struct {
	Kind PartKind
	Text string
}

// Word is one argument or modifier token.
type Word struct {
	Parts []Part
}

// Lit builds a Word holding only literal text.
func Lit(s string) Word {
	return Word{Parts: []Part{{Kind: PartLiteral, Text: s}}}
}

// Literal returns the text of the word and whether it has no variable parts.
func (w Word) Literal() (string, bool) {
	var sb strings.Builder
	for _, p := range w.Parts {
		if p.Kind != PartLiteral {
			return "", false
		}
		sb.WriteString(p.Text)
	}
	return sb.String(), true
}

// HasVariables reports whether the word needs resolution.
func (w Word) HasVariables() bool {
	for _, p := range w.Parts {
		if p.Kind == PartVariable {
			return true
		}
	}
	return false
}

func (w *Word) appendLiteral(r rune) {
	if n := len(w.Parts); n > 0 && w.Parts[n-1].Kind == PartLiteral {
		w.Parts[n-1].Text += string(r)
		return
	}
	w.Parts = append(w.Parts, Part{Kind: PartLiteral, Text: string(r)})
}

// String renders the word back into source form.
func (w Word) String() string {
	if len(w.Parts) == 0 {
		return "''"
	}

	var sb strings.Builder
	for _, p := range w.Parts {
		switch p.Kind {
		case PartVariable:
			sb.WriteString("?" + p.Text + "?")
		default:
			sb.WriteString(Quote(p.Text))
		}
	}
	return sb.String()
}

// Instruction is one parsed statement.
type Instruction struct {
	// Command holds the command name followed by its arguments.
	Command []Word
	// Modifiers holds the raw words after "--".
	Modifiers []Word
	// Pos is where the statement started.
	Pos Position
}

// Name is the literal command name, or "" if the first word is computed or
// missing.
func (ins Instruction) Name() string {
	if len(ins.Command) == 0 {
		return ""
	}
	name, _ := ins.Command[0].Literal()
	return name
}

// Empty reports whether both sections are empty.
func (ins Instruction) Empty() bool {
	return len(ins.Command) == 0 && len(ins.Modifiers) == 0
}

// String reconstructs the statement text; parsing the output yields an
// equivalent instruction.
func (ins Instruction) String() string {
	var parts []string
	for _, w := range ins.Command {
		parts = append(parts, w.String())
	}
	if len(ins.Modifiers) > 0 {
		parts = append(parts, "--")
		for _, w := range ins.Modifiers {
			parts = append(parts, w.String())
		}
	}
	return strings.Join(parts, " ")
}

// Quote returns s in a form that lexes back to the same literal text.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !needsQuoting(s) {
		return s
	}

	var sb strings.Builder
	sb.WriteByte('\'')
	for _, r := range s {
		if r == '\'' || r == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('\'')
	return sb.String()
}

func needsQuoting(s string) bool {
	if strings.Contains(s, "--") {
		return true
	}
	for _, r := range s {
		kind, ok := Classify(r)
		if !ok {
			return true
		}
		switch kind {
		case Letter, Digit, Punctuation, Dash:
		default:
			return true
		}
	}
	return false
}
