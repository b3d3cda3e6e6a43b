package script

import (
	"fmt"
	"strings"
)

// Section selects which half of an Instruction receives words.
type Section int

const (
	SectionCommand Section = iota
	SectionModifier
)

type quoteMode int

const (
	quoteNone quoteMode = iota
	quoteSingle
	quoteDouble
)

type commentMode int

const (
	commentNone commentMode = iota
	// commentLine runs to the next StatementEnd.
	commentLine
	// commentGroup runs to the close of the enclosing group.
	commentGroup
)

// collector accumulates a variable name between two sigils.
type collector struct {
	buf   strings.Builder
	start Position
	// baseDepth is the group depth when the sigil was seen. While the parser
	// is deeper than this, characters are copied verbatim.
	baseDepth int
	quote     quoteMode
	escaped   bool
}

// parserState holds every flag of the scan. Each field is independent; the
// transition functions below are the only places they change.
type parserState struct {
	quote   quoteMode
	escaped bool
	comment commentMode
	// commentDepth counts groups opened inside a group comment.
	commentDepth int
	depth        int
	groups       []Position
	variable     *collector
	section      Section
}

type parser struct {
	tokens []Token
	pos    int
	state  parserState

	cur     Instruction
	started bool
	word    Word
	touched bool

	out   []Instruction
	diags []Diagnostic
}

// Parse turns a token stream into instructions. It never fails; problems are
// reported as diagnostics and the affected text is recovered locally.
func Parse(tokens []Token) ([]Instruction, []Diagnostic) {
	p := &parser{tokens: tokens}
	for p.pos = 0; p.pos < len(p.tokens); p.pos++ {
		p.step(p.tokens[p.pos])
	}
	p.finish()
	return p.out, p.diags
}

// ParseString lexes and parses text in one go.
func ParseString(text string) ([]Instruction, []Diagnostic) {
	tokens, lexDiags := Lex(text)
	instructions, parseDiags := Parse(tokens)
	return instructions, append(lexDiags, parseDiags...)
}

func (p *parser) step(tok Token) {
	st := &p.state

	switch st.comment {
	case commentLine:
		if tok.Kind != StatementEnd {
			return
		}
		st.comment = commentNone
	case commentGroup:
		switch {
		case tok.Kind == GroupOpen:
			st.commentDepth++
			return
		case tok.Kind == GroupClose && st.commentDepth > 0:
			st.commentDepth--
			return
		case tok.Kind != GroupClose:
			return
		}
		st.comment = commentNone
	}

	if !p.started && tok.Kind != Whitespace && tok.Kind != StatementEnd && tok.Kind != Comment {
		p.started = true
		p.cur.Pos = tok.Pos
	}

	if st.variable != nil && st.depth > st.variable.baseDepth {
		p.collectRaw(tok)
		return
	}

	if st.escaped {
		st.escaped = false
		p.literal(tok.Char)
		return
	}

	if tok.Kind == Backslash {
		st.escaped = true
		return
	}

	switch st.quote {
	case quoteSingle:
		p.stepSingleQuoted(tok)
	case quoteDouble:
		p.stepDoubleQuoted(tok)
	default:
		p.stepUnquoted(tok)
	}
}

func (p *parser) stepSingleQuoted(tok Token) {
	if tok.Kind == SingleQuote {
		p.state.quote = quoteNone
		return
	}
	p.appendWord(tok.Char)
}

func (p *parser) stepDoubleQuoted(tok Token) {
	st := &p.state

	switch tok.Kind {
	case DoubleQuote:
		p.abandonVariable(tok.Pos)
		st.quote = quoteNone
	case VariableSigil:
		p.sigil(tok)
	case GroupOpen:
		if st.variable != nil {
			p.openRawGroup(tok)
			return
		}
		p.appendWord(tok.Char)
	case Letter, Digit, Dash:
		p.literal(tok.Char)
	default:
		// Whitespace, punctuation and every other special are plain text
		// here, but none of them can be part of a variable name.
		p.abandonVariable(tok.Pos)
		p.appendWord(tok.Char)
	}
}

func (p *parser) stepUnquoted(tok Token) {
	st := &p.state

	switch tok.Kind {
	case Letter, Digit:
		p.literal(tok.Char)

	case SingleQuote:
		p.abandonVariable(tok.Pos)
		st.quote = quoteSingle
		p.touched = true

	case DoubleQuote:
		p.abandonVariable(tok.Pos)
		st.quote = quoteDouble
		p.touched = true

	case VariableSigil:
		p.sigil(tok)

	case Comment:
		p.abandonVariable(tok.Pos)
		if st.depth > 0 {
			st.comment = commentGroup
		} else {
			st.comment = commentLine
		}

	case StatementEnd:
		p.abandonVariable(tok.Pos)
		if st.depth > 0 {
			p.endWord()
			return
		}
		p.endInstruction()

	case Whitespace:
		p.abandonVariable(tok.Pos)
		p.endWord()

	case Punctuation:
		p.abandonVariable(tok.Pos)
		p.appendWord(tok.Char)

	case Dash:
		if st.variable != nil {
			p.literal(tok.Char)
			return
		}
		if next := p.pos + 1; next < len(p.tokens) && p.tokens[next].Kind == Dash {
			p.pos = next
			p.toggleSection()
			return
		}
		p.appendWord(tok.Char)

	case GroupOpen:
		if st.variable != nil {
			p.openRawGroup(tok)
			return
		}
		st.depth++
		st.groups = append(st.groups, tok.Pos)

	case GroupClose:
		p.abandonVariable(tok.Pos)
		if st.depth == 0 {
			p.diag(tok.Pos, SeverityError, DiagUnmatchedGroupClose,
				fmt.Sprintf("unmatched ')' at %s ignored", tok.Pos))
			return
		}
		st.depth--
		st.groups = st.groups[:len(st.groups)-1]
	}
}

// collectRaw copies the body of a grouped variable reference. Quotes and
// escapes are tracked only so that a quoted or escaped ')' does not close
// the group.
func (p *parser) collectRaw(tok Token) {
	st := &p.state
	v := st.variable
	v.buf.WriteRune(tok.Char)

	switch {
	case v.escaped:
		v.escaped = false
	case tok.Kind == Backslash:
		v.escaped = true
	case tok.Kind == SingleQuote && v.quote != quoteDouble:
		v.quote = toggleQuote(v.quote, quoteSingle)
	case tok.Kind == DoubleQuote && v.quote != quoteSingle:
		v.quote = toggleQuote(v.quote, quoteDouble)
	case v.quote != quoteNone:
	case tok.Kind == GroupOpen:
		st.depth++
		st.groups = append(st.groups, tok.Pos)
	case tok.Kind == GroupClose:
		st.depth--
		st.groups = st.groups[:len(st.groups)-1]
	}
}

func toggleQuote(current, mode quoteMode) quoteMode {
	if current == mode {
		return quoteNone
	}
	return mode
}

func (p *parser) openRawGroup(tok Token) {
	st := &p.state
	st.variable.buf.WriteRune(tok.Char)
	st.depth++
	st.groups = append(st.groups, tok.Pos)
}

func (p *parser) sigil(tok Token) {
	st := &p.state
	if st.variable == nil {
		st.variable = &collector{start: tok.Pos, baseDepth: st.depth}
		return
	}

	p.word.Parts = append(p.word.Parts, Part{Kind: PartVariable, Text: st.variable.buf.String()})
	st.variable = nil
}

// abandonVariable discards an unterminated variable. The discarded name
// contributes no text.
func (p *parser) abandonVariable(at Position) {
	v := p.state.variable
	if v == nil {
		return
	}
	p.state.variable = nil
	if p.state.depth > v.baseDepth {
		p.state.depth = v.baseDepth
		p.state.groups = p.state.groups[:v.baseDepth]
	}
	p.diag(v.start, SeverityWarning, DiagIgnoredVariable,
		fmt.Sprintf("unterminated variable %q at %s ignored (broken at %s)", "?"+v.buf.String(), v.start, at))
}

// literal appends r to the variable being collected, or to the current word.
func (p *parser) literal(r rune) {
	if v := p.state.variable; v != nil {
		v.buf.WriteRune(r)
		return
	}
	p.appendWord(r)
}

func (p *parser) appendWord(r rune) {
	p.word.appendLiteral(r)
}

func (p *parser) endWord() {
	if len(p.word.Parts) > 0 || p.touched {
		if p.state.section == SectionModifier {
			p.cur.Modifiers = append(p.cur.Modifiers, p.word)
		} else {
			p.cur.Command = append(p.cur.Command, p.word)
		}
	}
	p.word = Word{}
	p.touched = false
}

func (p *parser) toggleSection() {
	p.endWord()
	if p.state.section == SectionCommand {
		p.state.section = SectionModifier
	} else {
		p.state.section = SectionCommand
	}
}

func (p *parser) endInstruction() {
	p.endWord()
	if !p.cur.Empty() {
		p.out = append(p.out, p.cur)
	}
	p.cur = Instruction{}
	p.started = false
	p.state.section = SectionCommand
}

func (p *parser) finish() {
	st := &p.state
	end := Position{Line: 1, Col: 1}
	if n := len(p.tokens); n > 0 {
		end = p.tokens[n-1].Pos
	}

	if st.escaped {
		p.diag(end, SeverityWarning, DiagDanglingEscape, "dangling escape at end of input")
		st.escaped = false
	}
	if st.variable != nil {
		p.abandonVariable(end)
	}
	if st.quote != quoteNone {
		p.diag(end, SeverityWarning, DiagUnterminatedQuote, "unterminated quote at end of input")
		st.quote = quoteNone
	}
	for _, open := range st.groups {
		p.diag(open, SeverityError, DiagUnterminatedGroup,
			fmt.Sprintf("unterminated group opened at %s", open))
	}
	st.groups = nil
	st.depth = 0
	st.comment = commentNone

	p.endInstruction()
}

func (p *parser) diag(at Position, sev Severity, kind DiagKind, msg string) {
	p.diags = append(p.diags, Diagnostic{Pos: at, Severity: sev, Kind: kind, Message: msg})
}
