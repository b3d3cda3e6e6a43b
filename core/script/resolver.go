package script

import (
	"strings"
)

// DispatchFunc runs a queue of instructions.
type DispatchFunc func(queue []Instruction) (Result, error)

// Resolver turns variable references into text.
type Resolver struct {
	Vars     *Variables
	Dispatch DispatchFunc
	Env      *Env
}

// IsGroup reports whether a name buffer is a parenthesized sub-statement.
func IsGroup(name string) bool {
	return len(name) >= 2 && strings.HasPrefix(name, "(") && strings.HasSuffix(name, ")")
}

// Resolve returns the substitution for a name buffer. Named misses log an
// error and substitute nothing. The error return is only set when a nested
// run was aborted by a fatal failure.
func (r *Resolver) Resolve(name string) (string, error) {
	log := r.Env.Log()

	if IsGroup(name) {
		inner := name[1 : len(name)-1]
		queue, diags := ParseString(inner)
		logDiagnostics(log, diags)

		log.Trace().Str("group", inner).Int("instructions", len(queue)).Msg("evaluating group")
		result, err := r.Dispatch(queue)
		if err != nil {
			return "", err
		}
		return result.Text(), nil
	}

	value, ok := r.Vars.Lookup(name)
	if !ok {
		log.Error().Str("variable", name).Msgf("unknown variable %q", name)
		return "", nil
	}
	return value, nil
}

// Expand resolves every part of w and concatenates the text.
func (r *Resolver) Expand(w Word) (string, error) {
	if text, ok := w.Literal(); ok {
		return text, nil
	}

	var sb strings.Builder
	for _, part := range w.Parts {
		if part.Kind != PartVariable {
			sb.WriteString(part.Text)
			continue
		}
		text, err := r.Resolve(part.Text)
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// ExpandAll expands a list of words in order.
func (r *Resolver) ExpandAll(words []Word) ([]string, error) {
	out := make([]string, 0, len(words))
	for _, w := range words {
		text, err := r.Expand(w)
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}
