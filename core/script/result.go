package script

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Payload is the value carried by a successful Result.
type Payload interface {
	// Text is the substitution used when the result feeds a grouped
	// variable reference.
	Text() string
}

// List is a payload of words; its text is the words joined by single spaces.
type List []string

func (l List) Text() string {
	return strings.Join(l, " ")
}

// Flag is a plain success flag. Its text is the capitalised boolean, so
// ?(echo hi)? substitutes "True" rather than "hi".
type Flag bool

func (f Flag) Text() string {
	if f {
		return "True"
	}
	return "False"
}

// Result is the outcome of a handler or of a whole run.
type Result struct {
	payload Payload
	err     error
}

// Ok wraps a successful payload. A nil payload is treated as an empty List.
func Ok(payload Payload) Result {
	if payload == nil {
		payload = List{}
	}
	return Result{payload: payload}
}

// Success is the common "it worked" result.
func Success() Result {
	return Ok(Flag(true))
}

// Err wraps a failure. A nil error is replaced with a generic one so the
// result is never mistaken for success.
func Err(err error) Result {
	if err == nil {
		err = eris.New("unknown error")
	}
	return Result{err: err}
}

// Errorf builds a failed result from a format string.
func Errorf(format string, args ...interface{}) Result {
	return Err(eris.Errorf(format, args...))
}

// IsOk reports whether the result is a success.
func (r Result) IsOk() bool {
	return r.err == nil
}

// IsErr reports whether the result is a failure.
func (r Result) IsErr() bool {
	return r.err != nil
}

// Payload returns the success payload, or nil for failures.
func (r Result) Payload() Payload {
	if r.err != nil {
		return nil
	}
	if r.payload == nil {
		return List{}
	}
	return r.payload
}

// Error returns the failure, or nil for successes.
func (r Result) Error() error {
	return r.err
}

// Message is the failure text, or "" for successes.
func (r Result) Message() string {
	if r.err == nil {
		return ""
	}
	return r.err.Error()
}

// Text is the substitution text: the payload text on success and the
// failure message otherwise.
func (r Result) Text() string {
	if r.err != nil {
		return r.err.Error()
	}
	return r.Payload().Text()
}

func (r Result) String() string {
	if r.err != nil {
		return "Err(" + r.err.Error() + ")"
	}
	return "Ok(" + r.Payload().Text() + ")"
}
