package interpreter

import "github.com/tejas0709/golox/internal/token"

// RuntimeError is a typed runtime failure carrying the offending token
// for line context (spec §7). It propagates via panic/recover rather
// than exception-style error returns threaded through every evaluate
// call — the teacher's own idiom, and cheap here because these are
// single-shot, run-terminating failures, not a hot path.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// returnSignal is the non-local return mechanism (spec §7.3): raised
// by a Return statement, caught only by the nearest active function
// call. It is not an error and never reaches the user.
type returnSignal struct {
	value interface{}
}
