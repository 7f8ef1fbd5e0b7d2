package main

import "github.com/tejas0709/golox/internal/diag"

// Exit codes per spec §6: 0 success, 65 compile error, 70 runtime
// error, 1 usage errors or unknown command (handled by cobra itself).
const (
	exitOK      = 0
	exitCompile = 65
	exitRuntime = 70
)

// exitCode inspects sink's flags to choose the process exit code. When
// runtimeRan is false (compile-only modes: tokenize/parse), a runtime
// error can never have occurred and is not considered.
func exitCode(sink *diag.Sink, runtimeRan bool) int {
	if sink.HadError() {
		return exitCompile
	}
	if runtimeRan && sink.HadRuntimeError() {
		return exitRuntime
	}
	return exitOK
}
