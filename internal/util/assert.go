package util

import "fmt"

// DebugAssertions toggles the panic-on-violation checks below. Invariant
// violations are programming bugs, detected by debug-only assertions;
// release builds trust the invariants instead of paying for the check.
const DebugAssertions = false

// Assert panics with a formatted message if cond is false and
// DebugAssertions is enabled; it is a no-op in release builds.
func Assert(cond bool, format string, args ...any) {
	if !DebugAssertions {
		return
	}
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
