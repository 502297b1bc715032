package rtutil

import "runtime/debug"

// CaptureStack returns a formatted stack trace of the calling goroutine,
// for attaching to logged panics and fatal aborts.
func CaptureStack() string {
	return string(debug.Stack())
}
