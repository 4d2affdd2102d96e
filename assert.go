//go:build !ios && !android && (amd64 || arm64)

package imgo

import (
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// AssertHandler receives a native consistency failure: the failed
// expression, and the source line and file in the native library where it
// was checked. It runs nested inside the native call that failed.
//
// A handler may panic; the panic is recovered and logged before control
// returns to native. Returning lets the native library continue past the
// failed check, which it may not be prepared for. Handlers that want to
// stop the program should do so themselves.
type AssertHandler func(message string, line int, file string)

var assertHandler AssertHandler = defaultAssertHandler

// SetAssertHandler replaces the assertion handler. nil reinstalls the
// default, which logs the failure with a Go stack trace.
func SetAssertHandler(h AssertHandler) {
	if h == nil {
		h = defaultAssertHandler
	}
	assertHandler = h
}

func defaultAssertHandler(message string, line int, file string) {
	logger.WithFields(logrus.Fields{
		"function": "assert",
		"message":  message,
		"file":     file,
		"line":     line,
		"stack":    string(debug.Stack()),
	}).Error("Dear ImGui assertion failed")
}

// dispatchAssert is installed as the native assertion hook.
func dispatchAssert(expr string, line int32, file string) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithFields(logrus.Fields{
				"function": "dispatchAssert",
				"message":  expr,
				"panic":    r,
			}).Error("Assertion handler panicked")
		}
	}()
	assertHandler(expr, int(line), file)
}
