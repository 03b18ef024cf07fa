// Package util holds the diagnostic sink and small helpers shared by the
// compiler passes.
package util

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/cbc-lang/cbc/pkg/source"
)

// Severity of a recorded diagnostic.
type Severity int

const (
	SevWarning Severity = iota
	SevError
)

func (s Severity) String() string {
	if s == SevError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one recorded message with its source position.
type Diagnostic struct {
	Severity Severity
	Location source.Location
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Location, d.Severity, d.Message)
}

const (
	colRed    = "\x1b[31m"
	colYellow = "\x1b[33m"
	colNone   = "\x1b[0m"
)

// ErrorHandler collects diagnostics emitted by the passes. Messages are
// appended, never fatal; the driver inspects ErrorOccurred after a pass
// and aborts downstream compilation itself.
type ErrorHandler struct {
	out   io.Writer
	color bool
	diags []Diagnostic
}

// NewErrorHandler returns a handler that renders each diagnostic to w as
// it is recorded. Color is used when w is a terminal. A nil w collects
// silently.
func NewErrorHandler(w io.Writer) *ErrorHandler {
	h := &ErrorHandler{out: w}
	if f, ok := w.(*os.File); ok {
		h.color = term.IsTerminal(int(f.Fd()))
	}
	return h
}

func (h *ErrorHandler) Error(loc source.Location, format string, args ...interface{}) {
	h.record(SevError, loc, fmt.Sprintf(format, args...))
}

func (h *ErrorHandler) Warn(loc source.Location, format string, args ...interface{}) {
	h.record(SevWarning, loc, fmt.Sprintf(format, args...))
}

func (h *ErrorHandler) record(sev Severity, loc source.Location, msg string) {
	h.diags = append(h.diags, Diagnostic{Severity: sev, Location: loc, Message: msg})
	if h.out == nil {
		return
	}
	if h.color {
		col := colYellow
		if sev == SevError {
			col = colRed
		}
		fmt.Fprintf(h.out, "%s: %s%s:%s %s\n", loc, col, sev, colNone, msg)
	} else {
		fmt.Fprintf(h.out, "%s: %s: %s\n", loc, sev, msg)
	}
}

// ErrorOccurred reports whether any error-severity diagnostic was recorded.
func (h *ErrorHandler) ErrorOccurred() bool { return h.ErrorCount() > 0 }

func (h *ErrorHandler) ErrorCount() int {
	n := 0
	for _, d := range h.diags {
		if d.Severity == SevError {
			n++
		}
	}
	return n
}

func (h *ErrorHandler) WarningCount() int {
	n := 0
	for _, d := range h.diags {
		if d.Severity == SevWarning {
			n++
		}
	}
	return n
}

// Diagnostics returns the recorded diagnostics in emission order.
func (h *ErrorHandler) Diagnostics() []Diagnostic { return h.diags }

// AlignUp rounds n up to the next multiple of align.
func AlignUp(n, align int64) int64 {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}
