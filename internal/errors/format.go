package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ANSI escape sequences used by Format.
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
	ansiBlue  = "\033[34m"
)

// colorEnabled controls whether Format emits ANSI colors. The CLI turns it
// off when stdout is not a terminal.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

func paint(text string, codes ...string) string {
	if !colorEnabled || len(codes) == 0 {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

// detailWidth is the column at which Format wraps details.
const detailWidth = 72

// Format returns a multi-line rendering of the error for terminals: a header
// with code and message, the wrapped detail, the chain of causes, the hint
// and the documentation link.
func (e *Error) Format() string {
	var b strings.Builder

	header := "ERROR"
	if e.Code != "" {
		header += " " + e.Code + ":"
	} else {
		header += ":"
	}
	fmt.Fprintf(&b, "\n%s %s\n\n", paint(header, ansiRed, ansiBold), paint(e.Message, ansiBold))

	if lines := wrapText(e.Detail, detailWidth); len(lines) > 0 {
		for _, line := range lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}

	if e.Wrapped != nil {
		fmt.Fprintf(&b, "  %s %v\n\n", paint("Caused by:", ansiGray), e.Wrapped)
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s %s\n\n", paint("Hint:", ansiCyan), e.Suggestion)
	}
	if e.DocURL != "" {
		fmt.Fprintf(&b, "  %s %s\n", paint("Learn more:", ansiGray), paint(e.DocURL, ansiBlue))
	}
	return b.String()
}

// FormatCompact returns "CODE: message: detail" on one line.
func (e *Error) FormatCompact() string {
	parts := make([]string, 0, 3)
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, e.Message)
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	return strings.Join(parts, ": ")
}

type jsonError struct {
	Code       string   `json:"code,omitempty"`
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	Detail     string   `json:"detail,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	DocURL     string   `json:"docUrl,omitempty"`
	Cause      string   `json:"cause,omitempty"`
}

// FormatJSON returns the error as a single-line JSON object.
func (e *Error) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Error())
	}
	return string(data)
}

// wrapText splits text into lines of at most width bytes, breaking on
// whitespace. Words longer than width get a line of their own.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := []string{words[0]}
	for _, word := range words[1:] {
		last := &lines[len(lines)-1]
		if len(*last)+1+len(word) > width {
			lines = append(lines, word)
			continue
		}
		*last += " " + word
	}
	return lines
}

// Fprint writes err to w: the full Format rendering for *Error values,
// a one-line message otherwise.
func Fprint(w io.Writer, err error) {
	var ve *Error
	if errors.As(err, &ve) {
		fmt.Fprint(w, ve.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", paint("ERROR:", ansiRed, ansiBold), err)
}

// PrintError prints err to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}
