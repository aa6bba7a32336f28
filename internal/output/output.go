// Package output provides formatted rendering of diffs and reports.
// It supports plain text, JSON, and table formats with optional ANSI color.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
}

// New creates a new output Writer.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// Format returns the writer's configured format.
func (wr *Writer) Format() Format {
	return wr.format
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteDiff writes diff text, colorized per the given mode.
func (wr *Writer) WriteDiff(text string, mode ColorMode) error {
	if shouldColorize(mode, wr.w) {
		text = ColorizeDiff(text)
	} else {
		text = StripANSI(text)
	}
	_, err := fmt.Fprint(wr.w, text)
	return err
}
