package output

import (
	"os"
	"regexp"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorBold  = "\033[1m"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// ParseColorMode converts a string to a ColorMode, defaulting to auto.
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(s) {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and TTY detection.
func shouldColorize(mode ColorMode, w interface{}) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
	return false
}

// ColorizeLine applies diff coloring to a single line based on its prefix.
func ColorizeLine(line string) string {
	switch {
	case strings.HasPrefix(line, "diff --git "):
		return colorBold + line + colorReset
	case strings.HasPrefix(line, "@@"):
		return colorCyan + line + colorReset
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return colorBold + line + colorReset
	case strings.HasPrefix(line, "+"):
		return colorGreen + line + colorReset
	case strings.HasPrefix(line, "-"):
		return colorRed + line + colorReset
	default:
		return line
	}
}

// ColorizeDiff applies per-line diff coloring to a whole diff text.
func ColorizeDiff(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = ColorizeLine(line)
		}
	}
	return strings.Join(lines, "\n")
}

// ansiRe matches ANSI SGR escape sequences.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI color codes from text. Used when color output is
// disabled or the destination is not a terminal.
func StripANSI(text string) string {
	return ansiRe.ReplaceAllString(text, "")
}
