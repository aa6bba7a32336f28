// Package diff provides parsing of unified git diffs into per-file sections.
//
// The package is purely textual: it splits a raw diff on file boundaries and
// extracts lightweight metadata (path, change kind, line counts) from each
// section's headers. It never interprets file contents and never mutates the
// raw text, so concatenating the split sections reproduces the input exactly.
package diff

import (
	"regexp"
	"strings"
)

// sectionBoundary is the literal prefix that starts each file's diff.
const sectionBoundary = "diff --git "

// ChangeKind classifies what happened to a file in a diff section.
type ChangeKind int

const (
	Modified ChangeKind = iota
	Added
	Deleted
	Renamed
	Unknown
)

// String returns the string representation of a ChangeKind.
func (k ChangeKind) String() string {
	switch k {
	case Modified:
		return "modified"
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	case Renamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Section holds one file's worth of diff text plus metadata derived from its
// headers. Sections are created once by ParseSection and never mutated;
// downstream stages derive new values (scores, token counts) keyed by the
// section instead.
type Section struct {
	// RawText is the verbatim diff text for one file, including the
	// "diff --git" header, hunk headers, and body lines.
	RawText string

	// FilePath is the "b/" side of the header. Empty when the header is
	// missing or malformed.
	FilePath string

	// Kind is derived from "new file mode" / "deleted file mode" /
	// "rename from" markers.
	Kind ChangeKind

	// Additions and Deletions count body lines beginning with a single
	// "+" or "-", excluding the "+++" / "---" file markers.
	Additions int
	Deletions int
}

// headerRe matches the first line of a section and captures the "b/" path.
// The a-side match is lazy so simple paths containing " b/" split correctly;
// paths with embedded spaces are best-effort (git quotes those anyway).
var headerRe = regexp.MustCompile(`^diff --git "?a/(.*?)"? "?b/(.*?)"?$`)

// Split divides a raw diff into per-file sections on "diff --git " line
// boundaries. Concatenating the returned slices in order reproduces the
// input byte for byte. Empty input yields nil. Input with no boundary is
// returned whole as a single section, and any text preceding the first
// boundary is kept as its own leading element.
func Split(diffText string) []string {
	if diffText == "" {
		return nil
	}

	var bounds []int
	for i := 0; ; {
		j := strings.Index(diffText[i:], sectionBoundary)
		if j < 0 {
			break
		}
		j += i
		// Only a boundary at the start of a line begins a new file;
		// the literal can also appear inside diff body content.
		if j == 0 || diffText[j-1] == '\n' {
			bounds = append(bounds, j)
		}
		i = j + len(sectionBoundary)
	}

	if len(bounds) == 0 {
		return []string{diffText}
	}

	var sections []string
	if bounds[0] > 0 {
		sections = append(sections, diffText[:bounds[0]])
	}
	for i, start := range bounds {
		end := len(diffText)
		if i+1 < len(bounds) {
			end = bounds[i+1]
		}
		sections = append(sections, diffText[start:end])
	}
	return sections
}

// ExtractPath returns the "b/" side path from a section's header line,
// or "" when no header can be parsed.
func ExtractPath(section string) string {
	line, _, _ := strings.Cut(section, "\n")
	m := headerRe.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
	if m == nil {
		return ""
	}
	return m[2]
}

// ParseSection derives a Section from one file's raw diff text.
func ParseSection(raw string) Section {
	s := Section{
		RawText:  raw,
		FilePath: ExtractPath(raw),
		Kind:     Modified,
	}
	if s.FilePath == "" {
		s.Kind = Unknown
	}

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "new file mode"):
			s.Kind = Added
		case strings.HasPrefix(line, "deleted file mode"):
			s.Kind = Deleted
		case strings.HasPrefix(line, "rename from"):
			s.Kind = Renamed
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			// File markers, not content changes.
		case strings.HasPrefix(line, "+"):
			s.Additions++
		case strings.HasPrefix(line, "-"):
			s.Deletions++
		}
	}
	return s
}

// ChangedLines returns the content of body lines beginning with a single
// "+" or "-" (prefix stripped), excluding the "+++" / "---" file markers.
// Used by content heuristics that only care about what actually changed.
func ChangedLines(section string) []string {
	var changed []string
	for _, line := range strings.Split(section, "\n") {
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}
		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
			changed = append(changed, line[1:])
		}
	}
	return changed
}
