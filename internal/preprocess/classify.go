package preprocess

import (
	"path"
	"strings"

	"github.com/mwhaley/trimdiff/internal/diff"
)

// ShouldExclude reports whether a diff section is noise that should be
// dropped before scoring. Checks run in a fixed order and short-circuit on
// the first match: binary marker, minified suffix, build directory,
// lockfile/generated name, then the minified-content heuristic.
//
// When no file path can be extracted only the binary check applies; a
// malformed section is kept rather than guessed at.
func ShouldExclude(section string) bool {
	if isBinary(section) {
		return true
	}

	filePath := diff.ExtractPath(section)
	if filePath == "" {
		return false
	}

	if hasMinifiedSuffix(filePath) {
		return true
	}
	if inBuildDir(filePath) {
		return true
	}
	if isLockfileOrGenerated(filePath) {
		return true
	}
	return looksMinified(section)
}

// isBinary detects git's binary diff markers.
func isBinary(section string) bool {
	return binaryFilesRe.MatchString(section) ||
		strings.Contains(section, "GIT binary patch")
}

// hasMinifiedSuffix checks the fixed table of minified artifact suffixes.
func hasMinifiedSuffix(filePath string) bool {
	for _, suffix := range minifiedSuffixes {
		if strings.HasSuffix(filePath, suffix) {
			return true
		}
	}
	return false
}

// inBuildDir checks whether the path crosses a build or vendored directory.
// The path is framed with slashes so a leading "dist/" matches too.
func inBuildDir(filePath string) bool {
	framed := "/" + filePath
	for _, fragment := range buildDirFragments {
		if strings.Contains(framed, fragment) {
			return true
		}
	}
	return false
}

// isLockfileOrGenerated matches the basename against the lockfile and
// generated-file tables.
func isLockfileOrGenerated(filePath string) bool {
	base := path.Base(filePath)
	for _, re := range lockfileRes {
		if re.MatchString(base) {
			return true
		}
	}
	for _, re := range generatedRes {
		if re.MatchString(base) {
			return true
		}
	}
	return false
}

// looksMinified applies content heuristics to a section's changed lines.
// Minified code shows up as very long lines with almost no whitespace; the
// checks catch that shape without parsing anything.
func looksMinified(section string) bool {
	lines := diff.ChangedLines(section)
	if len(lines) == 0 {
		return false
	}

	totalLength := 0
	veryLong := 0
	for _, line := range lines {
		totalLength += len(line)
		if len(line) > minifiedVeryLongLine {
			veryLong++
		}

		stripped := strings.TrimSpace(line)
		if len(stripped) > minifiedLongLineMax &&
			strings.Count(stripped, " ") < len(stripped)/minifiedSpaceDivisor {
			return true
		}
	}

	if len(lines) < minifiedFewLinesMax && totalLength > minifiedFewLinesLength {
		return true
	}
	if len(lines) == 1 && len(lines[0]) > minifiedSingleLineMax {
		return true
	}
	return float64(veryLong) > minifiedLongLineRatio*float64(len(lines))
}
