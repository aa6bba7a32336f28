package preprocess

import (
	"regexp"
)

// Filtering tables. A section matching any of these is noise for an LLM
// prompt: binary content, minified or generated artifacts, lockfiles, and
// build output churn.
var (
	// Binary diffs carry no reviewable text.
	binaryFilesRe = regexp.MustCompile(`Binary files .* differ`)

	// Suffixes of minified/bundled artifacts.
	minifiedSuffixes = []string{
		".min.js", ".min.css",
		".bundle.js", ".bundle.css",
		".compressed.js", ".compressed.css",
		".opt.js", ".opt.css",
	}

	// Path fragments of build and vendored output directories.
	buildDirFragments = []string{
		"/dist/", "/build/", "/vendor/", "/node_modules/",
		"/assets/vendor/", "/public/build/", "/static/dist/",
	}

	// Lockfiles and machine-generated files, matched against the basename.
	lockfileRes = []*regexp.Regexp{
		regexp.MustCompile(`^package-lock\.json$`),
		regexp.MustCompile(`^yarn\.lock$`),
		regexp.MustCompile(`^Pipfile\.lock$`),
		regexp.MustCompile(`^poetry\.lock$`),
		regexp.MustCompile(`^Gemfile\.lock$`),
		regexp.MustCompile(`^pnpm-lock\.yaml$`),
		regexp.MustCompile(`^composer\.lock$`),
		regexp.MustCompile(`^Cargo\.lock$`),
		regexp.MustCompile(`\.sum$`),
	}
	generatedRes = []*regexp.Regexp{
		regexp.MustCompile(`\.pb\.go$`),
		regexp.MustCompile(`\.g\.dart$`),
		regexp.MustCompile(`^autogen\.`),
		regexp.MustCompile(`^generated\.`),
	}
)

// Minified-content heuristic thresholds. Applied to a section's changed
// lines when the suffix tables do not already exclude it.
const (
	minifiedFewLinesMax    = 10   // "few lines" cutoff
	minifiedFewLinesLength = 1000 // total length that makes few lines suspicious
	minifiedSingleLineMax  = 200  // one changed line longer than this
	minifiedLongLineMax    = 300  // a line this long needs whitespace to look human
	minifiedSpaceDivisor   = 20   // required spaces: len/20
	minifiedVeryLongLine   = 500  // line length counted toward the ratio check
	minifiedLongLineRatio  = 0.2  // fraction of very long lines that trips the check
)

// extensionWeights maps a file extension to its importance factor.
// Source code matters most, configuration and build files next, docs and
// web assets after that. Anything unlisted scores the neutral 1.0.
var extensionWeights = map[string]float64{
	// Source code
	".go":    5.0,
	".py":    5.0,
	".rs":    4.8,
	".java":  4.5,
	".kt":    4.5,
	".c":     4.5,
	".cpp":   4.5,
	".cc":    4.5,
	".h":     4.2,
	".hpp":   4.2,
	".ts":    4.5,
	".tsx":   4.5,
	".js":    4.0,
	".jsx":   4.0,
	".rb":    4.2,
	".php":   4.0,
	".swift": 4.2,
	".scala": 4.2,
	".ex":    4.2,
	".exs":   4.2,
	".sh":    4.0,
	".sql":   4.0,

	// Configuration
	".yaml": 3.8,
	".yml":  3.8,
	".toml": 3.6,
	".json": 3.5,
	".ini":  3.5,
	".env":  3.5,

	// Documentation
	".md":  3.0,
	".rst": 2.8,
	".txt": 2.5,

	// Web
	".html":   3.0,
	".css":    2.8,
	".scss":   2.8,
	".vue":    3.5,
	".svelte": 3.5,
}

// filenameWeights maps exact basenames that carry importance regardless of
// extension, mostly build and CI entry points.
var filenameWeights = map[string]float64{
	"Dockerfile":       4.2,
	"Makefile":         4.0,
	"Jenkinsfile":      4.0,
	"package.json":     3.8,
	"go.mod":           3.8,
	"requirements.txt": 3.8,
	"Gemfile":          3.8,
	"pyproject.toml":   3.8,
	"CMakeLists.txt":   4.0,
}

// defaultExtensionWeight applies when neither table matches, including
// sections with no extractable path.
const defaultExtensionWeight = 1.0

// scorePattern pairs a regex over a section's added lines with the factor
// multiplied into the score when it matches.
type scorePattern struct {
	name   string
	re     *regexp.Regexp
	weight float64
}

// codePatterns is evaluated in order against the section text; every match
// compounds multiplicatively. All patterns anchor on added lines so that
// deleted or context code does not inflate a section's importance.
var codePatterns = []scorePattern{
	{"type definition", regexp.MustCompile(`(?m)^\+.*\b(?:class|interface|enum|struct|trait|type)\s+\w+`), 1.8},
	{"function definition", regexp.MustCompile(`(?m)^\+.*(?:\bfunc\s+(?:\(\w+ [*\w\[\]]+\)\s*)?\w+\s*\(|\bdef\s+\w+\s*\(|\bfunction\s+\w*\s*\(|\bfn\s+\w+\s*\()`), 1.5},
	{"import", regexp.MustCompile(`(?m)^\+\s*(?:import\b|from\s+\S+\s+import\b|require\s*\(|use\s+[\w:]+|#include\b)`), 1.3},
	{"access modifier", regexp.MustCompile(`(?m)^\+.*\b(?:public|private|protected|static|final|abstract|async)\b`), 1.2},
	{"dependency bump", regexp.MustCompile(`(?m)^\+.*(?:==|>=|<=|~=|\^|~>)\s*v?\d+\.\d+`), 1.4},
	{"version field", regexp.MustCompile(`(?mi)^\+.*"?version"?\s*[:=]\s*["']?\d+\.\d+`), 1.3},
	{"control flow", regexp.MustCompile(`(?m)^\+\s*(?:if|else|for|while|switch|case|match)\b`), 1.2},
	{"exception handling", regexp.MustCompile(`(?m)^\+\s*(?:try|catch|except|finally|rescue|panic|recover|raise|throw)\b`), 1.2},
	{"return or await", regexp.MustCompile(`(?m)^\+\s*(?:return|await)\b`), 1.1},
	{"todo comment", regexp.MustCompile(`(?m)^\+.*\b(?:TODO|FIXME|XXX|HACK)\b`), 1.3},
	{"fix comment", regexp.MustCompile(`(?mi)^\+.*(?://|#)\s*fix`), 1.2},
	{"docstring", regexp.MustCompile(`(?m)^\+\s*(?:"""|'''|/\*\*)`), 1.1},
	{"test definition", regexp.MustCompile(`(?m)^\+.*(?:\bfunc Test\w+|\bdef test_\w+|\bit\s*\(|\bdescribe\s*\()`), 1.1},
	{"assertion", regexp.MustCompile(`(?m)^\+\s*(?:assert\b|expect\s*\()`), 1.0},
}

// noPatternPenalty applies instead when no code pattern matched at all.
const noPatternPenalty = 0.9
