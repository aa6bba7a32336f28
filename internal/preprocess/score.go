package preprocess

import (
	"math"
	"path"

	"github.com/mwhaley/trimdiff/internal/diff"
)

// baseScore is the starting importance before any factor applies.
const baseScore = 1.0

// ScoredSection pairs one file's diff text with its importance score.
// Higher scores rank earlier when truncating.
type ScoredSection struct {
	Text  string
	Score float64
}

// Score computes the importance of one diff section. The result is always
// positive: a base of 1.0 multiplied by independent factors for file
// extension, change kind, change volume, and code patterns in the added
// lines. Pure function, no side effects.
func Score(section string) float64 {
	sec := diff.ParseSection(section)

	score := baseScore
	score *= extensionWeight(sec.FilePath)
	score *= changeKindFactor(sec.Kind)
	score *= volumeFactor(sec.Additions + sec.Deletions)
	score *= codePatternFactor(section)
	return score
}

// ScoreSections scores each section, preserving input order so that a later
// stable sort breaks score ties by original position.
func ScoreSections(sections []string) []ScoredSection {
	scored := make([]ScoredSection, len(sections))
	for i, section := range sections {
		scored[i] = ScoredSection{Text: section, Score: Score(section)}
	}
	return scored
}

// extensionWeight looks up the file's importance by exact basename first,
// then by extension. Unmatched files (and missing paths) weigh 1.0.
func extensionWeight(filePath string) float64 {
	if filePath == "" {
		return defaultExtensionWeight
	}
	base := path.Base(filePath)
	if w, ok := filenameWeights[base]; ok {
		return w
	}
	if w, ok := extensionWeights[path.Ext(base)]; ok {
		return w
	}
	return defaultExtensionWeight
}

// changeKindFactor gives new files a small boost and deletions a smaller
// one; both say more about intent than an in-place edit of the same size.
func changeKindFactor(kind diff.ChangeKind) float64 {
	switch kind {
	case diff.Added:
		return 1.2
	case diff.Deleted:
		return 1.1
	default:
		return 1.0
	}
}

// volumeFactor rewards larger diffs sub-linearly, capped at 2x, so a big
// low-value file cannot dominate purely by line count.
func volumeFactor(changedLines int) float64 {
	return 1.0 + math.Min(1.0, 0.1*float64(changedLines)/5.0)
}

// codePatternFactor multiplies in every code pattern that matches the
// section's added lines. Matches compound; a section matching nothing at
// all takes a small penalty instead.
func codePatternFactor(section string) float64 {
	factor := 1.0
	matched := false
	for _, p := range codePatterns {
		if p.re.MatchString(section) {
			factor *= p.weight
			matched = true
		}
	}
	if !matched {
		return noPatternPenalty
	}
	return factor
}
