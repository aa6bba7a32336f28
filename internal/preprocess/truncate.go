package preprocess

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwhaley/trimdiff/internal/diff"
	"github.com/mwhaley/trimdiff/internal/tokenizer"
)

const (
	// includeAllThreshold is the budget above which the token-counting walk
	// is skipped and every surviving section is included. Generous on
	// purpose: the walk below remains the correctness path, this is only a
	// shortcut for budgets larger than any realistic context window.
	includeAllThreshold = 200000

	// skipSummaryReserve and usageSummaryReserve are the headroom required
	// before appending the respective trailing summary line.
	skipSummaryReserve  = 200
	usageSummaryReserve = 100

	// skipSummaryMaxPaths caps how many skipped paths the summary names.
	skipSummaryMaxPaths = 5

	// TruncationMarker is appended whenever lines were dropped from inside
	// a single section.
	TruncationMarker = "[... truncated due to token limit ...]"
)

// Truncate selects an ordered subset of scored sections that fits within
// tokenLimit. Sections are taken in descending score order (stable, so ties
// keep their original order), deduplicated by file path, and a section that
// does not fit is skipped rather than ending the scan, since smaller
// lower-ranked sections after it may still fit. When room remains, a skipped-files
// summary and a usage summary are appended.
//
// A non-positive tokenLimit yields an empty string. If not even the single
// highest-scoring section fits on its own, it is truncated internally
// (TruncateSection) instead of being dropped.
func Truncate(sections []ScoredSection, tokenLimit int, counter tokenizer.Counter, model string) string {
	if len(sections) == 0 || tokenLimit <= 0 {
		return ""
	}

	ordered := make([]ScoredSection, len(sections))
	copy(ordered, sections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	if tokenLimit > includeAllThreshold {
		return includeAll(ordered)
	}

	seen := make(map[string]bool)
	var included []string
	var skipped []string
	total := 0

	for _, sec := range ordered {
		filePath := diff.ExtractPath(sec.Text)
		if filePath != "" {
			if seen[filePath] {
				continue
			}
			seen[filePath] = true
		}

		n := counter.Count(sec.Text, model)
		if n < 1 {
			n = 1
		}
		if total+n <= tokenLimit {
			included = append(included, sec.Text)
			total += n
			continue
		}
		skipped = append(skipped, displayPath(filePath))
	}

	// Nothing fit whole: keep the most important section in truncated form
	// rather than emitting nothing.
	if len(included) == 0 {
		return TruncateSection(ordered[0].Text, tokenLimit, counter, model)
	}

	var sb strings.Builder
	for _, text := range included {
		sb.WriteString(text)
	}

	if len(skipped) > 0 && total+skipSummaryReserve <= tokenLimit {
		line := skipSummaryLine(skipped)
		if n := counter.Count(line, model); total+n <= tokenLimit {
			sb.WriteString(line)
			total += n
		}
	}

	if total+usageSummaryReserve <= tokenLimit {
		line := fmt.Sprintf("\n[%d of %d files shown, %d/%d tokens used]\n",
			len(included), len(included)+len(skipped), total, tokenLimit)
		if n := counter.Count(line, model); total+n <= tokenLimit {
			sb.WriteString(line)
		}
	}

	return sb.String()
}

// includeAll concatenates every section in score order, applying only the
// dedup-by-path rule.
func includeAll(ordered []ScoredSection) string {
	seen := make(map[string]bool)
	var sb strings.Builder
	for _, sec := range ordered {
		filePath := diff.ExtractPath(sec.Text)
		if filePath != "" {
			if seen[filePath] {
				continue
			}
			seen[filePath] = true
		}
		sb.WriteString(sec.Text)
	}
	return sb.String()
}

// skipSummaryLine formats the skipped-files summary, naming at most
// skipSummaryMaxPaths paths plus a "+N more" suffix.
func skipSummaryLine(skipped []string) string {
	shown := skipped
	if len(shown) > skipSummaryMaxPaths {
		shown = shown[:skipSummaryMaxPaths]
	}
	line := fmt.Sprintf("\n[skipped %d files over token budget: %s",
		len(skipped), strings.Join(shown, ", "))
	if rest := len(skipped) - len(shown); rest > 0 {
		line += fmt.Sprintf(", +%d more", rest)
	}
	return line + "]\n"
}

// displayPath substitutes a placeholder for sections without a parsable
// header so the skip summary stays readable.
func displayPath(filePath string) string {
	if filePath == "" {
		return "(unknown file)"
	}
	return filePath
}

// TruncateSection reduces a single oversized section to fit tokenLimit.
//
// The portion up to and including the first hunk header is preserved when
// it fits. Remaining non-blank lines are then added by priority (changed
// lines, then further hunk headers, then context) and the kept lines
// are restored to document order for readability. If even the header alone
// exceeds the budget the section degrades to raw line-by-line inclusion.
// Whenever anything was dropped the output ends with TruncationMarker.
func TruncateSection(section string, tokenLimit int, counter tokenizer.Counter, model string) string {
	if section == "" || tokenLimit <= 0 {
		return ""
	}
	if counter.Count(section, model) <= tokenLimit {
		return section
	}

	lines := strings.Split(section, "\n")
	hunkIdx := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "@@") {
			hunkIdx = i
			break
		}
	}
	if hunkIdx < 0 {
		return truncateByLines(lines, tokenLimit, counter, model)
	}

	marker := TruncationMarker + "\n"
	budget := tokenLimit - counter.Count(marker, model)

	header := strings.Join(lines[:hunkIdx+1], "\n") + "\n"
	headerTokens := counter.Count(header, model)
	if headerTokens > budget {
		return truncateByLines(lines, tokenLimit, counter, model)
	}
	total := headerTokens

	type candidate struct {
		pos  int
		rank int
	}
	var candidates []candidate
	for i := hunkIdx + 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		rank := 3 // context
		switch {
		case strings.HasPrefix(line, "+"), strings.HasPrefix(line, "-"):
			rank = 0
		case strings.HasPrefix(line, "@@"):
			rank = 2
		}
		candidates = append(candidates, candidate{pos: i, rank: rank})
	}

	// Stable by rank, so equally ranked lines keep document order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].rank < candidates[j].rank
	})

	var picked []int
	dropped := false
	for _, c := range candidates {
		n := counter.Count(lines[c.pos]+"\n", model)
		if n < 1 {
			n = 1
		}
		if total+n > budget {
			dropped = true
			continue
		}
		picked = append(picked, c.pos)
		total += n
	}

	sort.Ints(picked)

	var sb strings.Builder
	sb.WriteString(header)
	for _, pos := range picked {
		sb.WriteString(lines[pos])
		sb.WriteString("\n")
	}
	if dropped {
		sb.WriteString(marker)
	}
	return sb.String()
}

// truncateByLines is the last-resort path: include raw lines in order while
// the running count stays under budget, then stop and mark the cut.
func truncateByLines(lines []string, tokenLimit int, counter tokenizer.Counter, model string) string {
	marker := TruncationMarker + "\n"
	budget := tokenLimit - counter.Count(marker, model)
	if budget < 0 {
		budget = 0
	}

	var sb strings.Builder
	total := 0
	truncated := false
	for _, line := range lines {
		n := counter.Count(line+"\n", model)
		if n < 1 {
			n = 1
		}
		if total+n > budget {
			truncated = true
			break
		}
		sb.WriteString(line)
		sb.WriteString("\n")
		total += n
	}

	if truncated && total+counter.Count(marker, model) <= tokenLimit {
		sb.WriteString(marker)
	}
	return sb.String()
}
