package preprocess

import (
	"strings"
	"testing"
)

// charCounter counts one token per byte. Being exactly additive over
// concatenation makes budget assertions strict.
type charCounter struct{}

func (charCounter) Count(text, model string) int {
	return len(text)
}

func scoredFixture() []ScoredSection {
	return []ScoredSection{
		{Text: section("main.go", "func main() {}"), Score: 9.0},
		{Text: section("util.py", "def helper():"), Score: 7.0},
		{Text: section("notes.md", "some documentation"), Score: 2.0},
	}
}

func TestTruncateEmptyAndZeroBudget(t *testing.T) {
	c := charCounter{}

	if got := Truncate(nil, 1000, c, "m"); got != "" {
		t.Errorf("Truncate(nil) = %q, want empty", got)
	}
	if got := Truncate(scoredFixture(), 0, c, "m"); got != "" {
		t.Errorf("Truncate(limit=0) = %q, want empty", got)
	}
	if got := Truncate(scoredFixture(), -5, c, "m"); got != "" {
		t.Errorf("Truncate(limit<0) = %q, want empty", got)
	}
}

// The hard contract: output token count never exceeds the budget.
func TestTruncateBudgetInvariant(t *testing.T) {
	c := charCounter{}
	sections := scoredFixture()

	for limit := 1; limit <= 1200; limit += 37 {
		out := Truncate(sections, limit, c, "m")
		if got := c.Count(out, "m"); got > limit {
			t.Fatalf("limit %d: output uses %d tokens", limit, got)
		}
	}
}

func TestTruncateLargeBudgetIncludesAll(t *testing.T) {
	sections := scoredFixture()
	out := Truncate(sections, 100000, charCounter{}, "m")

	for _, sec := range sections {
		if !strings.Contains(out, sec.Text) {
			t.Errorf("section %q missing from output", firstLine(sec.Text))
		}
	}
}

func TestTruncateOrdersByScore(t *testing.T) {
	sections := []ScoredSection{
		{Text: section("low.md", "minor"), Score: 1.0},
		{Text: section("high.go", "func important() {}"), Score: 10.0},
	}
	out := Truncate(sections, 100000, charCounter{}, "m")

	hi := strings.Index(out, "high.go")
	lo := strings.Index(out, "low.md")
	if hi < 0 || lo < 0 {
		t.Fatal("expected both sections in output")
	}
	if hi > lo {
		t.Error("higher-scored section should come first")
	}
}

// Ties keep original order (stable sort, first seen wins).
func TestTruncateTieBreakByOriginalOrder(t *testing.T) {
	sections := []ScoredSection{
		{Text: section("first.go", "x"), Score: 5.0},
		{Text: section("second.go", "y"), Score: 5.0},
	}
	out := Truncate(sections, 100000, charCounter{}, "m")

	if strings.Index(out, "first.go") > strings.Index(out, "second.go") {
		t.Error("equal scores should preserve original order")
	}
}

func TestTruncateDedupByPath(t *testing.T) {
	dup := section("same.go", "func a() {}")
	sections := []ScoredSection{
		{Text: dup, Score: 5.0},
		{Text: dup, Score: 4.0},
	}
	out := Truncate(sections, 100000, charCounter{}, "m")

	if got := strings.Count(out, "diff --git a/same.go"); got != 1 {
		t.Errorf("path included %d times, want 1", got)
	}
}

// A section over budget is skipped, but scanning continues: smaller
// lower-scored sections after it still get included.
func TestTruncateSkipAndKeepScanning(t *testing.T) {
	huge := section("huge.go", strings.Repeat("padding line with text\n+", 50))
	small := section("small.py", "def tiny(): pass")

	sections := []ScoredSection{
		{Text: huge, Score: 10.0},
		{Text: small, Score: 1.0},
	}
	c := charCounter{}
	limit := c.Count(small, "m") + 10

	out := Truncate(sections, limit, c, "m")
	if !strings.Contains(out, "small.py") {
		t.Error("small section after an oversized one should still be included")
	}
	if strings.Contains(out, "diff --git a/huge.go") {
		t.Error("oversized section should have been skipped")
	}
}

func TestTruncateSummaries(t *testing.T) {
	one := section("a.go", "func a() {}")
	two := section("b.go", "func b() {}")
	three := section("c.go", strings.Repeat("a longer change line\n+", 40))

	c := charCounter{}
	// Fits the first two whole sections plus summary headroom.
	limit := c.Count(one, "m") + c.Count(two, "m") + 400

	sections := []ScoredSection{
		{Text: one, Score: 9.0},
		{Text: two, Score: 8.0},
		{Text: three, Score: 7.0},
	}
	out := Truncate(sections, limit, c, "m")

	if !strings.Contains(out, one) || !strings.Contains(out, two) {
		t.Fatal("expected both small sections included whole")
	}
	if !strings.Contains(out, "skipped 1 files") || !strings.Contains(out, "c.go") {
		t.Errorf("missing skip summary naming c.go:\n%s", out)
	}
	if !strings.Contains(out, "2 of 3 files shown") {
		t.Errorf("missing usage summary:\n%s", out)
	}
	if got := c.Count(out, "m"); got > limit {
		t.Errorf("output uses %d tokens, limit %d", got, limit)
	}
}

func TestTruncateSkipSummaryCapsPaths(t *testing.T) {
	big := strings.Repeat("filler line\n+", 40)
	sections := []ScoredSection{
		{Text: section("keep.go", "func k() {}"), Score: 99.0},
	}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		sections = append(sections, ScoredSection{Text: section(name+".js", big), Score: 1.0})
	}

	c := charCounter{}
	limit := c.Count(sections[0].Text, "m") + 400
	out := Truncate(sections, limit, c, "m")

	if !strings.Contains(out, "skipped 7 files") {
		t.Fatalf("expected skip summary for 7 files:\n%s", out)
	}
	if !strings.Contains(out, "+2 more") {
		t.Errorf("expected +2 more suffix:\n%s", out)
	}
	if strings.Contains(out, "g.js") {
		t.Error("summary should stop after five named paths")
	}
}

// When nothing fits whole, the top section is truncated internally instead
// of being dropped.
func TestTruncateFallsBackToSectionTruncation(t *testing.T) {
	big := section("only.go", strings.Repeat("changed line of code\n+", 60))
	sections := []ScoredSection{{Text: big, Score: 5.0}}

	c := charCounter{}
	limit := 300
	out := Truncate(sections, limit, c, "m")

	if out == "" {
		t.Fatal("expected partial content, got empty output")
	}
	if !strings.Contains(out, "diff --git a/only.go") {
		t.Error("header should be preserved")
	}
	if !strings.Contains(out, TruncationMarker) {
		t.Error("expected truncation marker")
	}
	if got := c.Count(out, "m"); got > limit {
		t.Errorf("output uses %d tokens, limit %d", got, limit)
	}
}

func TestTruncateSectionFitsUnchanged(t *testing.T) {
	sec := section("ok.go", "func ok() {}")
	out := TruncateSection(sec, 100000, charCounter{}, "m")
	if out != sec {
		t.Error("section under budget should pass through unchanged")
	}
}

// Changed lines survive before context when cutting inside a section.
func TestTruncateSectionPrioritizesChanges(t *testing.T) {
	var body strings.Builder
	body.WriteString("diff --git a/f.go b/f.go\n--- a/f.go\n+++ b/f.go\n@@ -1,20 +1,22 @@\n")
	for i := 0; i < 10; i++ {
		body.WriteString(" context line that is quite long and padded out for size\n")
	}
	body.WriteString("+added one\n")
	body.WriteString("-removed one\n")
	sec := body.String()

	c := charCounter{}
	limit := 250 // header plus a little, nowhere near the context bulk
	out := TruncateSection(sec, limit, c, "m")

	if !strings.Contains(out, "+added one") {
		t.Errorf("added line should survive:\n%s", out)
	}
	if !strings.Contains(out, "-removed one") {
		t.Errorf("removed line should survive:\n%s", out)
	}
	if !strings.Contains(out, TruncationMarker) {
		t.Error("expected truncation marker")
	}
	if got := c.Count(out, "m"); got > limit {
		t.Errorf("output uses %d tokens, limit %d", got, limit)
	}
}

// Kept lines are restored to document order after priority selection.
func TestTruncateSectionRestoresDocumentOrder(t *testing.T) {
	sec := "diff --git a/f.go b/f.go\n--- a/f.go\n+++ b/f.go\n@@ -1,4 +1,4 @@\n-first removal\n+first addition\n-second removal\n+second addition\n lots of context padding text\n more context padding text here\n"

	c := charCounter{}
	out := TruncateSection(sec, 150, c, "m")

	a := strings.Index(out, "-first removal")
	b := strings.Index(out, "+first addition")
	d := strings.Index(out, "-second removal")
	if a < 0 || b < 0 || d < 0 {
		t.Fatalf("changed lines missing:\n%s", out)
	}
	if !(a < b && b < d) {
		t.Errorf("lines out of document order:\n%s", out)
	}
}

// Header alone over budget degrades to raw line-by-line inclusion.
func TestTruncateSectionHeaderOverBudget(t *testing.T) {
	sec := section("deep/nested/directory/structure/file.go", "func f() {}")

	c := charCounter{}
	limit := 150 // smaller than the header block, room for one line
	out := TruncateSection(sec, limit, c, "m")

	if got := c.Count(out, "m"); got > limit {
		t.Errorf("output uses %d tokens, limit %d", got, limit)
	}
	if !strings.HasPrefix(out, "diff --git ") {
		t.Errorf("line fallback should start from the first raw line:\n%s", out)
	}
	if !strings.Contains(out, TruncationMarker) {
		t.Error("expected truncation marker")
	}
}

// Budgets over the include-all threshold skip the token walk entirely.
func TestTruncateEnormousBudgetFastPath(t *testing.T) {
	sections := scoredFixture()
	out := Truncate(sections, includeAllThreshold+1, charCounter{}, "m")

	for _, sec := range sections {
		if !strings.Contains(out, sec.Text) {
			t.Errorf("section %q missing from fast-path output", firstLine(sec.Text))
		}
	}
	if strings.Contains(out, "files shown") {
		t.Error("fast path should not append a usage summary")
	}
}

func TestTruncateSectionZeroBudget(t *testing.T) {
	if got := TruncateSection(section("a.go", "x"), 0, charCounter{}, "m"); got != "" {
		t.Errorf("TruncateSection(limit=0) = %q, want empty", got)
	}
}
