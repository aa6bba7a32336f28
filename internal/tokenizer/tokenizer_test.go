package tokenizer

import (
	"strings"
	"testing"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"short", "abc", 0},
		{"four chars", "abcd", 1},
		{"forty chars", strings.Repeat("x", 40), 10},
		{"multibyte counted as runes", "日本語テスト日本語テ", 2}, // 10 runes
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Estimate(tt.text); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestCountEmptyText(t *testing.T) {
	c := New()
	if got := c.Count("", "gpt-4o"); got != 0 {
		t.Errorf("Count(empty) = %d, want 0", got)
	}
}

func TestCountPositiveAndDeterministic(t *testing.T) {
	c := New()
	text := "func main() { fmt.Println(\"hello world\") }"

	first := c.Count(text, "gpt-4o")
	if first <= 0 {
		t.Fatalf("Count() = %d, want > 0", first)
	}

	// Same (text, model) pair must always yield the same count.
	second := c.Count(text, "gpt-4o")
	if second != first {
		t.Errorf("Count() not deterministic: %d then %d", first, second)
	}
}

func TestCountUnknownModelFallsBack(t *testing.T) {
	c := New()
	text := strings.Repeat("some plain diff text ", 20)

	// An unresolvable model must still produce a usable count, either via
	// the fallback encoding or the character estimate.
	got := c.Count(text, "no-such-model-xyz")
	if got <= 0 {
		t.Errorf("Count() with unknown model = %d, want > 0", got)
	}
}

func TestCountModelNameNormalized(t *testing.T) {
	c := New()
	text := "normalize me"

	a := c.Count(text, "GPT-4o")
	b := c.Count(text, " gpt-4o ")
	if a != b {
		t.Errorf("normalized model names disagree: %d vs %d", a, b)
	}

	// Both spellings should share one cache entry.
	c.mu.RLock()
	entries := len(c.encoders)
	c.mu.RUnlock()
	if entries != 1 {
		t.Errorf("encoder cache holds %d entries, want 1", entries)
	}
}
