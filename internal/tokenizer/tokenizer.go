// Package tokenizer counts model-specific tokens for budget decisions.
//
// The default implementation wraps tiktoken and memoizes one encoder per
// model. Every failure path (unknown model, encoding error) degrades to a
// character-based estimate, so Count never returns an error and never
// panics into the caller.
package tokenizer

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// fallbackCharsPerToken drives the estimate used when no encoder is
// available: roughly one token per four characters of English text.
const fallbackCharsPerToken = 4

// fallbackEncoding is used when a model name is not recognised by tiktoken.
const fallbackEncoding = "cl100k_base"

// Counter counts the tokens a piece of text occupies for a given model.
// Implementations must be safe for concurrent use and must return 0 for
// empty text.
type Counter interface {
	Count(text, model string) int
}

// Tiktoken is the default Counter backed by tiktoken BPE encoders.
// Encoders are cached per normalized model name; populating the same entry
// twice from concurrent callers is harmless (last writer wins).
type Tiktoken struct {
	mu       sync.RWMutex
	encoders map[string]*tiktoken.Tiktoken
}

// New creates a Tiktoken counter with an empty encoder cache.
func New() *Tiktoken {
	return &Tiktoken{encoders: make(map[string]*tiktoken.Tiktoken)}
}

// Count returns the number of tokens in text for the given model.
// Returns 0 for empty text. Falls back to Estimate on any encoder failure.
func (t *Tiktoken) Count(text, model string) (n int) {
	if text == "" {
		return 0
	}

	// A broken encoder must never take the caller down.
	defer func() {
		if r := recover(); r != nil {
			n = Estimate(text)
		}
	}()

	enc := t.encoder(model)
	if enc == nil {
		return Estimate(text)
	}
	return len(enc.Encode(text, nil, nil))
}

// encoder returns the cached encoder for model, creating it on first use.
// A nil entry records a model we failed to resolve, so the lookup is not
// retried on every call.
func (t *Tiktoken) encoder(model string) *tiktoken.Tiktoken {
	key := normalizeModel(model)

	t.mu.RLock()
	enc, ok := t.encoders[key]
	t.mu.RUnlock()
	if ok {
		return enc
	}

	enc, err := tiktoken.EncodingForModel(key)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			enc = nil
		}
	}

	t.mu.Lock()
	t.encoders[key] = enc
	t.mu.Unlock()
	return enc
}

// normalizeModel canonicalizes a model identifier for cache lookup.
func normalizeModel(model string) string {
	return strings.ToLower(strings.TrimSpace(model))
}

// Estimate approximates a token count as runes/4, rounded down. Rune count
// rather than byte count keeps multi-byte text from inflating the estimate.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	return utf8.RuneCountInString(text) / fallbackCharsPerToken
}
