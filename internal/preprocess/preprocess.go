package preprocess

import (
	"strings"

	"github.com/mwhaley/trimdiff/internal/diff"
	"github.com/mwhaley/trimdiff/internal/tokenizer"
)

// DefaultTokenLimit is the default budget for preprocessed output.
const DefaultTokenLimit = 8000

// DefaultModel is the model identifier used for token counting when the
// caller does not specify one.
const DefaultModel = "gpt-4o"

// cheapPathRatio gates the fast path: when the whole diff already uses at
// most this fraction of the budget, only filtering is needed.
const cheapPathRatio = 0.8

// Preprocessor runs the preprocessing pipeline: split into per-file
// sections, filter noise, score importance, truncate to the token budget.
// A Preprocessor is stateless across calls and safe for concurrent use as
// long as its Counter is.
type Preprocessor struct {
	counter    tokenizer.Counter
	tokenLimit int
	model      string
	filter     bool
}

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithTokenLimit sets the output token budget. Default is 8000.
func WithTokenLimit(limit int) Option {
	return func(p *Preprocessor) {
		p.tokenLimit = limit
	}
}

// WithModel sets the model identifier used for token counting.
func WithModel(model string) Option {
	return func(p *Preprocessor) {
		p.model = model
	}
}

// WithCounter replaces the token counter, mainly for tests.
func WithCounter(c tokenizer.Counter) Option {
	return func(p *Preprocessor) {
		p.counter = c
	}
}

// WithFiltering enables or disables the noise filter. Default is enabled.
func WithFiltering(enabled bool) Option {
	return func(p *Preprocessor) {
		p.filter = enabled
	}
}

// New creates a Preprocessor with the specified options.
//
// Example:
//
//	p := preprocess.New(
//	    preprocess.WithTokenLimit(4000),
//	    preprocess.WithModel("gpt-4o"),
//	)
//	trimmed := p.Process(diffText)
func New(opts ...Option) *Preprocessor {
	p := &Preprocessor{
		counter:    tokenizer.New(),
		tokenLimit: DefaultTokenLimit,
		model:      DefaultModel,
		filter:     true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs the pipeline on a raw diff and returns the budgeted text.
//
// Empty input is returned unchanged without touching the tokenizer. A diff
// already well under budget takes a cheap path: sections are filtered and
// rejoined with no scoring or truncation, so surviving content passes
// through unmodified.
func (p *Preprocessor) Process(diffText string) string {
	if diffText == "" {
		return diffText
	}

	if p.tokenLimit > 0 {
		whole := p.counter.Count(diffText, p.model)
		if float64(whole) <= cheapPathRatio*float64(p.tokenLimit) {
			return strings.Join(p.filterSections(diff.Split(diffText)), "")
		}
	}

	sections := p.filterSections(diff.Split(diffText))
	scored := ScoreSections(sections)
	return Truncate(scored, p.tokenLimit, p.counter, p.model)
}

func (p *Preprocessor) filterSections(sections []string) []string {
	if !p.filter {
		return sections
	}
	return FilterSections(sections)
}

// Preprocess is a convenience wrapper for one-off processing without
// constructing a Preprocessor.
func Preprocess(diffText string, tokenLimit int, model string) string {
	return New(WithTokenLimit(tokenLimit), WithModel(model)).Process(diffText)
}
