// Package preprocess reduces a unified git diff to a token budget for LLM consumption.
//
// The pipeline runs four stages:
//
//  1. Split - divide the diff into per-file sections
//  2. Filter - drop binary, minified, generated, and lockfile noise
//  3. Score - rank sections by file type, change kind, volume, and code patterns
//  4. Truncate - pack the highest-scoring sections into the token budget
//
// Basic usage:
//
//	p := preprocess.New(
//	    preprocess.WithTokenLimit(8000),
//	    preprocess.WithModel("gpt-4o"),
//	)
//	trimmed := p.Process(diffText)
//
// The output never exceeds the requested budget and stays a readable diff:
// when a single file must be cut internally, changed lines survive before
// context, and the cut is marked in-band.
//
// Configuration via ~/.trimdiff.yaml:
//
//	token_limit: 8000
//	model: gpt-4o
package preprocess
