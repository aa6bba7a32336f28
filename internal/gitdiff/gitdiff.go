// Package gitdiff fetches unified diffs from the local git repository.
//
// It is a thin collaborator around the git binary; all interpretation of
// the diff text happens downstream in internal/diff and internal/preprocess.
package gitdiff

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Staged returns the diff of staged changes (git diff --cached).
func Staged(ctx context.Context) (string, error) {
	return run(ctx, "diff", "--cached")
}

// Unstaged returns the diff of unstaged working tree changes (git diff).
func Unstaged(ctx context.Context) (string, error) {
	return run(ctx, "diff")
}

// Range returns the diff between two revisions (git diff <from> <to>).
func Range(ctx context.Context, from, to string) (string, error) {
	return run(ctx, "diff", from, to)
}

// Read loads a diff from a file path, or from stdin when path is "-".
func Read(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading diff from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading diff file: %w", err)
	}
	return string(data), nil
}

// run executes git with the given arguments and returns its stdout.
func run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}
