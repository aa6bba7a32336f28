package preprocess

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// sequentialBatchMax is the section count at or below which classification
// runs inline; dispatching goroutines for a handful of sections costs more
// than it saves.
const sequentialBatchMax = 3

// filterWorkerCap bounds the classification worker pool regardless of
// section count.
const filterWorkerCap = 4

// FilterSections classifies all sections and returns the survivors in their
// original order. Large batches are classified concurrently across a bounded
// pool; results land in an index-addressed slice so completion order never
// affects output order.
func FilterSections(sections []string) []string {
	if len(sections) == 0 {
		return nil
	}

	if len(sections) <= sequentialBatchMax {
		var kept []string
		for _, section := range sections {
			if !ShouldExclude(section) {
				kept = append(kept, section)
			}
		}
		return kept
	}

	keep := make([]bool, len(sections))

	var g errgroup.Group
	g.SetLimit(filterWorkers())
	for i, section := range sections {
		i, section := i, section
		g.Go(func() error {
			keep[i] = !ShouldExclude(section)
			return nil
		})
	}
	// Workers never return errors; Wait is just the barrier.
	_ = g.Wait()

	var kept []string
	for i, section := range sections {
		if keep[i] {
			kept = append(kept, section)
		}
	}
	return kept
}

// filterWorkers returns the pool size: min(NumCPU, filterWorkerCap).
func filterWorkers() int {
	n := runtime.NumCPU()
	if n > filterWorkerCap {
		n = filterWorkerCap
	}
	if n < 1 {
		n = 1
	}
	return n
}
