// Package pool partitions the set of file-pair comparisons across a fixed
// number of worker goroutines and merges their raw matches into clusters on
// a single consumer goroutine.
package pool

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/superdiff-go/superdiff/pkg/blockscan"
	"github.com/superdiff-go/superdiff/pkg/cluster"
	"github.com/superdiff-go/superdiff/pkg/compare"
	"github.com/superdiff-go/superdiff/pkg/lineset"
)

// Options configures a Run.
type Options struct {
	LevThreshold   int
	LineThreshold  int
	BlockThreshold int
	Workers        int

	// OnUnreadable, if non-nil, is invoked (from worker goroutines, so it
	// must be concurrency-safe) whenever a pair is skipped because one of
	// its files could not be loaded.
	OnUnreadable func(path string, err error)

	// Progress, if non-nil, receives one value per pair the scanner has
	// finished processing. Sends are non-blocking: if nothing is reading
	// from Progress, ticks are silently dropped rather than stalling a
	// worker.
	Progress chan<- struct{}
}

// pairJob is one (pathA, pathB) task assigned to a worker.
type pairJob struct {
	a, b string
}

// Run enumerates {(paths[i], paths[j]) : i <= j}, distributes the pairs
// round-robin across opts.Workers goroutines, scans each pair, and merges
// every raw match into the returned Merger. The merger itself only ever
// runs on the calling goroutine, so its internal maps need no locking.
func Run(ctx context.Context, paths []string, opts Options) (*cluster.Merger, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	jobChans := make([]chan pairJob, workers)
	for i := range jobChans {
		jobChans[i] = make(chan pairJob, 8)
	}

	results := make(chan blockscan.Pair)

	var g errgroup.Group

	for w := 0; w < workers; w++ {
		jobs := jobChans[w]
		g.Go(func() error {
			runWorker(jobs, results, opts)
			return nil
		})
	}

	go func() {
		distribute(paths, jobChans)
		for _, ch := range jobChans {
			close(ch)
		}
	}()

	go func() {
		g.Wait()
		close(results)
	}()

	merger := cluster.New()
	for pair := range results {
		merger.Merge(pair.A, pair.B)
	}

	return merger, nil
}

// distribute enumerates the i<=j pair multiset in a stable (i, then j)
// order and hands each one to the next job channel round-robin, so the
// assignment is independent of worker count up to which worker gets which
// pair, not the total work performed.
func distribute(paths []string, jobChans []chan pairJob) {
	n := len(jobChans)
	next := 0
	for i := 0; i < len(paths); i++ {
		for j := i; j < len(paths); j++ {
			jobChans[next%n] <- pairJob{a: paths[i], b: paths[j]}
			next++
		}
	}
}

// runWorker drains its job channel with a private loader cache and
// comparator, scanning every assigned pair and forwarding raw matches to
// the shared results channel.
func runWorker(jobs <-chan pairJob, results chan<- blockscan.Pair, opts Options) {
	cache := lineset.New()
	cmp := compare.New(opts.LevThreshold)

	for job := range jobs {
		linesA, err := cache.Load(job.a)
		if err != nil {
			if opts.OnUnreadable != nil {
				opts.OnUnreadable(job.a, err)
			}
			continue
		}
		linesB, err := cache.Load(job.b)
		if err != nil {
			if opts.OnUnreadable != nil {
				opts.OnUnreadable(job.b, err)
			}
			continue
		}

		pairs := blockscan.Scan(job.a, linesA, job.b, linesB, cmp, opts.LineThreshold, opts.BlockThreshold)
		for _, p := range pairs {
			results <- p
		}

		if opts.Progress != nil {
			select {
			case opts.Progress <- struct{}{}:
			default:
			}
		}
	}
}

// SortedPaths returns a copy of paths sorted lexically. Callers that need
// worker-count- and order-independent results (see the package's testable
// properties) can normalise the input with this before calling Run, since
// Run itself preserves whatever order it is given.
func SortedPaths(paths []string) []string {
	out := make([]string, len(paths))
	copy(out, paths)
	sort.Strings(out)
	return out
}
