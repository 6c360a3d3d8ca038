// Package cluster merges pairwise block matches into equivalence classes
// via a lookup-and-relink scheme: two plain maps rather than a true
// union-find, so that member order within a cluster stays deterministic for
// a given arrival order of pairs.
package cluster

import "github.com/superdiff-go/superdiff/pkg/blockscan"

// Merger consumes raw (a, b) pairs from one or more scanners and maintains
// the resulting clusters. It is not safe for concurrent use — the worker
// pool is expected to run exactly one Merger on its driving goroutine while
// workers feed it serially over a channel.
type Merger struct {
	lookup   map[blockscan.Match]blockscan.Match
	clusters map[blockscan.Match][]blockscan.Match
}

// New returns an empty Merger.
func New() *Merger {
	return &Merger{
		lookup:   make(map[blockscan.Match]blockscan.Match),
		clusters: make(map[blockscan.Match][]blockscan.Match),
	}
}

// Merge applies one raw pair to the cluster state, handling all four
// insertion cases plus the no-op case where both members already share a
// canonical key.
func (m *Merger) Merge(a, b blockscan.Match) {
	ka, hasA := m.lookup[a]
	kb, hasB := m.lookup[b]

	switch {
	case !hasA && !hasB:
		m.clusters[b] = []blockscan.Match{a}
		m.lookup[a] = b
		m.lookup[b] = b

	case hasA && !hasB:
		m.clusters[ka] = append(m.clusters[ka], b)
		m.lookup[b] = ka

	case !hasA && hasB:
		m.clusters[kb] = append(m.clusters[kb], a)
		m.lookup[a] = kb

	case ka == kb:
		// already in the same cluster, nothing to do.

	default:
		m.mergeClusters(ka, kb)
	}
}

// mergeClusters folds the cluster keyed by k2 into the one keyed by k1,
// re-pointing every absorbed member's lookup entry to k1.
func (m *Merger) mergeClusters(k1, k2 blockscan.Match) {
	absorbed := m.clusters[k2]
	delete(m.clusters, k2)

	m.clusters[k1] = append(m.clusters[k1], absorbed...)
	m.clusters[k1] = append(m.clusters[k1], k2)

	for _, member := range absorbed {
		m.lookup[member] = k1
	}
	m.lookup[k2] = k1
}

// Clusters returns, for each canonical key, the full member list including
// the key itself. The slice and map are owned by the caller; Merger does
// not retain references to the returned value.
func (m *Merger) Clusters() map[blockscan.Match][]blockscan.Match {
	out := make(map[blockscan.Match][]blockscan.Match, len(m.clusters))
	for key, members := range m.clusters {
		full := make([]blockscan.Match, 0, len(members)+1)
		full = append(full, key)
		full = append(full, members...)
		out[key] = full
	}
	return out
}
