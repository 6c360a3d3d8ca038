// Package report turns a resolved cluster table into the stable
// collaborator-facing view: a file summary, a list of cluster records, and
// renderers for both JSON and text output modes.
package report

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/segmentio/encoding/json"

	"github.com/superdiff-go/superdiff/internal/version"
	"github.com/superdiff-go/superdiff/pkg/blockscan"
)

// FileSummary is the per-file block count embedded both at the top level
// and inside every cluster record.
type FileSummary struct {
	CountBlocks int `json:"count_blocks"`
}

// BlockInfo is one occurrence of a cluster's block within a single file.
type BlockInfo struct {
	StartingLine int `json:"starting_line"`
	BlockLength  int `json:"block_length"`
}

// ClusterRecord is a single cluster's renderable form.
type ClusterRecord struct {
	Files  map[string]FileSummary `json:"files"`
	Blocks map[string][]BlockInfo `json:"blocks"`
}

// Report is the full aggregated view handed to a renderer.
type Report struct {
	Version string                 `json:"version"`
	Files   map[string]FileSummary `json:"files"`
	Matches []ClusterRecord        `json:"matches"`
}

// Build converts a resolved cluster table (canonical Match -> full member
// list, as returned by cluster.Merger.Clusters) into a Report. Cluster and
// member iteration order is whatever the map gives; callers that need a
// deterministic rendering should sort the result before printing, but
// structural Equal treats it as a multiset regardless.
func Build(clusters map[blockscan.Match][]blockscan.Match) Report {
	fileTotals := make(map[string]int)
	records := make([]ClusterRecord, 0, len(clusters))

	for _, members := range clusters {
		filesInCluster := make(map[string]int)
		blocksInCluster := make(map[string][]BlockInfo)

		for _, member := range members {
			filesInCluster[member.File]++
			blocksInCluster[member.File] = append(blocksInCluster[member.File], BlockInfo{
				StartingLine: member.Line,
				BlockLength:  member.Size,
			})
			fileTotals[member.File]++
		}

		fileSummaries := make(map[string]FileSummary, len(filesInCluster))
		for path, count := range filesInCluster {
			fileSummaries[path] = FileSummary{CountBlocks: count}
		}

		records = append(records, ClusterRecord{
			Files:  fileSummaries,
			Blocks: blocksInCluster,
		})
	}

	fileSummary := make(map[string]FileSummary, len(fileTotals))
	for path, count := range fileTotals {
		fileSummary[path] = FileSummary{CountBlocks: count}
	}

	return Report{
		Version: version.Version,
		Files:   fileSummary,
		Matches: records,
	}
}

// JSON renders the report using the stable schema documented at the CLI
// boundary.
func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Text renders the report as a sequence of "=== MATCH ===" sections, one
// per cluster, each followed by one "File: ...\nLines: [...]\nSize: ..."
// block per file. Per-file blocks within a cluster are joined by
// "\n---\n"; the cluster sections themselves are simply newline-separated.
func (r Report) Text() string {
	var sections []string

	for _, record := range r.Matches {
		paths := make([]string, 0, len(record.Blocks))
		for path := range record.Blocks {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		var fileBlocks []string
		size := 0
		for _, path := range paths {
			blocks := record.Blocks[path]
			lines := make([]string, len(blocks))
			for i, b := range blocks {
				lines[i] = fmt.Sprintf("%d", b.StartingLine)
				size = b.BlockLength
			}
			fileBlocks = append(fileBlocks, fmt.Sprintf("File: %s\nLines: [%s]\nSize: %d", path, strings.Join(lines, ", "), size))
		}

		sections = append(sections, "=== MATCH ===\n"+strings.Join(fileBlocks, "\n---\n"))
	}

	return strings.Join(sections, "\n")
}

// Equal reports whether two reports are structurally equivalent: the same
// files map, and the same multiset of cluster records (each record's
// per-path block list compared as a multiset, independent of ordering).
func (r Report) Equal(other Report) bool {
	if !filesEqual(r.Files, other.Files) {
		return false
	}
	if len(r.Matches) != len(other.Matches) {
		return false
	}

	remaining := make([]ClusterRecord, len(other.Matches))
	copy(remaining, other.Matches)

	for _, want := range r.Matches {
		found := -1
		for i, candidate := range remaining {
			if clusterRecordEqual(want, candidate) {
				found = i
				break
			}
		}
		if found == -1 {
			return false
		}
		remaining = append(remaining[:found], remaining[found+1:]...)
	}

	return true
}

func filesEqual(a, b map[string]FileSummary) bool {
	if len(a) != len(b) {
		return false
	}
	for path, summary := range a {
		other, ok := b[path]
		if !ok || other != summary {
			return false
		}
	}
	return true
}

func clusterRecordEqual(a, b ClusterRecord) bool {
	if !filesEqual(a.Files, b.Files) {
		return false
	}
	if len(a.Blocks) != len(b.Blocks) {
		return false
	}
	for path, blocks := range a.Blocks {
		otherBlocks, ok := b.Blocks[path]
		if !ok || !blockMultisetEqual(blocks, otherBlocks) {
			return false
		}
	}
	return true
}

func blockMultisetEqual(a, b []BlockInfo) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[BlockInfo]int, len(a))
	for _, blk := range a {
		counts[blk]++
	}
	for _, blk := range b {
		counts[blk]--
	}
	for _, n := range counts {
		if n != 0 {
			return false
		}
	}
	return true
}
