package blockscan

import "github.com/superdiff-go/superdiff/pkg/compare"

// extendBlock grows a confirmed seed match at (f1.start, f2.start) downward
// while cmp holds, returning the maximal block length. The caller has
// already confirmed the comparator matches at offset 0, so the returned
// length is always at least 1.
//
// Termination conditions, checked in order at each candidate offset k:
//
//   - f1 and f2 are the same file and f1.start+k lands on f2.start: extending
//     further would have the block consume its own later occurrence.
//   - f2.start+k has run past the end of f2's lines.
//   - f1.start+k has run past the end of f1's lines.
//   - the comparator rejects the pair at offset k.
func extendBlock(f1, f2 *positionedFile, cmp compare.Comparator) int {
	length := 1

	for {
		i := f1.start + length
		j := f2.start + length

		if f1.path == f2.path && i == f2.start {
			return length
		}
		if j >= len(f2.lines) {
			return length
		}
		if i >= len(f1.lines) {
			return length
		}
		if !cmp.Compare(f1.lines[i], f2.lines[j]) {
			return length
		}
		length++
	}
}
