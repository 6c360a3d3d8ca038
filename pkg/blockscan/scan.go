package blockscan

import "github.com/superdiff-go/superdiff/pkg/compare"

// Scan drives the primary cursor over fileA and, for every admissible
// position, a secondary cursor over fileB, emitting a Pair for every block
// whose extended length reaches blockThreshold. When fileA and fileB are the
// same path, the secondary cursor starts one past the primary so a file is
// never compared against itself at the same offset.
func Scan(pathA string, linesA []string, pathB string, linesB []string, cmp compare.Comparator, lineThreshold, blockThreshold int) []Pair {
	sameFile := pathA == pathB

	fa := &positionedFile{path: pathA, lines: linesA}
	fb := &positionedFile{path: pathB, lines: linesB}

	var pairs []Pair

	limit := len(linesA)
	if sameFile && limit > 0 {
		limit--
	}

	i := 0
	for i < limit {
		if len(linesA[i]) < lineThreshold {
			i++
			continue
		}

		fa.start = i
		maxBlockLength := 1

		j := 0
		if sameFile {
			j = i + 1
		}

		for j < len(linesB) {
			fb.start = j

			if !cmp.Compare(linesA[i], linesB[j]) {
				j++
				continue
			}

			length := extendBlock(fa, fb, cmp)
			if length < blockThreshold {
				j += length
				continue
			}

			pairs = append(pairs, Pair{
				A: Match{File: pathA, Line: i + 1, Size: length},
				B: Match{File: pathB, Line: j + 1, Size: length},
			})

			j += length
			if length > maxBlockLength {
				maxBlockLength = length
			}
		}

		if maxBlockLength < 1 {
			maxBlockLength = 1
		}
		i += maxBlockLength
	}

	return pairs
}
