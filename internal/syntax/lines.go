package syntax

import "sort"

// LineIndex maps byte offsets to 1-based line numbers.
type LineIndex struct {
	starts []int
}

// NewLineIndex records the start offset of every line in src.
func NewLineIndex(src []byte) LineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	return LineIndex{starts: starts}
}

// Count returns the number of lines, counting a trailing empty line after a
// final newline the way editors do.
func (li LineIndex) Count() int {
	return len(li.starts)
}

// Line returns the 1-based line containing offset. Offsets past the end
// resolve to the last line.
func (li LineIndex) Line(offset int) int {
	if len(li.starts) == 0 {
		return 1
	}

	return sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset })
}
