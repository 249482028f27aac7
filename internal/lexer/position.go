package lexer

import (
	"sort"
	"unicode/utf8"
)

// Position is a 1-based line and column; columns count runes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return itoa(p.Line) + ":" + itoa(p.Column)
}

// LineCol returns the line and column of p.
func (p Position) LineCol() (int, int) {
	return p.Line, p.Column
}

// LineIndex maps byte offsets of a source to positions.
type LineIndex struct {
	src    string
	starts []int
}

// NewLineIndex indexes the line starts of src.
func NewLineIndex(src string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{src: src, starts: starts}
}

// Position converts offset to a position. Offsets past the end of the
// source map to the position just after the last character.
func (ix *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(ix.src) {
		offset = len(ix.src)
	}
	line := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > offset }) - 1
	col := utf8.RuneCountInString(ix.src[ix.starts[line]:offset]) + 1
	return Position{Line: line + 1, Column: col}
}
