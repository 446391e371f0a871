package xdom

import "strings"

// ParseWithPositions is like ParseWithOptions but additionally stamps
// Line/Column (1-based) on every Element, computed from each element's
// opening-tag offset in document. Grounded on the line/offset bookkeeping
// the teacher pack's line-oriented parser keeps alongside its token stream.
func ParseWithPositions(document string, opts ParserOptions) (QuerySet, error) {
	q, err := ParseWithOptions(document, opts)
	if err != nil {
		return QuerySet{}, err
	}
	lineStarts := computeLineStarts(document)
	root := q.elements[0]
	cursor := 0
	stampPositions(root, document, lineStarts, &cursor)
	return q, nil
}

func computeLineStarts(document string) []int {
	starts := []int{0}
	for i := 0; i < len(document); i++ {
		if document[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func lineColumnAt(offset int, lineStarts []int) (line, column int) {
	lo, hi := 0, len(lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, offset - lineStarts[lo] + 1
}

// stampPositions visits elements in document order, advancing cursor
// monotonically so repeated tag names resolve to their correct successive
// occurrences rather than always the first one in the document.
func stampPositions(e *Element, document string, lineStarts []int, cursor *int) {
	if rel := strings.Index(document[*cursor:], "<"+e.Name); rel >= 0 {
		offset := *cursor + rel
		e.Line, e.Column = lineColumnAt(offset, lineStarts)
		*cursor = offset + 1
	}
	for _, c := range e.Children {
		stampPositions(c, document, lineStarts, cursor)
	}
}
