package vim

// Line boundaries are found by scanning for '\n' from the position; the
// buffer is short-form prompt text, so there is no cached line index and
// every query is an O(line length) scan.

// lineStartAt returns the offset of the first rune of the line containing
// pos. pos may equal len(r).
func lineStartAt(r []rune, pos int) int {
	i := clamp(pos, 0, len(r))
	for i > 0 && r[i-1] != '\n' {
		i--
	}
	return i
}

// lineEndAt returns the offset of the terminating '\n' of the line
// containing pos, or len(r) for the last line.
func lineEndAt(r []rune, pos int) int {
	i := clamp(pos, 0, len(r))
	for i < len(r) && r[i] != '\n' {
		i++
	}
	return i
}

// lineUp moves pos one line up, preserving the column where possible:
// the target column is min(current column, target line length), so the
// cursor lands within the destination line, never past its terminal
// newline. Moving up from the first line is a no-op.
func lineUp(r []rune, pos int) int {
	start := lineStartAt(r, pos)
	if start == 0 {
		return pos
	}
	col := pos - start
	prevEnd := start - 1
	prevStart := lineStartAt(r, prevEnd)
	return prevStart + min(col, prevEnd-prevStart)
}

// lineDown is the mirror of lineUp. Moving down from the last line is a
// no-op.
func lineDown(r []rune, pos int) int {
	end := lineEndAt(r, pos)
	if end >= len(r) {
		return pos
	}
	col := pos - lineStartAt(r, pos)
	nextStart := end + 1
	nextEnd := lineEndAt(r, nextStart)
	return nextStart + min(col, nextEnd-nextStart)
}
