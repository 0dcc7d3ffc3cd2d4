package gamma

import "strconv"

// Render produces a newline-terminated board dump: height lines, the
// highest y first, each cell in increasing x order. A free cell is ".". An
// owned cell with a single decimal digit is that digit. An owned cell whose
// id needs two or more digits is the id padded by one space on each side,
// so every multi-digit owner still reads as a single token when the board
// is split on whitespace.
//
// The buffer length is computed in a first pass (spec.md §4.4) before the
// second pass writes it, so the byte buffer is allocated once at its final
// size. On a non-nil Game, Render never fails in this Go port — unlike the
// original's malloc-backed renderer, Go slice allocation panics rather than
// returning an error; the only error it returns is for a nil *Game. It
// keeps the (string, error) shape so a host that wants to cap render size
// can inject that failure mode later without changing every caller.
func (g *Game) Render() (string, error) {
	if g == nil {
		return "", errZeroDimension
	}

	size := 0
	for y := int(g.height) - 1; y >= 0; y-- {
		for x := uint32(0); x < g.width; x++ {
			size += cellWidth(g.owner[g.cellIndex(x, uint32(y))])
		}
		size++ // newline
	}

	buf := make([]byte, 0, size)
	for y := int(g.height) - 1; y >= 0; y-- {
		for x := uint32(0); x < g.width; x++ {
			buf = appendCell(buf, g.owner[g.cellIndex(x, uint32(y))])
		}
		buf = append(buf, '\n')
	}
	return string(buf), nil
}

// cellWidth is the number of bytes a cell contributes to the rendered
// board: 1 for free or single-digit owners, digits+2 for multi-digit ones.
func cellWidth(owner uint32) int {
	if owner == 0 {
		return 1
	}
	digits := len(strconv.FormatUint(uint64(owner), 10))
	if digits == 1 {
		return 1
	}
	return digits + 2
}

func appendCell(buf []byte, owner uint32) []byte {
	if owner == 0 {
		return append(buf, '.')
	}
	s := strconv.FormatUint(uint64(owner), 10)
	if len(s) == 1 {
		return append(buf, s[0])
	}
	buf = append(buf, ' ')
	buf = append(buf, s...)
	buf = append(buf, ' ')
	return buf
}
