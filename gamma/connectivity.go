package gamma

// direction is one of the four cardinal neighbor offsets used throughout
// the engine for 4-neighborhood adjacency.
type direction struct{ dx, dy int32 }

var directions = [4]direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// neighborOf returns the cell index of the neighbor of (x,y) in direction d,
// and whether that neighbor lies on the board.
func (g *Game) neighborOf(x, y uint32, d direction) (int, bool) {
	nx := int64(x) + int64(d.dx)
	ny := int64(y) + int64(d.dy)
	if nx < 0 || ny < 0 || nx >= int64(g.width) || ny >= int64(g.height) {
		return 0, false
	}
	return int(ny*int64(g.width) + nx), true
}

// coordsOf converts a cell index back into (x,y).
func (g *Game) coordsOf(idx int) (uint32, uint32) {
	w := int64(g.width)
	return uint32(int64(idx) % w), uint32(int64(idx) / w)
}

// countNeighborsOwnedBy reports how many of idx's 4-neighbors are owned by
// the given player (0 meaning free is a valid, if unusual, argument).
func (g *Game) countNeighborsOwnedBy(idx int, player uint32) int {
	x, y := g.coordsOf(idx)
	count := 0
	for _, d := range directions {
		nb, ok := g.neighborOf(x, y, d)
		if !ok {
			continue
		}
		if g.owner[nb] == player {
			count++
		}
	}
	return count
}

// hasNeighborOwnedBy is countNeighborsOwnedBy(idx, player) > 0, named for
// readability at call sites that only care about presence.
func (g *Game) hasNeighborOwnedBy(idx int, player uint32) bool {
	return g.countNeighborsOwnedBy(idx, player) > 0
}

// dfsRelabel runs one connectivity pass: starting from cell `start`, owned
// by `owner`, it walks every 4-connected cell still owned by `owner` and
// rewrites its union-find entry to point at `root`, using an iterative
// explicit stack so pass depth is bounded only by available heap, not by
// goroutine stack size (spec.md §9: W*H can be large).
//
// The pass is tagged with a freshly incremented epoch so that a visited
// array never needs to be zeroed between passes: a cell is "seen this pass"
// iff g.visited[cell] equals the epoch this call claims.
func (g *Game) dfsRelabel(start int, owner uint32, root int) {
	g.epoch++
	epoch := g.epoch

	g.uf.setParent(root, root)
	g.uf.setRank(root, 1)

	stack := g.dfsStack[:0]
	stack = append(stack, start)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if g.visited[cur] == epoch {
			continue
		}
		g.visited[cur] = epoch
		g.uf.setParent(cur, root)
		g.uf.incRank(root)

		x, y := g.coordsOf(cur)
		for _, d := range directions {
			nb, ok := g.neighborOf(x, y, d)
			if !ok {
				continue
			}
			if g.owner[nb] == owner && g.visited[nb] != epoch {
				stack = append(stack, nb)
			}
		}
	}
	g.dfsStack = stack[:0]
}
