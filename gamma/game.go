// Package gamma implements the territory-claiming board game engine: a
// rectangular grid of cells, each owned by at most one player, an ordinary
// claim move and a once-per-player override move, and the per-player cap on
// the number of connected regions ("areas") a player may simultaneously
// hold.
//
// Game is not safe for concurrent use. A host serving several clients over
// one Game must serialize access itself.
package gamma

import (
	"fmt"
	"math"
)

// Game is the engine's sole exported type. Zero value is not usable; build
// one with NewGame.
type Game struct {
	width, height uint32
	players       uint32
	maxAreas      uint32

	owner []uint32 // grid, length width*height; 0 means free

	fieldsOwned  []int64 // index 1..players
	boundaryFree []int64
	components   []int64
	overrideUsed []bool

	busyTotal int64

	uf       *unionFind
	visited  []uint32
	epoch    uint32
	dfsStack []int // reusable scratch stack for dfsRelabel

	lastReject error // set on every false return from Claim/Override; see rejectReason
}

// rejectReason reports why the most recent Claim or Override call returned
// false, or nil if the most recent such call succeeded. It exists for tests
// and diagnostics only — the public Claim/Override contract stays a bare
// bool per spec.md §4.1.
func (g *Game) rejectReason() error {
	return g.lastReject
}

// NewGame constructs a fresh board of the given width, height, player count
// and per-player area cap. All four arguments must be strictly positive;
// width*height must fit in the range this implementation is prepared to
// allocate (bounded by Go's int range on the host platform). On success the
// grid is entirely free, every per-player counter is zero, and the
// union-find forest holds width*height singletons.
func NewGame(width, height, players, maxAreas uint32) (*Game, error) {
	if width == 0 || height == 0 || players == 0 || maxAreas == 0 {
		return nil, errZeroDimension
	}
	area, err := boardArea(width, height)
	if err != nil {
		return nil, err
	}

	g := &Game{
		width:        width,
		height:       height,
		players:      players,
		maxAreas:     maxAreas,
		owner:        make([]uint32, area),
		fieldsOwned:  make([]int64, players+1),
		boundaryFree: make([]int64, players+1),
		components:   make([]int64, players+1),
		overrideUsed: make([]bool, players+1),
		uf:           newUnionFind(area),
		visited:      make([]uint32, area),
		epoch:        1,
		dfsStack:     make([]int, 0, 64),
	}
	return g, nil
}

// boardArea computes width*height as an int, rejecting combinations that
// would overflow either uint64 multiplication or the host's int range —
// the Go analogue of the original's malloc-failure path (spec.md §7 kind 3).
func boardArea(width, height uint32) (int, error) {
	area := uint64(width) * uint64(height)
	if width != 0 && area/uint64(width) != uint64(height) {
		return 0, errBoardTooLarge
	}
	if area > uint64(math.MaxInt) {
		return 0, errBoardTooLarge
	}
	return int(area), nil
}

func (g *Game) inBounds(x, y uint32) bool {
	return x < g.width && y < g.height
}

func (g *Game) cellIndex(x, y uint32) int {
	return int(y)*int(g.width) + int(x)
}

func (g *Game) validPlayer(p uint32) bool {
	return p >= 1 && p <= g.players
}

// OwnerAt returns the owner of cell (x,y), or 0 if it is free. The caller is
// responsible for checking bounds; out-of-range coordinates return 0.
func (g *Game) OwnerAt(x, y uint32) uint32 {
	if g == nil || !g.inBounds(x, y) {
		return 0
	}
	return g.owner[g.cellIndex(x, y)]
}

// Claim attempts an ordinary move: player p occupies the free cell (x,y).
// It succeeds only if p is in range, (x,y) is on the board and free, and
// either (x,y) touches one of p's existing cells or p is still below its
// area cap. On any precondition failure Claim returns false and leaves the
// state unchanged.
func (g *Game) Claim(p, x, y uint32) bool {
	if g == nil {
		return false
	}
	if !g.validPlayer(p) {
		g.lastReject = errInvalidPlayer
		return false
	}
	if !g.inBounds(x, y) {
		g.lastReject = errOutOfBounds
		return false
	}
	idx := g.cellIndex(x, y)
	if g.owner[idx] != 0 {
		g.lastReject = errCellNotFree
		return false
	}
	if !g.hasNeighborOwnedBy(idx, p) && g.components[p] >= int64(g.maxAreas) {
		g.lastReject = errAreaCapExceeded
		return false
	}

	g.commitClaim(p, x, y, idx)
	g.lastReject = nil
	return true
}

// commitClaim applies an already-validated claim of idx by p, in the order
// spec.md §4.1 lists: grid + busy/owned counters, boundary-free deltas for
// both p and any displaced free-cell owners, then the provisional
// component increment folded down by however many of p's neighbors it
// actually merges with.
func (g *Game) commitClaim(p, x, y uint32, idx int) {
	g.owner[idx] = p
	g.fieldsOwned[p]++
	g.busyTotal++

	for _, d := range directions {
		nb, ok := g.neighborOf(x, y, d)
		if !ok || g.owner[nb] != 0 {
			continue
		}
		if g.countNeighborsOwnedBy(nb, p) == 1 {
			g.boundaryFree[p]++
		}
	}

	var seen [4]uint32
	seenN := 0
	for _, d := range directions {
		nb, ok := g.neighborOf(x, y, d)
		if !ok {
			continue
		}
		q := g.owner[nb]
		if q == 0 {
			continue
		}
		already := false
		for i := 0; i < seenN; i++ {
			if seen[i] == q {
				already = true
				break
			}
		}
		if !already {
			seen[seenN] = q
			seenN++
			g.boundaryFree[q]--
		}
	}

	g.components[p]++
	for _, d := range directions {
		nb, ok := g.neighborOf(x, y, d)
		if !ok || g.owner[nb] != p {
			continue
		}
		if g.uf.find(nb) != g.uf.find(idx) {
			g.uf.union(idx, nb)
			g.components[p]--
		}
	}
}

// Override is the once-per-player move that may displace a cell owned by
// another player. It fails closed: out-of-range ids/coordinates, an
// already-used override, a free target cell, or a cell p already owns all
// return false without mutating the game. Otherwise it runs the speculative
// split analysis of spec.md §4.1 and commits only if neither the victim nor
// the mover would exceed max_areas.
func (g *Game) Override(p, x, y uint32) bool {
	if g == nil {
		return false
	}
	if !g.validPlayer(p) {
		g.lastReject = errInvalidPlayer
		return false
	}
	if !g.inBounds(x, y) {
		g.lastReject = errOutOfBounds
		return false
	}
	if g.overrideUsed[p] {
		g.lastReject = errOverrideUsed
		return false
	}
	idx := g.cellIndex(x, y)
	q := g.owner[idx]
	if q == 0 {
		g.lastReject = errCellIsFree
		return false
	}
	if q == p {
		g.lastReject = errCellAlreadyOwned
		return false
	}
	if g.busyTotal-g.fieldsOwned[p] == 0 {
		g.lastReject = errNothingToTake
		return false
	}

	hasPNeighbor := g.hasNeighborOwnedBy(idx, p)

	g.owner[idx] = 0 // speculative vacate
	startEpoch := g.epoch
	var newQComponents int64
	hasQNeighbor := false
	for _, d := range directions {
		nb, ok := g.neighborOf(x, y, d)
		if !ok || g.owner[nb] != q {
			continue
		}
		hasQNeighbor = true
		if g.visited[nb] > startEpoch {
			continue // already relabeled by an earlier neighbor's pass
		}
		g.dfsRelabel(nb, q, nb)
		newQComponents++
	}

	var deltaQ int64
	if hasQNeighbor {
		deltaQ = newQComponents - 1
	} else {
		deltaQ = -1
	}
	var deltaP int64
	if !hasPNeighbor {
		deltaP = 1
	}

	accept := g.components[q]+deltaQ <= int64(g.maxAreas) &&
		g.components[p]+deltaP <= int64(g.maxAreas)

	if !accept {
		g.rollbackOverride(x, y, idx, q, deltaQ)
		g.lastReject = errAreaCapExceeded
		return false
	}

	g.commitOverride(p, x, y, idx, q, deltaQ)
	g.overrideUsed[p] = true
	g.lastReject = nil
	return true
}

// rollbackOverride undoes the speculative vacate-and-split of Override (and
// of the probing analysis in OverridePossible): it refills idx with q and
// re-merges it with q's split pieces using the same provisional-increment,
// merge-and-decrement logic as a claim, which reconnects them into the one
// component q held before the call. components[q] is adjusted by deltaQ
// first so that the subsequent provisional/merge arithmetic lands back on
// its pre-call value — deltaQ already measures exactly how far the split
// moved the true (but not-yet-recorded) component count away from it.
func (g *Game) rollbackOverride(x, y uint32, idx int, q uint32, deltaQ int64) {
	g.owner[idx] = q
	g.uf.setParent(idx, idx)
	g.uf.setRank(idx, 1)

	g.components[q] += deltaQ
	g.components[q]++
	for _, d := range directions {
		nb, ok := g.neighborOf(x, y, d)
		if !ok || g.owner[nb] != q {
			continue
		}
		if g.uf.find(nb) != g.uf.find(idx) {
			g.uf.union(idx, nb)
			g.components[q]--
		}
	}
}

// commitOverride applies an accepted override: boundary-free upkeep for the
// vacated cell (still free at this point, about to become p's), the
// ownership transfer itself, then p's own boundary-free and component
// bookkeeping exactly as in commitClaim.
func (g *Game) commitOverride(p, x, y uint32, idx int, q uint32, deltaQ int64) {
	for _, d := range directions {
		nb, ok := g.neighborOf(x, y, d)
		if !ok || g.owner[nb] != 0 {
			continue
		}
		if g.countNeighborsOwnedBy(nb, q) == 0 {
			g.boundaryFree[q]--
		}
	}

	g.fieldsOwned[p]++
	g.fieldsOwned[q]--
	g.components[q] += deltaQ

	g.owner[idx] = p
	g.uf.setParent(idx, idx)
	g.uf.setRank(idx, 1)

	for _, d := range directions {
		nb, ok := g.neighborOf(x, y, d)
		if !ok || g.owner[nb] != 0 {
			continue
		}
		if g.countNeighborsOwnedBy(nb, p) == 1 {
			g.boundaryFree[p]++
		}
	}

	g.components[p]++
	for _, d := range directions {
		nb, ok := g.neighborOf(x, y, d)
		if !ok || g.owner[nb] != p {
			continue
		}
		if g.uf.find(nb) != g.uf.find(idx) {
			g.uf.union(idx, nb)
			g.components[p]--
		}
	}
}

// BusyFields returns the number of cells owned by p, or 0 if p is not a
// valid player id.
func (g *Game) BusyFields(p uint32) int64 {
	if g == nil || !g.validPlayer(p) {
		return 0
	}
	return g.fieldsOwned[p]
}

// FreeFields returns the number of cells p could still claim: the whole
// board's free count, unless p already sits at its area cap, in which case
// only cells on p's existing frontier remain reachable without exceeding
// it.
func (g *Game) FreeFields(p uint32) int64 {
	if g == nil || !g.validPlayer(p) {
		return 0
	}
	if g.components[p] == int64(g.maxAreas) {
		return g.boundaryFree[p]
	}
	return g.AllFreeFields()
}

// AllFreeFields returns the number of free cells on the whole board.
func (g *Game) AllFreeFields() int64 {
	if g == nil {
		return 0
	}
	return int64(g.width)*int64(g.height) - g.busyTotal
}

// OverridePossible reports whether p could still invoke Override
// successfully on some cell, honoring both players' area caps — not merely
// whether an opponent-owned cell exists. It never mutates the game.
func (g *Game) OverridePossible(p uint32) bool {
	if g == nil || !g.validPlayer(p) {
		return false
	}
	if g.overrideUsed[p] {
		return false
	}
	if g.busyTotal == g.fieldsOwned[p] {
		return false
	}

	area := int(g.width) * int(g.height)
	for idx := 0; idx < area; idx++ {
		q := g.owner[idx]
		if q == 0 || q == p {
			continue
		}
		x, y := g.coordsOf(idx)
		if g.probeOverride(p, x, y, idx, q) {
			return true
		}
	}
	return false
}

// probeOverride runs the same speculative split analysis Override does, but
// always rolls it back — OverridePossible only needs the accept/reject
// verdict, never the mutation.
func (g *Game) probeOverride(p, x, y uint32, idx int, q uint32) bool {
	hasPNeighbor := g.hasNeighborOwnedBy(idx, p)

	g.owner[idx] = 0
	startEpoch := g.epoch
	var newQComponents int64
	hasQNeighbor := false
	for _, d := range directions {
		nb, ok := g.neighborOf(x, y, d)
		if !ok || g.owner[nb] != q {
			continue
		}
		hasQNeighbor = true
		if g.visited[nb] > startEpoch {
			continue
		}
		g.dfsRelabel(nb, q, nb)
		newQComponents++
	}

	var deltaQ int64
	if hasQNeighbor {
		deltaQ = newQComponents - 1
	} else {
		deltaQ = -1
	}
	var deltaP int64
	if !hasPNeighbor {
		deltaP = 1
	}

	accept := g.components[q]+deltaQ <= int64(g.maxAreas) &&
		g.components[p]+deltaP <= int64(g.maxAreas)

	g.rollbackOverride(x, y, idx, q, deltaQ)
	return accept
}

// String renders the board via Render, satisfying fmt.Stringer for
// convenient logging. Unlike Render it never reports an error: a Game built
// by NewGame always renders.
func (g *Game) String() string {
	s, err := g.Render()
	if err != nil {
		return fmt.Sprintf("<gamma.Game render error: %v>", err)
	}
	return s
}
