package gamma

import "testing"

func TestNewGameRejectsZeroDimensions(t *testing.T) {
	cases := [][4]uint32{
		{0, 5, 2, 3},
		{5, 0, 2, 3},
		{5, 5, 0, 3},
		{5, 5, 2, 0},
	}
	for _, c := range cases {
		if g, err := NewGame(c[0], c[1], c[2], c[3]); g != nil || err == nil {
			t.Fatalf("NewGame%v: expected failure, got game=%v err=%v", c, g, err)
		}
	}
}

func TestNewGameFreshBoardIsEmpty(t *testing.T) {
	g, err := NewGame(10, 10, 2, 3)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if got := g.AllFreeFields(); got != 100 {
		t.Fatalf("AllFreeFields = %d, want 100", got)
	}
	for p := uint32(1); p <= 2; p++ {
		if got := g.BusyFields(p); got != 0 {
			t.Fatalf("BusyFields(%d) = %d, want 0", p, got)
		}
		if got := g.FreeFields(p); got != 100 {
			t.Fatalf("FreeFields(%d) = %d, want 100", p, got)
		}
	}
	if g.OwnerAt(0, 0) != 0 {
		t.Fatalf("fresh board cell should be free")
	}
}

// TestWalkthrough replays the worked example from spec.md §8 end to end on a
// fresh 10x10 board with P=2, A=3.
func TestWalkthrough(t *testing.T) {
	g, err := NewGame(10, 10, 2, 3)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	// 1.
	if !g.Claim(1, 0, 0) {
		t.Fatal("claim(1,0,0) should succeed")
	}
	assertEq(t, "busy(1)", g.BusyFields(1), 1)
	assertEq(t, "busy(2)", g.BusyFields(2), 0)
	assertEq(t, "free(1)", g.FreeFields(1), 99)
	assertEq(t, "free(2)", g.FreeFields(2), 99)
	if g.OverridePossible(1) {
		t.Fatal("override_possible(1) should be false")
	}

	// 2.
	if !g.Claim(2, 3, 1) {
		t.Fatal("claim(2,3,1) should succeed")
	}
	assertEq(t, "free(1)", g.FreeFields(1), 98)
	assertEq(t, "free(2)", g.FreeFields(2), 98)

	// 3.
	if !g.Claim(1, 0, 2) {
		t.Fatal("claim(1,0,2) should succeed")
	}
	if !g.Claim(1, 0, 9) {
		t.Fatal("claim(1,0,9) should succeed")
	}
	if g.Claim(1, 5, 5) {
		t.Fatal("claim(1,5,5) should fail: would be 4th component")
	}
	assertEq(t, "free(1)", g.FreeFields(1), 6)

	// 4.
	if !g.Claim(1, 0, 1) {
		t.Fatal("claim(1,0,1) should succeed: joins existing components")
	}
	assertEq(t, "free(1)", g.FreeFields(1), 95)
	if !g.Claim(1, 5, 5) {
		t.Fatal("claim(1,5,5) should now succeed")
	}
	if g.Claim(1, 6, 6) {
		t.Fatal("claim(1,6,6) should fail: new component again at cap")
	}
	assertEq(t, "busy(1)", g.BusyFields(1), 5)
	assertEq(t, "free(1)", g.FreeFields(1), 10)

	// 5.
	if !g.Claim(2, 2, 1) {
		t.Fatal("claim(2,2,1) should succeed")
	}
	if !g.Claim(2, 1, 1) {
		t.Fatal("claim(2,1,1) should succeed")
	}
	assertEq(t, "free(1)", g.FreeFields(1), 9)
	assertEq(t, "free(2)", g.FreeFields(2), 92)
	if g.Claim(2, 0, 1) {
		t.Fatal("claim(2,0,1) should fail")
	}
	if !g.OverridePossible(2) {
		t.Fatal("override_possible(2) should be true")
	}
	if g.Override(2, 0, 1) {
		t.Fatal("override(2,0,1) should fail: would split/exceed")
	}
	if !g.Override(2, 5, 5) {
		t.Fatal("override(2,5,5) should succeed")
	}
	if g.OverridePossible(2) {
		t.Fatal("override_possible(2) should now be false")
	}

	// 6.
	if !g.Claim(2, 6, 6) {
		t.Fatal("claim(2,6,6) should succeed")
	}
	assertEq(t, "busy(1)", g.BusyFields(1), 4)
	assertEq(t, "free(1)", g.FreeFields(1), 91)
	assertEq(t, "busy(2)", g.BusyFields(2), 5)
	assertEq(t, "free(2)", g.FreeFields(2), 13)
	if !g.Override(1, 3, 1) {
		t.Fatal("override(1,3,1) should succeed")
	}
	assertEq(t, "busy(1)", g.BusyFields(1), 5)
	assertEq(t, "free(1)", g.FreeFields(1), 8)
	assertEq(t, "busy(2)", g.BusyFields(2), 4)
	assertEq(t, "free(2)", g.FreeFields(2), 10)

	want := "1.........\n" +
		"..........\n" +
		"..........\n" +
		"......2...\n" +
		".....2....\n" +
		"..........\n" +
		"..........\n" +
		"1.........\n" +
		"1221......\n" +
		"1.........\n"
	got, err := g.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != want {
		t.Fatalf("Render mismatch:\ngot:\n%swant:\n%s", got, want)
	}

	assertInvariants(t, g, 2)
}

func TestOverrideUsedOnlyOnce(t *testing.T) {
	g, _ := NewGame(5, 5, 2, 3)
	g.Claim(1, 0, 0)
	g.Claim(2, 1, 0)
	if !g.Override(1, 1, 0) {
		t.Fatal("first override should succeed")
	}
	if g.Override(1, 2, 0) {
		t.Fatal("second override by the same player must fail")
	}
	if g.OverridePossible(1) {
		t.Fatal("override_possible must be false once override_used is set")
	}
}

func TestClaimRejectsOccupiedCell(t *testing.T) {
	g, _ := NewGame(5, 5, 2, 3)
	g.Claim(1, 0, 0)
	if g.Claim(2, 0, 0) {
		t.Fatal("claim on an occupied cell must fail")
	}
}

func TestClaimRejectOutOfRange(t *testing.T) {
	g, _ := NewGame(5, 5, 2, 3)
	if g.Claim(0, 0, 0) || g.Claim(3, 0, 0) {
		t.Fatal("claim with invalid player id must fail")
	}
	if g.Claim(1, 5, 0) || g.Claim(1, 0, 5) {
		t.Fatal("claim out of bounds must fail")
	}
}

func TestOverrideRejectsOwnCellAndFreeCell(t *testing.T) {
	g, _ := NewGame(5, 5, 2, 3)
	g.Claim(1, 0, 0)
	if g.Override(1, 0, 0) {
		t.Fatal("override of a cell already owned by the mover must fail")
	}
	if g.Override(1, 1, 1) {
		t.Fatal("override of a free cell must fail")
	}
}

// TestRejectIsIndistinguishable checks the reject-idempotence law from
// spec.md §8: a rejected claim or override leaves every observable query
// unchanged.
func TestRejectIsIndistinguishable(t *testing.T) {
	g, _ := NewGame(6, 6, 2, 2)
	g.Claim(1, 0, 0)
	g.Claim(1, 1, 0)
	g.Claim(2, 5, 5)

	before, _ := g.Render()
	busy1, busy2 := g.BusyFields(1), g.BusyFields(2)
	free1, free2 := g.FreeFields(1), g.FreeFields(2)
	allFree := g.AllFreeFields()

	if g.Claim(1, 0, 0) {
		t.Fatal("claim on an occupied cell must not succeed")
	}
	if g.Override(1, 9, 9) {
		t.Fatal("override out of bounds must not succeed")
	}

	after, _ := g.Render()
	if before != after {
		t.Fatalf("board changed after rejected moves:\nbefore:\n%safter:\n%s", before, after)
	}
	if g.BusyFields(1) != busy1 || g.BusyFields(2) != busy2 {
		t.Fatal("busy counts changed after rejected moves")
	}
	if g.FreeFields(1) != free1 || g.FreeFields(2) != free2 {
		t.Fatal("free counts changed after rejected moves")
	}
	if g.AllFreeFields() != allFree {
		t.Fatal("all-free count changed after rejected moves")
	}
}

// TestComponentsMatchFloodFill is a small property check: after a scripted
// sequence of claims and overrides, each player's recorded component count
// matches an independent flood-fill over the owner grid (spec.md §8).
func TestComponentsMatchFloodFill(t *testing.T) {
	g, _ := NewGame(8, 8, 3, 4)
	moves := []struct {
		override bool
		p, x, y  uint32
	}{
		{false, 1, 0, 0}, {false, 2, 7, 7}, {false, 3, 0, 7},
		{false, 1, 1, 0}, {false, 1, 3, 3}, {false, 1, 5, 5},
		{false, 2, 6, 7}, {false, 2, 2, 2}, {false, 3, 0, 6},
		{true, 2, 1, 0}, {true, 3, 3, 3}, {true, 1, 2, 2},
	}
	for _, mv := range moves {
		if mv.override {
			g.Override(mv.p, mv.x, mv.y)
		} else {
			g.Claim(mv.p, mv.x, mv.y)
		}
	}
	assertInvariants(t, g, 3)
}

func assertEq(t *testing.T, label string, got, want int64) {
	t.Helper()
	if got != want {
		t.Fatalf("%s = %d, want %d", label, got, want)
	}
}

// assertInvariants performs the independent flood-fill and boundary-free
// checks from spec.md §8 against the live game state.
func assertInvariants(t *testing.T, g *Game, players uint32) {
	t.Helper()

	visited := make([]bool, int(g.width)*int(g.height))
	components := make([]int64, players+1)
	fields := make([]int64, players+1)
	boundary := make([]map[int]bool, players+1)
	for p := range boundary {
		boundary[p] = make(map[int]bool)
	}

	busy := int64(0)
	for y := uint32(0); y < g.height; y++ {
		for x := uint32(0); x < g.width; x++ {
			idx := g.cellIndex(x, y)
			owner := g.owner[idx]
			if owner == 0 {
				continue
			}
			busy++
			fields[owner]++
			if !visited[idx] {
				components[owner]++
				floodFill(g, x, y, owner, visited)
			}
			for _, d := range directions {
				nb, ok := g.neighborOf(x, y, d)
				if !ok || g.owner[nb] != 0 {
					continue
				}
				boundary[owner][nb] = true
			}
		}
	}

	if busy != g.busyTotal {
		t.Fatalf("busyTotal = %d, independent count = %d", g.busyTotal, busy)
	}
	if g.AllFreeFields() != int64(g.width)*int64(g.height)-busy {
		t.Fatalf("AllFreeFields inconsistent with busy count")
	}
	for p := uint32(1); p <= players; p++ {
		if g.fieldsOwned[p] != fields[p] {
			t.Fatalf("fieldsOwned[%d] = %d, independent count = %d", p, g.fieldsOwned[p], fields[p])
		}
		if g.components[p] != components[p] {
			t.Fatalf("components[%d] = %d, independent flood-fill count = %d", p, g.components[p], components[p])
		}
		if g.components[p] > int64(g.maxAreas) {
			t.Fatalf("components[%d] = %d exceeds max_areas = %d", p, g.components[p], g.maxAreas)
		}
		if g.boundaryFree[p] != int64(len(boundary[p])) {
			t.Fatalf("boundaryFree[%d] = %d, independent count = %d", p, g.boundaryFree[p], len(boundary[p]))
		}
		for i := range g.owner {
			if g.owner[i] != p {
				continue
			}
			if g.owner[g.uf.find(i)] != p {
				t.Fatalf("find(%d) for a cell owned by %d points at a cell owned by %d", i, p, g.owner[g.uf.find(i)])
			}
		}
	}
}

func TestRejectReasonDistinguishesFailureKinds(t *testing.T) {
	g, _ := NewGame(5, 5, 2, 1)
	g.Claim(1, 0, 0)

	if g.Claim(3, 1, 0); g.rejectReason() != errInvalidPlayer {
		t.Fatalf("rejectReason = %v, want errInvalidPlayer", g.rejectReason())
	}
	if g.Claim(1, 9, 9); g.rejectReason() != errOutOfBounds {
		t.Fatalf("rejectReason = %v, want errOutOfBounds", g.rejectReason())
	}
	if g.Claim(2, 0, 0); g.rejectReason() != errCellNotFree {
		t.Fatalf("rejectReason = %v, want errCellNotFree", g.rejectReason())
	}
	if g.Claim(1, 4, 4); g.rejectReason() != errAreaCapExceeded {
		t.Fatalf("rejectReason = %v, want errAreaCapExceeded", g.rejectReason())
	}
	if !g.Claim(1, 1, 0) {
		t.Fatal("claim(1,1,0) should succeed")
	}
	if g.rejectReason() != nil {
		t.Fatalf("rejectReason after a successful claim = %v, want nil", g.rejectReason())
	}

	if g.Override(1, 0, 0); g.rejectReason() != errCellAlreadyOwned {
		t.Fatalf("rejectReason = %v, want errCellAlreadyOwned", g.rejectReason())
	}
	if g.Override(1, 2, 2); g.rejectReason() != errCellIsFree {
		t.Fatalf("rejectReason = %v, want errCellIsFree", g.rejectReason())
	}
}

func floodFill(g *Game, x, y uint32, owner uint32, visited []bool) {
	stack := []int{g.cellIndex(x, y)}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		cx, cy := g.coordsOf(cur)
		for _, d := range directions {
			nb, ok := g.neighborOf(cx, cy, d)
			if !ok || visited[nb] || g.owner[nb] != owner {
				continue
			}
			stack = append(stack, nb)
		}
	}
}
