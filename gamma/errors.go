package gamma

import "errors"

// Construction failures. NewGame returns one of these, unwrapped, when the
// requested board cannot be built.
var (
	errZeroDimension = errors.New("gamma: width, height, players and max areas must all be positive")
	errBoardTooLarge = errors.New("gamma: width * height overflows the supported board size")
)

// Move rejection reasons. Claim and Override never return these directly —
// spec.md's contract is a bare bool — but every rejection path sets the
// unexported reason field on Game so tests (and a future diagnostic host)
// can tell an out-of-range call apart from a legitimate cap rejection
// without weakening the public bool contract.
var (
	errInvalidPlayer    = errors.New("gamma: player id out of range")
	errOutOfBounds      = errors.New("gamma: coordinates out of bounds")
	errCellNotFree      = errors.New("gamma: target cell is not free")
	errCellAlreadyOwned = errors.New("gamma: cell already owned by this player")
	errCellIsFree       = errors.New("gamma: target cell is free")
	errAreaCapExceeded  = errors.New("gamma: move would exceed the player's area cap")
	errOverrideUsed     = errors.New("gamma: player has already used their override")
	errNothingToTake    = errors.New("gamma: no cell is owned by another player")
)
