package notation

import (
	"math/rand/v2"

	"github.com/SeamusWaldron/cubeterm/pkg/types"
)

// DefaultScrambleLength is the number of turns in a standard scramble.
const DefaultScrambleLength = 20

var scrambleDirections = [3]types.Direction{types.Clockwise, types.CounterClockwise, types.Double}

// Scramble returns n random face turns. Consecutive turns never share an
// axis.
func Scramble(rng *rand.Rand, n int) []types.Move {
	moves := make([]types.Move, 0, n)
	for len(moves) < n {
		side := types.FaceSides[rng.IntN(len(types.FaceSides))]
		if k := len(moves); k > 0 && moves[k-1].Axis() == side.Axis() {
			continue
		}
		dir := scrambleDirections[rng.IntN(len(scrambleDirections))]
		moves = append(moves, types.NewMove(side, dir))
	}
	return moves
}
