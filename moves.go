package cubeterm

import "github.com/SeamusWaldron/cubeterm/pkg/types"

// Predefined moves for convenience.
//
// Example:
//
//	p.Apply(cubeterm.R, cubeterm.U, cubeterm.RPrime, cubeterm.UPrime)
var (
	// Right face moves
	R      = types.NewMove(types.Right, types.Clockwise)        // Right clockwise
	RPrime = types.NewMove(types.Right, types.CounterClockwise) // Right counter-clockwise
	R2     = types.NewMove(types.Right, types.Double)           // Right 180

	// Left face moves
	L      = types.NewMove(types.Left, types.Clockwise)
	LPrime = types.NewMove(types.Left, types.CounterClockwise)
	L2     = types.NewMove(types.Left, types.Double)

	// Up face moves
	U      = types.NewMove(types.Top, types.Clockwise)
	UPrime = types.NewMove(types.Top, types.CounterClockwise)
	U2     = types.NewMove(types.Top, types.Double)

	// Down face moves
	D      = types.NewMove(types.Bottom, types.Clockwise)
	DPrime = types.NewMove(types.Bottom, types.CounterClockwise)
	D2     = types.NewMove(types.Bottom, types.Double)

	// Front face moves
	F      = types.NewMove(types.Front, types.Clockwise)
	FPrime = types.NewMove(types.Front, types.CounterClockwise)
	F2     = types.NewMove(types.Front, types.Double)

	// Back face moves
	B      = types.NewMove(types.Back, types.Clockwise)
	BPrime = types.NewMove(types.Back, types.CounterClockwise)
	B2     = types.NewMove(types.Back, types.Double)

	// Middle layer moves. M follows L, E follows D, S follows F.
	M      = types.NewMove(types.MiddleX, types.Clockwise)
	MPrime = types.NewMove(types.MiddleX, types.CounterClockwise)
	M2     = types.NewMove(types.MiddleX, types.Double)

	E      = types.NewMove(types.MiddleY, types.Clockwise)
	EPrime = types.NewMove(types.MiddleY, types.CounterClockwise)
	E2     = types.NewMove(types.MiddleY, types.Double)

	S      = types.NewMove(types.MiddleZ, types.Clockwise)
	SPrime = types.NewMove(types.MiddleZ, types.CounterClockwise)
	S2     = types.NewMove(types.MiddleZ, types.Double)
)

// Sexy move: R U R' U' - one of the most common algorithms
var SexyMove = []Move{R, U, RPrime, UPrime}

// Inverse sexy move: U R U' R'
var InverseSexyMove = []Move{U, R, UPrime, RPrime}

// T-perm algorithm
var TPerm = []Move{R, U, RPrime, UPrime, RPrime, F, R2, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}

// H-perm on the middle layers: M2 U M2 U2 M2 U M2
var HPerm = []Move{M2, U, M2, U2, M2, U, M2}
