// Package cubeterm provides a 3x3x3 twisty puzzle that can be turned,
// scrambled and rendered as a character picture.
//
// # Quick Start
//
// Turn a puzzle and check it:
//
//	p := cubeterm.NewPuzzle()
//
//	// Apply moves using predefined values
//	p.Apply(cubeterm.R, cubeterm.U, cubeterm.RPrime, cubeterm.UPrime)
//
//	// Or from notation
//	if err := p.ApplyNotation("F B2 L' D M E' S2"); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Solved:", p.IsSolved())
//	fmt.Print(p)
//
// # Rendering
//
// Render projects the puzzle onto a character grid, one color letter per
// cell:
//
//	fmt.Print(p.Render(cubeterm.WithSize(60, 40), cubeterm.WithYaw(0.3)))
//
// # Notation
//
// Moves use the letters R L U D F B for the faces and M E S for the middle
// layers. A trailing ' turns counter-clockwise and a trailing 2 turns half
// way. M follows L, E follows D and S follows F.
//
// # Terminal Application
//
// The cmd/cubeterm program plays the puzzle interactively, mirrors a GoCube
// smart cube over Bluetooth and keeps a history of timed solves.
package cubeterm
