// cubeterm - a 3x3x3 twisty puzzle in the terminal.
package main

import (
	"github.com/SeamusWaldron/cubeterm/internal/cli"
)

func main() {
	cli.Execute()
}
