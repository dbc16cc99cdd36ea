package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Question CellState = -3
	Unknown  CellState = -2
	Flagged  CellState = -1
	// 0-8: open square with its surrounding mine count.

	// Post-game-over markers.
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
)

func (s CellState) String() string {
	switch {
	case s == Question:
		return "?"
	case s == Unknown:
		return " "
	case s == Flagged:
		return "*"
	case s == ExplodedMine:
		return "X"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

func (s CellState) Open() bool {
	return 0 <= s && s <= 8
}

// Grid is the player-knowledge grid in row-major order.
type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
