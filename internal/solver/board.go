package solver

import (
	"fmt"
	"log/slog"
	"strings"
)

var Log *slog.Logger = slog.Default()

// Board is an immutable description of a generated minefield. The solver
// never mutates it; all working state lives in a per-call simulation.
type Board struct {
	Width, Height int
	Mines         []bool  // row-major, true = mine
	Adjacent      []uint8 // 8-neighborhood mine counts, 0 on mined cells
	MineCount     int
}

// NewBoard computes adjacency counts from the mine grid.
func NewBoard(width, height int, mines []bool) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid board dimensions %dx%d", width, height)
	}
	if len(mines) != width*height {
		return nil, fmt.Errorf(
			"mine grid has %d cells, want %d", len(mines), width*height,
		)
	}
	b := &Board{
		Width:    width,
		Height:   height,
		Mines:    mines,
		Adjacent: make([]uint8, width*height),
	}
	for i, mine := range mines {
		if !mine {
			continue
		}
		b.MineCount++
		x := i % width
		y := i / width
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				xx, yy := x+dx, y+dy
				if 0 <= xx && xx < width && 0 <= yy && yy < height {
					if !mines[yy*width+xx] {
						b.Adjacent[yy*width+xx]++
					}
				}
			}
		}
	}
	return b, nil
}

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.Width && 0 <= y && y < b.Height
}

func (b *Board) MineAt(x, y int) bool {
	return b.Mines[y*b.Width+x]
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.Height {
		for x := range b.Width {
			if b.MineAt(x, y) {
				sb.WriteString("* ")
			} else {
				sb.WriteString(fmt.Sprintf("%d ", b.Adjacent[y*b.Width+x]))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Cell coordinates are packed into a single int for O(1) set membership.
func packXY(x, y int) int {
	return x<<16 | y
}

func unpackXY(key int) (x, y int) {
	return key >> 16, key & 0xFFFF
}

// Point is a cell coordinate surfaced in hint explanations.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}
