package mines

import (
	"bytes"
	"encoding/gob"
	"errors"
	"log/slog"
	"math/rand/v2"

	"github.com/mines3d/server/internal/solver"
)

var Log *slog.Logger = slog.Default()

type GameState struct {
	Dead, Won bool
	HintsUsed int
	Grid      []bool /* real mine points */
	PlayerGrid Grid  /* player knowledge */
	GameParams
}

func DecodeGameState(buf []byte) (*GameState, error) {
	var game GameState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewGame generates a logic-solvable minefield with a safe opening at x,y
// and opens that first square.
func NewGame(params *GameParams, x, y int, r *rand.Rand) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if !params.PointInBounds(x, y) {
		return nil, errors.New("starting cell out of bounds")
	}

	grid, err := params.newSolvableGrid(x, y, r)
	if err != nil {
		return nil, err
	}
	playerGrid := make(Grid, len(grid))
	for i := range playerGrid {
		playerGrid[i] = Unknown
	}
	state := &GameState{
		GameParams: *params,
		Grid:       grid,
		PlayerGrid: playerGrid,
	}
	if state.OpenCell(x, y) != 0 {
		return nil, errors.New("mine in starting cell")
	}
	return state, nil
}

func (s *GameState) neighbors(i int, yield func(j int)) {
	x, y := i%s.Width, i/s.Width
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if s.PointInBounds(xx, yy) {
				yield(yy*s.Width + xx)
			}
		}
	}
}

func (s *GameState) mineCountAround(i int) int {
	c := 0
	s.neighbors(i, func(j int) {
		if s.Grid[j] {
			c++
		}
	})
	return c
}

// OpenCell opens a square, cascading through zero-count neighborhoods.
// Returns -1 when the square was a mine.
func (s *GameState) OpenCell(x, y int) int {
	i := y*s.Width + x
	if s.Grid[i] {
		/*
		 * The player has landed on a mine. Expose the mine that killed
		 * them, but not the rest.
		 */
		s.Dead = true
		s.PlayerGrid[i] = ExplodedMine
		return -1
	}

	stack := []int{i}
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.PlayerGrid[j] != Unknown && s.PlayerGrid[j] != Question {
			continue
		}
		v := s.mineCountAround(j)
		s.PlayerGrid[j] = CellState(v)
		if v == 0 {
			s.neighbors(j, func(n int) {
				if s.PlayerGrid[n] == Unknown || s.PlayerGrid[n] == Question {
					stack = append(stack, n)
				}
			})
		}
	}

	/*
	 * See if exactly as many squares are still covered as there are
	 * mines. If so the game is won; fill in mine markers on all covered
	 * squares.
	 */
	var nmines, ncovered int
	for j := range s.Grid {
		if s.PlayerGrid[j] < 0 {
			ncovered++
		}
		if s.Grid[j] {
			nmines++
		}
	}
	if ncovered == nmines {
		for j := range s.Grid {
			if s.PlayerGrid[j] == Unknown || s.PlayerGrid[j] == Question {
				s.PlayerGrid[j] = UnflaggedMine
			}
		}
		s.Won = true
	}

	return 0
}

func (s *GameState) FlagCell(x, y int) {
	i := y*s.Width + x
	if s.PlayerGrid[i] == Unknown {
		s.PlayerGrid[i] = Flagged
	} else if s.PlayerGrid[i] == Flagged {
		s.PlayerGrid[i] = Unknown
	}
}

// ChordCell opens every unflagged neighbor of a satisfied open square.
func (s *GameState) ChordCell(x, y int) {
	i := y*s.Width + x
	if !s.PlayerGrid[i].Open() {
		return
	}
	c := int(s.PlayerGrid[i])
	var js []int
	m := 0
	s.neighbors(i, func(j int) {
		if s.PlayerGrid[j] == Flagged {
			m++
		} else if s.PlayerGrid[j] == Unknown {
			js = append(js, j)
		}
	})
	if c != m {
		return
	}
	for _, j := range js {
		s.OpenCell(j%s.Width, j/s.Width)
		if s.Dead || s.Won {
			return
		}
	}
}

func (s *GameState) Forfeit() {
	if !(s.Dead || s.Won) {
		s.Dead = true
	}
	s.RevealPlayerGrid()
}

func (s *GameState) RevealPlayerGrid() {
	if !(s.Dead || s.Won) {
		s.Dead = true
	}
	for i := range s.Grid {
		switch {
		case s.PlayerGrid[i] == Flagged:
			if s.Grid[i] {
				s.PlayerGrid[i] = CorrectlyFlagged
			} else {
				s.PlayerGrid[i] = FalselyFlagged
			}
		case s.PlayerGrid[i] == Unknown || s.PlayerGrid[i] == Question:
			if s.Grid[i] {
				s.PlayerGrid[i] = UnflaggedMine
			} else {
				s.PlayerGrid[i] = CellState(s.mineCountAround(i))
			}
		}
	}
}

// Board compiles the real minefield into the solver's immutable form.
func (s *GameState) Board() (*solver.Board, error) {
	return solver.NewBoard(s.Width, s.Height, s.Grid)
}
