package mines

import "github.com/mines3d/server/internal/solver"

/*
 * Hint bridges the player grid into the solver's representation and asks it
 * for one deduction. Question marks count as unknown; post-game-over
 * markers never reach the solver because finished games take the early
 * return.
 */
func (s *GameState) Hint() (*solver.Hint, error) {
	return s.HintOpts(solver.DefaultOptions())
}

func (s *GameState) HintOpts(opts solver.Options) (*solver.Hint, error) {
	if s.Dead || s.Won {
		return nil, nil
	}

	board, err := s.Board()
	if err != nil {
		return nil, err
	}

	visible := make(solver.Grid, len(s.PlayerGrid))
	flags := make([]bool, len(s.PlayerGrid))
	for i, c := range s.PlayerGrid {
		switch {
		case c.Open():
			visible[i] = solver.CellState(c)
		case c == Flagged:
			visible[i] = solver.Hidden
			flags[i] = true
		default:
			visible[i] = solver.Hidden
		}
	}

	hint := solver.GetHintOpts(board, visible, flags, opts)
	if hint != nil {
		s.HintsUsed++
	}
	return hint, nil
}
