package solver

import "log/slog"

type HintKind string

const (
	HintSafe HintKind = "safe"
	HintMine HintKind = "mine"
)

type Strategy string

const (
	StrategyCounting      Strategy = "counting"
	StrategySubset        Strategy = "subset"
	StrategyContradiction Strategy = "contradiction"
	StrategyTank          Strategy = "tank"
	StrategyGlobal        Strategy = "global"
	StrategyHeuristic     Strategy = "heuristic"
)

// Hint is a cell the solver can classify from the caller's live state,
// tagged with the strategy that resolved it and enough data to render an
// explanation.
type Hint struct {
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Kind     HintKind `json:"kind"`
	Strategy Strategy `json:"strategy"`

	// Certain is false only for the heuristic frontier pick, which is a
	// hint-of-last-resort rather than a proof.
	Certain bool `json:"certain"`

	// Constraints names the revealed number cell(s) behind the deduction:
	// one for counting, both constraints for subset.
	Constraints []Point `json:"constraints,omitempty"`

	// Hypothesis is the cell a contradiction proof assumed about.
	Hypothesis *Point `json:"hypothesis,omitempty"`

	// ValidConfigs is the number of surviving tank configurations.
	ValidConfigs int `json:"valid_configs,omitempty"`
}

/*
 * Strategies report their deductions through a passNote so that GetHint can
 * surface the first proven-safe (preferred) or proven-mine cell of whichever
 * strategy fired. IsSolvable ignores the notes.
 */

type hintDetail struct {
	constraints  []int
	hypothesis   int
	validConfigs int
}

type noteEntry struct {
	cell     int
	strategy Strategy
	detail   hintDetail
}

type passNote struct {
	safe, mine *noteEntry
}

func (s *simState) noteSafe(cell int, strategy Strategy, detail hintDetail) {
	if s.note.safe == nil {
		s.note.safe = &noteEntry{cell: cell, strategy: strategy, detail: detail}
	}
}

func (s *simState) noteMine(cell int, strategy Strategy, detail hintDetail) {
	if s.note.mine == nil {
		s.note.mine = &noteEntry{cell: cell, strategy: strategy, detail: detail}
	}
}

// GetHint runs a single pass of the strategy pipeline against the caller's
// current visible and flag grids and returns the first cell it can prove
// safe or mined, or a heuristic frontier pick marked as uncertain. It
// returns nil when the caller's state is inconsistent or nothing at all can
// be suggested.
func GetHint(board *Board, visible Grid, flags []bool) *Hint {
	return GetHintOpts(board, visible, flags, DefaultOptions())
}

func GetHintOpts(board *Board, visible Grid, flags []bool, opts Options) *Hint {
	if len(visible) != board.Width*board.Height || len(flags) != len(visible) {
		Log.Warn("hint called with mismatched grids",
			slog.Int("visible", len(visible)), slog.Int("flags", len(flags)))
		return nil
	}

	s := simStateFromCaller(board, visible, flags, opts.sanitized())
	for i := range s.visible {
		if s.visible[i] > 0 {
			s.markDirty(i)
		}
	}

	steps := []func() bool{
		s.stepCounting,
		s.stepSubset,
		s.stepContradiction,
		s.stepTank,
		s.stepGlobal,
	}
	for _, step := range steps {
		s.note = passNote{}
		fired := step()
		if s.contradiction {
			Log.Warn("contradiction in caller state; no hint")
			return nil
		}
		if !fired {
			continue
		}
		if h := s.note.hint(board); h != nil {
			return h
		}
	}

	return s.heuristicPick()
}

func (n passNote) hint(board *Board) *Hint {
	entry := n.safe
	kind := HintSafe
	if entry == nil {
		entry = n.mine
		kind = HintMine
	}
	if entry == nil {
		return nil
	}
	h := &Hint{
		X:            entry.cell % board.Width,
		Y:            entry.cell / board.Width,
		Kind:         kind,
		Strategy:     entry.strategy,
		Certain:      true,
		ValidConfigs: entry.detail.validConfigs,
	}
	for _, c := range entry.detail.constraints {
		h.Constraints = append(h.Constraints, Point{c % board.Width, c / board.Width})
	}
	if entry.strategy == StrategyContradiction {
		h.Hypothesis = &Point{
			X: entry.detail.hypothesis % board.Width,
			Y: entry.detail.hypothesis / board.Width,
		}
	}
	return h
}

// heuristicPick is the fallback when no strategy fires: a frontier cell,
// preferring ones adjacent to many revealed zeros. Not a proof.
func (s *simState) heuristicPick() *Hint {
	fr := s.frontier()
	best, bestScore := -1, -1
	for _, i := range fr {
		score := 0
		for _, n := range s.nb.neighbors[i] {
			if s.visible[n] == 0 {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return nil
	}
	return &Hint{
		X:        best % s.board.Width,
		Y:        best / s.board.Width,
		Kind:     HintSafe,
		Strategy: StrategyHeuristic,
		Certain:  false,
	}
}
