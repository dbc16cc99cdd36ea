package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mines3d/server/internal/solver"
)

func intFromEnv(name string, fallback int) (int, error) {
	s, ok := os.LookupEnv(name)
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an int: %w", name, err)
	}
	return v, nil
}

// NewSolverOptions reads deduction caps from the environment, falling
// back to solver defaults for anything unset.
func NewSolverOptions() (solver.Options, error) {
	opts := solver.DefaultOptions()

	var err error
	if opts.ContradictionFrontierCap, err = intFromEnv("SOLVER_FRONTIER_CAP", opts.ContradictionFrontierCap); err != nil {
		return opts, err
	}
	if opts.ContradictionRounds, err = intFromEnv("SOLVER_CONTRADICTION_ROUNDS", opts.ContradictionRounds); err != nil {
		return opts, err
	}
	if opts.TankRegionCap, err = intFromEnv("SOLVER_TANK_REGION_CAP", opts.TankRegionCap); err != nil {
		return opts, err
	}
	if opts.TankConfigCap, err = intFromEnv("SOLVER_TANK_CONFIG_CAP", opts.TankConfigCap); err != nil {
		return opts, err
	}

	return opts, nil
}
