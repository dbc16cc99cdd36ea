package solver

// Options bound the expensive strategies. The defaults match the tuning the
// generator was calibrated against; they are plain data so deployments can
// override them through configuration.
type Options struct {
	// ContradictionFrontierCap limits how many frontier cells a single
	// contradiction pass hypothesizes about. Early game frontiers are huge
	// and almost never contradiction-resolvable.
	ContradictionFrontierCap int

	// ContradictionRounds caps propagation waves per hypothesis.
	ContradictionRounds int

	// TankRegionCap is the largest connected frontier region the tank
	// strategy will enumerate; cost is 2^size.
	TankRegionCap int

	// TankConfigCap budgets the total number of enumerated configurations
	// across all regions of one pass.
	TankConfigCap int
}

func DefaultOptions() Options {
	return Options{
		ContradictionFrontierCap: 50,
		ContradictionRounds:      20,
		TankRegionCap:            15,
		TankConfigCap:            50000,
	}
}

// sanitized falls back to defaults for zero or negative caps so that a
// partially filled Options never disables a strategy by accident.
func (o Options) sanitized() Options {
	def := DefaultOptions()
	if o.ContradictionFrontierCap <= 0 {
		o.ContradictionFrontierCap = def.ContradictionFrontierCap
	}
	if o.ContradictionRounds <= 0 {
		o.ContradictionRounds = def.ContradictionRounds
	}
	if o.TankRegionCap <= 0 {
		o.TankRegionCap = def.TankRegionCap
	}
	if o.TankConfigCap <= 0 {
		o.TankConfigCap = def.TankConfigCap
	}
	return o
}
