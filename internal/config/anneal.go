package config

// Anneal holds the simulated annealing schedule used by the floorplanner.
type Anneal struct {
	// MovesPerModule scales the number of uphill moves tried per temperature.
	MovesPerModule int

	// CoolingRatio multiplies the temperature after each step.
	CoolingRatio float64

	// FastCoolingFraction switches to 0.1x cooling once the temperature drops
	// below this fraction of the initial temperature.
	FastCoolingFraction float64

	// MinTemperature stops the schedule.
	MinTemperature float64

	// InitialAcceptance is the probability of accepting an average uphill move
	// at the initial temperature.
	InitialAcceptance float64

	// WarmupMoves is the number of random moves sampled to pick the initial temperature.
	WarmupMoves int

	// MaxRejectRatio stops the schedule once a step rejects more than this share of moves.
	MaxRejectRatio float64
}

// Default annealing schedule.
const (
	DefaultMovesPerModule      = 10
	DefaultCoolingRatio        = 0.85
	DefaultFastCoolingFraction = 0.005
	DefaultMinTemperature      = 0.001
	DefaultInitialAcceptance   = 0.99
	DefaultWarmupMoves         = 40
	DefaultMaxRejectRatio      = 0.95
)

// DefaultAnneal returns the default annealing schedule.
func DefaultAnneal() Anneal {
	return Anneal{
		MovesPerModule:      DefaultMovesPerModule,
		CoolingRatio:        DefaultCoolingRatio,
		FastCoolingFraction: DefaultFastCoolingFraction,
		MinTemperature:      DefaultMinTemperature,
		InitialAcceptance:   DefaultInitialAcceptance,
		WarmupMoves:         DefaultWarmupMoves,
		MaxRejectRatio:      DefaultMaxRejectRatio,
	}
}
