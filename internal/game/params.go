package game

import "fmt"

// Params holds the tunable constants of the selection engine.
type Params struct {
	// TierFraction is the share of the score-sorted pool placed in the
	// priority tier (floor, minimum one word when the pool is non-empty).
	TierFraction float64

	// PriorityBias is the probability that a single-word pick prefers the
	// priority tier.
	PriorityBias float64

	// PriorityCap bounds how many priority words a standard match set takes.
	PriorityCap int

	// SetSize is the number of pairs in a standard match set.
	SetSize int

	// DailySetSize is both the number of pairs and the minimum pool size of
	// a daily-challenge match set.
	DailySetSize int

	// MinStandardPool is the minimum pool size of a standard match set.
	MinStandardPool int
}

// DefaultParams returns the production tuning: 40% priority tier, 70% bias,
// 7 priority words in a 10-pair set, 10-pair daily challenge.
func DefaultParams() Params {
	return Params{
		TierFraction:    0.4,
		PriorityBias:    0.7,
		PriorityCap:     7,
		SetSize:         10,
		DailySetSize:    10,
		MinStandardPool: 2,
	}
}

// Validate reports parameters the engine cannot work with.
func (p Params) Validate() error {
	switch {
	case p.TierFraction <= 0 || p.TierFraction > 1:
		return fmt.Errorf("tier fraction %v out of range (0,1]", p.TierFraction)
	case p.PriorityBias < 0 || p.PriorityBias > 1:
		return fmt.Errorf("priority bias %v out of range [0,1]", p.PriorityBias)
	case p.PriorityCap < 0:
		return fmt.Errorf("priority cap %d must not be negative", p.PriorityCap)
	case p.SetSize < 1:
		return fmt.Errorf("set size %d must be positive", p.SetSize)
	case p.DailySetSize < 1:
		return fmt.Errorf("daily set size %d must be positive", p.DailySetSize)
	case p.MinStandardPool < 1:
		return fmt.Errorf("minimum standard pool %d must be positive", p.MinStandardPool)
	}
	return nil
}
