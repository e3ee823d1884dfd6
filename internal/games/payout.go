package games

import "math"

// Multiplier computes the payout multiplier after d safe reveals on an
// n-cell grid carrying m hazards, with the house edge taken off the fair
// price:
//
//	multiplier = (1 - edge) * P(n, d) / P(n-m, d)
//
// where P(a, b) is the falling factorial a!/(a-b)!. The two falling
// factorials are folded into one iterative ratio product so nothing
// overflows and nothing recurses, even at the 64-cell grid.
func Multiplier(d, m, n int, edge float64) float64 {
	if d <= 0 {
		return 0
	}
	if d > n-m {
		d = n - m
	}

	mult := 1.0 - edge
	for i := 0; i < d; i++ {
		mult *= float64(n-i) / float64(n-m-i)
	}
	return round2(mult)
}

// TowersMultiplier is the ladder variant's price after the player has
// cleared `row` rows. Per-row survival is (columns-hazards)/columns, and the
// multiplier is the edge-discounted inverse of the survival product, the
// same algebra as Multiplier applied row-wise.
func TowersMultiplier(row, hazardsPerRow, columns int, edge float64) float64 {
	if row <= 0 {
		return 0
	}

	survival := float64(columns-hazardsPerRow) / float64(columns)
	mult := 1.0 - edge
	for i := 0; i < row; i++ {
		mult /= survival
	}
	return round2(mult)
}

// MultiplierFor prices d safe reveals under the variant shape.
func MultiplierFor(d int, cfg VariantConfig, edge float64) float64 {
	if cfg.Variant == VariantTowers {
		return TowersMultiplier(d, cfg.HazardsPerRow, cfg.Columns, edge)
	}
	return Multiplier(d, cfg.HazardCount, cfg.GridSize, edge)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
