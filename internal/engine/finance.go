package engine

import "math"

// DiscountFactors returns 1/(1+rate)^y for y = 0..n-1 (year-end
// convention, year 0 undiscounted).
func DiscountFactors(rate float64, n int) []float64 {
	df := make([]float64, n)
	for y := range df {
		df[y] = 1.0 / math.Pow(1.0+rate, float64(y))
	}
	return df
}

// LCOE is the implied constant electricity price, in $/MWh, that zeroes
// the NPV of all non-electricity flows against discounted generation.
// Defined as 0 when no generation is discounted in (no operating years,
// or an idle plant); that is the documented fallback, not a fault.
func LCOE(npvNonElectricM, discountedGenerationMWh float64) float64 {
	if discountedGenerationMWh <= 0 {
		return 0
	}
	return -npvNonElectricM * 1e6 / discountedGenerationMWh
}

// PaybackYear returns the first year index at which cumulative
// undiscounted net cash flow turns non-negative, or nil if the project
// never pays back within the horizon.
func PaybackYear(flows []float64) *int {
	cum := 0.0
	for i, f := range flows {
		cum += f
		if cum >= 0 {
			year := i
			return &year
		}
	}
	return nil
}
