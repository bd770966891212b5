package engine

import (
	"dualwell-tea/internal/model"
)

// StartOperationsYear is the construction lag before the first operating
// year. The capex schedules cover exactly these leading years.
const StartOperationsYear = 3

var (
	capexScheduleFixed  = []float64{1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0}
	capexScheduleScaled = []float64{0.33, 0.33, 0.34}
)

func capexSchedule(m model.CostModel) []float64 {
	if m == model.CostModelScaled {
		return capexScheduleScaled
	}
	return capexScheduleFixed
}

// YearFlow is one row of per-year output.
// This is the primary artifact for "where the money went" in an evaluation.
// Sign convention: revenues positive, outflows negative; all money in $M.
type YearFlow struct {
	Year  int
	Phase model.Phase

	CapexM               float64
	ElectricityRevenueM  float64
	TaxCredit45QRevenueM float64
	CarbonCreditRevenueM float64
	OpexM                float64
	CO2CostM             float64
	TaxM                 float64

	// GenerationMWh is the energy delivered this year, used by the
	// levelized-cost denominator. Zero during construction.
	GenerationMWh float64

	NetM           float64
	CumulativeNetM float64

	DiscountFactor float64
	DiscountedNetM float64
}

// Metrics are the summary financials for one evaluation.
// IRR and PaybackYear are nil when undefined; that is a valid result,
// not a fault.
type Metrics struct {
	NPVM          float64
	LCOEUSDPerMWh float64
	IRR           *float64
	PaybackYear   *int
}

type Result struct {
	Derived  model.DerivedQuantities
	Timeline []YearFlow
	Metrics  Metrics
}
