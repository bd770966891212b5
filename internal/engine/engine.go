package engine

import (
	"dualwell-tea/internal/model"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Evaluate runs one full cash-flow projection: physical sizing, per-year
// flows over the construction and operating horizon, then the summary
// metrics. It is pure and safe for concurrent use.
func (e *Engine) Evaluate(in model.ProjectInputs) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	d, err := Derive(in)
	if err != nil {
		return nil, err
	}
	totalYears := StartOperationsYear + in.ProjectLifeYears
	schedule := capexSchedule(in.CostModel)
	df := DiscountFactors(in.CostOfCapital, totalYears)

	endOps := StartOperationsYear + in.ProjectLifeYears
	end45Q := StartOperationsYear + in.TaxCredit45QYears

	// Credit revenues in the scaled model are pro-rated by uptime; the
	// fixed model folds the capacity factor into its hours basis instead.
	creditScale := 1.0
	if in.CostModel == model.CostModelScaled {
		creditScale = in.CapacityFactor
	}

	timeline := make([]YearFlow, 0, totalYears)
	cum := 0.0

	for year := 0; year < totalYears; year++ {
		row := YearFlow{
			Year:           year,
			Phase:          model.PhaseForYear(year, StartOperationsYear),
			DiscountFactor: df[year],
		}

		if year < len(schedule) {
			row.CapexM = -schedule[year] * d.TotalCapexM
		}

		if year >= StartOperationsYear && year < endOps {
			row.GenerationMWh = d.AnnualEnergyMWh
			row.ElectricityRevenueM = d.AnnualEnergyMWh * in.PowerValueUSDPerMWh / 1e6
			if year < end45Q {
				row.TaxCredit45QRevenueM = in.CapturedAndStoredMtpa * in.TaxCredit45QPerTonne * creditScale
			}
			row.CarbonCreditRevenueM = in.CapturedAndStoredMtpa * in.CarbonPriceAbove45Q * creditScale
			row.OpexM = -d.AnnualOpexCostM
			row.CO2CostM = -in.CapturedAndStoredMtpa * in.CO2CostPerTonne
		}

		preTax := row.CapexM + row.ElectricityRevenueM + row.TaxCredit45QRevenueM +
			row.CarbonCreditRevenueM + row.OpexM + row.CO2CostM

		// EBIT-style tax: a loss year produces a positive inflow.
		if in.CostModel == model.CostModelScaled && in.TaxRate != 0 {
			row.TaxM = -in.TaxRate * preTax
		}

		row.NetM = preTax + row.TaxM
		cum += row.NetM
		row.CumulativeNetM = cum
		row.DiscountedNetM = row.NetM * df[year]

		timeline = append(timeline, row)
	}

	npvM := 0.0
	discountedElecM := 0.0
	discountedGenMWh := 0.0
	nets := make([]float64, len(timeline))
	for i, row := range timeline {
		npvM += row.DiscountedNetM
		discountedElecM += row.ElectricityRevenueM * row.DiscountFactor
		discountedGenMWh += row.GenerationMWh * row.DiscountFactor
		nets[i] = row.NetM
	}

	return &Result{
		Derived:  d,
		Timeline: timeline,
		Metrics: Metrics{
			NPVM:          npvM,
			LCOEUSDPerMWh: LCOE(npvM-discountedElecM, discountedGenMWh),
			IRR:           IRR(nets),
			PaybackYear:   PaybackYear(nets),
		},
	}, nil
}
