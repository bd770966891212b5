package main

import (
	"flag"
	"fmt"

	"dualwell-tea/internal/config"
	"dualwell-tea/internal/engine"
	"dualwell-tea/internal/model"
)

// Demo:
// - Build the base-case project inputs
// - Evaluate the cash-flow timeline
// - Print year-by-year flows to show how the pieces fit together
// - Evaluate the scaled-plant sample for comparison
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	outCSV := flag.String("out", "", "Optional path to write the timeline CSV (e.g. results/timeline.csv)")
	flag.Parse()

	// Defaults (can be overridden via --config).
	in := model.ProjectInputs{
		CostModel:                  model.CostModelFixed,
		CapturedAndStoredMtpa:      0.2,
		PercentSequestered:         0.01,
		CO2WaterRatio:              1.0,
		ThermalExtractionMWtPerKgs: 0.711,
		ThermalEfficiency:          0.19,
		CapacityFactor:             1.0,
		CostOfCapital:              0.08,
		PowerValueUSDPerMWh:        95.4,
		TaxCredit45QPerTonne:       85.0,
		TaxCredit45QYears:          12,
		CarbonPriceAbove45Q:        40.0,
		CO2CostPerTonne:            100.0,
		SCO2CapexM:                 70.0,
		GeoCapexPerWellM:           10.0,
		AnnualOpexM:                30.0,
		ProjectLifeYears:           15,
	}

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		in = cfg.Scenario.ToModelInputs()
	}

	res, err := engine.New().Evaluate(in)
	if err != nil {
		panic(err)
	}

	d := res.Derived
	fmt.Printf("Cost model=%s\n", in.CostModel)
	fmt.Printf(
		"Injected CO2=%.1f Mtpa at %.0f kg/s across %d wells (%d injection + %d production)\n",
		d.InjectedCO2Mtpa,
		d.TotalInjectionRateKgs,
		d.TotalWells,
		d.InjectionWells,
		d.TotalWells-d.InjectionWells,
	)
	fmt.Printf(
		"Power=%.1f MW  Energy=%.0f MWh/yr  Capex=$%.1fM  Opex=$%.1fM/yr\n\n",
		d.PowerGeneratedMW,
		d.AnnualEnergyMWh,
		d.TotalCapexM,
		d.AnnualOpexCostM,
	)

	for _, r := range res.Timeline {
		fmt.Printf(
			"year=%2d  %-12s  capex=%8.2f  rev=%7.2f  credits=%7.2f  costs=%7.2f  tax=%6.2f  net=%8.2f  cum=%9.2f\n",
			r.Year,
			string(r.Phase),
			r.CapexM,
			r.ElectricityRevenueM,
			r.TaxCredit45QRevenueM+r.CarbonCreditRevenueM,
			r.OpexM+r.CO2CostM,
			r.TaxM,
			r.NetM,
			r.CumulativeNetM,
		)
	}

	if *outCSV != "" {
		if err := engine.WriteTimelineCSV(*outCSV, res.Timeline); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. NPV=$%.2fM  LCOE=$%.2f/MWh", res.Metrics.NPVM, res.Metrics.LCOEUSDPerMWh)
	if res.Metrics.IRR != nil {
		fmt.Printf("  IRR=%.1f%%", *res.Metrics.IRR*100)
	}
	if res.Metrics.PaybackYear != nil {
		fmt.Printf("  Payback=year %d", *res.Metrics.PaybackYear)
	}
	fmt.Println()

	if *cfgPath == "" {
		printScaledSample()
	}
}

// printScaledSample evaluates the same plant under the scaled cost model
// (bottom-up capex/opex, 90% availability, 21% EBIT tax) and prints the
// headline metrics next to the base case above.
func printScaledSample() {
	in := model.ProjectInputs{
		CostModel:                  model.CostModelScaled,
		CapturedAndStoredMtpa:      0.2,
		PercentSequestered:         0.01,
		MaxInjectionRateKgsPerWell: 100.0,
		ThermalExtractionMWtPerKgs: 0.711,
		ThermalEfficiency:          0.19,
		CapacityFactor:             0.9,
		CostOfCapital:              0.08,
		PowerValueUSDPerMWh:        95.4,
		TaxCredit45QPerTonne:       85.0,
		TaxCredit45QYears:          12,
		CarbonPriceAbove45Q:        40.0,
		CO2CostPerTonne:            100.0,
		TaxRate:                    0.21,
		AboveGroundCapexPerMWM:     0.8,
		DrillingCostPerWellM:       8.0,
		StimulationCostPerWellM:    2.0,
		ExplorationCostM:           30.0,
		CapexEscalationFactor:      1.15,
		AnnualSalariesM:            5.0,
		MaintenancePerWellM:        0.5,
		OpexPerMWM:                 0.05,
		RedrillingPerWellM:         0.3,
		ProjectLifeYears:           15,
	}

	res, err := engine.New().Evaluate(in)
	if err != nil {
		panic(err)
	}

	d := res.Derived
	fmt.Printf(
		"\nScaled-plant sample: Wells=%d  Capex=$%.1fM (above-ground $%.1fM + subsurface $%.1fM)  Opex=$%.1fM/yr\n",
		d.TotalWells,
		d.TotalCapexM,
		d.AboveGroundCapexM,
		d.SubsurfaceCapexM,
		d.AnnualOpexCostM,
	)
	fmt.Printf("Scaled-plant sample: NPV=$%.2fM  LCOE=$%.2f/MWh", res.Metrics.NPVM, res.Metrics.LCOEUSDPerMWh)
	if res.Metrics.IRR != nil {
		fmt.Printf("  IRR=%.1f%%", *res.Metrics.IRR*100)
	}
	if res.Metrics.PaybackYear != nil {
		fmt.Printf("  Payback=year %d", *res.Metrics.PaybackYear)
	}
	fmt.Println()
}
