package sweep

import (
	"math"
	"sort"

	"dualwell-tea/internal/model"
)

// Axis is one sweepable numeric input. Apply writes the swept value onto a
// copy of the base inputs; integer fields round to the nearest whole year.
type Axis struct {
	Name  string
	Unit  string
	Apply func(*model.ProjectInputs, float64)
}

var axes = []Axis{
	{"captured_and_stored_mtpa", "Mtpa", func(p *model.ProjectInputs, v float64) { p.CapturedAndStoredMtpa = v }},
	{"percent_sequestered", "fraction", func(p *model.ProjectInputs, v float64) { p.PercentSequestered = v }},
	{"co2_water_ratio", "ratio", func(p *model.ProjectInputs, v float64) { p.CO2WaterRatio = v }},
	{"max_injection_rate_kgs_per_well", "kg/s", func(p *model.ProjectInputs, v float64) { p.MaxInjectionRateKgsPerWell = v }},
	{"thermal_extraction_mwt_kgs", "MWt/(kg/s)", func(p *model.ProjectInputs, v float64) { p.ThermalExtractionMWtPerKgs = v }},
	{"thermal_efficiency", "fraction", func(p *model.ProjectInputs, v float64) { p.ThermalEfficiency = v }},
	{"capacity_factor", "fraction", func(p *model.ProjectInputs, v float64) { p.CapacityFactor = v }},
	{"cost_of_capital", "fraction", func(p *model.ProjectInputs, v float64) { p.CostOfCapital = v }},
	{"power_value_usd_mwh", "$/MWh", func(p *model.ProjectInputs, v float64) { p.PowerValueUSDPerMWh = v }},
	{"tax_credit_45q", "$/tonne", func(p *model.ProjectInputs, v float64) { p.TaxCredit45QPerTonne = v }},
	{"tax_credit_duration_years", "years", func(p *model.ProjectInputs, v float64) { p.TaxCredit45QYears = int(math.Round(v)) }},
	{"carbon_price_above_45q", "$/tonne", func(p *model.ProjectInputs, v float64) { p.CarbonPriceAbove45Q = v }},
	{"co2_cost_per_tonne", "$/tonne", func(p *model.ProjectInputs, v float64) { p.CO2CostPerTonne = v }},
	{"tax_rate", "fraction", func(p *model.ProjectInputs, v float64) { p.TaxRate = v }},
	{"sco2_capex_m", "$M", func(p *model.ProjectInputs, v float64) { p.SCO2CapexM = v }},
	{"geo_capex_per_well_m", "$M", func(p *model.ProjectInputs, v float64) { p.GeoCapexPerWellM = v }},
	{"above_ground_capex_per_mw_m", "$M/MW", func(p *model.ProjectInputs, v float64) { p.AboveGroundCapexPerMWM = v }},
	{"drilling_cost_per_well_m", "$M", func(p *model.ProjectInputs, v float64) { p.DrillingCostPerWellM = v }},
	{"stimulation_cost_per_well_m", "$M", func(p *model.ProjectInputs, v float64) { p.StimulationCostPerWellM = v }},
	{"exploration_cost_m", "$M", func(p *model.ProjectInputs, v float64) { p.ExplorationCostM = v }},
	{"capex_escalation_factor", "multiplier", func(p *model.ProjectInputs, v float64) { p.CapexEscalationFactor = v }},
	{"annual_opex_m", "$M/yr", func(p *model.ProjectInputs, v float64) { p.AnnualOpexM = v }},
	{"annual_salaries_m", "$M/yr", func(p *model.ProjectInputs, v float64) { p.AnnualSalariesM = v }},
	{"maintenance_per_well_m", "$M/yr", func(p *model.ProjectInputs, v float64) { p.MaintenancePerWellM = v }},
	{"opex_per_mw_m", "$M/MW/yr", func(p *model.ProjectInputs, v float64) { p.OpexPerMWM = v }},
	{"redrilling_per_well_m", "$M/yr", func(p *model.ProjectInputs, v float64) { p.RedrillingPerWellM = v }},
	{"project_life_years", "years", func(p *model.ProjectInputs, v float64) { p.ProjectLifeYears = int(math.Round(v)) }},
}

var axisIndex = func() map[string]Axis {
	m := make(map[string]Axis, len(axes))
	for _, a := range axes {
		m[a.Name] = a
	}
	return m
}()

func axisFor(name string) (Axis, bool) {
	a, ok := axisIndex[name]
	return a, ok
}

// AxisNames lists the registered parameter names, sorted for stable output.
func AxisNames() []string {
	names := make([]string, 0, len(axes))
	for _, a := range axes {
		names = append(names, a.Name)
	}
	sort.Strings(names)
	return names
}
