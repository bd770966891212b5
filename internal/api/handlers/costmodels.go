package handlers

import (
	"fmt"
	"math"
	"net/http"

	"dualwell-tea/internal/api/models"
	"dualwell-tea/internal/model"

	"github.com/gin-gonic/gin"
)

// paramSpec is one catalog parameter: the metadata the API advertises and
// the accessor used to enforce the advertised range on incoming requests.
type paramSpec struct {
	name        string
	typ         string // "float" or "int"
	unit        string
	description string
	def         float64
	min         float64
	max         float64
	value       func(model.ProjectInputs) float64
}

func (p paramSpec) info() models.ParameterInfo {
	if p.typ == "int" {
		return models.ParameterInfo{
			Name:        p.name,
			Type:        p.typ,
			Unit:        p.unit,
			Description: p.description,
			Default:     int(p.def),
			Min:         int(p.min),
			Max:         int(p.max),
		}
	}
	return models.ParameterInfo{
		Name:        p.name,
		Type:        p.typ,
		Unit:        p.unit,
		Description: p.description,
		Default:     p.def,
		Min:         p.min,
		Max:         p.max,
	}
}

// sharedParams are the parameters common to both cost models.
var sharedParams = []paramSpec{
	{
		name:        "captured_and_stored_mtpa",
		typ:         "float",
		unit:        "Mtpa",
		description: "CO2 captured and stored per year",
		def:         0.2,
		min:         0.01,
		max:         10.0,
		value:       func(in model.ProjectInputs) float64 { return in.CapturedAndStoredMtpa },
	},
	{
		name:        "percent_sequestered",
		typ:         "float",
		unit:        "fraction",
		description: "Share of the injected stream that stays sequestered; injected mass is captured divided by this",
		def:         0.01,
		min:         0.001,
		max:         1.0,
		value:       func(in model.ProjectInputs) float64 { return in.PercentSequestered },
	},
	{
		name:        "thermal_extraction_mwt_kgs",
		typ:         "float",
		unit:        "MWt per kg/s",
		description: "Thermal power extracted per unit injection rate",
		def:         0.711,
		min:         0.1,
		max:         2.0,
		value:       func(in model.ProjectInputs) float64 { return in.ThermalExtractionMWtPerKgs },
	},
	{
		name:        "thermal_efficiency",
		typ:         "float",
		unit:        "fraction",
		description: "Heat to electricity conversion efficiency",
		def:         0.19,
		min:         0.05,
		max:         0.5,
		value:       func(in model.ProjectInputs) float64 { return in.ThermalEfficiency },
	},
	{
		name:        "cost_of_capital",
		typ:         "float",
		unit:        "fraction",
		description: "Discount rate for NPV and LCOE",
		def:         0.08,
		min:         0.01,
		max:         0.3,
		value:       func(in model.ProjectInputs) float64 { return in.CostOfCapital },
	},
	{
		name:        "power_value_usd_mwh",
		typ:         "float",
		unit:        "$/MWh",
		description: "Electricity sales price",
		def:         95.4,
		min:         0.0,
		max:         500.0,
		value:       func(in model.ProjectInputs) float64 { return in.PowerValueUSDPerMWh },
	},
	{
		name:        "tax_credit_45q",
		typ:         "float",
		unit:        "$/tonne",
		description: "45Q credit per tonne of captured and stored CO2",
		def:         85.0,
		min:         0.0,
		max:         200.0,
		value:       func(in model.ProjectInputs) float64 { return in.TaxCredit45QPerTonne },
	},
	{
		name:        "tax_credit_duration_years",
		typ:         "int",
		unit:        "years",
		description: "Operating years the 45Q credit is paid; 0 disables it",
		def:         12,
		min:         0,
		max:         30,
		value:       func(in model.ProjectInputs) float64 { return float64(in.TaxCredit45QYears) },
	},
	{
		name:        "carbon_price_above_45q",
		typ:         "float",
		unit:        "$/tonne",
		description: "Carbon credit per tonne, paid every operating year on top of 45Q",
		def:         40.0,
		min:         0.0,
		max:         200.0,
		value:       func(in model.ProjectInputs) float64 { return in.CarbonPriceAbove45Q },
	},
	{
		name:        "co2_cost_per_tonne",
		typ:         "float",
		unit:        "$/tonne",
		description: "Cost of procuring captured CO2",
		def:         100.0,
		min:         0.0,
		max:         300.0,
		value:       func(in model.ProjectInputs) float64 { return in.CO2CostPerTonne },
	},
	{
		name:        "project_life_years",
		typ:         "int",
		unit:        "years",
		description: "Operating years after the 3-year construction window",
		def:         15,
		min:         1,
		max:         50,
		value:       func(in model.ProjectInputs) float64 { return float64(in.ProjectLifeYears) },
	},
}

var fixedOnlyParams = []paramSpec{
	{
		name:        "co2_water_ratio",
		typ:         "float",
		unit:        "ratio",
		description: "CO2 to water mass ratio of the produced fluid",
		def:         1.0,
		min:         0.1,
		max:         5.0,
		value:       func(in model.ProjectInputs) float64 { return in.CO2WaterRatio },
	},
	{
		name:        "capacity_factor",
		typ:         "float",
		unit:        "fraction",
		description: "Plant availability; scales the 8160-hour basis for both injection and generation",
		def:         1.0,
		min:         0.1,
		max:         1.0,
		value:       func(in model.ProjectInputs) float64 { return in.CapacityFactor },
	},
	{
		name:        "sco2_capex_m",
		typ:         "float",
		unit:        "$M",
		description: "Supercritical CO2 power plant capital cost",
		def:         70.0,
		min:         10.0,
		max:         500.0,
		value:       func(in model.ProjectInputs) float64 { return in.SCO2CapexM },
	},
	{
		name:        "geo_capex_per_well_m",
		typ:         "float",
		unit:        "$M/well",
		description: "Geothermal capital cost per well (drilling, completion, gathering)",
		def:         10.0,
		min:         1.0,
		max:         50.0,
		value:       func(in model.ProjectInputs) float64 { return in.GeoCapexPerWellM },
	},
	{
		name:        "annual_opex_m",
		typ:         "float",
		unit:        "$M/yr",
		description: "Total annual operating cost",
		def:         30.0,
		min:         0.0,
		max:         200.0,
		value:       func(in model.ProjectInputs) float64 { return in.AnnualOpexM },
	},
}

var scaledOnlyParams = []paramSpec{
	{
		name:        "max_injection_rate_kgs_per_well",
		typ:         "float",
		unit:        "kg/s",
		description: "Injection capacity of a single well",
		def:         100.0,
		min:         10.0,
		max:         300.0,
		value:       func(in model.ProjectInputs) float64 { return in.MaxInjectionRateKgsPerWell },
	},
	{
		name:        "capacity_factor",
		typ:         "float",
		unit:        "fraction",
		description: "Plant availability; pro-rates generation, 45Q and carbon credit revenues",
		def:         0.9,
		min:         0.0,
		max:         1.0,
		value:       func(in model.ProjectInputs) float64 { return in.CapacityFactor },
	},
	{
		name:        "tax_rate",
		typ:         "float",
		unit:        "fraction",
		description: "Income tax rate applied to pre-tax cash flow; loss years produce an offsetting inflow",
		def:         0.21,
		min:         0.0,
		max:         0.6,
		value:       func(in model.ProjectInputs) float64 { return in.TaxRate },
	},
	{
		name:        "above_ground_capex_per_mw_m",
		typ:         "float",
		unit:        "$M/MW",
		description: "Surface plant capital cost per MW of net power",
		def:         0.8,
		min:         0.1,
		max:         5.0,
		value:       func(in model.ProjectInputs) float64 { return in.AboveGroundCapexPerMWM },
	},
	{
		name:        "drilling_cost_per_well_m",
		typ:         "float",
		unit:        "$M/well",
		description: "Drilling cost per well",
		def:         8.0,
		min:         1.0,
		max:         30.0,
		value:       func(in model.ProjectInputs) float64 { return in.DrillingCostPerWellM },
	},
	{
		name:        "stimulation_cost_per_well_m",
		typ:         "float",
		unit:        "$M/well",
		description: "Stimulation cost per well",
		def:         2.0,
		min:         0.0,
		max:         10.0,
		value:       func(in model.ProjectInputs) float64 { return in.StimulationCostPerWellM },
	},
	{
		name:        "exploration_cost_m",
		typ:         "float",
		unit:        "$M",
		description: "Up-front exploration and appraisal cost",
		def:         30.0,
		min:         0.0,
		max:         100.0,
		value:       func(in model.ProjectInputs) float64 { return in.ExplorationCostM },
	},
	{
		name:        "capex_escalation_factor",
		typ:         "float",
		unit:        "multiplier",
		description: "Escalation applied to both surface and subsurface capex",
		def:         1.15,
		min:         1.0,
		max:         2.0,
		value:       func(in model.ProjectInputs) float64 { return in.CapexEscalationFactor },
	},
	{
		name:        "annual_salaries_m",
		typ:         "float",
		unit:        "$M/yr",
		description: "Annual staffing cost",
		def:         5.0,
		min:         0.0,
		max:         50.0,
		value:       func(in model.ProjectInputs) float64 { return in.AnnualSalariesM },
	},
	{
		name:        "maintenance_per_well_m",
		typ:         "float",
		unit:        "$M/well/yr",
		description: "Annual maintenance cost per well",
		def:         0.5,
		min:         0.0,
		max:         5.0,
		value:       func(in model.ProjectInputs) float64 { return in.MaintenancePerWellM },
	},
	{
		name:        "opex_per_mw_m",
		typ:         "float",
		unit:        "$M/MW/yr",
		description: "Annual surface plant operating cost per MW",
		def:         0.05,
		min:         0.0,
		max:         1.0,
		value:       func(in model.ProjectInputs) float64 { return in.OpexPerMWM },
	},
	{
		name:        "redrilling_per_well_m",
		typ:         "float",
		unit:        "$M/well/yr",
		description: "Annualized redrilling reserve per well",
		def:         0.3,
		min:         0.0,
		max:         5.0,
		value:       func(in model.ProjectInputs) float64 { return in.RedrillingPerWellM },
	},
}

// paramsForModel returns the full parameter set of one cost model.
// Fields outside this set are ignored by the model, so they are neither
// advertised nor range-checked for it.
func paramsForModel(m model.CostModel) []paramSpec {
	specs := make([]paramSpec, 0, len(sharedParams)+len(scaledOnlyParams))
	specs = append(specs, sharedParams...)
	switch m {
	case model.CostModelFixed:
		specs = append(specs, fixedOnlyParams...)
	case model.CostModelScaled:
		specs = append(specs, scaledOnlyParams...)
	}
	return specs
}

func catalogParameters(specs []paramSpec) []models.ParameterInfo {
	infos := make([]models.ParameterInfo, len(specs))
	for i, p := range specs {
		infos[i] = p.info()
	}
	return infos
}

// checkParamBounds enforces the catalog's advertised min/max on the
// effective inputs of a request. The paramSpec tables above are the only
// source of the bounds, so the API rejects exactly the ranges it
// documents. Unknown cost models pass through; input validation names
// the accepted models in its own error.
func checkParamBounds(in model.ProjectInputs) error {
	if in.CostModel != model.CostModelFixed && in.CostModel != model.CostModelScaled {
		return nil
	}
	for _, p := range paramsForModel(in.CostModel) {
		v := p.value(in)
		// NaN (reachable through a yaml preset) compares false both ways.
		if math.IsNaN(v) || v < p.min || v > p.max {
			return fmt.Errorf("%w: %s must be between %g and %g, got %g",
				model.ErrInvalidInput, p.name, p.min, p.max, v)
		}
	}
	return nil
}

// checkSweepRange keeps a sweep's endpoints inside the advertised range
// of the swept parameter. Parameters outside the cost model's set stay
// unchecked; the model ignores them.
func checkSweepRange(m model.CostModel, param string, from, to float64) error {
	for _, p := range paramsForModel(m) {
		if p.name != param {
			continue
		}
		for _, v := range []float64{from, to} {
			if v < p.min || v > p.max {
				return fmt.Errorf("%w: %s sweep values must stay between %g and %g, got %g",
					model.ErrInvalidInput, param, p.min, p.max, v)
			}
		}
		return nil
	}
	return nil
}

// CostModelHandler handles cost model catalog requests
type CostModelHandler struct{}

// NewCostModelHandler creates a new cost model handler
func NewCostModelHandler() *CostModelHandler {
	return &CostModelHandler{}
}

// ListCostModels handles GET /api/v1/costmodels
func (h *CostModelHandler) ListCostModels(c *gin.Context) {
	costModels := []models.CostModelInfo{
		{
			ID:   "fixed",
			Name: "Fixed basis",
			Description: "Original TEA basis. Injection sizing and generation both use an " +
				"8160-hour operating year, wells are capped at 100 kg/s, capex is the sCO2 " +
				"plant plus a per-well geothermal cost, and opex is a single annual figure. " +
				"No income tax.",
			Parameters: catalogParameters(paramsForModel(model.CostModelFixed)),
		},
		{
			ID:   "scaled",
			Name: "Scaled plant",
			Description: "Bottom-up basis for sized plants. Injection sizing uses the " +
				"calendar-year mass balance with a configurable per-well cap, the capacity " +
				"factor pro-rates generation and credit revenues, capex is built from " +
				"per-MW surface costs plus drilling, stimulation and exploration under an " +
				"escalation factor, opex from salaries, maintenance, redrilling and per-MW " +
				"costs. Applies an EBIT income tax with loss offsets.",
			Parameters: catalogParameters(paramsForModel(model.CostModelScaled)),
		},
	}

	c.JSON(http.StatusOK, gin.H{"cost_models": costModels})
}
