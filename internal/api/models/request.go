package models

// EvaluateRequest represents the request body for evaluating a scenario
type EvaluateRequest struct {
	Config  ScenarioPayload `json:"config" binding:"required"`
	Options EvaluateOptions `json:"options,omitempty"`
}

// ScenarioPayload carries scenario parameters, either inline, by preset
// file reference, or both (inline values override the file).
type ScenarioPayload struct {
	ScenarioFile string         `json:"scenario_file,omitempty"`
	Scenario     ScenarioParams `json:"scenario,omitempty"`
}

// ScenarioParams defines project parameters. Fields outside the selected
// cost model's parameter set are ignored.
type ScenarioParams struct {
	Name      string `json:"name,omitempty"`
	CostModel string `json:"cost_model,omitempty"` // "fixed" or "scaled"

	CapturedAndStoredMtpa      float64 `json:"captured_and_stored_mtpa,omitempty"`
	PercentSequestered         float64 `json:"percent_sequestered,omitempty"`
	CO2WaterRatio              float64 `json:"co2_water_ratio,omitempty"`
	MaxInjectionRateKgsPerWell float64 `json:"max_injection_rate_kgs_per_well,omitempty"`
	ThermalExtractionMWtKgs    float64 `json:"thermal_extraction_mwt_kgs,omitempty"`
	ThermalEfficiency          float64 `json:"thermal_efficiency,omitempty"`
	CapacityFactor             float64 `json:"capacity_factor,omitempty"`
	CostOfCapital              float64 `json:"cost_of_capital,omitempty"`
	PowerValueUSDPerMWh        float64 `json:"power_value_usd_mwh,omitempty"`
	TaxCredit45QPerTonne       float64 `json:"tax_credit_45q,omitempty"`
	TaxCredit45QYears          int     `json:"tax_credit_duration_years,omitempty"`
	CarbonPriceAbove45Q        float64 `json:"carbon_price_above_45q,omitempty"`
	CO2CostPerTonne            float64 `json:"co2_cost_per_tonne,omitempty"`
	TaxRate                    float64 `json:"tax_rate,omitempty"`

	SCO2CapexM              float64 `json:"sco2_capex_m,omitempty"`
	GeoCapexPerWellM        float64 `json:"geo_capex_per_well_m,omitempty"`
	AboveGroundCapexPerMWM  float64 `json:"above_ground_capex_per_mw_m,omitempty"`
	DrillingCostPerWellM    float64 `json:"drilling_cost_per_well_m,omitempty"`
	StimulationCostPerWellM float64 `json:"stimulation_cost_per_well_m,omitempty"`
	ExplorationCostM        float64 `json:"exploration_cost_m,omitempty"`
	CapexEscalationFactor   float64 `json:"capex_escalation_factor,omitempty"`

	AnnualOpexM         float64 `json:"annual_opex_m,omitempty"`
	AnnualSalariesM     float64 `json:"annual_salaries_m,omitempty"`
	MaintenancePerWellM float64 `json:"maintenance_per_well_m,omitempty"`
	OpexPerMWM          float64 `json:"opex_per_mw_m,omitempty"`
	RedrillingPerWellM  float64 `json:"redrilling_per_well_m,omitempty"`

	ProjectLifeYears int `json:"project_life_years,omitempty"`
}

// EvaluateOptions contains optional evaluation parameters
type EvaluateOptions struct {
	IncludeTimeline bool   `json:"include_timeline,omitempty"` // default: false
	Label           string `json:"label,omitempty"`            // history label, default: "Run N"
}

// CompareRequest represents a request to evaluate multiple scenario variations
type CompareRequest struct {
	BaseConfig ScenarioPayload     `json:"base_config" binding:"required"`
	Variations []ScenarioVariation `json:"variations" binding:"required"`
}

// ScenarioVariation defines a variation to evaluate
type ScenarioVariation struct {
	Name   string          `json:"name" binding:"required"`
	Config ScenarioPayload `json:"config" binding:"required"`
}

// SweepRequest represents a request to sweep one parameter across a range
type SweepRequest struct {
	Config ScenarioPayload `json:"config" binding:"required"`
	Param  string          `json:"param" binding:"required"` // snake_case input name
	From   float64         `json:"from"`
	To     float64         `json:"to"`
	Steps  int             `json:"steps" binding:"required"`
}
