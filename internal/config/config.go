package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dualwell-tea/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load scenario parameters from a separate YAML (e.g. examples/scenarios/*.yaml).
	// If both ScenarioFile and Scenario are provided, Scenario overrides ScenarioFile.
	ScenarioFile string         `yaml:"scenario_file"`
	Scenario     ScenarioConfig `yaml:"scenario"`
}

// ScenarioConfig mirrors model.ProjectInputs field by field, with snake_case
// YAML keys. A scenario that wants no 45Q revenue at all sets
// tax_credit_duration_years: 0 rather than zeroing the rate.
type ScenarioConfig struct {
	Name      string `yaml:"name"`
	CostModel string `yaml:"cost_model"`

	CapturedAndStoredMtpa      float64 `yaml:"captured_and_stored_mtpa"`
	PercentSequestered         float64 `yaml:"percent_sequestered"`
	CO2WaterRatio              float64 `yaml:"co2_water_ratio"`
	MaxInjectionRateKgsPerWell float64 `yaml:"max_injection_rate_kgs_per_well"`
	ThermalExtractionMWtKgs    float64 `yaml:"thermal_extraction_mwt_kgs"`
	ThermalEfficiency          float64 `yaml:"thermal_efficiency"`
	CapacityFactor             float64 `yaml:"capacity_factor"`
	CostOfCapital              float64 `yaml:"cost_of_capital"`
	PowerValueUSDPerMWh        float64 `yaml:"power_value_usd_mwh"`
	TaxCredit45QPerTonne       float64 `yaml:"tax_credit_45q"`
	TaxCredit45QYears          int     `yaml:"tax_credit_duration_years"`
	CarbonPriceAbove45Q        float64 `yaml:"carbon_price_above_45q"`
	CO2CostPerTonne            float64 `yaml:"co2_cost_per_tonne"`
	TaxRate                    float64 `yaml:"tax_rate"`

	SCO2CapexM              float64 `yaml:"sco2_capex_m"`
	GeoCapexPerWellM        float64 `yaml:"geo_capex_per_well_m"`
	AboveGroundCapexPerMWM  float64 `yaml:"above_ground_capex_per_mw_m"`
	DrillingCostPerWellM    float64 `yaml:"drilling_cost_per_well_m"`
	StimulationCostPerWellM float64 `yaml:"stimulation_cost_per_well_m"`
	ExplorationCostM        float64 `yaml:"exploration_cost_m"`
	CapexEscalationFactor   float64 `yaml:"capex_escalation_factor"`

	AnnualOpexM         float64 `yaml:"annual_opex_m"`
	AnnualSalariesM     float64 `yaml:"annual_salaries_m"`
	MaintenancePerWellM float64 `yaml:"maintenance_per_well_m"`
	OpexPerMWM          float64 `yaml:"opex_per_mw_m"`
	RedrillingPerWellM  float64 `yaml:"redrilling_per_well_m"`

	ProjectLifeYears int `yaml:"project_life_years"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.Scenario = c.Scenario.WithDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it or fill
// defaults. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If scenario_file is set, load it and merge in any explicit overrides from c.Scenario.
	if c.ScenarioFile != "" {
		scenarioPath := c.ScenarioFile
		if !filepath.IsAbs(scenarioPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), scenarioPath)
			if _, err := os.Stat(cand); err == nil {
				scenarioPath = cand
			}
		}
		loaded, err := loadScenarioFile(scenarioPath)
		if err != nil {
			return nil, err
		}
		c.Scenario = MergeScenario(loaded, c.Scenario)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	// Validate scenario params by constructing model.ProjectInputs.
	if err := c.Scenario.ToModelInputs().Validate(); err != nil {
		return fmt.Errorf("scenario config invalid: %w", err)
	}
	return nil
}

// WithDefaults fills zero-valued fields that have a documented default:
// cost_model "fixed", tax_credit_45q at the statutory $85/tonne, a 100 kg/s
// per-well injection cap, and a 15-year project life. The fixed model also
// defaults capacity_factor and co2_water_ratio to 1.0, since zero is invalid
// there anyway; for the scaled model capacity_factor 0 stays as given (an
// idle plant is a legitimate scenario).
func (sc ScenarioConfig) WithDefaults() ScenarioConfig {
	out := sc
	if out.CostModel == "" {
		out.CostModel = string(model.CostModelFixed)
	}
	if out.TaxCredit45QPerTonne == 0 {
		out.TaxCredit45QPerTonne = 85.0
	}
	if out.MaxInjectionRateKgsPerWell == 0 {
		out.MaxInjectionRateKgsPerWell = 100.0
	}
	if out.ProjectLifeYears == 0 {
		out.ProjectLifeYears = 15
	}
	if out.CostModel == string(model.CostModelFixed) {
		if out.CapacityFactor == 0 {
			out.CapacityFactor = 1.0
		}
		if out.CO2WaterRatio == 0 {
			out.CO2WaterRatio = 1.0
		}
	}
	return out
}

func (sc ScenarioConfig) ToModelInputs() model.ProjectInputs {
	return model.ProjectInputs{
		CostModel:                  model.CostModel(sc.CostModel),
		CapturedAndStoredMtpa:      sc.CapturedAndStoredMtpa,
		PercentSequestered:         sc.PercentSequestered,
		CO2WaterRatio:              sc.CO2WaterRatio,
		MaxInjectionRateKgsPerWell: sc.MaxInjectionRateKgsPerWell,
		ThermalExtractionMWtPerKgs: sc.ThermalExtractionMWtKgs,
		ThermalEfficiency:          sc.ThermalEfficiency,
		CapacityFactor:             sc.CapacityFactor,
		CostOfCapital:              sc.CostOfCapital,
		PowerValueUSDPerMWh:        sc.PowerValueUSDPerMWh,
		TaxCredit45QPerTonne:       sc.TaxCredit45QPerTonne,
		TaxCredit45QYears:          sc.TaxCredit45QYears,
		CarbonPriceAbove45Q:        sc.CarbonPriceAbove45Q,
		CO2CostPerTonne:            sc.CO2CostPerTonne,
		TaxRate:                    sc.TaxRate,
		SCO2CapexM:                 sc.SCO2CapexM,
		GeoCapexPerWellM:           sc.GeoCapexPerWellM,
		AboveGroundCapexPerMWM:     sc.AboveGroundCapexPerMWM,
		DrillingCostPerWellM:       sc.DrillingCostPerWellM,
		StimulationCostPerWellM:    sc.StimulationCostPerWellM,
		ExplorationCostM:           sc.ExplorationCostM,
		CapexEscalationFactor:      sc.CapexEscalationFactor,
		AnnualOpexM:                sc.AnnualOpexM,
		AnnualSalariesM:            sc.AnnualSalariesM,
		MaintenancePerWellM:        sc.MaintenancePerWellM,
		OpexPerMWM:                 sc.OpexPerMWM,
		RedrillingPerWellM:         sc.RedrillingPerWellM,
		ProjectLifeYears:           sc.ProjectLifeYears,
	}
}

type scenarioFileWrapper struct {
	Scenario ScenarioConfig `yaml:"scenario"`
}

func loadScenarioFile(path string) (ScenarioConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ScenarioConfig{}, err
	}
	var w scenarioFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return ScenarioConfig{}, err
	}
	return w.Scenario, nil
}

// MergeScenario overlays non-zero fields from override onto base.
// This is used when loading a scenario file and then applying overrides from the request.
func MergeScenario(base, override ScenarioConfig) ScenarioConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.CostModel != "" {
		out.CostModel = override.CostModel
	}
	if override.CapturedAndStoredMtpa != 0 {
		out.CapturedAndStoredMtpa = override.CapturedAndStoredMtpa
	}
	if override.PercentSequestered != 0 {
		out.PercentSequestered = override.PercentSequestered
	}
	if override.CO2WaterRatio != 0 {
		out.CO2WaterRatio = override.CO2WaterRatio
	}
	if override.MaxInjectionRateKgsPerWell != 0 {
		out.MaxInjectionRateKgsPerWell = override.MaxInjectionRateKgsPerWell
	}
	if override.ThermalExtractionMWtKgs != 0 {
		out.ThermalExtractionMWtKgs = override.ThermalExtractionMWtKgs
	}
	if override.ThermalEfficiency != 0 {
		out.ThermalEfficiency = override.ThermalEfficiency
	}
	// Note: 0 is meaningful for some of these (e.g. capacity_factor on the
	// scaled model), but an override of 0 reads as "not provided"; scenarios
	// that need a zero set it in the base, not via override.
	if override.CapacityFactor != 0 {
		out.CapacityFactor = override.CapacityFactor
	}
	if override.CostOfCapital != 0 {
		out.CostOfCapital = override.CostOfCapital
	}
	if override.PowerValueUSDPerMWh != 0 {
		out.PowerValueUSDPerMWh = override.PowerValueUSDPerMWh
	}
	if override.TaxCredit45QPerTonne != 0 {
		out.TaxCredit45QPerTonne = override.TaxCredit45QPerTonne
	}
	if override.TaxCredit45QYears != 0 {
		out.TaxCredit45QYears = override.TaxCredit45QYears
	}
	if override.CarbonPriceAbove45Q != 0 {
		out.CarbonPriceAbove45Q = override.CarbonPriceAbove45Q
	}
	if override.CO2CostPerTonne != 0 {
		out.CO2CostPerTonne = override.CO2CostPerTonne
	}
	if override.TaxRate != 0 {
		out.TaxRate = override.TaxRate
	}
	if override.SCO2CapexM != 0 {
		out.SCO2CapexM = override.SCO2CapexM
	}
	if override.GeoCapexPerWellM != 0 {
		out.GeoCapexPerWellM = override.GeoCapexPerWellM
	}
	if override.AboveGroundCapexPerMWM != 0 {
		out.AboveGroundCapexPerMWM = override.AboveGroundCapexPerMWM
	}
	if override.DrillingCostPerWellM != 0 {
		out.DrillingCostPerWellM = override.DrillingCostPerWellM
	}
	if override.StimulationCostPerWellM != 0 {
		out.StimulationCostPerWellM = override.StimulationCostPerWellM
	}
	if override.ExplorationCostM != 0 {
		out.ExplorationCostM = override.ExplorationCostM
	}
	if override.CapexEscalationFactor != 0 {
		out.CapexEscalationFactor = override.CapexEscalationFactor
	}
	if override.AnnualOpexM != 0 {
		out.AnnualOpexM = override.AnnualOpexM
	}
	if override.AnnualSalariesM != 0 {
		out.AnnualSalariesM = override.AnnualSalariesM
	}
	if override.MaintenancePerWellM != 0 {
		out.MaintenancePerWellM = override.MaintenancePerWellM
	}
	if override.OpexPerMWM != 0 {
		out.OpexPerMWM = override.OpexPerMWM
	}
	if override.RedrillingPerWellM != 0 {
		out.RedrillingPerWellM = override.RedrillingPerWellM
	}
	if override.ProjectLifeYears != 0 {
		out.ProjectLifeYears = override.ProjectLifeYears
	}
	return out
}
