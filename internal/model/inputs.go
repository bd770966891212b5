package model

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a parameter set the engine refuses to evaluate.
// Callers can errors.Is against it to separate bad requests from faults.
var ErrInvalidInput = errors.New("invalid input")

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// CostModel selects which capex/opex derivation the engine runs.
// Both models share the same timeline, discounting, and metric code.
type CostModel string

const (
	// CostModelFixed prices the plant as a lump sum plus a per-well rate,
	// with a single annual opex figure and no tax adjustment.
	CostModelFixed CostModel = "fixed"

	// CostModelScaled prices above-ground capex per realized MW and
	// subsurface capex bottom-up per well under a common escalation factor,
	// with bottom-up opex and an EBIT-style tax adjustment.
	CostModelScaled CostModel = "scaled"
)

// ProjectInputs defines one project design to evaluate.
// Units:
// - CapturedAndStoredMtpa: million tonnes CO2 per year
// - Injection rates: kg/s; ThermalExtractionMWtPerKgs: MWt per (kg/s)
// - Efficiencies, factors, CostOfCapital, TaxRate: fractions 0..1
// - Fields suffixed M: $ millions; per-tonne and per-MWh fields: $
//
// Fields outside the selected cost model's parameter set are ignored:
// CO2WaterRatio, SCO2CapexM, GeoCapexPerWellM, and AnnualOpexM belong to
// the fixed model; MaxInjectionRateKgsPerWell, TaxRate, the escalated
// capex fields, and the bottom-up opex fields belong to the scaled model.
type ProjectInputs struct {
	CostModel CostModel

	// CO2 stream
	CapturedAndStoredMtpa      float64
	PercentSequestered         float64
	CO2WaterRatio              float64
	MaxInjectionRateKgsPerWell float64

	// Thermal conversion
	ThermalExtractionMWtPerKgs float64
	ThermalEfficiency          float64
	CapacityFactor             float64

	// Revenue and financing
	CostOfCapital        float64
	PowerValueUSDPerMWh  float64
	TaxCredit45QPerTonne float64
	TaxCredit45QYears    int
	CarbonPriceAbove45Q  float64
	CO2CostPerTonne      float64
	TaxRate              float64

	// Capex, fixed model
	SCO2CapexM       float64
	GeoCapexPerWellM float64

	// Capex, scaled model
	AboveGroundCapexPerMWM  float64
	DrillingCostPerWellM    float64
	StimulationCostPerWellM float64
	ExplorationCostM        float64
	CapexEscalationFactor   float64

	// Opex, fixed model
	AnnualOpexM float64

	// Opex, scaled model
	AnnualSalariesM     float64
	MaintenancePerWellM float64
	OpexPerMWM          float64
	RedrillingPerWellM  float64

	ProjectLifeYears int
}

// Validate fails fast on any parameter that would divide by zero or sit
// outside its physical range, so downstream math never sees NaN or Inf.
func (p ProjectInputs) Validate() error {
	switch p.CostModel {
	case CostModelFixed, CostModelScaled:
	default:
		return invalid(fmt.Sprintf("CostModel must be %q or %q, got %q", CostModelFixed, CostModelScaled, p.CostModel))
	}

	if p.CapturedAndStoredMtpa <= 0 {
		return invalid("CapturedAndStoredMtpa must be > 0")
	}
	if p.PercentSequestered <= 0 || p.PercentSequestered > 1 {
		return invalid("PercentSequestered must be in (0, 1]")
	}
	if p.ThermalExtractionMWtPerKgs <= 0 {
		return invalid("ThermalExtractionMWtPerKgs must be > 0")
	}
	if p.ThermalEfficiency <= 0 || p.ThermalEfficiency > 1 {
		return invalid("ThermalEfficiency must be in (0, 1]")
	}
	// The fixed model folds the capacity factor into its hours basis, which
	// then divides the injected mass; the scaled model only multiplies by it,
	// so zero is meaningful there (an idle plant).
	if p.CostModel == CostModelFixed {
		if p.CapacityFactor <= 0 || p.CapacityFactor > 1 {
			return invalid("CapacityFactor must be in (0, 1] for the fixed cost model")
		}
	} else {
		if p.CapacityFactor < 0 || p.CapacityFactor > 1 {
			return invalid("CapacityFactor must be in [0, 1]")
		}
	}
	if p.CostOfCapital <= -1 {
		return invalid("CostOfCapital must be > -1")
	}
	if p.PowerValueUSDPerMWh < 0 {
		return invalid("PowerValueUSDPerMWh must be >= 0")
	}
	if p.TaxCredit45QPerTonne < 0 {
		return invalid("TaxCredit45QPerTonne must be >= 0")
	}
	if p.TaxCredit45QYears < 0 {
		return invalid("TaxCredit45QYears must be >= 0")
	}
	if p.CarbonPriceAbove45Q < 0 {
		return invalid("CarbonPriceAbove45Q must be >= 0")
	}
	if p.CO2CostPerTonne < 0 {
		return invalid("CO2CostPerTonne must be >= 0")
	}
	if p.ProjectLifeYears < 1 {
		return invalid("ProjectLifeYears must be >= 1")
	}

	switch p.CostModel {
	case CostModelFixed:
		if p.CO2WaterRatio <= 0 {
			return invalid("CO2WaterRatio must be > 0")
		}
		if p.SCO2CapexM < 0 {
			return invalid("SCO2CapexM must be >= 0")
		}
		if p.GeoCapexPerWellM < 0 {
			return invalid("GeoCapexPerWellM must be >= 0")
		}
		if p.AnnualOpexM < 0 {
			return invalid("AnnualOpexM must be >= 0")
		}
	case CostModelScaled:
		if p.MaxInjectionRateKgsPerWell <= 0 {
			return invalid("MaxInjectionRateKgsPerWell must be > 0")
		}
		if p.AboveGroundCapexPerMWM < 0 {
			return invalid("AboveGroundCapexPerMWM must be >= 0")
		}
		if p.DrillingCostPerWellM < 0 {
			return invalid("DrillingCostPerWellM must be >= 0")
		}
		if p.StimulationCostPerWellM < 0 {
			return invalid("StimulationCostPerWellM must be >= 0")
		}
		if p.ExplorationCostM < 0 {
			return invalid("ExplorationCostM must be >= 0")
		}
		if p.CapexEscalationFactor <= 0 {
			return invalid("CapexEscalationFactor must be > 0")
		}
		if p.TaxRate < 0 || p.TaxRate >= 1 {
			return invalid("TaxRate must be in [0, 1)")
		}
		if p.AnnualSalariesM < 0 {
			return invalid("AnnualSalariesM must be >= 0")
		}
		if p.MaintenancePerWellM < 0 {
			return invalid("MaintenancePerWellM must be >= 0")
		}
		if p.OpexPerMWM < 0 {
			return invalid("OpexPerMWM must be >= 0")
		}
		if p.RedrillingPerWellM < 0 {
			return invalid("RedrillingPerWellM must be >= 0")
		}
	}

	return nil
}
