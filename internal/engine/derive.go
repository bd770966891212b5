package engine

import (
	"fmt"
	"math"

	"dualwell-tea/internal/model"
)

const (
	// fixedHoursBasis is the annual operating-hours basis of the fixed cost
	// model. The capacity factor scales it before any conversion, so the
	// same hours value feeds both the kg/s conversion and annual energy.
	fixedHoursBasis = 8160.0

	// calendarHoursPerYear anchors the scaled model's kg/s conversion as a
	// physical constant; the capacity factor is applied downstream to
	// generation and credit volumes instead.
	calendarHoursPerYear = 8760.0

	secondsPerHour = 3600.0

	// fixedModelWellCapKgs is the per-well injection cap the fixed model
	// assumes. The scaled model takes the cap as an input.
	fixedModelWellCapKgs = 100.0

	// maxInjectionWells bounds the well count so the doubled total and the
	// per-well cost arithmetic stay representable. Sizings beyond it are
	// rejected as invalid input.
	maxInjectionWells = math.MaxInt32
)

// Derive computes the physical sizing and cost totals for one project.
// Inputs are assumed validated. Extreme parameter combinations can still
// push the sizing outside what float64 and int hold; those come back as
// ErrInvalidInput rather than propagating Inf or a wrapped well count.
func Derive(in model.ProjectInputs) (model.DerivedQuantities, error) {
	d := model.DerivedQuantities{
		InjectedCO2Mtpa: in.CapturedAndStoredMtpa / in.PercentSequestered,
	}

	switch in.CostModel {
	case model.CostModelFixed:
		hours := fixedHoursBasis * in.CapacityFactor
		// Mtpa -> kg/s over the operating hours, then split across the
		// CO2:water working fluid.
		d.TotalInjectionRateKgs = (d.InjectedCO2Mtpa * 1e9) / (hours * secondsPerHour) / in.CO2WaterRatio
		wells, err := injectionWells(d.TotalInjectionRateKgs, fixedModelWellCapKgs)
		if err != nil {
			return model.DerivedQuantities{}, err
		}
		d.InjectionWells = wells
		d.TotalWells = 2 * d.InjectionWells

		d.HeatGeneratedMWt = d.TotalInjectionRateKgs * in.ThermalExtractionMWtPerKgs
		d.PowerGeneratedMW = d.HeatGeneratedMWt * in.ThermalEfficiency
		d.AnnualEnergyMWh = d.PowerGeneratedMW * hours

		d.AboveGroundCapexM = in.SCO2CapexM
		d.SubsurfaceCapexM = float64(d.TotalWells) * in.GeoCapexPerWellM
		d.AnnualOpexCostM = in.AnnualOpexM

	case model.CostModelScaled:
		// Pure-CO2 stream over the full calendar year.
		d.TotalInjectionRateKgs = (d.InjectedCO2Mtpa * 1e9) / (calendarHoursPerYear * secondsPerHour)
		wells, err := injectionWells(d.TotalInjectionRateKgs, in.MaxInjectionRateKgsPerWell)
		if err != nil {
			return model.DerivedQuantities{}, err
		}
		d.InjectionWells = wells
		d.TotalWells = 2 * d.InjectionWells

		d.HeatGeneratedMWt = d.TotalInjectionRateKgs * in.ThermalExtractionMWtPerKgs
		d.PowerGeneratedMW = d.HeatGeneratedMWt * in.ThermalEfficiency
		d.AnnualEnergyMWh = d.PowerGeneratedMW * calendarHoursPerYear * in.CapacityFactor

		totalWells := float64(d.TotalWells)
		d.AboveGroundCapexM = in.AboveGroundCapexPerMWM * d.PowerGeneratedMW * in.CapexEscalationFactor
		d.SubsurfaceCapexM = ((in.DrillingCostPerWellM+in.StimulationCostPerWellM)*totalWells + in.ExplorationCostM) * in.CapexEscalationFactor
		d.AnnualOpexCostM = in.AnnualSalariesM +
			in.MaintenancePerWellM*totalWells +
			in.OpexPerMWM*d.PowerGeneratedMW +
			in.RedrillingPerWellM*totalWells
	}

	d.TotalCapexM = d.AboveGroundCapexM + d.SubsurfaceCapexM

	for _, v := range []float64{
		d.InjectedCO2Mtpa,
		d.TotalInjectionRateKgs,
		d.HeatGeneratedMWt,
		d.PowerGeneratedMW,
		d.AnnualEnergyMWh,
		d.AboveGroundCapexM,
		d.SubsurfaceCapexM,
		d.TotalCapexM,
		d.AnnualOpexCostM,
	} {
		if !isFinite(v) {
			return model.DerivedQuantities{}, fmt.Errorf("%w: derived quantities overflow float64 for these inputs", model.ErrInvalidInput)
		}
	}

	return d, nil
}

// injectionWells converts a required injection rate into a whole well
// count. The comparison is done in float space: a non-finite rate, a rate
// that rounds below one well, or one past maxInjectionWells never reaches
// the int conversion, whose out-of-range result is implementation-defined.
func injectionWells(rateKgs, capKgs float64) (int, error) {
	wells := math.Ceil(rateKgs / capKgs)
	if !(wells >= 1 && wells <= maxInjectionWells) {
		return 0, fmt.Errorf("%w: injection rate %g kg/s cannot be served by a representable well count at %g kg/s per well",
			model.ErrInvalidInput, rateKgs, capKgs)
	}
	return int(wells), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
