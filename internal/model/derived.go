package model

// DerivedQuantities are the sizing numbers the engine computes from
// ProjectInputs before any cash flows. They are reported alongside the
// financial metrics so a reviewer can sanity-check the physical design.
type DerivedQuantities struct {
	// InjectedCO2Mtpa is the sequestered share of the captured stream.
	InjectedCO2Mtpa float64

	// TotalInjectionRateKgs is the plant-level injection rate in kg/s.
	// Under the fixed cost model this is the working-fluid rate after the
	// CO2:water split; under the scaled model it is pure CO2.
	TotalInjectionRateKgs float64

	InjectionWells int
	// TotalWells counts injectors plus the matching production wells.
	TotalWells int

	HeatGeneratedMWt float64
	PowerGeneratedMW float64
	// AnnualEnergyMWh is net generation per operating year.
	AnnualEnergyMWh float64

	AboveGroundCapexM float64
	SubsurfaceCapexM  float64
	TotalCapexM       float64
	AnnualOpexCostM   float64
}
