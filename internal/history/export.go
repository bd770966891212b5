package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"dualwell-tea/internal/model"
)

// The export is a transposed run table: one row per parameter or metric,
// one column per run, headed Parameter, Run_1..Run_N. Fields outside a
// run's cost model render blank; undefined IRR and payback render "N/A".

type exportRow struct {
	name  string
	value func(Run) any
}

func fixedOnly(r Run, v float64) any {
	if r.Inputs.CostModel != model.CostModelFixed {
		return nil
	}
	return v
}

func scaledOnly(r Run, v float64) any {
	if r.Inputs.CostModel != model.CostModelScaled {
		return nil
	}
	return v
}

var exportRows = []exportRow{
	{"Label", func(r Run) any { return r.Label }},
	{"Cost model", func(r Run) any { return string(r.Inputs.CostModel) }},

	{"Captured and stored (Mtpa)", func(r Run) any { return r.Inputs.CapturedAndStoredMtpa }},
	{"Injection CO2 % sequestered", func(r Run) any { return r.Inputs.PercentSequestered * 100 }},
	{"CO2/Water ratio", func(r Run) any { return fixedOnly(r, r.Inputs.CO2WaterRatio) }},
	{"Max injection rate (kg/s per well)", func(r Run) any { return scaledOnly(r, r.Inputs.MaxInjectionRateKgsPerWell) }},
	{"Thermal extraction (MWt/(kg/s))", func(r Run) any { return r.Inputs.ThermalExtractionMWtPerKgs }},
	{"Thermal efficiency (%)", func(r Run) any { return r.Inputs.ThermalEfficiency * 100 }},
	{"Capacity factor (%)", func(r Run) any { return r.Inputs.CapacityFactor * 100 }},
	{"Cost of capital (%)", func(r Run) any { return r.Inputs.CostOfCapital * 100 }},
	{"Power price ($/MWh)", func(r Run) any { return r.Inputs.PowerValueUSDPerMWh }},
	{"45Q credit ($/tonne)", func(r Run) any { return r.Inputs.TaxCredit45QPerTonne }},
	{"45Q duration (years)", func(r Run) any { return r.Inputs.TaxCredit45QYears }},
	{"Carbon price above 45Q ($/tonne)", func(r Run) any { return r.Inputs.CarbonPriceAbove45Q }},
	{"CO2 cost ($/tonne)", func(r Run) any { return r.Inputs.CO2CostPerTonne }},
	{"Tax rate (%)", func(r Run) any { return scaledOnly(r, r.Inputs.TaxRate*100) }},

	{"sCO2 Capex ($M)", func(r Run) any { return fixedOnly(r, r.Inputs.SCO2CapexM) }},
	{"Geothermal capex per well ($M)", func(r Run) any { return fixedOnly(r, r.Inputs.GeoCapexPerWellM) }},
	{"Above-ground capex ($M/MW)", func(r Run) any { return scaledOnly(r, r.Inputs.AboveGroundCapexPerMWM) }},
	{"Drilling cost per well ($M)", func(r Run) any { return scaledOnly(r, r.Inputs.DrillingCostPerWellM) }},
	{"Stimulation cost per well ($M)", func(r Run) any { return scaledOnly(r, r.Inputs.StimulationCostPerWellM) }},
	{"Exploration cost ($M)", func(r Run) any { return scaledOnly(r, r.Inputs.ExplorationCostM) }},
	{"Capex escalation factor", func(r Run) any { return scaledOnly(r, r.Inputs.CapexEscalationFactor) }},

	{"Annual opex ($M/year)", func(r Run) any { return fixedOnly(r, r.Inputs.AnnualOpexM) }},
	{"Annual salaries ($M/year)", func(r Run) any { return scaledOnly(r, r.Inputs.AnnualSalariesM) }},
	{"Maintenance per well ($M/year)", func(r Run) any { return scaledOnly(r, r.Inputs.MaintenancePerWellM) }},
	{"Opex per MW ($M/year)", func(r Run) any { return scaledOnly(r, r.Inputs.OpexPerMWM) }},
	{"Redrilling per well ($M/year)", func(r Run) any { return scaledOnly(r, r.Inputs.RedrillingPerWellM) }},
	{"Project life (years)", func(r Run) any { return r.Inputs.ProjectLifeYears }},

	{"Total wells", func(r Run) any { return r.Derived.TotalWells }},
	{"Total capex ($M)", func(r Run) any { return r.Derived.TotalCapexM }},
	{"Power generated (MW)", func(r Run) any { return r.Derived.PowerGeneratedMW }},
	{"Annual energy (MWh)", func(r Run) any { return r.Derived.AnnualEnergyMWh }},

	{"LCOE ($/MWh)", func(r Run) any { return r.Metrics.LCOEUSDPerMWh }},
	{"NPV ($M)", func(r Run) any { return r.Metrics.NPVM }},
	{"IRR (%)", func(r Run) any {
		if r.Metrics.IRR == nil {
			return "N/A"
		}
		return *r.Metrics.IRR * 100
	}},
	{"Payback (years)", func(r Run) any {
		if r.Metrics.PaybackYear == nil {
			return "N/A"
		}
		return *r.Metrics.PaybackYear
	}},
}

func WriteCSV(w io.Writer, runs []Run) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(runs)+1)
	header = append(header, "Parameter")
	for i := range runs {
		header = append(header, fmt.Sprintf("Run_%d", i+1))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range exportRows {
		record := make([]string, 0, len(runs)+1)
		record = append(record, row.name)
		for _, run := range runs {
			record = append(record, formatCell(row.value(run)))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func WriteXLSX(w io.Writer, runs []Run) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Runs"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", "Parameter"); err != nil {
		return err
	}
	for i := range runs {
		cell, err := excelize.CoordinatesToCellName(i+2, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, fmt.Sprintf("Run_%d", i+1)); err != nil {
			return err
		}
	}

	for rowIdx, row := range exportRows {
		nameCell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, nameCell, row.name); err != nil {
			return err
		}
		for colIdx, run := range runs {
			v := row.value(run)
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+2, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', 10, 64)
	default:
		return fmt.Sprint(x)
	}
}
