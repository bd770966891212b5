package sweep

import (
	"encoding/csv"
	"os"
	"strconv"
)

func WriteSweepCSV(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		res.Param,
		"lcoe_usd_mwh",
		"npv_m",
		"irr",
		"payback_year",
		"total_wells",
		"total_capex_m",
		"error",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range res.Points {
		row := []string{fmtFloat(p.Value), "", "", "", "", "", "", p.Err}
		if p.Result != nil {
			m := p.Result.Metrics
			row[1] = fmtFloat(m.LCOEUSDPerMWh)
			row[2] = fmtFloat(m.NPVM)
			if m.IRR != nil {
				row[3] = fmtFloat(*m.IRR)
			}
			if m.PaybackYear != nil {
				row[4] = strconv.Itoa(*m.PaybackYear)
			}
			row[5] = strconv.Itoa(p.Result.Derived.TotalWells)
			row[6] = fmtFloat(p.Result.Derived.TotalCapexM)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
