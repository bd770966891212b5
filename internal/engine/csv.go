package engine

import (
	"encoding/csv"
	"os"
	"strconv"
)

func WriteTimelineCSV(path string, timeline []YearFlow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"year",
		"phase",
		"capex_m",
		"electricity_revenue_m",
		"tax_credit_45q_m",
		"carbon_credit_m",
		"opex_m",
		"co2_cost_m",
		"tax_m",
		"generation_mwh",
		"net_m",
		"cumulative_net_m",
		"discount_factor",
		"discounted_net_m",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range timeline {
		row := []string{
			strconv.Itoa(r.Year),
			string(r.Phase),
			fmtFloat(r.CapexM),
			fmtFloat(r.ElectricityRevenueM),
			fmtFloat(r.TaxCredit45QRevenueM),
			fmtFloat(r.CarbonCreditRevenueM),
			fmtFloat(r.OpexM),
			fmtFloat(r.CO2CostM),
			fmtFloat(r.TaxM),
			fmtFloat(r.GenerationMWh),
			fmtFloat(r.NetM),
			fmtFloat(r.CumulativeNetM),
			fmtFloat(r.DiscountFactor),
			fmtFloat(r.DiscountedNetM),
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
