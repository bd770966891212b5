package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"dualwell-tea/internal/config"
	"dualwell-tea/internal/engine"
	"dualwell-tea/internal/sweep"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "evaluate":
		cmdEvaluate(os.Args[2:])
	case "sweep":
		cmdSweep(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli evaluate --config examples/config.yaml --out results/timeline.csv")
	fmt.Println("  cli sweep --config examples/config.yaml --param power_value_usd_mwh --from 40 --to 160 --steps 13")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - evaluate writes the year-by-year cash-flow timeline as CSV")
	fmt.Println("  - sweep varies one input across a range and reports LCOE/NPV/IRR per value")
}

func cmdEvaluate(args []string) {
	fs := flag.NewFlagSet("evaluate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/timeline.csv", "Output CSV path")
	asJSON := fs.Bool("json", false, "Print the summary as JSON instead of text")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	res, err := engine.New().Evaluate(cfg.Scenario.ToModelInputs())
	if err != nil {
		panic(err)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := engine.WriteTimelineCSV(*outPath, res.Timeline); err != nil {
		panic(err)
	}

	if *asJSON {
		payload := struct {
			CostModel        string   `json:"cost_model"`
			TotalWells       int      `json:"total_wells"`
			TotalCapexM      float64  `json:"total_capex_m"`
			PowerGeneratedMW float64  `json:"power_generated_mw"`
			AnnualEnergyMWh  float64  `json:"annual_energy_mwh"`
			NPVM             float64  `json:"npv_m"`
			LCOEUSDPerMWh    float64  `json:"lcoe_usd_mwh"`
			IRR              *float64 `json:"irr"`
			PaybackYear      *int     `json:"payback_year"`
		}{
			CostModel:        cfg.Scenario.CostModel,
			TotalWells:       res.Derived.TotalWells,
			TotalCapexM:      res.Derived.TotalCapexM,
			PowerGeneratedMW: res.Derived.PowerGeneratedMW,
			AnnualEnergyMWh:  res.Derived.AnnualEnergyMWh,
			NPVM:             res.Metrics.NPVM,
			LCOEUSDPerMWh:    res.Metrics.LCOEUSDPerMWh,
			IRR:              res.Metrics.IRR,
			PaybackYear:      res.Metrics.PaybackYear,
		}
		out, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			panic(err)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Printf("Wrote %d rows to %s\n", len(res.Timeline), *outPath)
	fmt.Printf(
		"Cost model=%s Wells=%d Capex=$%.1fM Power=%.1fMW Energy=%.0fMWh/yr\n",
		cfg.Scenario.CostModel,
		res.Derived.TotalWells,
		res.Derived.TotalCapexM,
		res.Derived.PowerGeneratedMW,
		res.Derived.AnnualEnergyMWh,
	)
	fmt.Printf(
		"NPV=$%.2fM LCOE=$%.2f/MWh IRR=%s Payback=%s\n",
		res.Metrics.NPVM,
		res.Metrics.LCOEUSDPerMWh,
		fmtIRR(res.Metrics.IRR),
		fmtPayback(res.Metrics.PaybackYear),
	)
}

func cmdSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	param := fs.String("param", "", "Input to sweep (snake_case, e.g. power_value_usd_mwh)")
	from := fs.Float64("from", 0, "Range start")
	to := fs.Float64("to", 0, "Range end")
	steps := fs.Int("steps", 10, "Number of points")
	outPath := fs.String("out", "results/sweep.csv", "Output CSV path")
	_ = fs.Parse(args)

	if *cfgPath == "" || *param == "" {
		fmt.Println("--config and --param are required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	res, err := sweep.NewRunner().Run(context.Background(), sweep.Request{
		Base:  cfg.Scenario.ToModelInputs(),
		Param: *param,
		From:  *from,
		To:    *to,
		Steps: *steps,
	})
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := sweep.WriteSweepCSV(*outPath, res); err != nil {
		panic(err)
	}

	fmt.Printf("%-16s %-12s %-12s %-10s %-8s\n", fmt.Sprintf("%s (%s)", res.Param, res.Unit), "lcoe$/MWh", "npv$M", "irr", "payback")
	for _, p := range res.Points {
		if p.Err != "" {
			fmt.Printf("%-16.4f error: %s\n", p.Value, p.Err)
			continue
		}
		m := p.Result.Metrics
		fmt.Printf(
			"%-16.4f %-12.2f %-12.2f %-10s %-8s\n",
			p.Value,
			m.LCOEUSDPerMWh,
			m.NPVM,
			fmtIRR(m.IRR),
			fmtPayback(m.PaybackYear),
		)
	}
	fmt.Printf("\nWrote %d points to %s\n", len(res.Points), *outPath)
}

func fmtIRR(irr *float64) string {
	if irr == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *irr*100)
}

func fmtPayback(year *int) string {
	if year == nil {
		return "n/a"
	}
	return fmt.Sprintf("year %d", *year)
}
