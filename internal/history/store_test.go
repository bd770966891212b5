package history

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	"dualwell-tea/internal/engine"
	"dualwell-tea/internal/model"
)

type StoreSuite struct {
	suite.Suite
	store  *Store
	engine *engine.Engine
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.store = NewStore()
	s.engine = engine.New()
}

func (s *StoreSuite) fixedInputs() model.ProjectInputs {
	return model.ProjectInputs{
		CostModel:                  model.CostModelFixed,
		CapturedAndStoredMtpa:      0.2,
		PercentSequestered:         0.01,
		CO2WaterRatio:              1.0,
		ThermalExtractionMWtPerKgs: 52.88 / 74.38,
		ThermalEfficiency:          0.19,
		CapacityFactor:             1.0,
		CostOfCapital:              0.08,
		PowerValueUSDPerMWh:        95.4,
		TaxCredit45QPerTonne:       85,
		TaxCredit45QYears:          12,
		CarbonPriceAbove45Q:        40,
		CO2CostPerTonne:            100,
		SCO2CapexM:                 70,
		GeoCapexPerWellM:           10,
		AnnualOpexM:                30,
		ProjectLifeYears:           15,
	}
}

func (s *StoreSuite) addRun(label string, in model.ProjectInputs) Run {
	res, err := s.engine.Evaluate(in)
	s.Require().NoError(err)
	return s.store.Add(label, in, res)
}

func (s *StoreSuite) TestAddAndLookup() {
	s.Run("assigns IDs and timestamps", func() {
		run := s.addRun("base", s.fixedInputs())
		s.NotEmpty(run.ID)
		s.False(run.CreatedAt.IsZero())
		s.Equal(1, s.store.Len())

		found, ok := s.store.Get(run.ID)
		s.Require().True(ok)
		s.Equal("base", found.Label)
		s.Equal(14, found.Derived.TotalWells)
	})

	s.Run("unknown ID misses", func() {
		_, ok := s.store.Get("not-a-run")
		s.False(ok)
	})
}

func (s *StoreSuite) TestListOrderAndIsolation() {
	first := s.addRun("first", s.fixedInputs())
	second := s.addRun("second", s.fixedInputs())

	runs := s.store.List()
	s.Require().Len(runs, 2)
	s.Equal(first.ID, runs[0].ID)
	s.Equal(second.ID, runs[1].ID)

	// The returned slice is a copy; writes to it never reach the store.
	runs[0].Label = "mutated"
	again, ok := s.store.Get(first.ID)
	s.Require().True(ok)
	s.Equal("first", again.Label)
}

func (s *StoreSuite) TestClear() {
	s.addRun("a", s.fixedInputs())
	s.addRun("b", s.fixedInputs())

	s.Equal(2, s.store.Clear())
	s.Equal(0, s.store.Len())
	s.Empty(s.store.List())
	s.Equal(0, s.store.Clear())
}

func (s *StoreSuite) TestCSVExport() {
	s.addRun("base", s.fixedInputs())

	unprofitable := s.fixedInputs()
	unprofitable.PowerValueUSDPerMWh = 0
	unprofitable.TaxCredit45QPerTonne = 0
	unprofitable.CarbonPriceAbove45Q = 0
	s.addRun("stranded", unprofitable)

	var buf bytes.Buffer
	s.Require().NoError(WriteCSV(&buf, s.store.List()))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	s.Require().NoError(err)

	s.Equal([]string{"Parameter", "Run_1", "Run_2"}, records[0])

	rows := make(map[string][]string, len(records))
	for _, rec := range records[1:] {
		rows[rec[0]] = rec[1:]
	}

	s.Equal([]string{"base", "stranded"}, rows["Label"])
	s.Equal([]string{"fixed", "fixed"}, rows["Cost model"])
	s.Equal([]string{"0.2", "0.2"}, rows["Captured and stored (Mtpa)"])
	s.Equal([]string{"1", "1"}, rows["Injection CO2 % sequestered"])
	s.Equal([]string{"14", "14"}, rows["Total wells"])
	s.Equal([]string{"210", "210"}, rows["Total capex ($M)"])

	// Scaled-only fields stay blank on fixed runs.
	s.Equal([]string{"", ""}, rows["Capex escalation factor"])

	// The stranded run has no IRR and never pays back.
	irr := rows["IRR (%)"]
	s.Require().Len(irr, 2)
	s.NotEqual("N/A", irr[0])
	s.Equal("N/A", irr[1])
	s.Equal("N/A", rows["Payback (years)"][1])
	s.Equal("7", rows["Payback (years)"][0])
}

func (s *StoreSuite) TestXLSXExport() {
	s.addRun("base", s.fixedInputs())

	var buf bytes.Buffer
	s.Require().NoError(WriteXLSX(&buf, s.store.List()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	s.Require().NoError(err)
	defer f.Close()

	v, err := f.GetCellValue("Runs", "A1")
	s.Require().NoError(err)
	s.Equal("Parameter", v)

	v, err = f.GetCellValue("Runs", "B1")
	s.Require().NoError(err)
	s.Equal("Run_1", v)

	v, err = f.GetCellValue("Runs", "A2")
	s.Require().NoError(err)
	s.Equal("Label", v)

	v, err = f.GetCellValue("Runs", "B2")
	s.Require().NoError(err)
	s.Equal("base", v)
}
