package sweep

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dualwell-tea/internal/model"
)

func sweepBase() model.ProjectInputs {
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

func TestRunSweepOrderedPoints(t *testing.T) {
	res, err := NewRunner().Run(context.Background(), Request{
		Base:  sweepBase(),
		Param: "cost_of_capital",
		From:  0.02,
		To:    0.20,
		Steps: 10,
	})
	require.NoError(t, err)
	require.Len(t, res.Points, 10)
	assert.Equal(t, "cost_of_capital", res.Param)

	assert.Equal(t, 0.02, res.Points[0].Value)
	assert.Equal(t, 0.20, res.Points[9].Value)
	for i := 1; i < len(res.Points); i++ {
		assert.Greater(t, res.Points[i].Value, res.Points[i-1].Value)
	}

	// NPV shrinks as the discount rate climbs.
	for i := 1; i < len(res.Points); i++ {
		require.NotNil(t, res.Points[i].Result)
		assert.Less(t, res.Points[i].Result.Metrics.NPVM, res.Points[i-1].Result.Metrics.NPVM)
	}
}

func TestRunSweepCarriesPerPointErrors(t *testing.T) {
	// Sweeping percent_sequestered through 0 makes that single point
	// invalid without failing the rest.
	res, err := NewRunner().Run(context.Background(), Request{
		Base:  sweepBase(),
		Param: "percent_sequestered",
		From:  0.0,
		To:    0.02,
		Steps: 3,
	})
	require.NoError(t, err)
	require.Len(t, res.Points, 3)

	assert.Nil(t, res.Points[0].Result)
	assert.Contains(t, res.Points[0].Err, "PercentSequestered")
	require.NotNil(t, res.Points[1].Result)
	assert.Empty(t, res.Points[1].Err)
	require.NotNil(t, res.Points[2].Result)
}

func TestRunSweepValidation(t *testing.T) {
	t.Run("unknown parameter", func(t *testing.T) {
		_, err := NewRunner().Run(context.Background(), Request{
			Base: sweepBase(), Param: "warp_factor", From: 1, To: 9, Steps: 3,
		})
		require.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("zero steps", func(t *testing.T) {
		_, err := NewRunner().Run(context.Background(), Request{
			Base: sweepBase(), Param: "cost_of_capital", From: 0.02, To: 0.2, Steps: 0,
		})
		require.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("too many steps", func(t *testing.T) {
		_, err := NewRunner().Run(context.Background(), Request{
			Base: sweepBase(), Param: "cost_of_capital", From: 0.02, To: 0.2, Steps: maxSteps + 1,
		})
		require.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("single step sweeps only the from value", func(t *testing.T) {
		res, err := NewRunner().Run(context.Background(), Request{
			Base: sweepBase(), Param: "annual_opex_m", From: 25, To: 99, Steps: 1,
		})
		require.NoError(t, err)
		require.Len(t, res.Points, 1)
		assert.Equal(t, 25.0, res.Points[0].Value)
	})
}

func TestRunSweepCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner().Run(ctx, Request{
		Base: sweepBase(), Param: "cost_of_capital", From: 0.02, To: 0.2, Steps: 50,
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestIntegerAxisRoundsToWholeYears(t *testing.T) {
	res, err := NewRunner().Run(context.Background(), Request{
		Base: sweepBase(), Param: "project_life_years", From: 10, To: 20, Steps: 3,
	})
	require.NoError(t, err)
	require.Len(t, res.Points, 3)
	// 10, 15, 20 years -> 13, 18, 23 timeline rows.
	require.NotNil(t, res.Points[1].Result)
	assert.Len(t, res.Points[1].Result.Timeline, 18)
}

func TestAxisNamesSortedAndComplete(t *testing.T) {
	names := AxisNames()
	require.NotEmpty(t, names)
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "cost_of_capital")
	assert.Contains(t, names, "capex_escalation_factor")

	_, ok := axisFor("cost_of_capital")
	assert.True(t, ok)
	_, ok = axisFor("nope")
	assert.False(t, ok)
}
