package sweep

import (
	"context"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"dualwell-tea/internal/engine"
	"dualwell-tea/internal/model"
)

// maxSteps bounds the work a single sweep request can demand.
const maxSteps = 1000

// Request is a one-axis sensitivity sweep: the named parameter is varied
// over [From, To] in Steps evenly spaced points against the base inputs.
type Request struct {
	Base  model.ProjectInputs
	Param string
	From  float64
	To    float64
	Steps int
}

// Point is one evaluated sweep position. Err carries the evaluation
// failure for this value, if any; a failed point never fails the sweep.
type Point struct {
	Value  float64
	Result *engine.Result
	Err    string
}

type Result struct {
	Param  string
	Unit   string
	Points []Point
}

type Runner struct {
	engine *engine.Engine
}

func NewRunner() *Runner {
	return &Runner{engine: engine.New()}
}

// Run evaluates every sweep point in parallel and reassembles the results
// in axis order. Each point is an independent full evaluation; the engine
// is pure, so the fan-out shares nothing but read-only inputs.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	axis, ok := axisFor(req.Param)
	if !ok {
		return nil, fmt.Errorf("%w: unknown sweep parameter %q (known: %s)",
			model.ErrInvalidInput, req.Param, strings.Join(AxisNames(), ", "))
	}
	if req.Steps < 1 {
		return nil, fmt.Errorf("%w: sweep steps must be >= 1", model.ErrInvalidInput)
	}
	if req.Steps > maxSteps {
		return nil, fmt.Errorf("%w: sweep steps must be <= %d", model.ErrInvalidInput, maxSteps)
	}
	if !isFinite(req.From) || !isFinite(req.To) {
		return nil, fmt.Errorf("%w: sweep range must be finite", model.ErrInvalidInput)
	}

	values := req.values()
	points := make([]Point, len(values))

	g, ctx := errgroup.WithContext(ctx)
	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			in := req.Base
			axis.Apply(&in, v)
			res, err := r.engine.Evaluate(in)
			if err != nil {
				points[i] = Point{Value: v, Err: err.Error()}
				return nil
			}
			points[i] = Point{Value: v, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{Param: axis.Name, Unit: axis.Unit, Points: points}, nil
}

func (r Request) values() []float64 {
	vals := make([]float64, r.Steps)
	vals[0] = r.From
	if r.Steps == 1 {
		return vals
	}
	step := (r.To - r.From) / float64(r.Steps-1)
	for i := 1; i < r.Steps-1; i++ {
		vals[i] = r.From + float64(i)*step
	}
	// Pin the endpoint so float drift never moves it.
	vals[r.Steps-1] = r.To
	return vals
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
