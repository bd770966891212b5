package engine

import "math"

const (
	irrScanLow  = -0.99
	irrScanHigh = 15.0
	irrScanStep = 0.01
	irrMaxIter  = 200
	irrTol      = 1e-9
)

// IRR finds the discount rate at which the NPV of flows is zero. It scans
// a bounded rate range for a sign change and bisects the first bracket
// found, with a fixed iteration cap so it always terminates. Returns nil
// when no real root exists in range or the solve does not converge; nil
// is a valid "undefined" result, not an error.
func IRR(flows []float64) *float64 {
	if len(flows) == 0 {
		return nil
	}

	steps := int((irrScanHigh - irrScanLow) / irrScanStep)
	lo := irrScanLow
	fLo := npvAtRate(lo, flows)
	if fLo == 0 {
		return &lo
	}

	hi := lo
	fHi := fLo
	found := false
	for i := 1; i <= steps; i++ {
		hi = irrScanLow + float64(i)*irrScanStep
		fHi = npvAtRate(hi, flows)
		if fHi == 0 {
			return &hi
		}
		if (fLo < 0) != (fHi < 0) {
			found = true
			break
		}
		lo, fLo = hi, fHi
	}
	if !found {
		return nil
	}

	for i := 0; i < irrMaxIter; i++ {
		mid := (lo + hi) / 2
		fMid := npvAtRate(mid, flows)
		if math.Abs(fMid) < irrTol || (hi-lo)/2 < 1e-12 {
			return &mid
		}
		if (fLo < 0) == (fMid < 0) {
			lo, fLo = mid, fMid
		} else {
			hi = mid
		}
	}

	mid := (lo + hi) / 2
	return &mid
}

func npvAtRate(rate float64, flows []float64) float64 {
	npv := 0.0
	for y, f := range flows {
		npv += f / math.Pow(1.0+rate, float64(y))
	}
	return npv
}
