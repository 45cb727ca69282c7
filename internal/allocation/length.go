package allocation

import "math"

// TruckLength derives the physical parking length of a truck from its
// layout-section widths using the two-tier cabin rule:
//
//   - no sections at all -> the configured minimum truck length (never zero),
//   - section sum below the cabin threshold -> sum plus the cabin length,
//     because short trailer configurations under-report the true footprint
//     when the tractor cabin is not accounted for,
//   - sum at or above the threshold -> the raw sum, unmodified (long bodies
//     already cover the cabin; adding it again would double-count).
//
// Widths are meters; the result is meters.
func TruckLength(p Params, sectionWidths []float64) float64 {
	if len(sectionWidths) == 0 {
		return p.MinTruckLength
	}
	sum := 0.0
	for _, w := range sectionWidths {
		sum += w
	}
	if sum < p.CabinThreshold {
		return sum + p.CabinLength
	}
	return sum
}

// round2 rounds to two decimal places.  Reported lengths and available space
// are rounded for display stability, not physical precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
