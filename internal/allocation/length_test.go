package allocation

import (
	"math"
	"testing"
)

// almostEq compares floats with a small tolerance; shared by the package
// tests because section sums accumulate binary rounding.
func almostEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTruckLengthNoSections(t *testing.T) {
	p := DefaultParams()
	if got := TruckLength(p, nil); !almostEq(got, p.MinTruckLength) {
		t.Fatalf("length without sections = %v, want %v", got, p.MinTruckLength)
	}
	if got := TruckLength(p, []float64{}); !almostEq(got, p.MinTruckLength) {
		t.Fatalf("length with empty sections = %v, want %v", got, p.MinTruckLength)
	}
}

func TestTruckLengthShortBodyGetsCabin(t *testing.T) {
	p := DefaultParams()
	// 1.5 + 2.0 = 3.5, below the 6.0 threshold, so the 2.0 cabin is added.
	if got := TruckLength(p, []float64{1.5, 2.0}); !almostEq(got, 5.5) {
		t.Fatalf("short body length = %v, want 5.5", got)
	}
	if got := TruckLength(p, []float64{2.9, 3.0}); !almostEq(got, 7.9) {
		t.Fatalf("short body length = %v, want 7.9", got)
	}
}

func TestTruckLengthLongBodyUnmodified(t *testing.T) {
	p := DefaultParams()
	if got := TruckLength(p, []float64{3.0, 3.5}); !almostEq(got, 6.5) {
		t.Fatalf("long body length = %v, want 6.5", got)
	}
}

func TestTruckLengthThresholdBoundary(t *testing.T) {
	p := DefaultParams()
	// A sum exactly at the threshold does not get the cabin allowance.
	if got := TruckLength(p, []float64{6.0}); !almostEq(got, 6.0) {
		t.Fatalf("length at threshold = %v, want 6.0", got)
	}
	if got := TruckLength(p, []float64{5.99}); !almostEq(got, 7.99) {
		t.Fatalf("length just under threshold = %v, want 7.99", got)
	}
}
