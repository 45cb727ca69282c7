package allocation

import "testing"

func testLane(length float64) LaneConfig {
	return LaneConfig{Code: "F1", Length: length}
}

func TestComputeLaneEmpty(t *testing.T) {
	p := DefaultParams()
	la := ComputeLane(p, testLane(12.0), nil, 5.0, 0)

	if la.OccupantCount != 0 {
		t.Fatalf("occupant count = %d, want 0", la.OccupantCount)
	}
	// Only the two end margins count against an empty lane.
	if !almostEq(la.AvailableLength, 11.6) {
		t.Fatalf("available = %v, want 11.6", la.AvailableLength)
	}
	if !la.CanFit {
		t.Fatalf("candidate should fit in an empty lane")
	}
	if la.NextSpot != 1 {
		t.Fatalf("next spot = %d, want 1", la.NextSpot)
	}
}

func TestComputeLaneSecondSpot(t *testing.T) {
	p := DefaultParams()
	occ := []Occupant{{TruckID: 1, Spot: 1, Length: 4.0}}
	la := ComputeLane(p, testLane(12.0), occ, 4.0, 0)

	// 4.0 + 4.0 + 0.4 margins, no gaps for two trucks.
	if !la.CanFit {
		t.Fatalf("second truck should fit")
	}
	if la.NextSpot != 2 {
		t.Fatalf("next spot = %d, want 2", la.NextSpot)
	}
}

func TestComputeLaneGapRuleBlocksThird(t *testing.T) {
	p := DefaultParams()
	occ := []Occupant{
		{TruckID: 1, Spot: 1, Length: 4.0},
		{TruckID: 2, Spot: 2, Length: 4.5},
	}
	la := ComputeLane(p, testLane(12.0), occ, 3.0, 0)

	// Raw available space is 12.0 - (8.5 + 0.4) = 3.1, which looks like the
	// 3.0 candidate fits.  Adding it makes the lane hold three trucks and
	// triggers two mandatory gap units: 8.5 + 3.0 + 0.4 + 2.0 = 13.9 > 12.0.
	if !almostEq(la.AvailableLength, 3.1) {
		t.Fatalf("available = %v, want 3.1", la.AvailableLength)
	}
	if la.CanFit {
		t.Fatalf("candidate must not fit once third-truck gaps are counted")
	}
	if la.NextSpot != 0 {
		t.Fatalf("next spot = %d, want 0 when nothing fits", la.NextSpot)
	}
}

func TestComputeLaneOverflowSpot(t *testing.T) {
	p := DefaultParams()
	occ := []Occupant{
		{TruckID: 1, Spot: 1, Length: 3.0},
		{TruckID: 2, Spot: 2, Length: 3.0},
	}
	la := ComputeLane(p, testLane(12.0), occ, 2.0, 0)

	// 3.0 + 3.0 + 2.0 + 0.4 + 2.0 gaps = 10.4, fits; both normal spots are
	// taken so the overflow spot opens up.
	if !la.CanFit {
		t.Fatalf("overflow candidate should fit")
	}
	if la.NextSpot != OverflowSpot {
		t.Fatalf("next spot = %d, want %d", la.NextSpot, OverflowSpot)
	}
}

func TestComputeLaneOverflowNeedsBothNormalSpots(t *testing.T) {
	p := DefaultParams()
	// Spot 2 free: the overflow spot must never be offered, even though an
	// occupant is already sitting in it.
	occ := []Occupant{
		{TruckID: 1, Spot: 1, Length: 3.0},
		{TruckID: 2, Spot: 3, Length: 3.0},
	}
	la := ComputeLane(p, testLane(15.0), occ, 2.0, 0)
	if !la.CanFit {
		t.Fatalf("candidate should fit in the free normal spot")
	}
	if la.NextSpot != 2 {
		t.Fatalf("next spot = %d, want 2", la.NextSpot)
	}
}

func TestComputeLaneFullLane(t *testing.T) {
	p := DefaultParams()
	occ := []Occupant{
		{TruckID: 1, Spot: 1, Length: 2.0},
		{TruckID: 2, Spot: 2, Length: 2.0},
		{TruckID: 3, Spot: 3, Length: 2.0},
	}
	la := ComputeLane(p, testLane(20.0), occ, 1.0, 0)
	if la.CanFit || la.NextSpot != 0 {
		t.Fatalf("full lane reported CanFit=%v next=%d", la.CanFit, la.NextSpot)
	}
	if la.OccupantCount != 3 {
		t.Fatalf("occupant count = %d, want 3", la.OccupantCount)
	}
	if len(la.OccupiedSpots) != 3 || la.OccupiedSpots[0] != 1 || la.OccupiedSpots[2] != 3 {
		t.Fatalf("occupied spots = %v, want [1 2 3]", la.OccupiedSpots)
	}
}

func TestComputeLaneExcludesMovingTruck(t *testing.T) {
	p := DefaultParams()
	occ := []Occupant{{TruckID: 7, Spot: 1, Length: 4.0}}
	la := ComputeLane(p, testLane(12.0), occ, 4.0, 7)

	if la.OccupantCount != 0 {
		t.Fatalf("excluded truck still counted: %d occupants", la.OccupantCount)
	}
	if !almostEq(la.AvailableLength, 11.6) {
		t.Fatalf("available = %v, want 11.6 with occupant excluded", la.AvailableLength)
	}
	if la.NextSpot != 1 {
		t.Fatalf("next spot = %d, want 1", la.NextSpot)
	}
}

func TestComputeLaneAvailableNeverNegative(t *testing.T) {
	p := DefaultParams()
	occ := []Occupant{
		{TruckID: 1, Spot: 1, Length: 4.0},
		{TruckID: 2, Spot: 2, Length: 4.5},
	}
	la := ComputeLane(p, testLane(5.0), occ, 1.0, 0)
	if la.AvailableLength != 0 {
		t.Fatalf("available = %v, want 0 for an overcrowded lane", la.AvailableLength)
	}
	if la.CanFit {
		t.Fatalf("nothing fits in an overcrowded lane")
	}
}

func TestComputeLaneRoundsReportedLengths(t *testing.T) {
	p := DefaultParams()
	occ := []Occupant{{TruckID: 1, Spot: 2, Length: 4.123456, JobName: "haul"}}
	la := ComputeLane(p, testLane(12.0), occ, 1.0, 0)

	if len(la.Occupants) != 1 {
		t.Fatalf("occupant views = %d, want 1", len(la.Occupants))
	}
	v := la.Occupants[0]
	if v.Length != 4.12 {
		t.Fatalf("occupant view length = %v, want 4.12", v.Length)
	}
	if v.Spot != 2 || v.TruckID != 1 || v.JobName != "haul" {
		t.Fatalf("unexpected occupant view %+v", v)
	}
}

func TestComputeLaneIgnoresOutOfRangeSpots(t *testing.T) {
	p := DefaultParams()
	occ := []Occupant{
		{TruckID: 1, Spot: 0, Length: 4.0},
		{TruckID: 2, Spot: 4, Length: 4.0},
	}
	la := ComputeLane(p, testLane(12.0), occ, 4.0, 0)
	if la.OccupantCount != 0 {
		t.Fatalf("out-of-range spots counted: %d occupants", la.OccupantCount)
	}
}
