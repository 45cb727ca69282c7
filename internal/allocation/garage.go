package allocation

// GarageAvailability aggregates the per-lane answers of one garage for the
// spot-selection UI: the lane list plus totals and an overall fit flag.
type GarageAvailability struct {
	GarageCode    string             `json:"garage"`
	TotalSpots    int                `json:"total_spots"`
	OccupiedSpots int                `json:"occupied_spots"`
	CanFit        bool               `json:"can_fit"`
	Lanes         []LaneAvailability `json:"lanes"`
}

// ComputeGarage fans the lane calculator out across all lanes of a garage.
// occupantsByLane maps lane code to the trucks currently parked there; lanes
// without an entry are treated as empty.  The computation is pure and
// read-only, so callers may run it for several garages concurrently.
func ComputeGarage(p Params, garage GarageConfig, occupantsByLane map[string][]Occupant, candidateLength float64, excludeTruckID uint64) GarageAvailability {
	out := GarageAvailability{
		GarageCode: garage.Code,
		TotalSpots: len(garage.Lanes) * SpotsPerLane,
		Lanes:      make([]LaneAvailability, 0, len(garage.Lanes)),
	}
	for _, lane := range garage.Lanes {
		la := ComputeLane(p, lane, occupantsByLane[lane.Code], candidateLength, excludeTruckID)
		out.OccupiedSpots += la.OccupantCount
		if la.CanFit {
			out.CanFit = true
		}
		out.Lanes = append(out.Lanes, la)
	}
	return out
}
