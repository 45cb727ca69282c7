package allocation

// Occupant is one truck currently parked in a lane, as loaded from the entity
// store: its spot number, computed physical length and the job name shown in
// spot-selection UIs.
type Occupant struct {
	TruckID uint64
	Spot    int
	JobName string
	Length  float64
}

// OccupantView is the display record the lane calculator reports per
// occupant.  Lengths are rounded to two decimals.
type OccupantView struct {
	Spot    int     `json:"spot"`
	TruckID uint64  `json:"truck_id"`
	JobName string  `json:"job_name"`
	Length  float64 `json:"length_m"`
}

// LaneAvailability is the advisory fitting answer for one lane.  It is a
// snapshot: by the time an assignment is attempted the lane may have changed,
// which is acceptable because placement is confirmed by a human operator.
type LaneAvailability struct {
	LaneCode        string         `json:"lane"`
	LaneLength      float64        `json:"lane_length_m"`
	AvailableLength float64        `json:"available_m"`
	OccupantCount   int            `json:"occupant_count"`
	CanFit          bool           `json:"can_fit"`
	NextSpot        int            `json:"next_spot"` // 0 when the candidate does not fit
	OccupiedSpots   []int          `json:"occupied_spots"`
	Occupants       []OccupantView `json:"occupants"`
}

// requiredGaps returns the mandatory inter-truck spacing for a given occupant
// count.  The rule is discrete and non-linear: one or two trucks park with no
// mandatory gap, but the third (middle) spot needs clearance on both sides,
// so a full lane reserves two gap units.
func requiredGaps(p Params, occupants int) float64 {
	if occupants >= SpotsPerLane {
		return 2 * p.MinSpacing
	}
	return 0
}

// ComputeLane evaluates whether a candidate truck of the given length fits in
// the lane, and where.  Trucks listed in occupants with ID equal to
// excludeTruckID are ignored, so a truck being moved can be re-evaluated
// against the lane it currently occupies.  The function never fails; lanes it
// cannot fully evaluate degrade to CanFit=false with whatever occupant detail
// is known.
func ComputeLane(p Params, lane LaneConfig, occupants []Occupant, candidateLength float64, excludeTruckID uint64) LaneAvailability {
	bySpot := make(map[int][]Occupant)
	occupiedSum := 0.0
	count := 0
	for _, occ := range occupants {
		if excludeTruckID != 0 && occ.TruckID == excludeTruckID {
			continue
		}
		if occ.Spot < 1 || occ.Spot > SpotsPerLane {
			continue
		}
		bySpot[occ.Spot] = append(bySpot[occ.Spot], occ)
		occupiedSum += occ.Length
		count++
	}

	margins := 2 * p.EndMargin
	occupiedLength := occupiedSum + margins + requiredGaps(p, count)
	available := lane.Length - occupiedLength
	if available < 0 {
		available = 0
	}

	// Hypothetical total with the candidate added: occupant count + 1, gaps
	// recomputed for the new count.  This is the real fit decision; the raw
	// available figure can look sufficient while the extra gap units for a
	// third occupant make the candidate not fit.
	hypothetical := occupiedSum + candidateLength + margins + requiredGaps(p, count+1)
	fits := hypothetical <= lane.Length

	normalUsed := 0
	for _, n := range []int{1, 2} {
		if len(bySpot[n]) > 0 {
			normalUsed++
		}
	}
	canFitNormal := normalUsed < 2 && fits
	// Overflow is a last-resort single slot: never used while a normal spot
	// is free, never double-booked.
	canFitOverflow := normalUsed == 2 && len(bySpot[OverflowSpot]) == 0 && fits

	next := 0
	switch {
	case canFitNormal:
		for _, n := range []int{1, 2} {
			if len(bySpot[n]) == 0 {
				next = n
				break
			}
		}
	case canFitOverflow:
		next = OverflowSpot
	}

	spots := sortedSpots(bySpot)
	views := make([]OccupantView, 0, count)
	for _, n := range spots {
		for _, occ := range bySpot[n] {
			views = append(views, OccupantView{
				Spot:    n,
				TruckID: occ.TruckID,
				JobName: occ.JobName,
				Length:  round2(occ.Length),
			})
		}
	}

	return LaneAvailability{
		LaneCode:        lane.Code,
		LaneLength:      round2(lane.Length),
		AvailableLength: round2(available),
		OccupantCount:   count,
		CanFit:          canFitNormal || canFitOverflow,
		NextSpot:        next,
		OccupiedSpots:   spots,
		Occupants:       views,
	}
}
