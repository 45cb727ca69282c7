package allocation // package allocation implements the garage spot-allocation engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SpotsPerLane is the fixed structural capacity of every lane.  Spots 1 and 2
// are the normal spots used by the primary assignment workflow; spot 3 is the
// overflow spot and is only usable when both normal spots are taken.
const (
	SpotsPerLane = 3
	OverflowSpot = 3
)

// Params bundles the allocation constants that drive length derivation and
// lane fitting.  All values are meters.  The struct is built once at startup
// and treated as read-only afterwards so tests can run alternate geometries.
type Params struct {
	MinTruckLength float64 // floor returned for trucks without layout sections
	CabinThreshold float64 // section sums below this get the cabin length added
	CabinLength    float64 // tractor cabin allowance for short bodies
	MinSpacing     float64 // one gap unit between trucks when the lane is full
	EndMargin      float64 // fixed margin reserved at each end of a lane
}

// DefaultParams returns the constants used by the reference deployment.
func DefaultParams() Params {
	return Params{
		MinTruckLength: 4.5,
		CabinThreshold: 6.0,
		CabinLength:    2.0,
		MinSpacing:     1.0,
		EndMargin:      0.2,
	}
}

// LaneConfig describes a single lane: its code (unique within the garage) and
// its fixed physical length in meters.
type LaneConfig struct {
	Code   string
	Length float64
}

// GarageConfig describes one garage and its fixed set of lanes.  Garages and
// lanes are configuration, never created or destroyed at runtime.
type GarageConfig struct {
	Code  string
	Lanes []LaneConfig
}

// Geometry is the immutable topology the engine operates on: the garage
// enumeration plus the allocation constants.  Build it once (DefaultGeometry
// or by hand in tests) and pass it into the engine; it must not be mutated
// afterwards.
type Geometry struct {
	Params  Params
	Garages []GarageConfig
}

// DefaultGeometry returns the reference deployment topology: three garages
// (G1..G3) of three lanes each (F1..F3).  Lane lengths are per garage.
func DefaultGeometry(p Params) Geometry {
	lanes := func(length float64) []LaneConfig {
		return []LaneConfig{
			{Code: "F1", Length: length},
			{Code: "F2", Length: length},
			{Code: "F3", Length: length},
		}
	}
	return Geometry{
		Params: p,
		Garages: []GarageConfig{
			{Code: "G1", Lanes: lanes(15.0)},
			{Code: "G2", Lanes: lanes(18.0)},
			{Code: "G3", Lanes: lanes(15.0)},
		},
	}
}

// SpotRef is a decoded spot token: the (garage, lane, number) triple that
// addresses a single physical parking position.
type SpotRef struct {
	Garage string
	Lane   string
	Number int
}

// Token renders the reference back into its canonical string form, e.g.
// "G1-F1-1".  The token is stored on the truck record; the truck is the
// owning side of the spot relationship.
func (s SpotRef) Token() string {
	return fmt.Sprintf("%s-%s-%d", s.Garage, s.Lane, s.Number)
}

// ParseSpotToken splits an opaque spot token into its components.  It returns
// false when the token is malformed (wrong arity, non-numeric spot, spot
// number outside 1..SpotsPerLane).  It does not check the token against any
// geometry; use Geometry.ValidToken for that.
func ParseSpotToken(token string) (SpotRef, bool) {
	parts := strings.Split(strings.TrimSpace(token), "-")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return SpotRef{}, false
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 || n > SpotsPerLane {
		return SpotRef{}, false
	}
	return SpotRef{Garage: parts[0], Lane: parts[1], Number: n}, true
}

// GarageByCode looks up a garage configuration.  The boolean is false for
// codes outside the configured enumeration.
func (g Geometry) GarageByCode(code string) (GarageConfig, bool) {
	for _, gar := range g.Garages {
		if gar.Code == code {
			return gar, true
		}
	}
	return GarageConfig{}, false
}

// ValidToken reports whether a token resolves to one of the fixed,
// pre-configured spots of some garage.  Stored spot tokens must always pass
// this check; handlers reject anything else before it reaches the store.
func (g Geometry) ValidToken(token string) bool {
	ref, ok := ParseSpotToken(token)
	if !ok {
		return false
	}
	gar, ok := g.GarageByCode(ref.Garage)
	if !ok {
		return false
	}
	for _, lane := range gar.Lanes {
		if lane.Code == ref.Lane {
			return true
		}
	}
	return false
}

// TokensForGarage enumerates every valid spot token of a garage in a stable
// order (lane order, then spot number).  The repository uses this set to load
// the trucks currently occupying the garage.
func (g Geometry) TokensForGarage(code string) []string {
	gar, ok := g.GarageByCode(code)
	if !ok {
		return nil
	}
	tokens := make([]string, 0, len(gar.Lanes)*SpotsPerLane)
	for _, lane := range gar.Lanes {
		for n := 1; n <= SpotsPerLane; n++ {
			tokens = append(tokens, SpotRef{Garage: gar.Code, Lane: lane.Code, Number: n}.Token())
		}
	}
	return tokens
}

// GarageCodes returns the configured garage codes in declaration order.
func (g Geometry) GarageCodes() []string {
	codes := make([]string, 0, len(g.Garages))
	for _, gar := range g.Garages {
		codes = append(codes, gar.Code)
	}
	return codes
}

// sortedSpots returns the keys of a spot->occupant partition in ascending
// order; shared by the lane calculator for stable output.
func sortedSpots(m map[int][]Occupant) []int {
	spots := make([]int, 0, len(m))
	for n := range m {
		spots = append(spots, n)
	}
	sort.Ints(spots)
	return spots
}
