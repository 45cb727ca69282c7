package handler

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/truck-garage-allocation/internal/allocation"
	"github.com/iliyamo/truck-garage-allocation/internal/repository"
)

// AvailabilityHandler serves the advisory fitting views the spot-selection UI
// works from.  Results are snapshot reads: no locks are held between the read
// and a later assignment, which is acceptable because trucks take minutes to
// physically move and a human confirms placement.
type AvailabilityHandler struct {
	Trucks *repository.TruckRepo
	Geo    allocation.Geometry
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(trucks *repository.TruckRepo, geo allocation.Geometry) *AvailabilityHandler {
	if trucks == nil {
		panic("nil repository passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Trucks: trucks, Geo: geo}
}

// candidateLength resolves the candidate truck length for an availability
// query: either an explicit ?length= value or the derived length of the
// truck referenced by ?truck_id=.  A truck without layout sections yields the
// configured minimum rather than an error.
func (h *AvailabilityHandler) candidateLength(c echo.Context) (float64, bool) {
	if s := c.QueryParam("length"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 {
			return 0, false
		}
		return v, true
	}
	if s := c.QueryParam("truck_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil || id == 0 {
			return 0, false
		}
		t, err := h.Trucks.GetByID(c.Request().Context(), id)
		if err != nil {
			return 0, false
		}
		return allocation.TruckLength(h.Geo.Params, t.Layout.SectionWidths()), true
	}
	return 0, false
}

// excludeTruck reads the optional ?exclude_truck= parameter used when
// re-evaluating a truck that is being moved.
func excludeTruck(c echo.Context) uint64 {
	if s := c.QueryParam("exclude_truck"); s != "" {
		if id, err := strconv.ParseUint(s, 10, 64); err == nil {
			return id
		}
	}
	return 0
}

// garageAvailability loads the occupancy of one garage and runs the
// aggregator over it.  Load failures degrade to an empty availability with
// CanFit=false — this endpoint always produces a usable snapshot.
func (h *AvailabilityHandler) garageAvailability(ctx context.Context, code string, candidate float64, exclude uint64) allocation.GarageAvailability {
	garage, ok := h.Geo.GarageByCode(code)
	if !ok {
		return allocation.GarageAvailability{GarageCode: code}
	}
	trucks, err := h.Trucks.ListBySpotTokens(ctx, h.Geo.TokensForGarage(code))
	if err != nil {
		log.Printf("availability: load occupancy for %s failed: %v", code, err)
		return allocation.GarageAvailability{GarageCode: code, TotalSpots: len(garage.Lanes) * allocation.SpotsPerLane}
	}
	occupantsByLane := make(map[string][]allocation.Occupant)
	for _, t := range trucks {
		if t.SpotToken == nil {
			continue
		}
		ref, ok := allocation.ParseSpotToken(*t.SpotToken)
		if !ok || ref.Garage != code {
			continue
		}
		occupantsByLane[ref.Lane] = append(occupantsByLane[ref.Lane], allocation.Occupant{
			TruckID: t.ID,
			Spot:    ref.Number,
			JobName: t.JobName,
			Length:  allocation.TruckLength(h.Geo.Params, t.Layout.SectionWidths()),
		})
	}
	return allocation.ComputeGarage(h.Geo.Params, garage, occupantsByLane, candidate, exclude)
}

// GetGarage handles GET /v1/garages/:code/availability.  Unknown garage codes
// degrade to an empty availability rather than an error.
func (h *AvailabilityHandler) GetGarage(c echo.Context) error {
	candidate, ok := h.candidateLength(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "length or truck_id required"})
	}
	ga := h.garageAvailability(c.Request().Context(), c.Param("code"), candidate, excludeTruck(c))
	return c.JSON(http.StatusOK, ga)
}

// GetAllGarages handles GET /v1/garages/availability.  Each garage is
// evaluated independently and concurrently; the computation per garage is
// read-only with no cross-garage dependency.
func (h *AvailabilityHandler) GetAllGarages(c echo.Context) error {
	candidate, ok := h.candidateLength(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "length or truck_id required"})
	}
	exclude := excludeTruck(c)
	ctx := c.Request().Context()

	codes := h.Geo.GarageCodes()
	results := make([]allocation.GarageAvailability, len(codes))
	var wg sync.WaitGroup
	for i, code := range codes {
		wg.Add(1)
		go func(i int, code string) {
			defer wg.Done()
			results[i] = h.garageAvailability(ctx, code, candidate, exclude)
		}(i, code)
	}
	wg.Wait()

	anyFit := false
	for _, ga := range results {
		if ga.CanFit {
			anyFit = true
			break
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"can_fit": anyFit,
		"garages": results,
	})
}
