package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/truck-garage-allocation/internal/allocation"
	"github.com/iliyamo/truck-garage-allocation/internal/repository"
)

// TruckHandler serves read-only truck views for the spot-selection UI.  Truck
// lifecycle (create/update/delete) belongs to surrounding CRUD flows outside
// this service.
type TruckHandler struct {
	Trucks *repository.TruckRepo
	Geo    allocation.Geometry
}

// NewTruckHandler constructs a TruckHandler.
func NewTruckHandler(trucks *repository.TruckRepo, geo allocation.Geometry) *TruckHandler {
	if trucks == nil {
		panic("nil repository passed to NewTruckHandler")
	}
	return &TruckHandler{Trucks: trucks, Geo: geo}
}

// GetTruck handles GET /v1/trucks/:id.  The response includes the derived
// physical length, which is computed on demand and never stored.
func (h *TruckHandler) GetTruck(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid truck id"})
	}
	t, err := h.Trucks.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTruckNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "truck not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load truck"})
	}
	length := allocation.TruckLength(h.Geo.Params, t.Layout.SectionWidths())
	return c.JSON(http.StatusOK, echo.Map{
		"id":             t.ID,
		"plate_number":   t.PlateNumber,
		"chassis_number": t.ChassisNumber,
		"category":       t.Category,
		"implement_type": t.ImplementType,
		"job_name":       t.JobName,
		"spot_token":     t.SpotToken,
		"pos_x":          t.PosX,
		"pos_y":          t.PosY,
		"length_m":       length,
	})
}
