package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/truck-garage-allocation/internal/allocation"
	"github.com/iliyamo/truck-garage-allocation/internal/database"
	"github.com/iliyamo/truck-garage-allocation/internal/model"
	"github.com/iliyamo/truck-garage-allocation/internal/queue"
	"github.com/iliyamo/truck-garage-allocation/internal/repository"
	queue_publisher "github.com/iliyamo/truck-garage-allocation/internal/service"
)

// AssignmentHandler owns the spot assignment write path: the single-truck
// update and the batch update, both executed inside one transaction spanning
// occupancy mutation and audit records.  The handler does not re-validate
// fit — availability is advisory and the caller (a human-confirmed UI) has
// already checked it.  The one invariant enforced here is that no two trucks
// ever share a spot token at a committed point in time.
type AssignmentHandler struct {
	Trucks    *repository.TruckRepo
	Changelog *repository.ChangelogRepo
	Geo       allocation.Geometry
}

// NewAssignmentHandler constructs an AssignmentHandler.
func NewAssignmentHandler(trucks *repository.TruckRepo, changelog *repository.ChangelogRepo, geo allocation.Geometry) *AssignmentHandler {
	if trucks == nil || changelog == nil {
		panic("nil repository passed to NewAssignmentHandler")
	}
	return &AssignmentHandler{Trucks: trucks, Changelog: changelog, Geo: geo}
}

// evictionEntry builds the system-cause audit record written when a prior
// occupant of a target spot is forcibly cleared.
func evictionEntry(truckID uint64, token string) model.ChangeEntry {
	return model.ChangeEntry{
		EntityType: "truck",
		EntityID:   truckID,
		Action:     model.ActionFieldUpdated,
		Field:      allocation.FieldSpotToken,
		OldValue:   token,
		NewValue:   "",
		Cause:      model.CauseSystem,
	}
}

// spotEvent derives the post-commit broker event from a spot token change.
func spotEvent(t model.Truck, prevToken, newToken string, cause model.ChangeCause, actorID uint64) queue.SpotAssignedEvent {
	fromG, toG := "", ""
	if ref, ok := allocation.ParseSpotToken(prevToken); ok {
		fromG = ref.Garage
	}
	if ref, ok := allocation.ParseSpotToken(newToken); ok {
		toG = ref.Garage
	}
	return queue.SpotAssignedEvent{
		TruckID:       t.ID,
		PlateNumber:   t.PlateNumber,
		PreviousToken: prevToken,
		SpotToken:     newToken,
		FromGarage:    fromG,
		ToGarage:      toG,
		Cause:         string(cause),
		ActorID:       actorID,
		AssignedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

type updateSpotReq struct {
	SpotToken     *string  `json:"spot_token"`     // "" unparks the truck
	PlateNumber   *string  `json:"plate_number"`
	ChassisNumber *string  `json:"chassis_number"`
	Category      *string  `json:"category"`
	ImplementType *string  `json:"implement_type"`
	PosX          *float64 `json:"pos_x"`
	PosY          *float64 `json:"pos_y"`
}

// UpdateSpot handles PUT /v1/trucks/:id/spot.  Only the provided fields are
// applied.  One audit record is written per changed tracked field; a garage
// transfer and a fine-grained position change produce their own additional
// record kinds.  A missing truck fails the whole update with 404 and nothing
// is changed.
func (h *AssignmentHandler) UpdateSpot(c echo.Context) error {
	actorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	truckID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || truckID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid truck id"})
	}
	var req updateSpotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.SpotToken != nil && *req.SpotToken != "" && !h.Geo.ValidToken(*req.SpotToken) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown spot token"})
	}

	upd := allocation.TruckUpdate{
		SpotToken:     req.SpotToken,
		PlateNumber:   req.PlateNumber,
		ChassisNumber: req.ChassisNumber,
		Category:      req.Category,
		ImplementType: req.ImplementType,
		PosX:          req.PosX,
		PosY:          req.PosY,
	}

	ctx := c.Request().Context()
	var (
		changed   int
		prevToken string
		newToken  string
		truck     model.Truck
	)
	err = database.WithTx(ctx, h.Trucks.DB(), func(tx *sql.Tx) error {
		t, err := h.Trucks.GetByIDTx(ctx, tx, truckID)
		if err != nil {
			return err
		}
		prevToken = tokenOf(t.SpotToken)

		// Guard the no-double-occupancy invariant: a prior occupant of the
		// requested spot is cleared first, with a system-cause record.
		if req.SpotToken != nil && *req.SpotToken != "" && *req.SpotToken != prevToken {
			occupants, err := h.Trucks.OccupantsOfTokensTx(ctx, tx, []string{*req.SpotToken})
			if err != nil {
				return err
			}
			for _, occ := range occupants {
				if occ.ID == t.ID {
					continue
				}
				if err := h.Trucks.ClearSpotTokenTx(ctx, tx, occ.ID); err != nil {
					return err
				}
				if err := h.Changelog.RecordTx(ctx, tx, evictionEntry(occ.ID, tokenOf(occ.SpotToken))); err != nil {
					return err
				}
			}
		}

		updated, entries := allocation.BuildChanges(t, upd, model.CauseUser, actorID)
		if len(entries) > 0 {
			if err := h.Trucks.UpdateFieldsTx(ctx, tx, updated); err != nil {
				return err
			}
			if err := h.Changelog.RecordAllTx(ctx, tx, entries); err != nil {
				return err
			}
		}
		truck = updated
		newToken = tokenOf(updated.SpotToken)
		changed = len(entries)
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrTruckNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "truck not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	if newToken != prevToken {
		// Post-commit, fire-and-forget: a broker outage never fails the
		// already-committed assignment.
		_ = queue_publisher.PublishSpotAssigned(context.Background(), spotEvent(truck, prevToken, newToken, model.CauseUser, actorID))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"truck_id": truckID,
		"changes":  changed,
	})
}

type batchAssignReq struct {
	Assignments []struct {
		TruckID   uint64  `json:"truck_id"`
		SpotToken *string `json:"spot_token"` // null unparks the truck
	} `json:"assignments"`
	Cause string `json:"cause"` // optional: USER (default) or BATCH
}

// BatchAssign handles POST /v1/spots/batch.  All pairs are applied in one
// transaction.  Before any assignment, every truck outside the batch that
// occupies one of the target spots is evicted (token nulled, system-cause
// audit record) and every batch truck changing spots gives its old token up,
// so no two trucks ever reference the same spot, even transiently.  Missing
// trucks are skipped silently; the response carries only the count of trucks
// whose spot token actually changed, so re-submitting an identical batch
// reports zero.
func (h *AssignmentHandler) BatchAssign(c echo.Context) error {
	actorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req batchAssignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.Assignments) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "assignments is required"})
	}
	cause := model.CauseUser
	if req.Cause == string(model.CauseBatch) {
		cause = model.CauseBatch
	}

	updates := make([]allocation.SpotUpdate, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		if a.TruckID == 0 {
			continue
		}
		if a.SpotToken != nil && *a.SpotToken != "" && !h.Geo.ValidToken(*a.SpotToken) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown spot token", "spot_token": *a.SpotToken})
		}
		updates = append(updates, allocation.SpotUpdate{TruckID: a.TruckID, SpotToken: a.SpotToken})
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no valid assignments provided"})
	}

	ctx := c.Request().Context()
	var (
		updated int
		events  []queue.SpotAssignedEvent
	)
	err = database.WithTx(ctx, h.Trucks.DB(), func(tx *sql.Tx) error {
		// Conflict pre-clearing comes first, unconditionally: any non-batch
		// occupant of a target spot loses it, whatever the reason it was
		// there.
		targets := allocation.TargetTokens(updates)
		occupants, err := h.Trucks.OccupantsOfTokensTx(ctx, tx, targets)
		if err != nil {
			return err
		}
		parked := make([]allocation.ParkedTruck, 0, len(occupants))
		for _, occ := range occupants {
			if occ.SpotToken != nil {
				parked = append(parked, allocation.ParkedTruck{TruckID: occ.ID, SpotToken: *occ.SpotToken})
			}
		}
		for _, ev := range allocation.PlanEvictions(parked, updates) {
			if err := h.Trucks.ClearSpotTokenTx(ctx, tx, ev.TruckID); err != nil {
				return err
			}
			if err := h.Changelog.RecordTx(ctx, tx, evictionEntry(ev.TruckID, ev.SpotToken)); err != nil {
				return err
			}
		}

		// The batch trucks are loaded before their tokens are released so the
		// audit records keep the real before values.
		trucks := make(map[uint64]model.Truck, len(updates))
		for _, u := range updates {
			if _, ok := trucks[u.TruckID]; ok {
				continue
			}
			t, err := h.Trucks.GetByIDTx(ctx, tx, u.TruckID)
			if errors.Is(err, repository.ErrTruckNotFound) {
				continue // best effort per item
			}
			if err != nil {
				return err
			}
			trucks[u.TruckID] = t
		}

		// Batch members changing spots give their old token up before any
		// assignment is written; an intra-batch swap or an unpark paired with
		// a reassignment must never leave two trucks on one token, even
		// inside the transaction.
		for _, rel := range allocation.PlanReleases(parked, updates) {
			if _, ok := trucks[rel.TruckID]; !ok {
				continue
			}
			if err := h.Trucks.ClearSpotTokenTx(ctx, tx, rel.TruckID); err != nil {
				return err
			}
		}

		for _, u := range updates {
			t, ok := trucks[u.TruckID]
			if !ok {
				continue
			}
			tok := tokenOf(u.SpotToken)
			updTruck, entries := allocation.BuildChanges(t, allocation.TruckUpdate{SpotToken: &tok}, cause, actorID)
			if len(entries) == 0 {
				continue
			}
			if err := h.Trucks.UpdateSpotTokenTx(ctx, tx, t.ID, updTruck.SpotToken); err != nil {
				return err
			}
			if err := h.Changelog.RecordAllTx(ctx, tx, entries); err != nil {
				return err
			}
			events = append(events, spotEvent(updTruck, tokenOf(t.SpotToken), tok, cause, actorID))
			trucks[u.TruckID] = updTruck
			updated++
		}
		return nil
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "batch update failed"})
	}

	for _, ev := range events {
		_ = queue_publisher.PublishSpotAssigned(context.Background(), ev)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"updated": updated,
	})
}

func tokenOf(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
