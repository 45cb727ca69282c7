package allocation

import (
	"fmt"

	"github.com/iliyamo/truck-garage-allocation/internal/model"
)

// TruckUpdate is the partial field set of a single spot-assignment update.
// Nil pointers mean "field not provided, leave as is".  For SpotToken a
// non-nil empty string unparks the truck (token goes to NULL).
type TruckUpdate struct {
	SpotToken     *string
	PlateNumber   *string
	ChassisNumber *string
	Category      *string
	ImplementType *string
	PosX          *float64
	PosY          *float64
}

// tracked fields and their changelog names.
const (
	FieldSpotToken     = "spot_token"
	FieldPlateNumber   = "plate_number"
	FieldChassisNumber = "chassis_number"
	FieldCategory      = "category"
	FieldImplementType = "implement_type"
	FieldGarage        = "garage"
	FieldPosition      = "position"
)

// BuildChanges applies the provided fields of upd to a copy of the truck and
// returns the updated truck together with the audit entries the change
// produces.  Three record kinds can come out of one update, independently:
// one FIELD_UPDATED entry per changed tracked field, one GARAGE_TRANSFER
// entry when the spot token's garage component changed, and one
// POSITION_UPDATED entry when the fine-grained x/y position changed.
func BuildChanges(truck model.Truck, upd TruckUpdate, cause model.ChangeCause, actorID uint64) (model.Truck, []model.ChangeEntry) {
	var entries []model.ChangeEntry
	record := func(action, field, oldV, newV string) {
		entries = append(entries, model.ChangeEntry{
			EntityType: "truck",
			EntityID:   truck.ID,
			Action:     action,
			Field:      field,
			OldValue:   oldV,
			NewValue:   newV,
			Cause:      cause,
			ActorID:    actorID,
		})
	}

	applyStr := func(field string, dst *string, v *string) {
		if v == nil || *v == *dst {
			return
		}
		record(model.ActionFieldUpdated, field, *dst, *v)
		*dst = *v
	}
	applyStr(FieldPlateNumber, &truck.PlateNumber, upd.PlateNumber)
	applyStr(FieldChassisNumber, &truck.ChassisNumber, upd.ChassisNumber)
	applyStr(FieldCategory, &truck.Category, upd.Category)
	applyStr(FieldImplementType, &truck.ImplementType, upd.ImplementType)

	if upd.SpotToken != nil {
		oldTok := derefStr(truck.SpotToken)
		newTok := *upd.SpotToken
		if newTok != oldTok {
			record(model.ActionFieldUpdated, FieldSpotToken, oldTok, newTok)
			if fromG, toG := garageOf(oldTok), garageOf(newTok); fromG != "" && toG != "" && fromG != toG {
				// A move between garages is semantically more than a field
				// edit; it gets its own record carrying the structured
				// from/to garage identifiers.
				record(model.ActionGarageTransfer, FieldGarage, fromG, toG)
			}
			if newTok == "" {
				truck.SpotToken = nil
			} else {
				t := newTok
				truck.SpotToken = &t
			}
		}
	}

	posChanged := false
	if upd.PosX != nil && !floatEq(truck.PosX, upd.PosX) {
		posChanged = true
	}
	if upd.PosY != nil && !floatEq(truck.PosY, upd.PosY) {
		posChanged = true
	}
	if posChanged {
		oldPos := fmtPos(truck.PosX, truck.PosY)
		if upd.PosX != nil {
			v := *upd.PosX
			truck.PosX = &v
		}
		if upd.PosY != nil {
			v := *upd.PosY
			truck.PosY = &v
		}
		record(model.ActionPositionUpdated, FieldPosition, oldPos, fmtPos(truck.PosX, truck.PosY))
	}

	return truck, entries
}

// garageOf extracts the garage component of a token; empty for unparked or
// malformed tokens.
func garageOf(token string) string {
	if token == "" {
		return ""
	}
	ref, ok := ParseSpotToken(token)
	if !ok {
		return ""
	}
	return ref.Garage
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func floatEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func fmtPos(x, y *float64) string {
	f := func(p *float64) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprintf("%.2f", *p)
	}
	return f(x) + "," + f(y)
}
