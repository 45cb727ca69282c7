package allocation

import (
	"testing"

	"github.com/iliyamo/truck-garage-allocation/internal/model"
)

func floatp(f float64) *float64 { return &f }

func baseTruck() model.Truck {
	tok := "G1-F1-1"
	return model.Truck{
		ID:          42,
		PlateNumber: "AB-123",
		Category:    "TRACTOR",
		SpotToken:   &tok,
	}
}

func actionsOf(entries []model.ChangeEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Action)
	}
	return out
}

func TestBuildChangesFieldUpdate(t *testing.T) {
	truck := baseTruck()
	updated, entries := BuildChanges(truck, TruckUpdate{PlateNumber: strp("CD-456")}, model.CauseUser, 7)

	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Action != model.ActionFieldUpdated || e.Field != FieldPlateNumber {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.OldValue != "AB-123" || e.NewValue != "CD-456" {
		t.Fatalf("old/new = %q/%q", e.OldValue, e.NewValue)
	}
	if e.Cause != model.CauseUser || e.ActorID != 7 || e.EntityID != 42 {
		t.Fatalf("attribution wrong: %+v", e)
	}
	if updated.PlateNumber != "CD-456" {
		t.Fatalf("plate not applied: %q", updated.PlateNumber)
	}
}

func TestBuildChangesNoOp(t *testing.T) {
	truck := baseTruck()
	// Providing a field with its current value changes nothing.
	_, entries := BuildChanges(truck, TruckUpdate{
		PlateNumber: strp("AB-123"),
		SpotToken:   strp("G1-F1-1"),
	}, model.CauseUser, 7)
	if len(entries) != 0 {
		t.Fatalf("no-op update produced entries: %+v", entries)
	}
}

func TestBuildChangesGarageTransfer(t *testing.T) {
	truck := baseTruck()
	updated, entries := BuildChanges(truck, TruckUpdate{SpotToken: strp("G2-F3-2")}, model.CauseUser, 7)

	got := actionsOf(entries)
	if len(got) != 2 || got[0] != model.ActionFieldUpdated || got[1] != model.ActionGarageTransfer {
		t.Fatalf("actions = %v, want [FIELD_UPDATED GARAGE_TRANSFER]", got)
	}
	tr := entries[1]
	if tr.Field != FieldGarage || tr.OldValue != "G1" || tr.NewValue != "G2" {
		t.Fatalf("transfer entry = %+v", tr)
	}
	if updated.SpotToken == nil || *updated.SpotToken != "G2-F3-2" {
		t.Fatalf("token not applied: %v", updated.SpotToken)
	}
}

func TestBuildChangesSameGarageMoveIsNotTransfer(t *testing.T) {
	truck := baseTruck()
	_, entries := BuildChanges(truck, TruckUpdate{SpotToken: strp("G1-F2-3")}, model.CauseUser, 7)
	got := actionsOf(entries)
	if len(got) != 1 || got[0] != model.ActionFieldUpdated {
		t.Fatalf("actions = %v, want only FIELD_UPDATED", got)
	}
}

func TestBuildChangesFirstParkIsNotTransfer(t *testing.T) {
	truck := baseTruck()
	truck.SpotToken = nil
	updated, entries := BuildChanges(truck, TruckUpdate{SpotToken: strp("G2-F1-1")}, model.CauseUser, 7)

	got := actionsOf(entries)
	if len(got) != 1 || got[0] != model.ActionFieldUpdated {
		t.Fatalf("actions = %v, want only FIELD_UPDATED on first park", got)
	}
	if updated.SpotToken == nil || *updated.SpotToken != "G2-F1-1" {
		t.Fatalf("token not applied: %v", updated.SpotToken)
	}
}

func TestBuildChangesUnpark(t *testing.T) {
	truck := baseTruck()
	updated, entries := BuildChanges(truck, TruckUpdate{SpotToken: strp("")}, model.CauseSystem, 0)

	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Action != model.ActionFieldUpdated || e.OldValue != "G1-F1-1" || e.NewValue != "" {
		t.Fatalf("unpark entry = %+v", e)
	}
	if e.Cause != model.CauseSystem || e.ActorID != 0 {
		t.Fatalf("eviction attribution wrong: %+v", e)
	}
	if updated.SpotToken != nil {
		t.Fatalf("token should be nil after unpark, got %q", *updated.SpotToken)
	}
}

func TestBuildChangesPositionUpdate(t *testing.T) {
	truck := baseTruck()
	updated, entries := BuildChanges(truck, TruckUpdate{PosX: floatp(1.5), PosY: floatp(2.0)}, model.CauseUser, 7)

	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Action != model.ActionPositionUpdated || e.Field != FieldPosition {
		t.Fatalf("position entry = %+v", e)
	}
	if e.OldValue != "-,-" || e.NewValue != "1.50,2.00" {
		t.Fatalf("position old/new = %q/%q", e.OldValue, e.NewValue)
	}
	if updated.PosX == nil || *updated.PosX != 1.5 || updated.PosY == nil || *updated.PosY != 2.0 {
		t.Fatalf("position not applied: %+v", updated)
	}
}

func TestBuildChangesAllKindsInOneUpdate(t *testing.T) {
	truck := baseTruck()
	_, entries := BuildChanges(truck, TruckUpdate{
		PlateNumber: strp("XY-999"),
		SpotToken:   strp("G3-F1-2"),
		PosX:        floatp(0.5),
	}, model.CauseBatch, 7)

	kinds := make(map[string]int)
	for _, e := range entries {
		kinds[e.Action]++
	}
	if kinds[model.ActionFieldUpdated] != 2 { // plate + spot_token
		t.Fatalf("FIELD_UPDATED count = %d, want 2 (%+v)", kinds[model.ActionFieldUpdated], entries)
	}
	if kinds[model.ActionGarageTransfer] != 1 {
		t.Fatalf("GARAGE_TRANSFER count = %d, want 1", kinds[model.ActionGarageTransfer])
	}
	if kinds[model.ActionPositionUpdated] != 1 {
		t.Fatalf("POSITION_UPDATED count = %d, want 1", kinds[model.ActionPositionUpdated])
	}
	for _, e := range entries {
		if e.Cause != model.CauseBatch {
			t.Fatalf("entry cause = %s, want BATCH", e.Cause)
		}
	}
}
