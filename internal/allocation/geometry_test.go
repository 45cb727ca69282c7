package allocation

import "testing"

func TestParseSpotToken(t *testing.T) {
	ref, ok := ParseSpotToken("G1-F2-3")
	if !ok {
		t.Fatalf("valid token rejected")
	}
	if ref.Garage != "G1" || ref.Lane != "F2" || ref.Number != 3 {
		t.Fatalf("parsed ref = %+v", ref)
	}
	if ref.Token() != "G1-F2-3" {
		t.Fatalf("round trip = %q", ref.Token())
	}

	for _, bad := range []string{
		"",
		"G1-F1",
		"G1-F1-1-2",
		"G1-F1-0",
		"G1-F1-4",
		"G1-F1-x",
		"-F1-1",
		"G1--1",
	} {
		if _, ok := ParseSpotToken(bad); ok {
			t.Fatalf("malformed token %q accepted", bad)
		}
	}
}

func TestGeometryValidToken(t *testing.T) {
	geo := DefaultGeometry(DefaultParams())

	for _, good := range []string{"G1-F1-1", "G2-F3-3", "G3-F2-2"} {
		if !geo.ValidToken(good) {
			t.Fatalf("configured token %q rejected", good)
		}
	}
	for _, bad := range []string{"G4-F1-1", "G1-F9-1", "G1-F1-4", "garbage"} {
		if geo.ValidToken(bad) {
			t.Fatalf("unconfigured token %q accepted", bad)
		}
	}
}

func TestGeometryTokensForGarage(t *testing.T) {
	geo := DefaultGeometry(DefaultParams())

	tokens := geo.TokensForGarage("G1")
	if len(tokens) != 9 {
		t.Fatalf("token count = %d, want 9", len(tokens))
	}
	if tokens[0] != "G1-F1-1" || tokens[8] != "G1-F3-3" {
		t.Fatalf("token enumeration out of order: %v", tokens)
	}
	if geo.TokensForGarage("G9") != nil {
		t.Fatalf("unknown garage should enumerate no tokens")
	}
}

func TestGeometryGarageCodes(t *testing.T) {
	geo := DefaultGeometry(DefaultParams())
	codes := geo.GarageCodes()
	if len(codes) != 3 || codes[0] != "G1" || codes[1] != "G2" || codes[2] != "G3" {
		t.Fatalf("garage codes = %v", codes)
	}

	g2, ok := geo.GarageByCode("G2")
	if !ok || len(g2.Lanes) != 3 || g2.Lanes[0].Length != 18.0 {
		t.Fatalf("G2 config = %+v, ok=%v", g2, ok)
	}
	if _, ok := geo.GarageByCode("G9"); ok {
		t.Fatalf("unknown garage code resolved")
	}
}
