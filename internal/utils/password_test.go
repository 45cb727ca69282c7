package utils

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("s3cret", 4) // min cost keeps the test fast
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("hash equals the plain password")
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Fatalf("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatalf("wrong password accepted")
	}
}

func TestHashPasswordClampsCost(t *testing.T) {
	// Out-of-range costs must not fail; they fall back to the default.
	hash, err := HashPassword("s3cret", 99)
	if err != nil {
		t.Fatalf("HashPassword with oversized cost: %v", err)
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Fatalf("clamped-cost hash does not verify")
	}
	if _, err := HashPassword("s3cret", -1); err != nil {
		t.Fatalf("HashPassword with negative cost: %v", err)
	}
}
