package database

import "testing"

func TestPoolLimits(t *testing.T) {
	cases := []struct {
		maxOpen, maxIdle   int
		wantOpen, wantIdle int
	}{
		{0, 0, defaultMaxConns, defaultMaxConns},
		{10, 5, 10, 5},
		{10, 0, 10, 10},
		{10, 50, 10, 10}, // idle clamped to open
		{-1, -1, defaultMaxConns, defaultMaxConns},
	}
	for _, c := range cases {
		open, idle := poolLimits(c.maxOpen, c.maxIdle)
		if open != c.wantOpen || idle != c.wantIdle {
			t.Fatalf("poolLimits(%d, %d) = (%d, %d), want (%d, %d)",
				c.maxOpen, c.maxIdle, open, idle, c.wantOpen, c.wantIdle)
		}
	}
}
