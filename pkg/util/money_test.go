package util

import "testing"

func TestRoundCentsHalfUp(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{2707.505, 2707.51},
		{2707.504, 2707.5},
		{0.005, 0.01},
		{1234.0, 1234.0},
	}
	for _, c := range cases {
		if got := RoundCents(c.in); got != c.want {
			t.Errorf("RoundCents(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRound3(t *testing.T) {
	if got := Round3(0.12345); got != 0.123 {
		t.Fatalf("Round3 = %v", got)
	}
	if got := Round3(-0.0456); got != -0.046 {
		t.Fatalf("Round3 negative = %v", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(1.2, 0, 1); got != 1 {
		t.Fatalf("clamp high = %v", got)
	}
	if got := Clamp(-0.2, 0.05, 0.5); got != 0.05 {
		t.Fatalf("clamp low = %v", got)
	}
	if got := Clamp(0.3, 0.05, 0.5); got != 0.3 {
		t.Fatalf("clamp mid = %v", got)
	}
}
