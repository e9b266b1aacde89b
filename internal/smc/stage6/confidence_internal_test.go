package stage6

import "testing"

func TestConfidenceFromScoresClampedToRange(t *testing.T) {
	cases := []struct {
		name           string
		winner, loser  float64
		wantMin, wantMax float64
	}{
		{"tie", 1.0, 1.0, 0.5, 0.95},
		{"narrow_win", 2.1, 2.0, 0.5, 0.95},
		{"blowout", 20.0, -20.0, 0.5, 0.95},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := confidenceFromScores(c.winner, c.loser)
			if got < c.wantMin || got > c.wantMax {
				t.Fatalf("confidenceFromScores(%v, %v) = %v, want within [%v, %v]", c.winner, c.loser, got, c.wantMin, c.wantMax)
			}
		})
	}
}

func TestConfidenceFromScoresMonotonicInGap(t *testing.T) {
	small := confidenceFromScores(2.2, 2.1)
	large := confidenceFromScores(5.0, 1.0)
	if !(small < large) {
		t.Fatalf("expected confidence to grow with the winner/loser gap: small=%v large=%v", small, large)
	}
}
