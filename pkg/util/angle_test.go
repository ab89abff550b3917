package util

import "testing"

func TestNorm360(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0}, {360, 0}, {-30, 330}, {725, 5}, {359.999, 359.999},
	}
	for _, c := range cases {
		if got := Norm360(c.in); got != c.want {
			t.Fatalf("Norm360(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSignedDelta(t *testing.T) {
	if d := SignedDelta(10, 350); d != 20 {
		t.Fatalf("wrap-forward delta = %v", d)
	}
	if d := SignedDelta(350, 10); d != -20 {
		t.Fatalf("wrap-back delta = %v", d)
	}
	if d := SignedDelta(0, 180); d != -180 {
		t.Fatalf("antipode delta = %v, want -180", d)
	}
}

func TestArcMinutesRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 13.3333333333, 123.456, 359.9983333333} {
		am := ArcMinutes(deg)
		back := DegFromArcMinutes(am)
		if diff := deg - back; diff > 1e-3 || diff < -1e-3 {
			t.Fatalf("round trip %v -> %v -> %v", deg, am, back)
		}
	}
}
