package nakshatra

import (
	"testing"

	"Jyotish/internal/domain/models"
)

func TestResolveFirstAndLast(t *testing.T) {
	r := Resolve(0)
	if r.Index != 1 || r.Name != "Ashwini" || r.Pada != 1 || r.Lord != models.Ketu {
		t.Fatalf("0° => %+v", r)
	}
	r = Resolve(359.99)
	if r.Index != 27 || r.Name != "Revati" || r.Pada != 4 || r.Lord != models.Mercury {
		t.Fatalf("359.99° => %+v", r)
	}
}

func TestResolveBoundaryBelongsToLower(t *testing.T) {
	// 13°20' is the Ashwini/Bharani boundary
	r := Resolve(Span)
	if r.Index != 1 {
		t.Fatalf("boundary resolved to %d, want lower index 1", r.Index)
	}
	if Resolve(Span+1e-9).Index != 2 {
		t.Fatal("just past boundary should be Bharani")
	}
}

func TestResolvePadas(t *testing.T) {
	for pada := 1; pada <= 4; pada++ {
		lon := float64(pada-1)*PadaSpan + PadaSpan/2
		if got := Resolve(lon).Pada; got != pada {
			t.Fatalf("lon %f pada = %d, want %d", lon, got, pada)
		}
	}
}

func TestLordCycleRepeats(t *testing.T) {
	// Magha (10) restarts the cycle at Ketu, Mula (19) again
	for _, idx := range []int{1, 10, 19} {
		if Lord(idx) != models.Ketu {
			t.Fatalf("nakshatra %d lord = %v, want Ketu", idx, Lord(idx))
		}
	}
	if Lord(9) != models.Mercury || Lord(27) != models.Mercury {
		t.Fatal("cycle should end on Mercury")
	}
}

func TestResolve28Abhijit(t *testing.T) {
	r := Resolve28(278.0)
	if r.Index != 22 || r.Name != "Abhijit" {
		t.Fatalf("278° => %+v, want Abhijit (22)", r)
	}
	// Shravana shifts up past Abhijit
	r = Resolve28(285.0)
	if r.Index != 23 || r.Name != "Shravana" {
		t.Fatalf("285° => %+v, want Shravana (23)", r)
	}
	// below Abhijit nothing shifts
	r = Resolve28(100.0)
	if r.Index != Resolve(100.0).Index {
		t.Fatalf("100° => %+v, want 27-mode index", r)
	}
	// last mansion is 28 in this mode
	if Resolve28(355).Index != 28 {
		t.Fatal("Revati should be 28 in the 28 scheme")
	}
}

func TestGandanta(t *testing.T) {
	cases := []struct {
		lon  float64
		want bool
	}{
		{359.5, true}, // Pisces end
		{0.5, true},   // Aries start
		{120.9, true}, // Leo start
		{239.2, true}, // Scorpio end
		{15, false},
		{185, false},
	}
	for _, c := range cases {
		if got := Gandanta(c.lon); got != c.want {
			t.Fatalf("Gandanta(%v) = %v, want %v", c.lon, got, c.want)
		}
	}
}
