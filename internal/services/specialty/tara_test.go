package specialty

import (
	"testing"
)

func TestTaraCycle(t *testing.T) {
	natal := 5.0 // Ashwini
	cases := []struct {
		transitLon float64
		tara       int
		name       string
		favorable  bool
	}{
		{5, 1, "Janma", false},
		{15, 2, "Sampat", true},
		{30, 3, "Vipat", false},
		{45, 4, "Kshema", true},
		{58, 5, "Pratyari", false},
		{70, 6, "Sadhaka", true},
		{85, 7, "Vadha", false},
		{95, 8, "Mitra", true},
		{110, 9, "Ati Mitra", true},
		{125, 1, "Janma", false}, // tenth mansion wraps the cycle
	}
	for _, tc := range cases {
		tb := Tara(natal, tc.transitLon)
		if tb.Tara != tc.tara || tb.Name != tc.name || tb.Favorable != tc.favorable {
			t.Fatalf("Tara(%v) = %+v, want %d %s %v", tc.transitLon, tb, tc.tara, tc.name, tc.favorable)
		}
	}
}

func TestChandraBala(t *testing.T) {
	natal := 40.0 // Taurus Moon
	for count, favorable := range map[int]bool{1: true, 2: false, 3: true, 6: true, 8: false, 11: true, 12: false} {
		transitLon := float64((1+count-1)%12)*30 + 10
		cb := Chandra(natal, transitLon)
		if cb.Count != count {
			t.Fatalf("count = %d, want %d", cb.Count, count)
		}
		if cb.Favorable != favorable {
			t.Fatalf("count %d favorable = %v, want %v", count, cb.Favorable, favorable)
		}
	}
}
