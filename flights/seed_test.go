package flights

import (
	"regexp"
	"testing"
)

var clockRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

func TestGenerate(t *testing.T) {
	flights := Generate(50)
	if len(flights) != 50 {
		t.Fatalf("got %d flights, want 50", len(flights))
	}

	seen := make(map[string]bool)
	for _, f := range flights {
		if f.Price < 2000 || f.Price > 3000 {
			t.Fatalf("price %d outside 2000-3000", f.Price)
		}
		if f.PriceMultiplier != 1 {
			t.Fatalf("multiplier = %v, want 1", f.PriceMultiplier)
		}
		if !clockRe.MatchString(f.DepartureTime) || !clockRe.MatchString(f.ArrivalTime) {
			t.Fatalf("bad clock times %q / %q", f.DepartureTime, f.ArrivalTime)
		}
		if f.FlightName == "" || f.FlightNo == "" {
			t.Fatalf("missing name/number: %+v", f)
		}
		if seen[f.FlightNo] {
			t.Fatalf("duplicate flight number %s", f.FlightNo)
		}
		seen[f.FlightNo] = true
	}
}
