package solar

import (
	"testing"
	"time"

	"github.com/tintd/tintd/engine"
	"github.com/tintd/tintd/gamma"
)

func testParams() Params {
	return Params{
		Latitude:       52.52,
		Longitude:      13.405,
		ElevationNight: -6,
		ElevationDay:   3,
		Day:            engine.Adjustment{Brightness: 1, Filter: gamma.FilterNone, Intensity: 0},
		Night:          engine.Adjustment{Brightness: 0.7, Filter: gamma.FilterOrange, Intensity: 0.8},
	}
}

func TestBlend(t *testing.T) {
	p := testParams()

	if got := blend(p, -10); got != p.Night {
		t.Errorf("below the band: got %+v, want the night preset", got)
	}
	if got := blend(p, 20); got != p.Day {
		t.Errorf("above the band: got %+v, want the day preset", got)
	}
	if got := blend(p, p.ElevationDay); got != p.Day {
		t.Errorf("at the day threshold: got %+v, want the day preset", got)
	}

	// Midpoint of the band: halfway between the presets, night filter kept.
	mid := blend(p, (p.ElevationNight+p.ElevationDay)/2)
	if mid.Filter != gamma.FilterOrange {
		t.Errorf("mid-band filter = %v, want the night filter", mid.Filter)
	}
	if mid.Brightness <= p.Night.Brightness || mid.Brightness >= p.Day.Brightness {
		t.Errorf("mid-band brightness = %v, want between %v and %v",
			mid.Brightness, p.Night.Brightness, p.Day.Brightness)
	}
	if mid.Intensity <= p.Day.Intensity || mid.Intensity >= p.Night.Intensity {
		t.Errorf("mid-band intensity = %v, want between %v and %v",
			mid.Intensity, p.Day.Intensity, p.Night.Intensity)
	}
}

func TestBlendMonotonic(t *testing.T) {
	p := testParams()
	prev := blend(p, p.ElevationNight).Brightness
	for elevation := p.ElevationNight; elevation <= p.ElevationDay; elevation += 0.5 {
		cur := blend(p, elevation).Brightness
		if cur < prev {
			t.Fatalf("brightness decreased from %v to %v at elevation %v", prev, cur, elevation)
		}
		prev = cur
	}
}

func TestNext(t *testing.T) {
	s := New(testParams())
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	at, kind := s.Next(now)
	if !at.After(now) {
		t.Fatalf("Next returned %v, not after %v", at, now)
	}
	if at.Sub(now) > 24*time.Hour {
		t.Errorf("next transition %v is more than a day away", at)
	}
	if kind != "sunrise" && kind != "sunset" {
		t.Errorf("kind = %q", kind)
	}

	// At mid-latitude noon the next transition is that evening's sunset.
	if kind != "sunset" {
		t.Errorf("kind at noon = %q, want sunset", kind)
	}
}

func TestUpdateTakesEffect(t *testing.T) {
	s := New(testParams())
	p := testParams()
	p.Night.Brightness = 0.2
	s.Update(p)
	if got := blend(s.params, -10); got.Brightness != 0.2 {
		t.Errorf("blend after Update = %+v", got)
	}
}
