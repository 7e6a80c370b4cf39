// Package solar drives the engine from the position of the sun,
// interpolating between a day and a night preset by solar elevation.
package solar

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/tintd/tintd/engine"
)

// DefaultInterval is how often the schedule re-evaluates the sun position.
const DefaultInterval = time.Minute

// Default elevation thresholds, in degrees. Civil twilight ends at -6.
const (
	DefaultElevationNight = -6.0
	DefaultElevationDay   = 3.0
)

// Params configures a Schedule.
type Params struct {
	Latitude  float64
	Longitude float64

	// ElevationNight and ElevationDay bound the transition band. The night
	// preset applies fully below ElevationNight, the day preset at or above
	// ElevationDay, and the presets are interpolated in between.
	// ElevationNight must be smaller than ElevationDay.
	ElevationNight float64
	ElevationDay   float64

	Day   engine.Adjustment
	Night engine.Adjustment

	// Interval between evaluations. Zero means DefaultInterval.
	Interval time.Duration
}

// Schedule periodically requests the interpolated preset for every display
// the engine knows. It relies on the engine's coalescing to skip writes
// while the preset is unchanged. It is safe for concurrent usage.
type Schedule struct {
	mu     sync.Mutex
	params Params
}

// New creates a schedule with the given parameters.
func New(params Params) *Schedule {
	if params.Interval <= 0 {
		params.Interval = DefaultInterval
	}
	return &Schedule{params: params}
}

// Update replaces the schedule's parameters. The next evaluation uses them.
func (s *Schedule) Update(params Params) {
	if params.Interval <= 0 {
		params.Interval = DefaultInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = params
}

// At returns the preset for the given time.
func (s *Schedule) At(now time.Time) engine.Adjustment {
	s.mu.Lock()
	p := s.params
	s.mu.Unlock()
	return blend(p, sunrise.Elevation(p.Latitude, p.Longitude, now))
}

// blend interpolates between the night and day presets by where the
// elevation falls in the transition band. The filter color does not
// interpolate; the night filter is kept until the band is fully crossed,
// by which point its intensity has reached the day value.
func blend(p Params, elevation float64) engine.Adjustment {
	var progress float64
	switch {
	case elevation < p.ElevationNight:
		progress = 0
	case elevation >= p.ElevationDay:
		progress = 1
	default:
		progress = (elevation - p.ElevationNight) / (p.ElevationDay - p.ElevationNight)
	}
	if progress == 1 {
		return p.Day
	}
	adj := engine.Adjustment{
		Brightness: lerp(p.Night.Brightness, p.Day.Brightness, progress),
		Filter:     p.Night.Filter,
		Intensity:  lerp(p.Night.Intensity, p.Day.Intensity, progress),
	}
	if progress == 0 {
		adj = p.Night
	}
	return adj
}

func lerp(night, day float32, progress float64) float32 {
	return float32((1-progress)*float64(night) + progress*float64(day))
}

// Next returns the next sunrise or sunset after now, and which one it is.
func (s *Schedule) Next(now time.Time) (time.Time, string) {
	s.mu.Lock()
	p := s.params
	s.mu.Unlock()
	// Polar day and night have no transition for months at a time.
	for day := 0; day <= 366; day++ {
		d := now.AddDate(0, 0, day)
		rise, set := sunrise.SunriseSunset(p.Latitude, p.Longitude, d.Year(), d.Month(), d.Day())
		switch {
		case rise.After(now) && (rise.Before(set) || !set.After(now)):
			return rise, "sunrise"
		case set.After(now):
			return set, "sunset"
		}
	}
	return time.Time{}, ""
}

// Run evaluates the schedule every interval and feeds the result through
// the engine's request path until the context is cancelled.
func (s *Schedule) Run(ctx context.Context, eng *engine.Engine, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.apply(eng, logger)
	for {
		s.mu.Lock()
		interval := s.params.Interval
		s.mu.Unlock()
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
			s.apply(eng, logger)
		}
	}
}

func (s *Schedule) apply(eng *engine.Engine, logger *slog.Logger) {
	adj := s.At(time.Now())
	logger.Debug("solar schedule evaluated",
		"brightness", adj.Brightness, "filter", adj.Filter.String(), "intensity", adj.Intensity)
	for _, id := range eng.Displays() {
		eng.Request(id, adj.Brightness, adj.Filter, adj.Intensity)
	}
}
