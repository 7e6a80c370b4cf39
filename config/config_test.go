package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tintd/tintd/gamma"
)

func TestLoadDefaults(t *testing.T) {
	cfg, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tick != 100*time.Millisecond {
		t.Errorf("Tick = %v", cfg.Tick)
	}
	if cfg.Solar.Enabled {
		t.Error("solar should default to disabled")
	}
	if cfg.Solar.Night.Filter != "orange" {
		t.Errorf("night filter default = %q", cfg.Solar.Night.Filter)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tintd.yaml")
	err := os.WriteFile(path, []byte(`
tick: 250ms
display: ":1"
solar:
  enabled: true
  latitude: 48.2
  longitude: 16.4
  interval: 30s
  night:
    brightness: 0.5
    filter: red
    intensity: 0.9
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tick != 250*time.Millisecond || cfg.Display != ":1" {
		t.Errorf("got tick %v, display %q", cfg.Tick, cfg.Display)
	}
	if !cfg.Solar.Enabled || cfg.Solar.Latitude != 48.2 || cfg.Solar.Interval != 30*time.Second {
		t.Errorf("solar = %+v", cfg.Solar)
	}

	params := cfg.Solar.Params()
	if params.Night.Filter != gamma.FilterRed || params.Night.Brightness != 0.5 {
		t.Errorf("night params = %+v", params.Night)
	}
	// Day values keep their defaults when the file omits them.
	if params.Day.Filter != gamma.FilterNone || params.Day.Brightness != 1 {
		t.Errorf("day params = %+v", params.Day)
	}
	if params.ElevationNight != -6 || params.ElevationDay != 3 {
		t.Errorf("elevations = (%v, %v)", params.ElevationNight, params.ElevationDay)
	}
}

func TestLoadRejectsInvertedElevations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tintd.yaml")
	err := os.WriteFile(path, []byte(`
solar:
  enabled: true
  elevation-night: 5
  elevation-day: -5
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(path); err == nil {
		t.Error("inverted elevation band should be rejected")
	}
}

func TestPresetAdjustmentClamps(t *testing.T) {
	adj := Preset{Brightness: 0, Filter: "sepia", Intensity: 2}.Adjustment()
	if adj.Brightness != gamma.MinBrightness || adj.Filter != gamma.FilterNone || adj.Intensity != 1 {
		t.Errorf("Adjustment() = %+v", adj)
	}
}
