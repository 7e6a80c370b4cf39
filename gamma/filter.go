package gamma

import "fmt"

// Filter is a tint preset applied as channel-weighted scaling after the
// brightness scale.
type Filter uint8

const (
	FilterNone Filter = iota
	FilterOrange
	FilterRed
	FilterGreen
	FilterBlue
)

var filterNames = [...]string{
	FilterNone:   "none",
	FilterOrange: "orange",
	FilterRed:    "red",
	FilterGreen:  "green",
	FilterBlue:   "blue",
}

func (f Filter) String() string {
	if int(f) < len(filterNames) {
		return filterNames[f]
	}
	return fmt.Sprintf("filter(%d)", uint8(f))
}

// ParseFilter maps a filter name to its Filter value.
func ParseFilter(s string) (Filter, error) {
	for f, name := range filterNames {
		if s == name {
			return Filter(f), nil
		}
	}
	return FilterNone, fmt.Errorf("unknown filter %q", s)
}

// weights returns the per-channel multipliers for the filter at the given
// intensity. The boosted channel is allowed to exceed 1 here; Curve clamps
// the final samples. The factors are tuned so the filter reads as a visible
// tint rather than a pure channel kill.
func (f Filter) weights(intensity float32) (wr, wg, wb float32) {
	switch f {
	case FilterOrange:
		return 1 + 0.5*intensity, 1 - 0.3*intensity, 1 - 0.8*intensity
	case FilterRed:
		return 1 + 0.3*intensity, 1 - 0.8*intensity, 1 - 0.8*intensity
	case FilterGreen:
		return 1 - 0.8*intensity, 1 + 0.3*intensity, 1 - 0.8*intensity
	case FilterBlue:
		return 1 - 0.8*intensity, 1 - 0.8*intensity, 1 + 0.3*intensity
	default:
		return 1, 1, 1
	}
}
