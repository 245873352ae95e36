package domain

import (
	"fmt"
	"strings"
)

// TravelMode selects the routing profile.
type TravelMode int

const (
	ModeUnknown TravelMode = iota
	Driving
	Walking
	Cycling
)

var modeNames = map[TravelMode]string{
	Driving: "driving",
	Walking: "walking",
	Cycling: "cycling",
}

// CLI menu selectors, in menu order.
var modeSelectors = map[string]TravelMode{
	"1": Driving,
	"2": Walking,
	"3": Cycling,
}

func (m TravelMode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("TravelMode(%d)", int(m))
}

func (m TravelMode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseTravelMode accepts the routing profile names (driving, walking, cycling).
func ParseTravelMode(s string) (TravelMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return ModeUnknown, fmt.Errorf("parse travel mode %q: %w", s, ErrInvalidInput)
}

// TravelModeFromSelector maps the numeric menu choice (1, 2, 3) to a mode.
func TravelModeFromSelector(s string) (TravelMode, error) {
	m, ok := modeSelectors[strings.TrimSpace(s)]
	if !ok {
		return ModeUnknown, fmt.Errorf("travel mode selector %q: %w", s, ErrInvalidInput)
	}
	return m, nil
}
