package locations

import (
	"errors"
	"fmt"
)

// Coordinate is a WGS-84 position in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Record is a single film/location entry. Distance is only meaningful
// once Ranked is set.
type Record struct {
	Title      string
	Address    string
	Coordinate Coordinate
	Distance   float64
	Ranked     bool
}

// Same reports whether r and o describe the same film at the same place.
func (r Record) Same(o Record) bool {
	return r.Title == o.Title && r.Address == o.Address && r.Coordinate == o.Coordinate
}

var ErrInvalidConstraints = errors.New("invalid selection constraints")

// Constraints bound the closest subset by count and distance (km).
type Constraints struct {
	MaxCount    int
	MaxDistance float64
}

var DefaultConstraints = Constraints{MaxCount: 10, MaxDistance: 1000}

func (c Constraints) Validate() error {
	if c.MaxCount < 1 {
		return fmt.Errorf("%w: max count %d must be positive", ErrInvalidConstraints, c.MaxCount)
	}
	if c.MaxDistance < 0 {
		return fmt.Errorf("%w: max distance %g must not be negative", ErrInvalidConstraints, c.MaxDistance)
	}
	return nil
}

// Mode selects how the closest subset is chosen.
type Mode string

const (
	// ModeCompat walks the farthest-first ranking and keeps a prefix of it.
	ModeCompat Mode = "compat"
	// ModeNearest keeps the nearest records within the distance bound.
	ModeNearest Mode = "nearest"
)

var ErrInvalidMode = errors.New("invalid selection mode")

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeCompat:
		return ModeCompat, nil
	case ModeNearest:
		return ModeNearest, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidMode, s)
	}
}
