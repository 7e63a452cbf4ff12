package spectrum

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownUnit is returned when a frequency or direction unit is not known.
var ErrUnknownUnit = errors.New("unknown unit")

// FreqUnit is the unit of a frequency axis.
type FreqUnit string

// Frequency units.
const (
	Hz        FreqUnit = "hz"
	RadPerSec FreqUnit = "rad/s"

	DefaultFUnit = Hz
)

// DirUnit is the unit and convention of a direction axis.
type DirUnit string

// Direction units.
const (
	// Radians is cartesian, anticlockwise from the x axis, in radians.
	Radians DirUnit = "rad"
	// Cartesian is cartesian, anticlockwise from the x axis, in degrees.
	Cartesian DirUnit = "cart"
	// Nautical is the direction waves come from, clockwise from north,
	// in degrees.
	Nautical DirUnit = "naut"

	DefaultDUnit = Radians
)

// ParseFreqUnit parses a frequency unit. The empty string means Hz.
func ParseFreqUnit(s string) (FreqUnit, error) {
	switch u := FreqUnit(strings.ToLower(strings.TrimSpace(s))); u {
	case "":
		return DefaultFUnit, nil
	case Hz, RadPerSec:
		return u, nil
	default:
		return "", errors.Wrapf(ErrUnknownUnit, "frequency unit %q", s)
	}
}

// ParseDirUnit parses a direction unit. The empty string means radians.
func ParseDirUnit(s string) (DirUnit, error) {
	switch u := DirUnit(strings.ToLower(strings.TrimSpace(s))); u {
	case "":
		return DefaultDUnit, nil
	case Radians, Cartesian, Nautical:
		return u, nil
	default:
		return "", errors.Wrapf(ErrUnknownUnit, "direction unit %q", s)
	}
}
