package config

import (
	"fmt"
	"strings"

	"github.com/thediveo/enumflag/v2"
	"gopkg.in/yaml.v3"
)

// Direction tells the selector whether higher or lower scores are better.
type Direction int

const (
	// Auto takes the direction registered with the metric.
	Auto Direction = iota
	Maximize
	Minimize
)

var directionIdentifiers = enumflag.EnumIdentifiers[Direction]{
	Auto:     {"auto"},
	Maximize: {"maximize", "max"},
	Minimize: {"minimize", "min"},
}

func (d Direction) String() string {
	if ids, ok := directionIdentifiers[d]; ok {
		return ids[0]
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Value returns d as a pflag.Value writing through to d.
func (d *Direction) Value() *enumflag.EnumFlagValue[Direction] {
	return enumflag.New(d, "direction", directionIdentifiers, enumflag.EnumCaseInsensitive)
}

// ParseDirection accepts auto, maximize, max, minimize or min in any case.
func ParseDirection(s string) (Direction, error) {
	var d Direction
	if err := d.Value().Set(strings.TrimSpace(s)); err != nil {
		return Auto, fmt.Errorf("%w: direction %q (want auto, maximize or minimize)", ErrInvalid, s)
	}
	return d, nil
}

func (d *Direction) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDirection(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Direction) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Resolve picks the direction to run with: d itself, or the metric's own when d is Auto.
func (d Direction) Resolve(greaterIsBetter bool) bool {
	switch d {
	case Maximize:
		return true
	case Minimize:
		return false
	default:
		return greaterIsBetter
	}
}
