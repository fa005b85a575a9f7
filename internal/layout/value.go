package layout

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Unit specifies how a Value is interpreted.
type Unit uint8

const (
	UnitAuto    Unit = iota // Size determined by content
	UnitPx                  // Absolute length
	UnitPercent             // Percentage of the parent's available space
	UnitEm                  // Multiple of the node's font size
	UnitStretch             // Weighted share of the parent's free main-axis space
)

func (u Unit) String() string {
	switch u {
	case UnitAuto:
		return "auto"
	case UnitPx:
		return "px"
	case UnitPercent:
		return "%"
	case UnitEm:
		return "em"
	case UnitStretch:
		return "s"
	default:
		return "?"
	}
}

// Value is a length: auto, absolute, relative or a stretch weight.
type Value struct {
	Amount float64
	Unit   Unit
}

// Auto returns a Value that is computed from content.
func Auto() Value {
	return Value{Unit: UnitAuto}
}

// Px returns an absolute length.
func Px(n float64) Value {
	return Value{Amount: n, Unit: UnitPx}
}

// Percent returns a Value relative to the available space, on a 0-100
// scale.
func Percent(p float64) Value {
	return Value{Amount: p, Unit: UnitPercent}
}

// Em returns a Value relative to the node's font size.
func Em(n float64) Value {
	return Value{Amount: n, Unit: UnitEm}
}

// Stretch returns a weighted share of the parent's free space.
func Stretch(weight float64) Value {
	return Value{Amount: weight, Unit: UnitStretch}
}

// Resolve computes the length given the available space and font size.
// Auto and Stretch values resolve to fallback.
func (v Value) Resolve(available, fontSize, fallback float64) float64 {
	switch v.Unit {
	case UnitPx:
		return v.Amount
	case UnitPercent:
		if math.IsInf(available, 0) {
			return fallback
		}
		return available * v.Amount / 100.0
	case UnitEm:
		return v.Amount * fontSize
	default:
		return fallback
	}
}

// IsAuto returns true if this value is computed from content.
func (v Value) IsAuto() bool {
	return v.Unit == UnitAuto
}

// IsStretch returns true if this value is a stretch weight.
func (v Value) IsStretch() bool {
	return v.Unit == UnitStretch
}

func (v Value) String() string {
	if v.Unit == UnitAuto {
		return "auto"
	}
	return formatFloat(v.Amount) + v.Unit.String()
}

// ParseValue parses a length written as "auto", "12", "12px", "50%",
// "1.5em" or "2s" (a stretch weight).
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "auto" {
		return Auto(), nil
	}
	num, unit := s, UnitPx
	for _, suffix := range []struct {
		text string
		unit Unit
	}{{"px", UnitPx}, {"%", UnitPercent}, {"em", UnitEm}, {"s", UnitStretch}} {
		if strings.HasSuffix(s, suffix.text) {
			num, unit = strings.TrimSuffix(s, suffix.text), suffix.unit
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Value{}, errors.Wrapf(err, "parse length %q", s)
	}
	if f < 0 && unit == UnitStretch {
		return Value{}, errors.Newf("parse length %q: negative stretch weight", s)
	}
	return Value{Amount: f, Unit: unit}, nil
}
