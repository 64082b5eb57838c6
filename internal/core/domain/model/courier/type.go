package courier

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"
)

// Type is the closed set of courier transport kinds. Each Type has exactly
// one capacity Profile.
type Type int

const (
	// Unknown is the zero value and never valid.
	Unknown Type = iota

	// Foot couriers carry little and serve a single region.
	Foot

	// Bike couriers sit between Foot and Auto on every capacity axis.
	Bike

	// Auto couriers carry the most and serve up to three regions.
	Auto
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		Unknown: "UNKNOWN",
		Foot:    "FOOT",
		Bike:    "BIKE",
		Auto:    "AUTO",
	}
}

// Types lists every valid courier type in declaration order.
func Types() []Type {
	return []Type{Foot, Bike, Auto}
}

// ParseType maps the wire name ("FOOT", "BIKE", "AUTO", case-insensitive) to a Type.
func ParseType(raw string) (Type, error) {
	for _, t := range Types() {
		if strings.EqualFold(raw, t.String()) {
			return t, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"courier type is invalid",
		fmt.Errorf("%q is not one of FOOT, BIKE, AUTO", raw),
	)
}

// Validate rejects Unknown and any value outside the declared constants.
func (t Type) Validate() error {
	switch t {
	case Foot, Bike, Auto:
		return nil
	case Unknown:
	}
	return errs.NewValueIsInvalidErrorWithCause(
		"courier type is invalid",
		fmt.Errorf("%d is not a valid courier type", t),
	)
}

// String returns the wire name of the type, or "UNKNOWN".
func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return "UNKNOWN"
}
