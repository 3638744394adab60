package engine

import "github.com/signalworks/jlogic/internal/config"

// Class is the role a stage plays in transition logic. Template selection
// depends only on the class pair of a transition's endpoints.
type Class int

const (
	ClassVehicle Class = iota
	ClassLRTEntry
	ClassLRTAnchor
	ClassLig
)

func (c Class) String() string {
	switch c {
	case ClassVehicle:
		return "vehicle"
	case ClassLRTEntry:
		return "lrt-entry"
	case ClassLRTAnchor:
		return "lrt-anchor"
	case ClassLig:
		return "lig"
	}
	return "unknown"
}

// IsLRT reports whether the class is an LRT role, entry or anchor.
func (c Class) IsLRT() bool {
	return c == ClassLRTEntry || c == ClassLRTAnchor
}

// Classify assigns a class to a stage name. Classification is purely
// name-based except for the entry/anchor split, which needs to know which
// LRT stage the junction rests trams at.
func Classify(name, lrtAnchor string) Class {
	switch {
	case config.IsLRTName(name):
		if name == lrtAnchor {
			return ClassLRTAnchor
		}
		return ClassLRTEntry
	case config.IsLigName(name):
		return ClassLig
	}
	return ClassVehicle
}
