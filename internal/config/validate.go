package config

import "fmt"

// ValidationError describes a single problem found in a junction config.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks structural rules on a loaded config and returns every
// violation found. It does not check the transition graph; that is the
// compiler's concern because it needs classification to do it.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError
	j := &cfg.Junction

	if j.VehicleAnchor == "" {
		errs = append(errs, ValidationError{"junction.vehicle_anchor", "is required"})
	} else if IsLRTName(j.VehicleAnchor) || IsLigName(j.VehicleAnchor) {
		errs = append(errs, ValidationError{"junction.vehicle_anchor", fmt.Sprintf("%q is not a vehicle stage name", j.VehicleAnchor)})
	}

	if j.LRTAnchor == "" {
		errs = append(errs, ValidationError{"junction.lrt_anchor", "is required"})
	} else if !IsLRTName(j.LRTAnchor) {
		errs = append(errs, ValidationError{"junction.lrt_anchor", fmt.Sprintf("%q does not follow the L<number> naming convention", j.LRTAnchor)})
	}

	if len(ParseStageSeq(j.Skeleton)) == 0 {
		errs = append(errs, ValidationError{"junction.skeleton", "must name at least one stage"})
	}

	seen := make(map[string]bool, len(j.Stages))
	for i, s := range j.Stages {
		field := fmt.Sprintf("junction.stages[%d]", i)
		if s.Name == "" {
			errs = append(errs, ValidationError{field + ".name", "is required"})
			continue
		}
		if seen[s.Name] {
			errs = append(errs, ValidationError{field + ".name", fmt.Sprintf("duplicate stage %q", s.Name)})
		}
		seen[s.Name] = true
		switch s.MinType {
		case MinTypeMin, MinTypeCpn, MinTypeSaf:
		default:
			errs = append(errs, ValidationError{field + ".min_type", fmt.Sprintf("%q is not one of min, cpn, saf", s.MinType)})
		}
		if s.SiblingPriority != nil && s.WaterfallLevel == nil {
			errs = append(errs, ValidationError{field + ".sibling_priority", "requires waterfall_level"})
		}
	}

	if len(j.Transitions) == 0 {
		errs = append(errs, ValidationError{"junction.transitions", "must name at least one transition"})
	}
	for i, t := range j.Transitions {
		field := fmt.Sprintf("junction.transitions[%d]", i)
		if t.From == "" {
			errs = append(errs, ValidationError{field + ".from", "is required"})
		}
		if t.To == "" {
			errs = append(errs, ValidationError{field + ".to", "is required"})
		}
	}

	return errs
}
