package engine

import (
	"sort"
	"strings"

	"github.com/signalworks/jlogic/internal/config"
)

// demandString assembles the demand precondition for a from -> to
// transition: the detector and priority conditions that must hold before
// the move is allowed. An empty string means unconditional; the literal
// "true" is never produced. All iteration runs over the junction's
// ordered stage list so priority ties resolve by file order.
func (c *Compiler) demandString(to, from string) string {
	toProps := c.j.Props(to)
	fromProps := c.j.Props(from)

	var parts []string

	if toProps != nil && toProps.Detector != "" {
		parts = append(parts, "IsActive("+toProps.Detector+")")
	}

	// Higher-priority siblings hold the target back until they have been
	// served: same waterfall level, numerically lower priority. The from
	// and target stages themselves never count.
	if toProps != nil && toProps.WaterfallLevel != nil && toProps.SiblingPriority != nil {
		var sibs []config.StageProps
		for _, s := range c.j.Stages {
			if s.Name == from || s.Name == to || s.Detector == "" {
				continue
			}
			if s.WaterfallLevel == nil || *s.WaterfallLevel != *toProps.WaterfallLevel {
				continue
			}
			if s.SiblingPriority == nil || *s.SiblingPriority >= *toProps.SiblingPriority {
				continue
			}
			sibs = append(sibs, s)
		}
		sort.SliceStable(sibs, func(a, b int) bool {
			return *sibs[a].SiblingPriority < *sibs[b].SiblingPriority
		})
		for _, s := range sibs {
			parts = append(parts, "IsInactive("+s.Detector+")")
		}
	}

	// Waterfall: a move that climbs exactly one level must also wait out
	// every demanded stage on the level below the source.
	if fromProps != nil && toProps != nil &&
		fromProps.WaterfallLevel != nil && toProps.WaterfallLevel != nil &&
		*fromProps.WaterfallLevel-*toProps.WaterfallLevel == 1 {
		below := *fromProps.WaterfallLevel + 1
		var levelStages []config.StageProps
		for _, s := range c.j.Stages {
			if s.Detector == "" || s.WaterfallLevel == nil || *s.WaterfallLevel != below {
				continue
			}
			levelStages = append(levelStages, s)
		}
		sort.SliceStable(levelStages, func(a, b int) bool {
			pa, pb := levelStages[a].SiblingPriority, levelStages[b].SiblingPriority
			if pa == nil {
				return false
			}
			if pb == nil {
				return true
			}
			return *pa < *pb
		})
		for _, s := range levelStages {
			part := "IsInactive(" + s.Detector + ")"
			if !contains(parts, part) {
				parts = append(parts, part)
			}
		}
	}

	return strings.Join(parts, " and ")
}
