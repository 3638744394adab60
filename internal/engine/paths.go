package engine

import (
	"strings"

	"github.com/signalworks/jlogic/internal/config"
)

// suffixed decorates a stage name with its minimum-type suffix, e.g. Bcpn
// or A1min. A stage missing from the properties table defaults to min.
func (c *Compiler) suffixed(stage string) string {
	if p := c.j.Props(stage); p != nil && p.MinType != "" {
		return stage + p.MinType
	}
	return stage + config.MinTypeMin
}

// tailString renders a tail, the stages between a transition's target and
// the anchor, as an underscore-joined path. The last element is always
// bare; the rest are suffix-decorated except LRT stages, Lig stages, and
// the literal DQ marker, which stay bare wherever they sit.
func (c *Compiler) tailString(tail []string) string {
	if len(tail) == 0 {
		return ""
	}
	if len(tail) == 1 {
		return tail[0]
	}
	parts := make([]string, 0, len(tail))
	for i, s := range tail {
		last := i == len(tail)-1
		if last || config.IsLRTName(s) || config.IsLigName(s) || s == "DQ" {
			parts = append(parts, s)
		} else {
			parts = append(parts, c.suffixed(s))
		}
	}
	return strings.Join(parts, "_")
}

// jMarker names the approach-time detector of an LRT stage: L39 -> jL39.
func jMarker(lrt string) string {
	return "j" + lrt
}
