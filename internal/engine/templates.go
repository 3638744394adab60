package engine

import "fmt"

// Template identifies which of the seven expression shapes a transition
// compiles to.
type Template string

const (
	TemplateA Template = "A" // vehicle -> vehicle
	TemplateB Template = "B" // vehicle -> LRT entry
	TemplateC Template = "C" // vehicle -> LRT anchor
	TemplateD Template = "D" // LRT -> vehicle
	TemplateE Template = "E" // LRT -> Lig
	TemplateF Template = "F" // Lig -> vehicle
	TemplateG Template = "G" // LRT -> LRT
)

// NoLogic is emitted for a Lig -> vehicle transition with no demand
// conditions: the controller treats the row as unconditional.
const NoLogic = "NO_LOGIC"

// templateFor selects the template for a class pair. Both LRT roles chain
// with template G; the entry/anchor split only matters on the target side
// of a vehicle transition. Pairs outside the table have no template.
func templateFor(from, to Class) (Template, bool) {
	switch {
	case from == ClassVehicle && to == ClassVehicle:
		return TemplateA, true
	case from == ClassVehicle && to == ClassLRTEntry:
		return TemplateB, true
	case from == ClassVehicle && to == ClassLRTAnchor:
		return TemplateC, true
	case from.IsLRT() && to == ClassVehicle:
		return TemplateD, true
	case from.IsLRT() && to == ClassLig:
		return TemplateE, true
	case from.IsLRT() && to.IsLRT():
		return TemplateG, true
	case from == ClassLig && to == ClassVehicle:
		return TemplateF, true
	}
	return "", false
}

// aParts carries the rendered fragments of a vehicle-to-vehicle
// expression. atTarget is the suffixed target, atJL the j-marker of the
// nearest LRT, and bypassWTG/forceWTG the WTG paths after "current_".
type aParts struct {
	current  string
	gtFunc   string
	demand   string
	atTarget string
	atJL     string
	bypass   string
	force    string
	// hasOutgoingLRT switches the AT_greater branch: when the target has
	// its own outgoing LRT the comparator is ge with EG trailing, when it
	// does not the comparator tightens to gt with EG leading.
	hasOutgoingLRT bool
}

// renderA builds the vehicle-to-vehicle expression: free run at PL=0,
// gap/window checks at PL>0, and a force-move release on the WTG.
func renderA(p aParts) string {
	atPath := fmt.Sprintf("%s_%s_%s", p.current, p.atTarget, p.atJL)

	var atGreater string
	if p.hasOutgoingLRT {
		atGreater = fmt.Sprintf("AT_greater(1, ge, %s) and EG_%s=true", atPath, p.current)
	} else {
		atGreater = fmt.Sprintf("EG_%s=true and AT_greater(1, gt, %s)", p.current, atPath)
	}
	atLess := fmt.Sprintf("AT_less(1, le, %s) and WTG(%s_%s)=false", atPath, p.current, p.bypass)

	core := fmt.Sprintf(
		"(PL=0 and EG_%s=true) or (PL>0 and GT(%s) >= %s and ((%s) or (%s))) or WTG(%s_%s)=false",
		p.current, p.current, p.gtFunc, atGreater, atLess, p.current, p.force)

	if p.demand != "" {
		return p.demand + " and (" + core + ")"
	}
	return core
}

// renderB builds the vehicle-to-LRT-entry expression. The WTG carries the
// queue discharge path behind the LRT target.
func renderB(current, lrtTarget, gtFunc, wtgRest, jTarget, nvATPath string) string {
	return fmt.Sprintf(
		"WTG(%s_%s_%s)=true and ((GT(%s) >= %s and AT_less(0, le, %s_%s)) or (EG_%s=true and AT_less(0, le, %s_%s)))",
		current, lrtTarget, wtgRest, current, gtFunc, current, jTarget, current, current, nvATPath)
}

// renderC builds the vehicle-to-LRT-anchor expression, the simplest gated
// form: no queue discharge, no EG branch.
func renderC(current, lrtAnchor, gtFunc, jAnchor string) string {
	return fmt.Sprintf(
		"WTG(%s_%s)=true and (GT(%s) >= %s and AT_less(0, le, %s_%s))",
		current, lrtAnchor, current, gtFunc, current, jAnchor)
}

// renderD builds the LRT-to-vehicle expression. CloseL guarantees the
// minimum has run, so there is no GT check, and the DQ marker sits
// directly after the current stage in the WTG.
func renderD(current, target, atPath, wtgPath, demand string) string {
	gate := fmt.Sprintf("CloseL(%s) and LIG(%s)=false", target, target)
	inner := fmt.Sprintf("(AT_greater(1, ge, %s_%s) or WTG(%s_DQ_%s)=false)", current, atPath, current, wtgPath)
	if demand != "" {
		return gate + " and " + demand + " and " + inner
	}
	return gate + " and " + inner
}

// renderE builds the LRT-to-Lig expression: like D but gated on the Lig
// indication being up, and with a GT check.
func renderE(current, lig, gtFunc, atPath, wtgPath string) string {
	return fmt.Sprintf(
		"CloseL(%s) and LIG(%s)=true and ((GT(%s) >= %s and AT_greater(1, ge, %s_%s)) or WTG(%s_DQ_%s)=false)",
		lig, lig, current, gtFunc, current, atPath, current, wtgPath)
}

// renderF builds the Lig-to-vehicle expression: the demand string alone,
// or NO_LOGIC when nothing gates the move.
func renderF(demand string) string {
	if demand == "" {
		return NoLogic
	}
	return demand
}

// renderG builds the LRT-to-LRT chaining expression. No DQ marker: no
// vehicle stage runs between the two LRT stages. The second window check
// uses comparator ls, not le.
func renderG(current, lrtTarget, jTarget, nvATPath string) string {
	return fmt.Sprintf(
		"(EG_%s=true and AT_less(0, le, %s_%s)) or (WTG(%s_%s)=true and AT_less(0, ls, %s_%s))",
		current, current, jTarget, current, lrtTarget, current, nvATPath)
}
