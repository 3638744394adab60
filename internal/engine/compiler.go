package engine

import (
	"fmt"
	"sort"

	"github.com/signalworks/jlogic/internal/config"
)

// Compiler turns a junction's transitions into logic rows. Construction
// derives the transition graph once; a compile call mutates nothing, so a
// Compiler is safe to reuse and to share.
type Compiler struct {
	j *config.Junction
	g *Graph
}

// New builds a compiler over the junction.
func New(j *config.Junction) *Compiler {
	return &Compiler{j: j, g: NewGraph(j.Transitions)}
}

// Graph exposes the derived topology for read-only queries.
func (c *Compiler) Graph() *Graph {
	return c.g
}

// class wraps Classify with the junction's LRT anchor baked in.
func (c *Compiler) class(stage string) Class {
	return Classify(stage, c.j.LRTAnchor)
}

// Compile validates the topology and compiles every transition, in input
// order, to one row each. A topology dead end is fatal and yields no rows.
// Any per-row failure lands on its row and the batch continues. Numbering
// starts at 2.
func (c *Compiler) Compile() ([]Row, error) {
	if err := c.g.Validate(c.j.Transitions, c.j.VehicleAnchor); err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(c.j.Transitions))
	for i, t := range c.j.Transitions {
		row := Row{Seq: i + 2, From: t.From, To: t.To}
		row.Template, row.Logic, row.Err = c.compileOne(t)
		rows = append(rows, row)
	}
	return rows, nil
}

// compileOne compiles a single transition. The template letter is resolved
// first so even a failed row records which shape it was headed for.
func (c *Compiler) compileOne(t config.Transition) (Template, string, error) {
	fromClass, toClass := c.class(t.From), c.class(t.To)
	tmpl, ok := templateFor(fromClass, toClass)
	if !ok {
		return "", "", &UnknownTransitionError{From: t.From, To: t.To, FromClass: fromClass, ToClass: toClass}
	}
	tail, err := transitionTail(t)
	if err != nil {
		return tmpl, "", err
	}
	logic, err := c.dispatch(tmpl, t, tail)
	if err != nil {
		return tmpl, "", err
	}
	return tmpl, logic, nil
}

// transitionTail parses a transition's rest-of-skeleton and strips the
// leading element, which by convention repeats the transition's target. A
// non-empty sequence starting with anything else is malformed.
func transitionTail(t config.Transition) ([]string, error) {
	seq := config.ParseStageSeq(t.Rest)
	if len(seq) == 0 {
		return nil, nil
	}
	if seq[0] != t.To {
		return nil, fmt.Errorf("rest of skeleton for %s -> %s starts with %q, want the target", t.From, t.To, seq[0])
	}
	return seq[1:], nil
}

func (c *Compiler) dispatch(tmpl Template, t config.Transition, tail []string) (string, error) {
	gt := c.gtTerm(t.From)
	demand := c.demandString(t.To, t.From)

	switch tmpl {
	case TemplateF:
		return renderF(demand), nil

	case TemplateA:
		return c.compileVehicleMove(t, tail, gt, demand)

	case TemplateB:
		nv := c.nextVehicle(tail)
		wtgRest := "DQ_" + c.j.VehicleAnchor
		if s := c.tailString(tail); s != "" {
			wtgRest = "DQ_" + s
		}
		return renderB(t.From, t.To, gt, wtgRest, jMarker(t.To), c.suffixed(nv)+"_"+c.threatMarker(nv)), nil

	case TemplateC:
		return renderC(t.From, c.j.LRTAnchor, gt, jMarker(c.j.LRTAnchor)), nil

	case TemplateD:
		nearest, ok := c.g.NearestLRT(t.To)
		if !ok {
			nearest = c.j.LRTAnchor
		}
		atTarget := c.suffixed(t.To)
		wtgPath := t.To
		if len(tail) > 0 {
			wtgPath = atTarget + "_" + c.tailString(tail)
		}
		return renderD(t.From, t.To, atTarget+"_"+jMarker(nearest), wtgPath, demand), nil

	case TemplateE:
		nv := c.nextVehicle(tail)
		atPath := t.To + "_" + c.suffixed(nv) + "_" + c.threatMarker(nv)
		wtgPath := t.To + "_" + c.j.VehicleAnchor
		if s := c.tailString(tail); s != "" {
			wtgPath = t.To + "_" + s
		}
		return renderE(t.From, t.To, gt, atPath, wtgPath), nil

	case TemplateG:
		jTarget := jMarker(t.To)
		nv := c.nextVehicleInSkeleton(t.From)
		return renderG(t.From, t.To, jTarget, c.suffixed(nv)+"_"+jTarget), nil
	}

	return "", fmt.Errorf("unhandled template %s", tmpl)
}

// gtTerm names the green-time minimum of a stage: the cpn form reads as a
// function call, the plain form as a named constant.
func (c *Compiler) gtTerm(stage string) string {
	if p := c.j.Props(stage); p != nil && p.MinType == config.MinTypeCpn {
		return fmt.Sprintf("GTcpmin(%s)", stage)
	}
	return "GTmin_" + stage
}

// nextVehicle is the vehicle stage entered after a transition's target:
// the first tail element, or the vehicle anchor when the tail is empty.
func (c *Compiler) nextVehicle(tail []string) string {
	if len(tail) > 0 {
		return tail[0]
	}
	return c.j.VehicleAnchor
}

// threatMarker names the j-detector of the LRT threatening a vehicle
// stage: its first outgoing LRT, or the LRT anchor when it has none.
func (c *Compiler) threatMarker(stage string) string {
	if lrts := c.g.OutgoingLRTs(stage); len(lrts) > 0 {
		return jMarker(lrts[0])
	}
	return jMarker(c.j.LRTAnchor)
}

// compileVehicleMove assembles template A, the vehicle-to-vehicle form.
// The AT window is anchored on the LRT nearest to the target; when the
// target reaches none the search restarts from the current stage and the
// AT_greater branch tightens. A junction where neither reaches an LRT
// cannot express the window at all and fails the row.
func (c *Compiler) compileVehicleMove(t config.Transition, tail []string, gt, demand string) (string, error) {
	atTarget := c.suffixed(t.To)

	nearest, ok := c.g.NearestLRT(t.To)
	hasOutgoing := len(c.g.OutgoingLRTs(t.To)) > 0
	if !ok {
		nearest, ok = c.g.NearestLRT(t.From)
		hasOutgoing = false
	}
	if !ok {
		return "", fmt.Errorf("no LRT stage reachable from %s or %s", t.To, t.From)
	}

	bypass, err := c.bypassPath(t.From, c.bypassLRT(t.From, nearest))
	if err != nil {
		return "", err
	}

	force := t.To
	if len(tail) > 0 {
		force = atTarget + "_" + c.tailString(tail)
	}

	return renderA(aParts{
		current:        t.From,
		gtFunc:         gt,
		demand:         demand,
		atTarget:       atTarget,
		atJL:           jMarker(nearest),
		bypass:         bypass,
		force:          force,
		hasOutgoingLRT: hasOutgoing,
	}), nil
}

// bypassLRT picks the LRT named in template A's bypass WTG: the first
// non-anchor LRT directly reachable from the current stage, else its
// first outgoing LRT, else the nearest-LRT result, else the anchor.
func (c *Compiler) bypassLRT(from, nearest string) string {
	lrts := c.g.OutgoingLRTs(from)
	for _, l := range lrts {
		if l != c.j.LRTAnchor {
			return l
		}
	}
	if len(lrts) > 0 {
		return lrts[0]
	}
	if nearest != "" {
		return nearest
	}
	return c.j.LRTAnchor
}

// bypassPath builds everything after "current_" in template A's bypass
// WTG. The anchor needs no queue discharge; a non-anchor LRT carries a DQ
// marker and the queue path behind it, read from the transition records
// that describe it.
func (c *Compiler) bypassPath(from, lrt string) (string, error) {
	va := c.j.VehicleAnchor
	if lrt == c.j.LRTAnchor {
		return lrt, nil
	}

	// The recorded transition current -> lrt carries the queue path.
	if t, ok := c.findTransition(from, lrt); ok {
		tail, err := transitionTail(t)
		if err != nil {
			return "", err
		}
		if s := c.tailString(tail); s != "" {
			return lrt + "_DQ_" + s, nil
		}
		return lrt + "_DQ_" + va, nil
	}

	// Otherwise derive it from where the LRT discharges: its first
	// vehicle-classified successor and that successor's own record.
	for _, nb := range c.g.Outgoing(lrt) {
		if config.IsLRTName(nb) || config.IsLigName(nb) {
			continue
		}
		if t, ok := c.findTransition(lrt, nb); ok {
			tail, err := transitionTail(t)
			if err != nil {
				return "", err
			}
			nvSfx := c.suffixed(nb)
			if s := c.tailString(tail); s != "" {
				return lrt + "_DQ_" + nvSfx + "_" + s, nil
			}
			return lrt + "_DQ_" + nvSfx + "_" + va, nil
		}
		break
	}

	return lrt + "_DQ_" + va, nil
}

// findTransition returns the first recorded transition from -> to, in
// file order.
func (c *Compiler) findTransition(from, to string) (config.Transition, bool) {
	for _, t := range c.j.Transitions {
		if t.From == from && t.To == to {
			return t, true
		}
	}
	return config.Transition{}, false
}

// nextVehicleInSkeleton picks, for LRT chaining, the vehicle stage that
// follows the LRT in the canonical skeleton cycle rather than just any
// graph neighbour. Candidates are the LRT's vehicle-classified successors
// excluding the vehicle anchor, ordered by first appearance in the
// skeleton; stages absent from the skeleton sort last, and adjacency
// order breaks remaining ties. The anchor is the fallback when no
// candidate exists.
func (c *Compiler) nextVehicleInSkeleton(lrt string) string {
	va := c.j.VehicleAnchor
	var candidates []string
	for _, nb := range c.g.Outgoing(lrt) {
		if config.IsLRTName(nb) || config.IsLigName(nb) || nb == va {
			continue
		}
		candidates = append(candidates, nb)
	}
	if len(candidates) == 0 {
		return va
	}

	seq := c.j.SkeletonSeq()
	pos := make(map[string]int, len(seq))
	for i, s := range seq {
		if _, ok := pos[s]; !ok {
			pos[s] = i
		}
	}
	at := func(s string) int {
		if p, ok := pos[s]; ok {
			return p
		}
		return len(seq)
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return at(candidates[a]) < at(candidates[b])
	})
	return candidates[0]
}
