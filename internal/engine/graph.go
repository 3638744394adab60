package engine

import "github.com/signalworks/jlogic/internal/config"

// Graph is the directed transition topology of a junction. Adjacency keeps
// the order transitions appear in the config, with duplicate edges dropped,
// so every walk over it is deterministic.
type Graph struct {
	next map[string][]string
}

// NewGraph builds the adjacency from the config's transition list. Every
// source stage gets an entry even when all its edges are duplicates.
func NewGraph(transitions []config.Transition) *Graph {
	g := &Graph{next: make(map[string][]string, len(transitions))}
	for _, t := range transitions {
		if _, ok := g.next[t.From]; !ok {
			g.next[t.From] = []string{}
		}
		if !contains(g.next[t.From], t.To) {
			g.next[t.From] = append(g.next[t.From], t.To)
		}
	}
	return g
}

// Outgoing returns the ordered targets reachable from stage in one hop.
func (g *Graph) Outgoing(stage string) []string {
	return g.next[stage]
}

// HasOutgoing reports whether stage is the source of any transition.
func (g *Graph) HasOutgoing(stage string) bool {
	_, ok := g.next[stage]
	return ok
}

// OutgoingLRTs returns the LRT stages directly reachable from stage,
// in adjacency order.
func (g *Graph) OutgoingLRTs(stage string) []string {
	var lrts []string
	for _, to := range g.next[stage] {
		if config.IsLRTName(to) {
			lrts = append(lrts, to)
		}
	}
	return lrts
}

// NearestLRT finds the closest LRT stage reachable from start, breadth
// first over outgoing transitions. The start stage itself is not a
// candidate, and LRT stages end their branch: the search never walks
// through one. Ties at equal depth go to the first stage discovered.
func (g *Graph) NearestLRT(start string) (string, bool) {
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range g.next[cur] {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			if config.IsLRTName(nb) {
				return nb, true
			}
			queue = append(queue, nb)
		}
	}
	return "", false
}

// Validate checks that the graph is closed: every transition target other
// than the vehicle anchor must itself have outgoing transitions.
// Transitions are checked in config order and the first dead end wins.
func (g *Graph) Validate(transitions []config.Transition, vehicleAnchor string) error {
	for _, t := range transitions {
		if t.To == vehicleAnchor {
			continue
		}
		if !g.HasOutgoing(t.To) {
			return &TopologyError{Stage: t.To}
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
