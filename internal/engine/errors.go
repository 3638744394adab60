package engine

import "fmt"

// TopologyError reports a dead end in the transition graph: a stage that
// appears as a target but never as a source. Compilation stops on the
// first one found because path building cannot trust the graph after it.
type TopologyError struct {
	Stage string
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("topology dead end: stage %q appears as a target but has no outgoing transitions", e.Stage)
}

// UnknownTransitionError reports a class pair no template covers, such as
// a vehicle stage transitioning straight into a Lig stage. It fails only
// the row that carries it.
type UnknownTransitionError struct {
	From, To           string
	FromClass, ToClass Class
}

func (e *UnknownTransitionError) Error() string {
	return fmt.Sprintf("no template for transition %s (%s) -> %s (%s)", e.From, e.FromClass, e.To, e.ToClass)
}
