package report

import (
	"time"

	"github.com/signalworks/jlogic/internal/engine"
)

// Artifact is the JSON document written for a compiled junction.
type Artifact struct {
	Junction   string       `json:"junction"`
	CompiledAt time.Time    `json:"compiled_at"`
	Rows       []engine.Row `json:"rows"`
}

// NewArtifact builds an artifact for the given junction, stamped with the
// current time.
func NewArtifact(junction string, rows []engine.Row) *Artifact {
	return &Artifact{
		Junction:   junction,
		CompiledAt: time.Now().UTC().Truncate(time.Second),
		Rows:       rows,
	}
}

// Write writes the artifact to path as pretty-printed JSON.
func (a *Artifact) Write(path string) error {
	return WriteJSON(path, a)
}
