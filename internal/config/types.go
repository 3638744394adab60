package config

// Minimum-time types a stage may declare. A blank min_type in the file is
// normalized to MinTypeMin at load.
const (
	MinTypeMin = "min"
	MinTypeCpn = "cpn"
	MinTypeSaf = "saf"
)

// Config is the top-level structure parsed from a junction YAML file.
type Config struct {
	Junction Junction `yaml:"junction"`
}

// Junction describes one junction's signal topology: the two anchor stages,
// the canonical vehicle skeleton cycle, per-stage properties, and the
// transition table. It is immutable for the duration of a compile.
type Junction struct {
	Name          string       `yaml:"name"`
	VehicleAnchor string       `yaml:"vehicle_anchor"`
	LRTAnchor     string       `yaml:"lrt_anchor"`
	Skeleton      string       `yaml:"skeleton"`
	Stages        []StageProps `yaml:"stages"`
	Transitions   []Transition `yaml:"transitions"`
}

// StageProps holds the recorded properties of a single stage. Only vehicle
// stages normally carry a detector, waterfall level, or sibling priority.
type StageProps struct {
	Name            string   `yaml:"name"`
	MinType         string   `yaml:"min_type"`
	Detector        string   `yaml:"detector"`
	WaterfallLevel  *float64 `yaml:"waterfall_level"`
	SiblingPriority *float64 `yaml:"sibling_priority"` // lower number = higher priority
}

// Transition is one row of the transition table. Rest is the raw
// "rest of skeleton" text: either an end marker (see ParseStageSeq) or the
// stage sequence from the target back to an anchor, dash- or arrow-separated.
type Transition struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Rest string `yaml:"rest"`
}

// Props returns the recorded properties for a stage, or nil when the stage has
// no entry in the stages table. The stages slice stays in file order because
// that order breaks demand-priority ties.
func (j *Junction) Props(name string) *StageProps {
	for i := range j.Stages {
		if j.Stages[i].Name == name {
			return &j.Stages[i]
		}
	}
	return nil
}

// SkeletonSeq returns the parsed canonical skeleton cycle, e.g.
// "A0 - B - C - A0" → [A0 B C A0].
func (j *Junction) SkeletonSeq() []string {
	return ParseStageSeq(j.Skeleton)
}
