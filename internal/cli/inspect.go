package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/signalworks/jlogic/internal/config"
	"github.com/signalworks/jlogic/internal/engine"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <config.yaml>",
	Short: "Show the stages of a junction and their graph relations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(args[0])
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		j := &cfg.Junction
		g := engine.New(j).Graph()
		names := stageNames(j)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Junction %s: %d stages\n\n", j.Name, len(names))

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STAGE\tCLASS\tMIN\tDETECTOR\tOUTGOING\tLRT OUT\tNEAREST LRT")
		for _, name := range names {
			minType := config.MinTypeMin
			detector := "-"
			if p := j.Props(name); p != nil {
				minType = p.MinType
				if p.Detector != "" {
					detector = p.Detector
				}
			}
			nearest := "-"
			if lrt, ok := g.NearestLRT(name); ok {
				nearest = lrt
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				name,
				engine.Classify(name, j.LRTAnchor),
				minType,
				detector,
				joinOrDash(g.Outgoing(name)),
				joinOrDash(g.OutgoingLRTs(name)),
				nearest,
			)
		}
		return w.Flush()
	},
}

// stageNames collects every distinct stage of the junction: skeleton order
// first, then declared stages, then transition endpoints and the anchors.
func stageNames(j *config.Junction) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(n string) {
		if n != "" && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for _, s := range j.SkeletonSeq() {
		add(s)
	}
	for _, s := range j.Stages {
		add(s.Name)
	}
	for _, t := range j.Transitions {
		add(t.From)
		add(t.To)
	}
	add(j.VehicleAnchor)
	add(j.LRTAnchor)
	return names
}

func joinOrDash(list []string) string {
	if len(list) == 0 {
		return "-"
	}
	return strings.Join(list, " ")
}
