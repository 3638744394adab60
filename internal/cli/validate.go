package cli

import (
	"fmt"

	"github.com/signalworks/jlogic/internal/config"
	"github.com/signalworks/jlogic/internal/engine"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config.yaml>",
	Short: "Validate a junction config and its transition graph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(args[0])
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		out := cmd.OutOrStdout()
		issues := config.Validate(cfg)
		for _, issue := range issues {
			fmt.Fprintln(out, issue)
		}

		// Topology checks need a structurally sound config.
		if len(issues) == 0 {
			j := &cfg.Junction
			g := engine.NewGraph(j.Transitions)
			if err := g.Validate(j.Transitions, j.VehicleAnchor); err != nil {
				fmt.Fprintln(out, err)
				return fmt.Errorf("junction %s has an invalid topology", j.Name)
			}
			fmt.Fprintf(out, "junction %s: config and topology OK\n", j.Name)
			return nil
		}

		return fmt.Errorf("config %s has %d validation error(s)", args[0], len(issues))
	},
}
