package cli

import (
	"fmt"
	"log/slog"

	"github.com/signalworks/jlogic/internal/config"
	"github.com/signalworks/jlogic/internal/db"
	"github.com/signalworks/jlogic/internal/engine"
	"github.com/signalworks/jlogic/internal/logging"
	"github.com/signalworks/jlogic/internal/report"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <config.yaml>",
	Short: "Compile a junction config into transition logic rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		noHistory, _ := cmd.Flags().GetBool("no-history")
		dbPath, _ := cmd.Flags().GetString("db")

		log := logging.New(slog.LevelInfo)

		cfgPath := args[0]
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if issues := config.Validate(cfg); len(issues) > 0 {
			for _, issue := range issues {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", issue)
			}
			return fmt.Errorf("config %s has %d validation error(s)", cfgPath, len(issues))
		}

		j := &cfg.Junction
		rows, err := engine.New(j).Compile()
		if err != nil {
			return fmt.Errorf("compile %s: %w", j.Name, err)
		}
		log.Info("junction compiled", "junction", j.Name, "rows", len(rows), "errors", report.ErrorCount(rows))

		report.Render(cmd.OutOrStdout(), j.Name, rows)

		if output != "" {
			if err := report.NewArtifact(j.Name, rows).Write(output); err != nil {
				return fmt.Errorf("write artifact: %w", err)
			}
			log.Info("artifact written", "path", output)
		}

		if !noHistory {
			d, err := openHistory(dbPath)
			if err != nil {
				return err
			}
			defer d.Close()

			runID, err := d.RecordRun(j.Name, cfgPath, toRowRecords(rows))
			if err != nil {
				return fmt.Errorf("record run: %w", err)
			}
			log.Info("run recorded", "run_id", runID)
		}
		return nil
	},
}

func toRowRecords(rows []engine.Row) []db.RowRecord {
	recs := make([]db.RowRecord, 0, len(rows))
	for _, r := range rows {
		rec := db.RowRecord{
			Seq:      r.Seq,
			From:     r.From,
			To:       r.To,
			Template: string(r.Template),
			Logic:    r.Code(),
		}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		}
		recs = append(recs, rec)
	}
	return recs
}

func init() {
	compileCmd.Flags().String("output", "", "Write the compiled rows as a JSON artifact to this path")
	compileCmd.Flags().Bool("no-history", false, "Do not record the run in the history database")
	compileCmd.Flags().String("db", "", "History database path (default ~/.jlogic/history.db)")
}
