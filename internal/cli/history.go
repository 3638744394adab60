package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/signalworks/jlogic/internal/db"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded compile runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		junction, _ := cmd.Flags().GetString("junction")
		limit, _ := cmd.Flags().GetInt("limit")
		dbPath, _ := cmd.Flags().GetString("db")

		d, err := openHistory(dbPath)
		if err != nil {
			return err
		}
		defer d.Close()

		runs, err := d.ListRuns(junction, limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No compile runs recorded")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tJUNCTION\tROWS\tERRORS\tCREATED\tCONFIG")
		for _, r := range runs {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n", r.ID, r.Junction, r.RowCount, r.ErrorCount, r.CreatedAt, r.ConfigPath)
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the rows of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid run id %q: must be a positive integer", args[0])
		}

		d, err := openHistory(dbPath)
		if err != nil {
			return err
		}
		defer d.Close()

		run, err := d.GetRun(id)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("run %d not found", id)
		}
		rows, err := d.GetRunRows(id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Run %d: junction %s, compiled %s (%s)\n\n", run.ID, run.Junction, run.CreatedAt, run.ConfigPath)

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SEQ\tFROM\tTO\tTEMPLATE\tCODE")
		for _, r := range rows {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.Seq, r.From, r.To, r.Template, r.Logic)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if run.ErrorCount > 0 {
			fmt.Fprintf(out, "\n%d of %d rows failed\n", run.ErrorCount, run.RowCount)
		}
		return nil
	},
}

// openHistory opens the history database, falling back to the default path
// when none is given, and applies migrations.
func openHistory(path string) (*db.DB, error) {
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	d, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := d.Migrate(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func init() {
	historyCmd.Flags().String("junction", "", "Only list runs for this junction")
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to list (0 for all)")
	historyCmd.Flags().String("db", "", "History database path (default ~/.jlogic/history.db)")
	historyShowCmd.Flags().String("db", "", "History database path (default ~/.jlogic/history.db)")

	historyCmd.AddCommand(historyShowCmd)
}
