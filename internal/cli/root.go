package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "jlogic",
	Short: "jlogic — junction transition logic compiler",
	Long: `jlogic compiles a junction signal plan into transition logic: one boolean
control expression per stage transition, derived from the transition graph,
the LRT stages and the stage detectors.

Compile runs are recorded in ~/.jlogic/history.db (SQLite); --output writes
the compiled rows as a JSON artifact.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(historyCmd)
}
