package cmd

import (
	"github.com/abhisek/kidquest/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kidquest",
	Short: "Curriculum quests and map games for kids",
	Long: "KidQuest is a terminal learning app: a gated maths curriculum where each " +
		"challenge unlocks the next, plus a click-the-country geography game.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides KIDQUEST_DB env var)")
	pf.String("subject", "", "Curriculum subject (overrides KIDQUEST_SUBJECT)")
	pf.Int("year", 0, "Curriculum school year (overrides KIDQUEST_YEAR)")
	pf.String("curriculum", "", "Load the curriculum from a YAML file")
	pf.String("geodata", "", "Load map regions from a GeoJSON file")
	pf.Bool("ephemeral", false, "Keep progress in memory only")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(curriculumCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(geoCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then KIDQUEST_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
