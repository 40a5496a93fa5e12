package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidquest/internal/geo"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show curriculum progress and best map scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		board := d.progress.Board(ctx)

		done, total := board.Counts()
		fmt.Fprintf(out, "Curriculum (%s, year %d)\n", board.Subject, board.Year)
		fmt.Fprintf(out, "  Challenges completed: %d/%d\n", done, total)
		for _, cat := range board.Categories {
			topics := 0
			for _, t := range cat.Topics {
				if t.Complete {
					topics++
				}
			}
			fmt.Fprintf(out, "  %s %-42s %d/%d topics\n", categoryIcon(cat), cat.Category.Title, topics, len(cat.Topics))
		}

		if d.results == nil {
			return nil
		}
		fmt.Fprintln(out, "\nBest map scores")
		for _, mode := range []geo.Mode{geo.ModeCountries, geo.ModeContinents} {
			best, ok, err := d.results.Best(ctx, string(mode), geo.AllContinents)
			if err != nil {
				return fmt.Errorf("query best %s score: %w", mode, err)
			}
			if !ok {
				fmt.Fprintf(out, "  %-10s  not played yet\n", mode)
				continue
			}
			fmt.Fprintf(out, "  %-10s  %d/%d in %d rounds\n", mode, best.Score, best.Total, best.Rounds)
		}
		return nil
	},
}
