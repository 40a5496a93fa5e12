package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidquest/internal/geo"
)

var geoCmd = &cobra.Command{
	Use:   "geo",
	Short: "Inspect map data and past map games",
}

var geoContinentsCmd = &cobra.Command{
	Use:   "continents",
	Short: "List the continent filters available in the map data",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		for _, c := range geo.Continents(d.regions) {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

var geoPoolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Print the target pool for a mode and continent filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("mode")
		mode, ok := geo.ParseMode(name)
		if !ok {
			return fmt.Errorf("unknown mode %q (want countries or continents)", name)
		}
		continent, _ := cmd.Flags().GetString("continent")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		pool := geo.BuildTargetPool(d.regions, mode, continent)
		out := cmd.OutOrStdout()
		for _, n := range pool {
			fmt.Fprintln(out, n)
		}
		fmt.Fprintf(out, "\n%d %s\n", len(pool), mode.Noun())
		return nil
	},
}

var geoLocateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Show which region contains a longitude/latitude",
	RunE: func(cmd *cobra.Command, args []string) error {
		lon, _ := cmd.Flags().GetFloat64("lon")
		lat, _ := cmd.Flags().GetFloat64("lat")
		merged, _ := cmd.Flags().GetBool("continents")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		regions := d.regions
		if merged {
			regions = geo.MergeContinents(regions, d.logger)
		}
		r, ok := geo.Locate(regions, lon, lat)
		if !ok {
			return fmt.Errorf("no region at %.4f, %.4f", lon, lat)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", r.Name, r.Continent)
		return nil
	},
}

var geoHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently finished map games",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()
		if d.results == nil {
			return errors.New("history is not kept in ephemeral mode")
		}

		results, err := d.results.Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No finished map games yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-10s  %-16s  %7s  %6s\n",
			"#", "Finished", "Mode", "Continent", "Score", "Rounds")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for _, r := range results {
			fmt.Fprintf(out, "%-5d  %-19s  %-10s  %-16s  %3d/%-3d  %6d\n",
				r.Sequence,
				r.FinishedAt.Local().Format("2006-01-02 15:04:05"),
				r.Mode,
				r.ContinentFilter,
				r.Score, r.Total,
				r.Rounds,
			)
		}
		return nil
	},
}

func init() {
	geoPoolCmd.Flags().String("mode", "countries", "Game mode: countries or continents")
	geoPoolCmd.Flags().String("continent", geo.AllContinents, "Continent filter")
	geoLocateCmd.Flags().Float64("lon", 0, "Longitude")
	geoLocateCmd.Flags().Float64("lat", 0, "Latitude")
	geoLocateCmd.Flags().Bool("continents", false, "Match against merged continents")
	geoHistoryCmd.Flags().Int("limit", 20, "Maximum number of games to show")

	geoCmd.AddCommand(geoContinentsCmd)
	geoCmd.AddCommand(geoPoolCmd)
	geoCmd.AddCommand(geoLocateCmd)
	geoCmd.AddCommand(geoHistoryCmd)
}
