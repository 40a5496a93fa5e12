package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kidquest/internal/app"
	"github.com/abhisek/kidquest/internal/geo"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Jump straight into a game",
}

var playMapCmd = &cobra.Command{
	Use:   "map",
	Short: "Play the click-the-country map game",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("mode")
		mode, ok := geo.ParseMode(name)
		if !ok {
			return fmt.Errorf("unknown mode %q (want countries or continents)", name)
		}
		continent, _ := cmd.Flags().GetString("continent")
		return runApp(cmd, func(o *app.Options) {
			o.Start = app.StartMap
			o.MapMode = mode
			o.MapContinent = continent
		})
	},
}

var playBoardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the curriculum board",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(o *app.Options) { o.Start = app.StartBoard })
	},
}

func init() {
	playMapCmd.Flags().String("mode", "countries", "Game mode: countries or continents")
	playMapCmd.Flags().String("continent", geo.AllContinents, "Only ask for regions on this continent")

	playCmd.AddCommand(playMapCmd)
	playCmd.AddCommand(playBoardCmd)
}
