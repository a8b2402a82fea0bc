package arg

import (
	"fmt"
	"log"

	"github.com/dori/horas/internal/timefmt"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:     "start",
	Aliases: []string{"in"},
	Short:   "Start a work session",
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp(false)
		defer a.Close()

		open, err := a.Tracker.Open()
		if err != nil {
			log.Fatal("Failed to query session:", err)
		}
		if open != nil {
			fmt.Printf("Session already running since %s\n", timefmt.Clock(&open.StartMillis, a.Location))
			return
		}

		started, err := a.Tracker.Start()
		if err != nil {
			log.Fatal("Failed to start session:", err)
		}

		fmt.Printf("Session started at %s\n", timefmt.Clock(&started.StartMillis, a.Location))
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
