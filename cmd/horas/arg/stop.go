package arg

import (
	"fmt"
	"log"

	"github.com/dori/horas/internal/timefmt"
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:     "stop",
	Aliases: []string{"out"},
	Short:   "Stop the running work session",
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp(false)
		defer a.Close()

		open, err := a.Tracker.Open()
		if err != nil {
			log.Fatal("Failed to query session:", err)
		}
		if open == nil {
			fmt.Println("No session is running")
			return
		}

		elapsed := nowFunc().UnixMilli() - open.StartMillis
		if err := a.Tracker.Stop(); err != nil {
			log.Fatal("Failed to stop session:", err)
		}

		fmt.Printf("Session stopped after %s\n", timefmt.Elapsed(elapsed))
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
