package arg

import (
	"fmt"
	"log"
	"time"

	"github.com/dori/horas/internal/month"
	"github.com/dori/horas/internal/timefmt"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <date> <start> [end]",
	Short: "Backfill an entry for a day",
	Long: `Record a past session manually. The date is YYYY-MM-DD and the times
are HH:mm wall-clock in the app zone. Leave the end off to file the
entry as still open.`,
	Args: cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp(false)
		defer a.Close()

		day, err := time.ParseInLocation("2006-01-02", args[0], a.Location)
		if err != nil {
			log.Fatal("Invalid date:", err)
		}
		epochDay := month.EpochDay(day, a.Location)

		startMs, err := timefmt.ParseClockOnDay(args[1], epochDay, a.Location)
		if err != nil {
			log.Fatal("Invalid start:", err)
		}

		var endMs *int64
		if len(args) == 3 && args[2] != "" {
			ms, err := timefmt.ParseClockOnDay(args[2], epochDay, a.Location)
			if err != nil {
				log.Fatal("Invalid end:", err)
			}
			endMs = &ms
		}

		entry, err := a.Tracker.Backfill(epochDay, startMs, endMs)
		if err != nil {
			log.Fatal("Failed to create entry:", err)
		}

		if entry.EndMillis != nil {
			fmt.Printf("Added %s %s-%s (%s)\n", args[0], args[1], args[2],
				timefmt.Elapsed(entry.DurationMillis()))
		} else {
			fmt.Printf("Added %s %s (open)\n", args[0], args[1])
		}
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
