package arg

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/dori/horas/internal/month"
	"github.com/dori/horas/internal/timefmt"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <date> <n> <start> [end]",
	Short: "Rewrite an entry's times",
	Long: `Replace the start and end of an existing entry. The entry is picked by
its position in "horas day <date>" (1-based). Times are HH:mm wall-clock
in the app zone; leave the end off to reopen the entry.`,
	Args: cobra.RangeArgs(3, 4),
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp(false)
		defer a.Close()

		day, err := time.ParseInLocation("2006-01-02", args[0], a.Location)
		if err != nil {
			log.Fatal("Invalid date:", err)
		}
		epochDay := month.EpochDay(day, a.Location)

		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			log.Fatal("Invalid entry number:", args[1])
		}

		entries, err := a.DB.GetDayEntries(epochDay)
		if err != nil {
			log.Fatal("Failed to load entries:", err)
		}
		if n > len(entries) {
			log.Fatalf("Day %s has %d entries, asked for %d", args[0], len(entries), n)
		}
		entry := &entries[n-1]

		startMs, err := timefmt.ParseClockOnDay(args[2], epochDay, a.Location)
		if err != nil {
			log.Fatal("Invalid start:", err)
		}

		var endMs *int64
		if len(args) == 4 && args[3] != "" {
			ms, err := timefmt.ParseClockOnDay(args[3], epochDay, a.Location)
			if err != nil {
				log.Fatal("Invalid end:", err)
			}
			endMs = &ms
		}

		if err := a.Tracker.EditTimes(entry, startMs, endMs); err != nil {
			log.Fatal("Failed to update entry:", err)
		}

		if endMs != nil {
			fmt.Printf("Updated %s entry %d to %s-%s\n", args[0], n, args[2], args[3])
		} else {
			fmt.Printf("Updated %s entry %d to %s (open)\n", args[0], n, args[2])
		}
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
