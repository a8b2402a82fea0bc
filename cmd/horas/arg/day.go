package arg

import (
	"fmt"
	"log"
	"time"

	"github.com/dori/horas/internal/month"
	"github.com/dori/horas/internal/summary"
	"github.com/dori/horas/internal/timefmt"
	"github.com/spf13/cobra"
)

var dayCmd = &cobra.Command{
	Use:   "day [date]",
	Short: "List the entries of a day",
	Long: `Show every entry filed under a calendar day (YYYY-MM-DD), numbered
for use with "horas edit". Defaults to today.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp(false)
		defer a.Close()

		epochDay := month.EpochDay(nowFunc(), a.Location)
		if len(args) == 1 {
			day, err := time.ParseInLocation("2006-01-02", args[0], a.Location)
			if err != nil {
				log.Fatal("Invalid date:", err)
			}
			epochDay = month.EpochDay(day, a.Location)
		}

		entries, err := a.DB.GetDayEntries(epochDay)
		if err != nil {
			log.Fatal("Failed to load entries:", err)
		}

		fmt.Println(timefmt.Day(epochDay))
		if len(entries) == 0 {
			fmt.Println("  no entries")
			return
		}

		for i, e := range entries {
			end := timefmt.Clock(e.EndMillis, a.Location)
			if end == "" {
				fmt.Printf("  %d. %s-      (open)\n", i+1, timefmt.Clock(&e.StartMillis, a.Location))
				continue
			}
			fmt.Printf("  %d. %s-%s (%s)\n", i+1,
				timefmt.Clock(&e.StartMillis, a.Location), end,
				timefmt.Elapsed(e.DurationMillis()))
		}

		sum := summary.Summarize(entries)
		fmt.Printf("  Total: %s\n", timefmt.Elapsed(sum.TotalMillis))
	},
}

func init() {
	rootCmd.AddCommand(dayCmd)
}
