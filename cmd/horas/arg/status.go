package arg

import (
	"fmt"
	"log"

	"github.com/dori/horas/internal/month"
	"github.com/dori/horas/internal/summary"
	"github.com/dori/horas/internal/timefmt"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running session and the current month's totals",
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp(false)
		defer a.Close()

		now := nowFunc()
		ym := month.Current(now, a.Location)

		entries, err := a.DB.GetRange(ym.FirstEpochDay(), ym.LastEpochDay())
		if err != nil {
			log.Fatal("Failed to load entries:", err)
		}

		open, err := a.Tracker.Open()
		if err != nil {
			log.Fatal("Failed to query session:", err)
		}

		limitMin, err := a.DB.MonthlyLimitMinutes()
		if err != nil {
			log.Fatal("Failed to read limit:", err)
		}

		sum := summary.Summarize(entries)
		total := summary.TotalWithLive(sum, open, now.UnixMilli(), ym, a.Location)

		if open != nil {
			fmt.Printf("Running since %s (%s)\n",
				timefmt.Clock(&open.StartMillis, a.Location),
				timefmt.Elapsed(now.UnixMilli()-open.StartMillis))
		} else {
			fmt.Println("No session running")
		}

		fmt.Printf("%s: %s over %d days\n", ym.Label(), timefmt.Elapsed(total), sum.DaysWorked)

		status := summary.EvalLimit(limitMin, total)
		if status.HasLimit {
			fmt.Printf("Limit %s, remaining %s (%.0f%%)\n",
				timefmt.HoursMinutes(status.LimitMillis),
				timefmt.Elapsed(status.RemainingMillis),
				status.Progress*100)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
