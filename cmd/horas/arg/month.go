package arg

import (
	"fmt"
	"log"

	"github.com/dori/horas/internal/summary"
	"github.com/dori/horas/internal/timefmt"
	"github.com/spf13/cobra"
)

var (
	monthFlag  string
	monthShift int
)

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show the summary for a month",
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp(false)
		defer a.Close()

		ym := selectedMonth(a, monthFlag, monthShift)

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

		nowMs := nowFunc().UnixMilli()
		sum := summary.Summarize(entries)
		total := summary.TotalWithLive(sum, open, nowMs, ym, a.Location)

		fmt.Println(ym.Label())
		fmt.Printf("  Total:  %s (%s)\n", timefmt.Elapsed(total), timefmt.DecimalHours(int(total/60_000)))
		fmt.Printf("  Days:   %d\n", sum.DaysWorked)

		status := summary.EvalLimit(limitMin, total)
		if status.HasLimit {
			fmt.Printf("  Limit:  %s\n", timefmt.HoursMinutes(status.LimitMillis))
			fmt.Printf("  Left:   %s (%.0f%% used)\n",
				timefmt.Elapsed(status.RemainingMillis), status.Progress*100)
		}
	},
}

func init() {
	monthCmd.Flags().StringVar(&monthFlag, "month", "", "month to show (YYYY-MM)")
	monthCmd.Flags().IntVar(&monthShift, "shift", 0, "months back (-) or forward (+) from the current month")
	rootCmd.AddCommand(monthCmd)
}
