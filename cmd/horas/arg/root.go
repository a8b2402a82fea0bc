package arg

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dori/horas/internal/app"
	"github.com/dori/horas/internal/month"
	"github.com/spf13/cobra"
)

var configPath string

var nowFunc = time.Now

var rootCmd = &cobra.Command{
	Use:   "horas",
	Short: "horas is a personal monthly hour tracker",
	Long: `horas records work sessions, aggregates them into monthly totals,
watches an optional monthly hour limit, and exports CSV reports.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openApp opens config, database and notifier. Commands that hold the
// terminal take the single-instance lock; one-shot commands do not.
func openApp(lock bool) *app.App {
	a, err := app.New(app.Options{ConfigPath: configPath, Lock: lock})
	if err != nil {
		log.Fatal("Failed to open application:", err)
	}
	return a
}

// selectedMonth resolves the --month / --shift pair shared by the
// reporting commands. --month wins when both are given.
func selectedMonth(a *app.App, monthFlag string, shift int) month.YearMonth {
	if monthFlag != "" {
		ym, err := month.Parse(monthFlag)
		if err != nil {
			log.Fatal("Invalid --month:", err)
		}
		return ym
	}
	return month.Current(nowFunc(), a.Location).Shift(shift)
}
