package arg

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/dori/horas/internal/alert"
	"github.com/spf13/cobra"
)

var checkInterval time.Duration

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the monthly-limit notification checks once",
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp(false)
		defer a.Close()

		checker := alert.NewChecker(a.DB, a.Notifier, a.Location, nil)
		if err := checker.RunOnce(); err != nil {
			log.Fatal("Check failed:", err)
		}
	},
}

var checkdCmd = &cobra.Command{
	Use:   "checkd",
	Short: "Run the monthly-limit notification checks periodically",
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp(true)
		defer a.Close()

		interval := checkInterval
		if interval <= 0 {
			d, err := a.Config.Interval()
			if err != nil {
				log.Fatal("Invalid interval:", err)
			}
			interval = d
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Checking every %s\n", interval)
		checker := alert.NewChecker(a.DB, a.Notifier, a.Location, nil)
		checker.Run(ctx, interval)
	},
}

func init() {
	checkdCmd.Flags().DurationVar(&checkInterval, "interval", 0, "override the configured check interval")
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(checkdCmd)
}
