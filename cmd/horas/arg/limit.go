package arg

import (
	"fmt"
	"log"
	"strconv"

	"github.com/dori/horas/internal/timefmt"
	"github.com/spf13/cobra"
)

var limitCmd = &cobra.Command{
	Use:   "limit [minutes]",
	Short: "Show or set the monthly limit in minutes (0 = no limit)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp(false)
		defer a.Close()

		if len(args) == 0 {
			minutes, err := a.DB.MonthlyLimitMinutes()
			if err != nil {
				log.Fatal("Failed to read limit:", err)
			}
			if minutes <= 0 {
				fmt.Println("No monthly limit set")
				return
			}
			fmt.Printf("Monthly limit: %d min (%s)\n", minutes, timefmt.DecimalHours(minutes))
			return
		}

		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatal("Invalid minutes:", err)
		}

		if err := a.DB.SetMonthlyLimitMinutes(minutes); err != nil {
			log.Fatal("Failed to store limit:", err)
		}

		if minutes <= 0 {
			fmt.Println("Monthly limit cleared")
			return
		}
		fmt.Printf("Monthly limit set to %d min (%s)\n", minutes, timefmt.DecimalHours(minutes))
	},
}

func init() {
	rootCmd.AddCommand(limitCmd)
}
