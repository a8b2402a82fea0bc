package arg

import (
	"fmt"
	"log"
	"os"

	"github.com/dori/horas/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportMonth string
	exportShift int
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a month's entries as CSV",
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp(false)
		defer a.Close()

		ym := selectedMonth(a, exportMonth, exportShift)

		entries, err := a.DB.GetRange(ym.FirstEpochDay(), ym.LastEpochDay())
		if err != nil {
			log.Fatal("Failed to load entries:", err)
		}

		content := export.CSV(entries, a.Location)

		if exportOut == "" {
			fmt.Print(content)
			return
		}

		if err := os.WriteFile(exportOut, []byte(content), 0644); err != nil {
			log.Fatal("Failed to write file:", err)
		}
		fmt.Printf("Wrote %s (%d entries)\n", exportOut, len(entries))
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportMonth, "month", "", "month to export (YYYY-MM)")
	exportCmd.Flags().IntVar(&exportShift, "shift", 0, "months back (-) or forward (+) from the current month")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
