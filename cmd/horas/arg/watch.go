package arg

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/horas/internal/ui"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live month view with a running clock",
	Run: func(cmd *cobra.Command, args []string) {
		a := openApp(true)
		defer a.Close()

		m := ui.NewWatchModel(a.DB, a.Tracker, a.Location)
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			log.Fatal("Watch failed:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
