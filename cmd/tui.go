package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"spyglass/internal/tui"
)

// runTUI opens the interactive search screen. A build still running on quit
// is abandoned; snapshot writes are atomic so the previous one survives.
func runTUI(cmd *cobra.Command) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	selected, err := tui.Run(tui.Config{Service: a.svc, Rebuild: flagRebuild})
	if err != nil {
		return err
	}
	if selected != "" {
		fmt.Println(selected)
	}
	return nil
}
