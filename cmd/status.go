package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved index and configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		root := a.cfg.Root
		if root == "" {
			root = "~ (home directory)"
		}
		fmt.Printf("Config:   %s\n", a.cfg.Dir)
		fmt.Printf("Root:     %s\n", root)
		fmt.Printf("Backend:  %s\n", a.cfg.Store)
		fmt.Printf("Snapshot: %s\n", a.svc.Location())

		if !a.svc.LoadPersistedIndex() {
			fmt.Println("Entries:  none (run 'spyglass index')")
			return nil
		}
		fmt.Printf("Entries:  %d\n", a.svc.IndexedCount())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
