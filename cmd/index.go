package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"spyglass/internal/progress"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the index and save a snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		root := a.cfg.Root
		if root == "" {
			root = "~"
		}
		fmt.Printf("Indexing %s...\n", root)
		start := time.Now()

		if !a.svc.StartIndexBuild() {
			return fmt.Errorf("an index build is already running")
		}

		tty := isatty.IsTerminal(os.Stdout.Fd())
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()

		done := make(chan error, 1)
		go func() { done <- a.svc.Wait(context.Background()) }()

	loop:
		for {
			select {
			case <-ctx.Done():
				a.svc.Cancel()
				ctx = context.Background()
			case <-ticker.C:
				if tty {
					fmt.Print("\r" + progressLine(a.svc.Progress()))
				}
			case err := <-done:
				if err != nil {
					return err
				}
				break loop
			}
		}
		if tty {
			fmt.Print("\r\033[K")
		}

		p := a.svc.Progress()
		fmt.Printf("Done in %s\n", time.Since(start).Round(time.Millisecond))
		fmt.Printf("  Folders: %d listed\n", p.IndexedFolders)
		fmt.Printf("  Entries: %d\n", p.TotalFiles)
		fmt.Printf("  Saved:   %s\n", a.svc.Location())
		return nil
	},
}

func progressLine(p progress.Progress) string {
	return fmt.Sprintf("\033[K%d / ~%d folders, %d entries", p.IndexedFolders, p.TotalFolders, p.TotalFiles)
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
