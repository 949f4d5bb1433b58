package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"spyglass/internal/search"
	"spyglass/internal/store"
)

var (
	flagLimit int
	flagBuild bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the saved index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		loaded := !flagBuild && a.svc.LoadPersistedIndex()
		if !loaded {
			fmt.Fprintln(os.Stderr, "Building index...")
			a.svc.StartIndexBuild()
			if err := a.svc.Wait(cmd.Context()); err != nil {
				return err
			}
		}

		// The service caps at the configured limit; --limit narrows further.
		results := a.svc.Search(args[0])
		if flagLimit > 0 && len(results) > flagLimit {
			results = results[:flagLimit]
		}
		printResults(args[0], results)
		return nil
	},
}

var (
	dirColor  = color.New(color.FgBlue, color.Bold)
	pathColor = color.New(color.Faint)
)

func printResults(query string, results []store.Entry) {
	if len(query) < search.MinQueryLen {
		fmt.Fprintf(os.Stderr, "Query must be at least %d characters\n", search.MinQueryLen)
		return
	}
	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "No matches for %q\n", query)
		return
	}
	for _, e := range results {
		if e.IsDirectory {
			dirColor.Print(e.Name + "/")
		} else {
			fmt.Print(e.Name)
		}
		fmt.Print("  ")
		pathColor.Println(e.Path)
	}
}

func init() {
	searchCmd.Flags().IntVarP(&flagLimit, "limit", "n", 0, "maximum results (default from config)")
	searchCmd.Flags().BoolVar(&flagBuild, "build", false, "rebuild the index before searching")
	rootCmd.AddCommand(searchCmd)
}

