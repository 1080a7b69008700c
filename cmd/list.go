package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docview/internal/viewer"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the navigation menu",
	Long:  `Loads the catalog and prints every navigation item with its link, in menu order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		entries, err := a.source.Entries(context.Background())
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		items := viewer.BuildNavigation(entries, a.cfg.Docs.Extension)
		if len(items) == 0 {
			fmt.Fprintln(os.Stderr, "No documents found.")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TITLE\tLINK")
		for _, it := range items {
			fmt.Fprintf(tw, "%s\t%s\n", it.Title, it.Link)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
