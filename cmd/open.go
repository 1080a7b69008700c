package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docview/internal/site"
	"github.com/ziadkadry99/docview/internal/viewer"
)

var openCmd = &cobra.Command{
	Use:   "open [link]",
	Short: "Render a document to stdout",
	Long: `Selects a document the way the viewer does and prints the resulting content
region as HTML. Without a link the default document is opened. A document
that fails to load prints the viewer's error content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().Bool("page", false, "print a complete HTML page including the navigation")
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	link := ""
	if len(args) == 1 {
		link = args[0]
	}

	ctx := context.Background()
	entries, err := a.source.Entries(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	surface := viewer.NewMemorySurface("")
	ctrl := viewer.NewController(surface, a.loader, a.controllerOptions(link)...)
	if !ctrl.Start(ctx, entries) {
		if link == "" {
			link = a.cfg.Docs.DefaultDocument
		}
		return fmt.Errorf("%w: %s", viewer.ErrUnknownItem, link)
	}
	ctrl.Wait()

	if page, _ := cmd.Flags().GetBool("page"); page {
		return site.RenderPage(os.Stdout, surface.Snapshot(), site.PageOptions{
			ProjectName: a.cfg.Title,
		})
	}
	fmt.Println(surface.Content())
	return nil
}
