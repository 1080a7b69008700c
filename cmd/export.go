package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docview/internal/progress"
	"github.com/ziadkadry99/docview/internal/site"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the viewer as a static website",
	Long: `Writes one HTML page per navigation item, each with that item marked active
and its content rendered. The default document is also written as index.html.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("output", "o", "site", "output directory")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	outputDir, _ := cmd.Flags().GetString("output")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exporter := &site.Exporter{
		Source:      a.source,
		Loader:      a.loader,
		OutputDir:   outputDir,
		ProjectName: a.cfg.Title,
		Extension:   a.cfg.Docs.Extension,
		DefaultLink: a.cfg.Docs.DefaultDocument,
		Reporter:    progress.For(os.Stderr),
		Logger:      a.logger,
	}
	pageCount, err := exporter.Generate(ctx)
	if err != nil {
		return fmt.Errorf("exporting site: %w", err)
	}

	fmt.Printf("Static site exported: %s (%d pages)\n", outputDir, pageCount)
	return nil
}
