package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docview/internal/catalog"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Write the catalog as a JSON manifest",
	Long: `Writes the catalog as a JSON array of {title, link} objects, the format read
by the manifest catalog source. With --watch the manifest is rewritten
whenever the documents directory changes.`,
	RunE: runManifest,
}

func init() {
	manifestCmd.Flags().StringP("output", "o", "", "output file (defaults to stdout)")
	manifestCmd.Flags().Bool("watch", false, "regenerate when the documents directory changes")
	rootCmd.AddCommand(manifestCmd)
}

func runManifest(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	output, _ := cmd.Flags().GetString("output")
	watch, _ := cmd.Flags().GetBool("watch")

	var last []byte
	write := func(ctx context.Context) error {
		entries, err := a.source.Entries(ctx)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		data, err := catalog.EncodeManifest(entries)
		if err != nil {
			return err
		}
		// An unchanged manifest is not rewritten, so writing it inside the
		// watched directory does not retrigger the watch.
		if bytes.Equal(data, last) {
			return nil
		}
		last = data

		if output == "" {
			_, err = fmt.Fprintln(os.Stdout, string(data))
			return err
		}
		if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing manifest: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Manifest written: %s (%d documents)\n", output, len(entries))
		return nil
	}

	if !watch {
		return write(context.Background())
	}
	if a.cfg.IsRemote() {
		return fmt.Errorf("--watch needs a local docs.root, got %s", a.cfg.Docs.Root)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := write(ctx); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Watching %s for changes, press Ctrl+C to stop\n", a.cfg.Docs.Root)
	return catalog.Watch(ctx, a.cfg.Docs.Root, catalog.DefaultDebounce, a.logger, func() {
		if err := write(ctx); err != nil {
			a.logger.Error("regenerating manifest", zap.Error(err))
		}
	})
}
