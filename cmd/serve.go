package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docview/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the document viewer web server",
	Long: `Starts an HTTP server that renders the viewer page, keeps a live session
per browser tab over a websocket, and exposes the catalog and raw documents.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides server.port)")
	serveCmd.Flags().Bool("open", false, "open the viewer in a browser")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	port := a.cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}

	srv := web.New(web.Config{
		Port:        port,
		AllowAll:    a.cfg.Server.AllowAllOrigins,
		ProjectName: a.cfg.Title,
		DefaultLink: a.cfg.Docs.DefaultDocument,
		Extension:   a.cfg.Docs.Extension,
		RacePolicy:  a.policy,
	}, a.source, a.fetcher, a.loader, a.logger)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	url := fmt.Sprintf("http://localhost:%d/", port)
	fmt.Fprintf(os.Stderr, "docview %s serving %s at %s\n", Version, a.cfg.Docs.Root, url)
	if open, _ := cmd.Flags().GetBool("open"); open {
		go openBrowser(url)
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
