package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/page"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/internal/store"
	"github.com/Zachkp/portfolio/internal/theme"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Single-page portfolio site",
	Long:  "Serves a single-page portfolio with scroll reveals, a project overlay, a contact form and a dark/light display mode.",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "portfolio.yaml", "Path to the YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	tables, err := loadContent(cfg.ContentPath)
	if err != nil {
		return err
	}

	opts := page.Options{
		Threshold:   cfg.RevealThreshold,
		Latency:     cfg.SubmitLatency,
		DefaultDark: cfg.DefaultDark,
	}

	var cleanup func(context.Context, time.Time)
	if cfg.PreferenceDB != "" {
		db, err := store.Open(cfg.PreferenceDB)
		if err != nil {
			return err
		}
		defer db.Close()
		log.Printf("Persisting display mode in %s", cfg.PreferenceDB)

		opts.Preferences = func(visitor string) theme.Store { return db.Visitor(visitor) }
		cleanup = func(ctx context.Context, now time.Time) {
			if _, err := db.Cleanup(ctx, cfg.PreferenceCutoff(now)); err != nil {
				log.Printf("Error cleaning up preferences: %v", err)
			}
		}
	}

	views := page.NewRegistry(tables, opts, cfg.SessionTTL)
	srv, err := server.New(cfg.Addr(), views)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error { return views.Run(ctx, cfg.SweepInterval, cleanup) })
	return g.Wait()
}

func loadContent(path string) (*content.Tables, error) {
	if path == "" {
		return content.Default()
	}
	log.Printf("Loading content from %s", path)
	return content.LoadFile(path)
}
