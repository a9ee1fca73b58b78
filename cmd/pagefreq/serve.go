package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hyperifyio/pagefreq/internal/app"
	"github.com/hyperifyio/pagefreq/internal/web"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser interface and JSON API",
		Long: `Serve the form at / and the JSON API under /api/v1 until interrupted.
The segmenter dictionary is loaded once at startup and shared by all
requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			setupLogging(cfg.Verbose)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
	cmd.Flags().String("addr", app.DefaultAddr, "Listen address")
	return cmd
}

func runServe(ctx context.Context, cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	svc := web.NewService(a.Analyzer, a.Renderer, &web.Config{
		ListenAddr:     cfg.Addr,
		MaxUploadBytes: 8 << 20,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(svc.ListenAndServe)
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		return svc.Stop()
	})
	return g.Wait()
}
