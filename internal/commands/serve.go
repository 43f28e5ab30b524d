package commands

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

	"github.com/shyamraj/portfolio/internal/analytics"
	"github.com/shyamraj/portfolio/internal/config"
	"github.com/shyamraj/portfolio/internal/content"
	"github.com/shyamraj/portfolio/internal/web"
)

var withFunctionFlag bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio site",
	Long: `Serve the portfolio page, its HTMX fragments and, when analytics is
enabled, the privacy page and admin dashboard.

With --with-function the refine-message function is served locally at
/functions/v1/refine-message and the refiner points at it unless an
endpoint is configured.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), withFunctionFlag)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&withFunctionFlag, "with-function", false, "Serve the refine-message function locally")
}

// serverConfig turns the loaded settings into the web server's config.
// The returned cleanup releases what was opened.
func serverConfig(cfg *config.Config, withFunction bool) (web.Config, func(), error) {
	if withFunction {
		cfg.Function.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return web.Config{}, nil, err
	}

	c, err := content.Load(cfg.Content.File)
	if err != nil {
		return web.Config{}, nil, err
	}

	wc := web.Config{
		Addr:      fmt.Sprintf(":%d", cfg.Server.Port),
		Content:   c,
		Recipient: cfg.Refiner.FallbackRecipient,
		Admin: web.AdminCredentials{
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
		},
	}

	if cfg.Function.Enabled {
		if cfg.Refiner.PublicKey == "" {
			key, err := analytics.RandomToken()
			if err != nil {
				return web.Config{}, nil, err
			}
			cfg.Refiner.PublicKey = key
		}
		if cfg.Refiner.Endpoint == "" {
			cfg.Refiner.Endpoint = fmt.Sprintf("http://127.0.0.1:%d/functions/v1", cfg.Server.Port)
		}
		wc.Function = buildRewriter(cfg)
		wc.PublicKey = cfg.Refiner.PublicKey
		wc.FunctionOrigins = cfg.Function.AllowedOrigins
		log.Printf("Refine function served at /functions/v1/refine-message (model %s)", cfg.Function.Model)
	}
	wc.Refiner = buildRefiner(cfg)

	cleanup := func() {}
	if cfg.Analytics.Enabled {
		tracker, closeFn, err := openTracker(cfg)
		if err != nil {
			return web.Config{}, nil, err
		}
		wc.Tracker = tracker
		wc.Retention = retention(cfg)
		cleanup = closeFn
	}
	return wc, cleanup, nil
}

func runServe(ctx context.Context, withFunction bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	wc, cleanup, err := serverConfig(cfg, withFunction)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := web.New(wc)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
