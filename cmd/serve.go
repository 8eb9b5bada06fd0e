package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/followback/internal/repositories"
	"github.com/desertthunder/followback/internal/server"
	"github.com/desertthunder/followback/internal/shared"
	"github.com/desertthunder/followback/internal/web"
)

// Serve runs the reciprocity backend until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Port = port
	}

	logger := shared.WithLogger(r.logger, "component", "backend")

	var recorder server.AnalysisRecorder
	if r.config.Database.Path != "" && !cmd.Bool("no-history") {
		db, err := shared.OpenDatabase(r.config.Database)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()

		recorder = repositories.NewAnalysisRepository(db)
		logger.Info("recording analysis history", "path", r.config.Database.Path)
	}
	if cfg.APIToken != "" {
		logger.Info("bearer token required for /upload")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx, cfg.Addr(), server.NewBackendRouter(cfg, logger, recorder), logger)
}

// Web runs the browser front end until interrupted.
func (r *Runner) Web(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Web
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Port = port
	}

	logger := shared.WithLogger(r.logger, "component", "web")

	if err := r.backend.Health(ctx); err != nil {
		logger.Warn("backend is not reachable yet", "backend", r.backend.Name(), "error", err)
	}

	app, err := web.NewApp(r.backend, logger, r.config.Server.MaxUploadBytes())
	if err != nil {
		return err
	}

	if cmd.Bool("open") {
		url := browserURL(cfg.Host, cfg.Port)
		time.AfterFunc(100*time.Millisecond, func() {
			if err := shared.OpenBrowser(url); err != nil {
				logger.Warnf("failed to open browser automatically %v", err)
				r.writePlain("Please open this URL in your browser:\n%s\n\n", url)
			}
		})
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx, cfg.Addr(), app.Router(), logger)
}

// browserURL maps wildcard listen hosts to loopback.
func browserURL(host string, port int) string {
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port))
}
