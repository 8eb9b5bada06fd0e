package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/followback/internal/services"
	"github.com/desertthunder/followback/internal/shared"
)

const defaultConfigPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)
	ctx := context.Background()

	config := shared.DefaultConfig()
	config.ApplyEnv()
	if _, err := os.Stat(defaultConfigPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(defaultConfigPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("ignoring config file", "path", defaultConfigPath, "error", err)
		}
	}

	if level, err := shared.ParseLogLevel(config.Log.Level); err == nil {
		shared.SetLogLevel(logger, level)
	}

	httpClient := services.NewHTTPClient(ctx, config.Backend.Token)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: defaultConfigPath,
		Backend:    services.NewBackendService(config.Backend.URL, httpClient),
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "followback",
		Usage:    "Find Instagram accounts that don't follow you back",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrUnauthorized):
			logger.Error("backend rejected the request; set [backend].token to the server's api_token", "error", err)
			os.Exit(1)
		case errors.Is(err, shared.ErrValidation), errors.Is(err, shared.ErrMissingArgument), errors.Is(err, shared.ErrInvalidFlag):
			logger.Error(err.Error())
			os.Exit(2)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
