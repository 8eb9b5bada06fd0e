package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/followback/internal/formatter"
	"github.com/desertthunder/followback/internal/instagram"
	"github.com/desertthunder/followback/internal/models"
	"github.com/desertthunder/followback/internal/shared"
	"github.com/desertthunder/followback/internal/tasks"
)

// Submit uploads both exports to the backend once and prints the result.
func (r *Runner) Submit(ctx context.Context, cmd *cli.Command) error {
	submission := tasks.NewSubmission(r.backend, r.logger)
	submission.SetFollowers(uploadFor(cmd.String("followers")))
	submission.SetFollowing(uploadFor(cmd.String("following")))

	r.logger.Info("submitting exports", "backend", r.backend.Name())

	result, err := submission.Submit(ctx)
	if err != nil {
		return err
	}

	if csvPath := cmd.String("csv"); csvPath != "" {
		path, err := formatter.WriteCSVExport(result, csvPath)
		if err != nil {
			return err
		}
		r.logger.Info("CSV report written", "path", path)
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	data, err := formatter.ExportToText(result)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// Analyze compares both exports locally.
func (r *Runner) Analyze(ctx context.Context, cmd *cli.Command) error {
	followersPath := strings.TrimSpace(cmd.String("followers"))
	followingPath := strings.TrimSpace(cmd.String("following"))
	if followersPath == "" || followingPath == "" {
		return fmt.Errorf("%w: --followers and --following are both required", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	followers, err := readUsernames(followersPath)
	if err != nil {
		return err
	}
	following, err := readUsernames(followingPath)
	if err != nil {
		return err
	}

	result := tasks.Reciprocity(followers, following)
	r.logger.Debug("analysis complete",
		"followers", len(followers),
		"following", len(following),
		"not_following_back", len(result.NotFollowingBack),
		"not_followed_by", len(result.NotFollowedBy),
	)

	if output := cmd.String("output"); output != "" {
		path, err := formatter.WriteExport(result, format, output)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Saved %s\n", path)
	}

	data, err := formatter.Export(result, format)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

func uploadFor(path string) *models.Upload {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	return models.NewFileUpload(path)
}

func readUsernames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	accounts, err := instagram.ParseUsernames(path, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return accounts.Usernames, nil
}
