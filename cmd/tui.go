package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/followback/internal/shared"
	"github.com/desertthunder/followback/internal/tasks"
	"github.com/desertthunder/followback/internal/ui"
)

// TUI launches the interactive submission form.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	submission := tasks.NewSubmission(r.backend, r.logger)
	model := ui.NewModel(ctx, submission, cmd.String("export"))
	model.SetPaths(cmd.String("followers"), cmd.String("following"))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
