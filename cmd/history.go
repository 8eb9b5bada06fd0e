package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/followback/internal/repositories"
	"github.com/desertthunder/followback/internal/shared"
)

// historyEntry is the JSON shape of one history row.
type historyEntry struct {
	ID               string    `json:"id"`
	Sequence         int       `json:"sequence"`
	Followers        int       `json:"followers"`
	Following        int       `json:"following"`
	NotFollowingBack int       `json:"not_following_back"`
	NotFollowedBy    int       `json:"not_followed_by"`
	CreatedAt        time.Time `json:"created_at"`
}

// History lists recent analyses from the history database.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := repositories.NewAnalysisRepository(db).List(map[string]any{"limit": cmd.Int("limit")})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		entries := make([]historyEntry, 0, len(records))
		for _, rec := range records {
			entries = append(entries, historyEntry{
				ID:               rec.ID(),
				Sequence:         rec.Sequence(),
				Followers:        rec.FollowersCount(),
				Following:        rec.FollowingCount(),
				NotFollowingBack: rec.NotFollowingBack(),
				NotFollowedBy:    rec.NotFollowedBy(),
				CreatedAt:        rec.CreatedAt(),
			})
		}
		return r.writeJSON(entries, true)
	}

	if len(records) == 0 {
		return r.writePlain("No analyses recorded yet.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Recent analyses (%d)", len(records)))
	for _, rec := range records {
		r.writePlain("#%-4d %s  followers=%d following=%d not_following_back=%d not_followed_by=%d\n",
			rec.Sequence(),
			rec.CreatedAt().Local().Format(time.DateTime),
			rec.FollowersCount(),
			rec.FollowingCount(),
			rec.NotFollowingBack(),
			rec.NotFollowedBy(),
		)
	}
	return nil
}
