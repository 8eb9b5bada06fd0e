package tasks

import (
	"github.com/desertthunder/followback/internal/models"
	"github.com/desertthunder/followback/internal/shared"
)

// Reciprocity computes both one-way relationships between followers and following.
//
//   - NotFollowingBack: in following, absent from followers
//   - NotFollowedBy: in followers, absent from following
//
// Names are normalized, blanks and duplicates are dropped, and each list keeps the order in which
// names first appear in its source slice. Both lists are non-nil.
func Reciprocity(followers, following []string) *models.AnalysisResult {
	followerSet := toSet(followers)
	followingSet := toSet(following)

	return &models.AnalysisResult{
		NotFollowingBack: difference(following, followerSet),
		NotFollowedBy:    difference(followers, followingSet),
	}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name = shared.NormalizeUsername(name); name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

// difference returns names not present in exclude, deduplicated, in first-seen order.
func difference(names []string, exclude map[string]struct{}) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = shared.NormalizeUsername(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := exclude[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
