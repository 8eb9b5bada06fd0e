// package services defines clients for the HTTP APIs this module talks to
//
// Reciprocity backend (POST /upload, GET /health)
package services

import (
	"context"

	"github.com/desertthunder/followback/internal/models"
)

// Analyzer is implemented by clients that can turn two export files into an [models.AnalysisResult].
type Analyzer interface {
	// Upload sends both exports in a single request and returns the backend's analysis.
	Upload(ctx context.Context, followers, following *models.Upload) (*models.AnalysisResult, error)

	// Health reports whether the backend is reachable and healthy.
	Health(ctx context.Context) error

	// Name returns a label for logs (e.g. the base URL)
	Name() string
}

// Multipart field names expected by POST /upload.
const (
	FollowersField = "followers_file"
	FollowingField = "following_file"
)

// UploadPath is the backend endpoint that accepts both exports.
const UploadPath = "/upload"

// HealthPath is the backend liveness endpoint.
const HealthPath = "/health"
