package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/desertthunder/followback/internal/instagram"
	"github.com/desertthunder/followback/internal/models"
	"github.com/desertthunder/followback/internal/services"
	"github.com/desertthunder/followback/internal/tasks"
)

// MissingFilesMessage is returned with 400 when either multipart part is absent.
const MissingFilesMessage = "Please upload both files!"

// multipartMemory is how much of a multipart body is held in memory before spilling to temp files.
const multipartMemory = 8 << 20

// AnalysisRecorder stores a counts-only record of a completed analysis.
type AnalysisRecorder interface {
	Create(record *models.AnalysisRecord) error
}

// UploadHandler serves the reciprocity endpoint.
type UploadHandler struct {
	logger   *log.Logger
	maxBytes int64
	recorder AnalysisRecorder
}

// NewUploadHandler creates an [UploadHandler].
//
// maxBytes <= 0 leaves the body size unbounded. A nil recorder disables history.
func NewUploadHandler(logger *log.Logger, maxBytes int64, recorder AnalysisRecorder) *UploadHandler {
	return &UploadHandler{logger: logger, maxBytes: maxBytes, recorder: recorder}
}

// Routes returns the HTTP routes this handler serves.
func (h *UploadHandler) Routes() []string {
	return []string{services.UploadPath}
}

// ServeHTTP parses both exports, computes the reciprocity lists, and answers with the result JSON.
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Upload exceeds %d bytes", tooLarge.Limit))
		case errors.Is(err, http.ErrNotMultipart):
			writeError(w, http.StatusBadRequest, MissingFilesMessage)
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	followersFile := formFile(r.MultipartForm, services.FollowersField)
	followingFile := formFile(r.MultipartForm, services.FollowingField)
	if followersFile == nil || followingFile == nil {
		writeError(w, http.StatusBadRequest, MissingFilesMessage)
		return
	}

	logger := h.logger.With("request_id", RequestID(r.Context()))

	followers, following, err := parseBoth(followersFile, followingFile)
	if err != nil {
		logger.Warn("rejected upload", "followers", followersFile.Filename, "following", followingFile.Filename, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := tasks.Reciprocity(followers, following)
	logger.Info("analysis complete",
		"followers", len(followers),
		"following", len(following),
		"not_following_back", len(result.NotFollowingBack),
		"not_followed_by", len(result.NotFollowedBy),
	)

	if h.recorder != nil {
		record := models.NewAnalysisRecord(0, len(followers), len(following), result)
		if err := h.recorder.Create(record); err != nil {
			logger.Error("failed to record analysis", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func formFile(form *multipart.Form, field string) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	if files := form.File[field]; len(files) > 0 {
		return files[0]
	}
	return nil
}

// parseBoth decodes both uploads concurrently.
func parseBoth(followersFile, followingFile *multipart.FileHeader) ([]string, []string, error) {
	var followers, following []string

	var g errgroup.Group
	g.Go(func() error {
		names, err := parseFile(followersFile)
		followers = names
		return err
	})
	g.Go(func() error {
		names, err := parseFile(followingFile)
		following = names
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return followers, following, nil
}

func parseFile(fh *multipart.FileHeader) ([]string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	accounts, err := instagram.ParseUsernames(fh.Filename, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fh.Filename, err)
	}
	return accounts.Usernames, nil
}

// HealthHandler answers liveness probes.
type HealthHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (HealthHandler) Routes() []string {
	return []string{services.HealthPath}
}

func (HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
