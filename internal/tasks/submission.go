package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/followback/internal/models"
	"github.com/desertthunder/followback/internal/shared"
)

// MissingFilesMessage is shown when Submit is called without both files selected.
const MissingFilesMessage = "Please upload both files."

// State is the submission flow's current phase.
type State int

const (
	Idle State = iota
	Submitting
	ResultReady
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case ResultReady:
		return "result_ready"
	case Failed:
		return "error"
	default:
		return ""
	}
}

// Uploader sends the two export files to the backend and returns its analysis.
//
// Implemented by services.BackendService.
type Uploader interface {
	Upload(ctx context.Context, followers, following *models.Upload) (*models.AnalysisResult, error)
}

// Snapshot is a consistent copy of a [Submission]'s state for rendering.
type Snapshot struct {
	State     State
	Followers string // selected followers file name, "" when unset
	Following string // selected following file name, "" when unset
	Result    *models.AnalysisResult
	Err       error
	Message   string // user-facing error text, "" unless State is Failed
}

// Submission owns the transient state of one submission form.
type Submission struct {
	uploader Uploader
	logger   *log.Logger

	mu        sync.Mutex
	state     State
	followers *models.Upload
	following *models.Upload
	result    *models.AnalysisResult
	err       error
}

// NewSubmission creates an idle submission that sends through uploader.
func NewSubmission(uploader Uploader, logger *log.Logger) *Submission {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Submission{uploader: uploader, logger: logger, state: Idle}
}

// SetFollowers selects the followers export. Passing nil clears the selection.
func (s *Submission) SetFollowers(u *models.Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followers = u
}

// SetFollowing selects the following export. Passing nil clears the selection.
func (s *Submission) SetFollowing(u *models.Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.following = u
}

// Submit validates the selection and performs exactly one upload.
//
// The previous result is cleared as soon as the attempt starts, so a failure never leaves a stale
// result visible.
func (s *Submission) Submit(ctx context.Context) (*models.AnalysisResult, error) {
	s.mu.Lock()
	if s.state == Submitting {
		s.mu.Unlock()
		return nil, shared.ErrSubmissionInFlight
	}

	s.result = nil
	s.err = nil

	if s.followers == nil || s.following == nil {
		s.state = Failed
		s.err = fmt.Errorf("%w: %s", shared.ErrValidation, MissingFilesMessage)
		err := s.err
		s.mu.Unlock()
		s.logger.Warn("submission rejected", "reason", "missing file")
		return nil, err
	}

	s.state = Submitting
	followers, following := s.followers, s.following
	s.mu.Unlock()

	s.logger.Info("submitting exports", "followers", followers.Name, "following", following.Name)
	result, err := s.uploader.Upload(ctx, followers, following)
	if err == nil && result == nil {
		err = fmt.Errorf("%w: empty response", shared.ErrTransport)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if !errors.Is(err, shared.ErrTransport) {
			err = fmt.Errorf("%w: %w", shared.ErrTransport, err)
		}
		s.state = Failed
		s.err = err
		s.logger.Error("submission failed", "error", err)
		return nil, err
	}

	s.state = ResultReady
	s.result = result
	s.logger.Info("analysis received",
		"not_following_back", len(result.NotFollowingBack),
		"not_followed_by", len(result.NotFollowedBy),
	)
	return result, nil
}

// Reset discards the result, error and file selection and returns to [Idle].
//
// It is a no-op while a submission is in flight.
func (s *Submission) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Submitting {
		return
	}
	s.state = Idle
	s.followers = nil
	s.following = nil
	s.result = nil
	s.err = nil
}

// Snapshot returns the current state.
func (s *Submission) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{State: s.state, Result: s.result, Err: s.err}
	if s.followers != nil {
		snap.Followers = s.followers.Name
	}
	if s.following != nil {
		snap.Following = s.following.Name
	}
	if s.err != nil {
		snap.Message = ErrorMessage(s.err)
	}
	return snap
}

// ErrorMessage converts a submission error into the inline text shown to the user.
func ErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, shared.ErrValidation):
		return MissingFilesMessage
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
