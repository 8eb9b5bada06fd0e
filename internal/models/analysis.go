package models

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// AnalysisResult holds the two reciprocity lists for one submission.
//
// Both lists keep the order they were received in. The lists are independent sets;
// index i of one has no relation to index i of the other.
type AnalysisResult struct {
	NotFollowingBack []string `json:"not_following_back"` // followed by the user, not following back
	NotFollowedBy    []string `json:"not_followed_by"`    // following the user, not followed back
}

// Rows returns the number of data rows needed to lay both lists out side by side.
func (r *AnalysisResult) Rows() int {
	if r == nil {
		return 0
	}
	return max(len(r.NotFollowingBack), len(r.NotFollowedBy))
}

// Validate checks that every username is non-empty and unique within its list.
func (r *AnalysisResult) Validate() error {
	if r == nil {
		return errors.New("nil analysis result")
	}
	if err := validateUsernames("not_following_back", r.NotFollowingBack); err != nil {
		return err
	}
	return validateUsernames("not_followed_by", r.NotFollowedBy)
}

func validateUsernames(field string, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for i, name := range names {
		if name == "" {
			return fmt.Errorf("%s[%d]: empty username", field, i)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%s[%d]: duplicate username %q", field, i, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// Upload is a user-selected export file. A nil *Upload means no file was selected.
//
// The content is opened on demand so the same selection can be sent again after a failed attempt.
type Upload struct {
	Name string // original file name, sent as the multipart filename
	open func() (io.ReadCloser, error)
}

// NewUpload wraps in-memory file content as an [Upload].
func NewUpload(name string, content []byte) *Upload {
	return &Upload{
		Name: name,
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

// NewFileUpload returns an [Upload] that reads the file at path each time it is opened.
func NewFileUpload(path string) *Upload {
	return &Upload{
		Name: filepath.Base(path),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// Open returns a fresh reader over the file content. The caller closes it.
func (u *Upload) Open() (io.ReadCloser, error) {
	if u == nil || u.open == nil {
		return nil, errors.New("no file selected")
	}
	return u.open()
}

// AnalysisRecord is the persisted audit row for one successful analysis.
//
// Only counts are kept; usernames never reach the database.
type AnalysisRecord struct {
	id               string
	sequence         int
	followersCount   int
	followingCount   int
	notFollowingBack int
	notFollowedBy    int
	createdAt        time.Time
}

// NewAnalysisRecord builds a record from the input sizes and a computed result.
func NewAnalysisRecord(sequence, followers, following int, result *AnalysisResult) *AnalysisRecord {
	rec := &AnalysisRecord{
		sequence:       sequence,
		followersCount: followers,
		followingCount: following,
		createdAt:      time.Now().UTC(),
	}
	if result != nil {
		rec.notFollowingBack = len(result.NotFollowingBack)
		rec.notFollowedBy = len(result.NotFollowedBy)
	}
	return rec
}

// RestoreAnalysisRecord rebuilds a record from stored column values.
func RestoreAnalysisRecord(id string, sequence, followers, following, notFollowingBack, notFollowedBy int, createdAt time.Time) *AnalysisRecord {
	return &AnalysisRecord{
		id:               id,
		sequence:         sequence,
		followersCount:   followers,
		followingCount:   following,
		notFollowingBack: notFollowingBack,
		notFollowedBy:    notFollowedBy,
		createdAt:        createdAt,
	}
}

func (a *AnalysisRecord) ID() string            { return a.id }
func (a *AnalysisRecord) SetID(id string)       { a.id = id }
func (a *AnalysisRecord) Sequence() int         { return a.sequence }
func (a *AnalysisRecord) SetSequence(seq int)   { a.sequence = seq }
func (a *AnalysisRecord) FollowersCount() int   { return a.followersCount }
func (a *AnalysisRecord) FollowingCount() int   { return a.followingCount }
func (a *AnalysisRecord) NotFollowingBack() int { return a.notFollowingBack }
func (a *AnalysisRecord) NotFollowedBy() int    { return a.notFollowedBy }
func (a *AnalysisRecord) CreatedAt() time.Time  { return a.createdAt }

// Validate checks that the ID is set and that the counts are consistent with the input sizes.
func (a *AnalysisRecord) Validate() error {
	if a.id == "" {
		return errors.New("analysis record ID is required")
	}
	if a.followersCount < 0 || a.followingCount < 0 {
		return errors.New("counts must be non-negative")
	}
	if a.notFollowingBack > a.followingCount {
		return fmt.Errorf("not_following_back (%d) exceeds following (%d)", a.notFollowingBack, a.followingCount)
	}
	if a.notFollowedBy > a.followersCount {
		return fmt.Errorf("not_followed_by (%d) exceeds followers (%d)", a.notFollowedBy, a.followersCount)
	}
	return nil
}

var _ Model = (*AnalysisRecord)(nil)
