package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/followback/internal/models"
	"github.com/desertthunder/followback/internal/shared"
)

// AnalysisRepository implements models.Repository[*models.AnalysisRecord] for the analysis history.
type AnalysisRepository struct {
	db *sql.DB
}

// NewAnalysisRepository creates a new AnalysisRepository with the given database connection
func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create inserts a new record into the database with generated ID and sequence
func (r *AnalysisRepository) Create(record *models.AnalysisRecord) error {
	if record == nil {
		return fmt.Errorf("%w: analysis record is nil", shared.ErrInvalidInput)
	}

	sequence, err := NextSequence(r.db, "analyses")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	record.SetID(shared.GenerateID())
	record.SetSequence(sequence)

	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO analyses (id, sequence, followers_count, following_count, not_following_back_count, not_followed_by_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		record.ID(),
		record.Sequence(),
		record.FollowersCount(),
		record.FollowingCount(),
		record.NotFollowingBack(),
		record.NotFollowedBy(),
		record.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	return nil
}

// Get retrieves a record by ID
func (r *AnalysisRepository) Get(id string) (*models.AnalysisRecord, error) {
	query := `
		SELECT id, sequence, followers_count, following_count, not_following_back_count, not_followed_by_count, created_at
		FROM analyses
		WHERE id = ?
	`

	record, err := scanAnalysis(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: analysis %s", shared.ErrRecordNotFound, id)
	}
	return record, err
}

// Delete removes a record by ID
func (r *AnalysisRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: analysis %s", shared.ErrRecordNotFound, id)
	}

	return nil
}

// List retrieves records newest first.
//
// Supported criteria: "limit" (int, values <= 0 mean no limit) and "since" ([time.Time], inclusive).
func (r *AnalysisRepository) List(criteria map[string]any) ([]*models.AnalysisRecord, error) {
	query := `
		SELECT id, sequence, followers_count, following_count, not_following_back_count, not_followed_by_count, created_at
		FROM analyses
		WHERE 1 = 1
	`

	args := []any{}

	if since, ok := criteria["since"].(time.Time); ok && !since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, since.UTC())
	}

	query += " ORDER BY sequence DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var records []*models.AnalysisRecord
	for rows.Next() {
		record, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// Count returns the number of stored records.
func (r *AnalysisRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM analyses").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return n, nil
}

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s scanner) (*models.AnalysisRecord, error) {
	var (
		id               string
		sequence         int
		followers        int
		following        int
		notFollowingBack int
		notFollowedBy    int
		createdAt        time.Time
	)

	err := s.Scan(&id, &sequence, &followers, &following, &notFollowingBack, &notFollowedBy, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}

	return models.RestoreAnalysisRecord(id, sequence, followers, following, notFollowingBack, notFollowedBy, createdAt), nil
}

var _ models.Repository[*models.AnalysisRecord] = (*AnalysisRepository)(nil)
