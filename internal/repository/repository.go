// Package repository provides database access for the case index.
//
// Queries are written against Postgres via database/sql with the pgx stdlib
// driver; only the searchable case metadata lives here, the artifacts
// themselves live in object storage.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/cranecheck/internal/domain"
)

// Queries wraps a database handle with typed query methods.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance bound to the given database.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// CreateCaseParams holds the columns written for a new case row.
type CreateCaseParams struct {
	ID             uuid.UUID
	VesselName     string
	IMO            string
	CreatedAt      time.Time
	InputKey       string
	ResultsKey     string
	ReportKey      string
	ReportFormat   string
	PassCount      int
	AttentionCount int
	FailCount      int
}

// CreateCase inserts a case row into the index.
func (q *Queries) CreateCase(ctx context.Context, params CreateCaseParams) error {
	const query = `
		INSERT INTO cases (
			id, vessel_name, imo, created_at,
			input_key, results_key, report_key, report_format,
			pass_count, attention_count, fail_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := q.db.ExecContext(ctx, query,
		params.ID, params.VesselName, params.IMO, params.CreatedAt,
		params.InputKey, params.ResultsKey, params.ReportKey, params.ReportFormat,
		params.PassCount, params.AttentionCount, params.FailCount,
	)
	return err
}

// GetCaseByID fetches one case row.
// Returns sql.ErrNoRows if no case with the given ID exists.
func (q *Queries) GetCaseByID(ctx context.Context, id uuid.UUID) (domain.Case, error) {
	const query = `
		SELECT id, vessel_name, imo, created_at,
		       input_key, results_key, report_key, report_format,
		       pass_count, attention_count, fail_count
		FROM cases
		WHERE id = $1`

	return scanCase(q.db.QueryRowContext(ctx, query, id))
}

// SearchCases lists cases whose vessel name and IMO contain the given
// fragments, most recent first. Blank fragments match everything.
func (q *Queries) SearchCases(ctx context.Context, params domain.SearchCasesParams) ([]domain.Case, error) {
	const query = `
		SELECT id, vessel_name, imo, created_at,
		       input_key, results_key, report_key, report_format,
		       pass_count, attention_count, fail_count
		FROM cases
		WHERE vessel_name ILIKE '%' || $1 || '%'
		  AND imo ILIKE '%' || $2 || '%'
		ORDER BY created_at DESC
		LIMIT $3`

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := q.db.QueryContext(ctx, query, params.VesselName, params.IMO, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []domain.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCase(s scanner) (domain.Case, error) {
	var c domain.Case
	var format string
	err := s.Scan(
		&c.ID, &c.VesselName, &c.IMO, &c.CreatedAt,
		&c.InputKey, &c.ResultsKey, &c.ReportKey, &format,
		&c.PassCount, &c.AttentionCount, &c.FailCount,
	)
	if err != nil {
		return domain.Case{}, err
	}
	c.Format = domain.ReportFormat(format)
	return c, nil
}
