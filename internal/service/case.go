// Package service contains the business logic layer.
//
// This file implements the case service: evaluating submitted checklist
// batches, persisting their artifacts, and serving rendered reports.
package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/cranecheck/internal/csvio"
	"github.com/harborline/cranecheck/internal/domain"
	"github.com/harborline/cranecheck/internal/engine"
	"github.com/harborline/cranecheck/internal/metrics"
	"github.com/harborline/cranecheck/internal/report"
	"github.com/harborline/cranecheck/internal/repository"
	"github.com/harborline/cranecheck/internal/storage"
)

// =============================================================================
// Interface Definition
// =============================================================================

// CreateCaseParams carries a submitted batch and its metadata.
type CreateCaseParams struct {
	VesselName string
	IMO        string
	Inspector  string
	Format     domain.ReportFormat
	Batch      engine.Batch
}

// CaseResult pairs a stored case with its row-by-row verdicts.
type CaseResult struct {
	Case    domain.Case
	Results []domain.Evaluation
}

// CaseService defines the interface for compliance case operations.
type CaseService interface {
	// Evaluate runs the rule engine over a batch without persisting anything.
	// Returns domain.EINVALID if the batch is missing form columns.
	Evaluate(ctx context.Context, batch engine.Batch) ([]domain.Evaluation, error)

	// Create evaluates a batch, stores the input and results CSVs plus a
	// rendered report, and records the case in the index.
	// Returns domain.EINVALID for schema or parameter errors.
	Create(ctx context.Context, params CreateCaseParams) (*CaseResult, error)

	// GetByID retrieves a case from the index.
	// Returns domain.ENOTFOUND if no case exists with the given ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error)

	// Search lists cases filtered by vessel name and IMO, newest first.
	Search(ctx context.Context, params domain.SearchCasesParams) ([]domain.Case, error)

	// OpenReport opens the rendered report of a case for streaming.
	// The caller must close the reader.
	// Returns domain.ENOTFOUND if the case or its report is missing.
	OpenReport(ctx context.Context, id uuid.UUID) (*domain.Case, io.ReadCloser, storage.ObjectInfo, error)
}

// =============================================================================
// Implementation
// =============================================================================

// caseService implements the CaseService interface.
type caseService struct {
	queries *repository.Queries
	store   storage.Storage
	logger  *slog.Logger
	now     func() time.Time
}

// NewCaseService creates a new CaseService.
func NewCaseService(
	queries *repository.Queries,
	store storage.Storage,
	logger *slog.Logger,
) CaseService {
	return &caseService{
		queries: queries,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// =============================================================================
// Evaluate
// =============================================================================

// Evaluate runs the rule engine over a batch without persisting anything.
func (s *caseService) Evaluate(ctx context.Context, batch engine.Batch) ([]domain.Evaluation, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	results, err := engine.EvaluateBatch(batch, s.now())
	if err != nil {
		return nil, err
	}

	s.recordEvaluation(results)
	return results, nil
}

// =============================================================================
// Create
// =============================================================================

// Create evaluates a batch and persists all artifacts of the run.
func (s *caseService) Create(ctx context.Context, params CreateCaseParams) (*CaseResult, error) {
	const op = "case.create"

	if err := s.validateCreateParams(op, &params); err != nil {
		return nil, err
	}

	results, err := engine.EvaluateBatch(params.Batch, s.now())
	if err != nil {
		return nil, err
	}
	s.recordEvaluation(results)

	id := uuid.New()
	createdAt := s.now().UTC()
	inputKey := fmt.Sprintf("cases/%s/input.csv", id)
	resultsKey := fmt.Sprintf("cases/%s/results.csv", id)
	reportKey := fmt.Sprintf("cases/%s/report.%s", id, params.Format)

	if err := s.putInput(ctx, inputKey, params.Batch); err != nil {
		return nil, domain.Internal(err, op, "failed to store input")
	}
	if err := s.putResults(ctx, resultsKey, results); err != nil {
		s.cleanup(ctx, inputKey)
		return nil, domain.Internal(err, op, "failed to store results")
	}
	if err := s.putReport(ctx, reportKey, params, results, createdAt); err != nil {
		s.cleanup(ctx, inputKey, resultsKey)
		return nil, domain.Internal(err, op, "failed to render report")
	}

	counts := domain.CountStatuses(results)
	err = s.queries.CreateCase(ctx, repository.CreateCaseParams{
		ID:             id,
		VesselName:     params.VesselName,
		IMO:            params.IMO,
		CreatedAt:      createdAt,
		InputKey:       inputKey,
		ResultsKey:     resultsKey,
		ReportKey:      reportKey,
		ReportFormat:   params.Format.String(),
		PassCount:      counts.Pass,
		AttentionCount: counts.Attention,
		FailCount:      counts.Fail,
	})
	if err != nil {
		s.cleanup(ctx, inputKey, resultsKey, reportKey)
		return nil, domain.Internal(err, op, "failed to record case")
	}

	s.logger.Info("case created",
		"case_id", id,
		"vessel", params.VesselName,
		"cranes", len(results),
		"pass", counts.Pass,
		"attention", counts.Attention,
		"fail", counts.Fail,
	)

	return &CaseResult{
		Case: domain.Case{
			ID:             id,
			VesselName:     params.VesselName,
			IMO:            params.IMO,
			CreatedAt:      createdAt,
			InputKey:       inputKey,
			ResultsKey:     resultsKey,
			ReportKey:      reportKey,
			Format:         params.Format,
			PassCount:      counts.Pass,
			AttentionCount: counts.Attention,
			FailCount:      counts.Fail,
		},
		Results: results,
	}, nil
}

// validateCreateParams checks parameters and fills in vessel details from
// the first record when the caller left them blank.
func (s *caseService) validateCreateParams(op string, params *CreateCaseParams) error {
	if len(params.Batch.Rows) == 0 {
		return domain.Invalid(op, "batch has no crane records")
	}
	if params.Format == "" {
		params.Format = domain.ReportFormatDOCX
	}
	if !params.Format.IsValid() {
		return domain.Invalid(op, fmt.Sprintf("unsupported report format %q", params.Format))
	}

	first := params.Batch.Rows[0]
	if strings.TrimSpace(params.VesselName) == "" {
		params.VesselName = engine.CleanText(first[engine.ColVesselName])
	}
	if strings.TrimSpace(params.IMO) == "" {
		params.IMO = engine.CleanText(first[engine.ColIMO])
	}
	return nil
}

func (s *caseService) putInput(ctx context.Context, key string, batch engine.Batch) error {
	var buf bytes.Buffer
	if err := csvio.WriteBatch(&buf, batch); err != nil {
		return err
	}
	return s.store.Put(ctx, key, &buf, "text/csv")
}

func (s *caseService) putResults(ctx context.Context, key string, results []domain.Evaluation) error {
	var buf bytes.Buffer
	if err := csvio.WriteResults(&buf, results); err != nil {
		return err
	}
	return s.store.Put(ctx, key, &buf, "text/csv")
}

func (s *caseService) putReport(ctx context.Context, key string, params CreateCaseParams, results []domain.Evaluation, generatedAt time.Time) error {
	gen := report.ForFormat(params.Format)
	data := &report.Data{
		VesselName:  params.VesselName,
		IMO:         params.IMO,
		Inspector:   params.Inspector,
		GeneratedAt: generatedAt,
		Batch:       params.Batch,
		Results:     results,
	}

	var buf bytes.Buffer
	if _, err := gen.Generate(ctx, data, &buf); err != nil {
		return err
	}
	metrics.ReportsGenerated.WithLabelValues(params.Format.String()).Inc()

	return s.store.Put(ctx, key, &buf, params.Format.ContentType())
}

// cleanup removes stored artifacts after a failed create. Best effort; a
// failure here only leaves an orphan blob behind.
func (s *caseService) cleanup(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to clean up artifact", "key", key, "error", err)
		}
	}
}

// recordEvaluation bumps the business counters for one engine run.
func (s *caseService) recordEvaluation(results []domain.Evaluation) {
	metrics.BatchesEvaluated.Inc()
	for i := range results {
		metrics.CranesEvaluated.WithLabelValues(results[i].Status.String()).Inc()
	}
}

// =============================================================================
// Read Operations
// =============================================================================

// GetByID retrieves a case from the index.
func (s *caseService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	const op = "case.get"

	c, err := s.queries.GetCaseByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "case", id.String())
		}
		return nil, domain.Internal(err, op, "failed to load case")
	}
	return &c, nil
}

// Search lists cases filtered by vessel name and IMO, newest first.
func (s *caseService) Search(ctx context.Context, params domain.SearchCasesParams) ([]domain.Case, error) {
	const op = "case.search"

	cases, err := s.queries.SearchCases(ctx, params)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to search cases")
	}
	return cases, nil
}

// OpenReport opens the rendered report of a case for streaming.
func (s *caseService) OpenReport(ctx context.Context, id uuid.UUID) (*domain.Case, io.ReadCloser, storage.ObjectInfo, error) {
	const op = "case.report"

	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, storage.ObjectInfo{}, err
	}

	rc, info, err := s.store.Get(ctx, c.ReportKey)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, nil, storage.ObjectInfo{}, domain.NotFound(op, "report", id.String())
		}
		return nil, nil, storage.ObjectInfo{}, domain.Internal(err, op, "failed to open report")
	}
	return c, rc, info, nil
}
