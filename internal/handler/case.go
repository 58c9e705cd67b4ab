// Package handler contains the HTTP handlers of the compliance API.
//
// This file implements case handlers: evaluating uploaded checklist
// batches, searching past cases, and serving artifacts.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/harborline/cranecheck/internal/csvio"
	"github.com/harborline/cranecheck/internal/domain"
	"github.com/harborline/cranecheck/internal/service"
)

// maxUploadBytes caps the accepted checklist size. Even a full fleet
// checklist is a few kilobytes, so this is generous.
const maxUploadBytes = 5 << 20

// maxSearchLimit bounds the case search page size.
const maxSearchLimit = 500

// CaseHandler handles HTTP requests related to compliance cases.
type CaseHandler struct {
	cases          service.CaseService
	logger         *slog.Logger
	defaultFormat  domain.ReportFormat
	templateCranes int
}

// NewCaseHandler creates a new CaseHandler.
func NewCaseHandler(cases service.CaseService, logger *slog.Logger, defaultFormat domain.ReportFormat, templateCranes int) *CaseHandler {
	return &CaseHandler{
		cases:          cases,
		logger:         logger,
		defaultFormat:  defaultFormat,
		templateCranes: templateCranes,
	}
}

// RegisterRoutes registers all case routes on the provided ServeMux.
func (h *CaseHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/cases", h.Create)
	mux.HandleFunc("GET /api/cases", h.Search)
	mux.HandleFunc("GET /api/cases/{id}/report", h.DownloadReport)
	mux.HandleFunc("GET /api/template.csv", h.Template)
}

// =============================================================================
// Create
// =============================================================================

// evaluationJSON is one crane verdict in the Create response body.
type evaluationJSON struct {
	CraneNo   string   `json:"crane_no"`
	Status    string   `json:"status"`
	Issues    []string `json:"issues"`
	Attention []string `json:"attention"`
	DueSoon   []string `json:"due_soon"`
}

// createResponse is the Create response body.
type createResponse struct {
	ID         uuid.UUID        `json:"id"`
	VesselName string           `json:"vessel_name"`
	IMO        string           `json:"imo"`
	CreatedAt  time.Time        `json:"created_at"`
	Format     string           `json:"report_format"`
	Pass       int              `json:"pass_count"`
	Attention  int              `json:"attention_count"`
	Fail       int              `json:"fail_count"`
	Results    []evaluationJSON `json:"results"`
}

// Create evaluates an uploaded checklist CSV and records the case.
// POST /api/cases
//
// The checklist arrives either as a multipart form with a "file" field or
// as a raw text/csv body. Metadata fields (vessel_name, imo, inspector,
// format) come from the form or the query string.
func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	body, params, err := h.readUpload(r)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	defer body.Close()

	batch, err := csvio.ReadBatch(body)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	params.Batch = batch

	result, err := h.cases.Create(r.Context(), params)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	resp := createResponse{
		ID:         result.Case.ID,
		VesselName: result.Case.VesselName,
		IMO:        result.Case.IMO,
		CreatedAt:  result.Case.CreatedAt,
		Format:     result.Case.Format.String(),
		Pass:       result.Case.PassCount,
		Attention:  result.Case.AttentionCount,
		Fail:       result.Case.FailCount,
		Results:    make([]evaluationJSON, 0, len(result.Results)),
	}
	for i := range result.Results {
		e := &result.Results[i]
		resp.Results = append(resp.Results, evaluationJSON{
			CraneNo:   e.CraneNo,
			Status:    e.Status.String(),
			Issues:    emptyIfNil(e.Issues),
			Attention: emptyIfNil(e.Attention),
			DueSoon:   emptyIfNil(e.DueSoon),
		})
	}

	writeJSON(w, http.StatusCreated, resp)
}

// readUpload extracts the CSV stream and metadata from the request. The
// caller closes the returned reader.
func (h *CaseHandler) readUpload(r *http.Request) (io.ReadCloser, service.CreateCaseParams, error) {
	const op = "handler.case_create"

	params := service.CreateCaseParams{
		VesselName: r.URL.Query().Get("vessel_name"),
		IMO:        r.URL.Query().Get("imo"),
		Inspector:  r.URL.Query().Get("inspector"),
		Format:     h.defaultFormat,
	}
	if v := r.URL.Query().Get("format"); v != "" {
		params.Format = domain.ReportFormat(v)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, params, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, params, domain.Errorf(domain.ETOOLARGE, op, "checklist exceeds upload limit")
		}
		return nil, params, domain.Invalid(op, "malformed multipart form")
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, params, domain.Invalid(op, "multipart form is missing the \"file\" field")
	}

	if v := r.FormValue("vessel_name"); v != "" {
		params.VesselName = v
	}
	if v := r.FormValue("imo"); v != "" {
		params.IMO = v
	}
	if v := r.FormValue("inspector"); v != "" {
		params.Inspector = v
	}
	if v := r.FormValue("format"); v != "" {
		params.Format = domain.ReportFormat(v)
	}
	return file, params, nil
}

// =============================================================================
// Search
// =============================================================================

// caseJSON is one index entry in the Search response body.
type caseJSON struct {
	ID         uuid.UUID `json:"id"`
	VesselName string    `json:"vessel_name"`
	IMO        string    `json:"imo"`
	CreatedAt  time.Time `json:"created_at"`
	Format     string    `json:"report_format"`
	Pass       int       `json:"pass_count"`
	Attention  int       `json:"attention_count"`
	Fail       int       `json:"fail_count"`
}

// Search lists recorded cases, newest first.
// GET /api/cases?vessel=&imo=&limit=
func (h *CaseHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := domain.SearchCasesParams{
		VesselName: r.URL.Query().Get("vessel"),
		IMO:        r.URL.Query().Get("imo"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxSearchLimit {
			ErrorResponse(w, r, h.logger, domain.Invalid("handler.case_search",
				fmt.Sprintf("limit must be between 1 and %d", maxSearchLimit)))
			return
		}
		params.Limit = int32(limit)
	}

	cases, err := h.cases.Search(r.Context(), params)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	out := make([]caseJSON, 0, len(cases))
	for _, c := range cases {
		out = append(out, caseJSON{
			ID:         c.ID,
			VesselName: c.VesselName,
			IMO:        c.IMO,
			CreatedAt:  c.CreatedAt,
			Format:     c.Format.String(),
			Pass:       c.PassCount,
			Attention:  c.AttentionCount,
			Fail:       c.FailCount,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"cases": out})
}

// =============================================================================
// Report Download
// =============================================================================

// DownloadReport streams the rendered report of a case.
// GET /api/cases/{id}/report
func (h *CaseHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	const op = "handler.case_report"

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "invalid case ID"))
		return
	}

	c, rc, info, err := h.cases.OpenReport(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	defer rc.Close()

	filename := fmt.Sprintf("MO32_AutoCheck_Report_%s.%s",
		c.CreatedAt.Format("2006-01-02"), c.Format)

	w.Header().Set("Content-Type", c.Format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}

	if _, err := io.Copy(w, rc); err != nil {
		// Headers are gone; all we can do is log the broken stream.
		h.logger.Warn("report stream interrupted", "case_id", id, "error", err)
	}
}

// =============================================================================
// Template
// =============================================================================

// Template serves a blank checklist CSV with pre-numbered crane rows.
// GET /api/template.csv?cranes=
func (h *CaseHandler) Template(w http.ResponseWriter, r *http.Request) {
	cranes := h.templateCranes
	if raw := r.URL.Query().Get("cranes"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			ErrorResponse(w, r, h.logger, domain.Invalid("handler.template", "cranes must be between 1 and 100"))
			return
		}
		cranes = n
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="MO32_Stevedore_AutoCheck_Form.csv"`)

	if err := csvio.WriteTemplate(w, cranes); err != nil {
		h.logger.Warn("template stream interrupted", "error", err)
	}
}

// =============================================================================
// Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// emptyIfNil keeps findings lists as [] rather than null in JSON.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
