package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"bankstmt/internal/aggregate"
	"bankstmt/internal/core"
	"bankstmt/internal/ingest"
	"bankstmt/internal/log"
	"bankstmt/internal/storage"
)

const maxIngestBytes = 10 << 20 // 10 MiB CSV upload limit

type generateRequest struct {
	Seed         *int64 `json:"seed"`
	HolderName   string `json:"holderName"`
	BankName     string `json:"bankName"`
	Currency     string `json:"currency"`
	StartBalance string `json:"startBalance"`
	Transactions int    `json:"transactions"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
}

type statementResponse struct {
	ID   string `json:"id"`
	Seed int64  `json:"seed,omitempty"`
	core.Statement
}

type statementSummary struct {
	ID           string `json:"id"`
	HolderName   string `json:"holderName"`
	BankName     string `json:"bankName"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Transactions int    `json:"transactions"`
	ExportStatus string `json:"exportStatus"`
}

type reportResponse struct {
	StatementID string `json:"statementId"`
	Cached      bool   `json:"cached"`
	aggregate.Report
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerateStatement synthesizes and stores a new statement. The
// request body is optional; fields present override the default profile.
func (s *Server) handleGenerateStatement(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	prof := s.defaultProfile
	if req.HolderName != "" {
		prof.HolderName = req.HolderName
	}
	if req.BankName != "" {
		prof.BankName = req.BankName
	}
	if req.Currency != "" {
		prof.Currency = req.Currency
	}
	if req.StartBalance != "" {
		prof.StartBalance = req.StartBalance
	}
	if req.Transactions != 0 {
		prof.Transactions = req.Transactions
	}
	if req.StartDate != "" {
		prof.StartDate = req.StartDate
	}
	if req.EndDate != "" {
		prof.EndDate = req.EndDate
	}

	seed := s.defaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Reject bad profiles before touching storage.
	params, err := prof.Params(seed)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := params.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	stmt, err := s.api.Generate(r.Context(), prof, seed)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to generate statement",
			log.FieldError, err,
			log.FieldSeed, seed,
			log.FieldOperation, log.OpGenerate)
		writeError(w, http.StatusInternalServerError, "failed to generate statement")
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Statement created",
		log.FieldStatementID, stmt.ID,
		log.FieldSeed, seed,
		log.FieldCount, len(stmt.Transactions),
		log.FieldOperation, log.OpGenerate)

	writeJSON(w, http.StatusCreated, statementResponse{ID: stmt.ID, Seed: seed, Statement: stmt})
}

func (s *Server) handleListStatements(w http.ResponseWriter, r *http.Request) {
	infos, err := s.api.List(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to list statements",
			log.FieldError, err, log.FieldOperation, log.OpRead)
		writeError(w, http.StatusInternalServerError, "failed to list statements")
		return
	}

	out := make([]statementSummary, 0, len(infos))
	for _, info := range infos {
		out = append(out, statementSummary{
			ID:           info.ID,
			HolderName:   info.HolderName,
			BankName:     info.BankName,
			StartDate:    info.Period.Start.String(),
			EndDate:      info.Period.End.String(),
			Transactions: info.TxCount,
			ExportStatus: info.ExportStatus,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"statements": out})
}

func (s *Server) handleGetStatement(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing statement id")
		return
	}

	stmt, err := s.api.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "statement not found")
		return
	}
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to load statement",
			log.FieldError, err, log.FieldStatementID, id)
		writeError(w, http.StatusInternalServerError, "failed to load statement")
		return
	}

	writeJSON(w, http.StatusOK, statementResponse{ID: stmt.ID, Statement: stmt})
}

func (s *Server) handleStatementReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing statement id")
		return
	}

	if report, ok := s.reportCache.Get(id); ok {
		writeJSON(w, http.StatusOK, reportResponse{StatementID: id, Cached: true, Report: report})
		return
	}

	report, err := s.api.Report(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "statement not found")
		return
	}
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to build report",
			log.FieldError, err,
			log.FieldStatementID, id,
			log.FieldOperation, log.OpAggregate)
		writeError(w, http.StatusInternalServerError, "failed to build report")
		return
	}

	s.reportCache.Set(id, report)
	writeJSON(w, http.StatusOK, reportResponse{StatementID: id, Report: report})
}

// handleIngest aggregates an uploaded transaction CSV without storing
// it. Accepts either a raw CSV body or a multipart form with a "file"
// field.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	body, err := ingestBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer body.Close()

	report, err := ingest.Aggregate(io.LimitReader(body, maxIngestBytes))
	if errors.Is(err, aggregate.ErrSchema) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to ingest CSV",
			log.FieldError, err, log.FieldOperation, log.OpIngest)
		writeError(w, http.StatusInternalServerError, "failed to ingest CSV")
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "CSV ingested",
		log.FieldCount, report.TotalCount,
		log.FieldSkipped, report.SkippedRows,
		log.FieldOperation, log.OpIngest)

	writeJSON(w, http.StatusOK, report)
}

func ingestBody(r *http.Request) (io.ReadCloser, error) {
	ct := r.Header.Get("Content-Type")
	mediaType, _, _ := mime.ParseMediaType(ct)
	if mediaType != "multipart/form-data" {
		return r.Body, nil
	}

	if err := r.ParseMultipartForm(maxIngestBytes); err != nil {
		return nil, errors.New("invalid multipart form")
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New("missing 'file' form field")
	}
	return f, nil
}
