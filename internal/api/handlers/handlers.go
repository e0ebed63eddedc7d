// Package handlers exposes the tracker operations over HTTP. Each handler
// resolves the authenticated user from the request context, delegates to
// the store or a core component, and converts failures into structured
// JSON error bodies.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/api/middleware"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/apperr"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/domain"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/pipeline"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/stats"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/store"
)

// writeAppError renders an error through the apperr status mapping.
func writeAppError(w http.ResponseWriter, err error) {
	middleware.WriteErrorDetails(w, apperr.HTTPStatus(err), errMessage(err), apperr.Detail(err))
}

func errMessage(err error) string {
	var e *apperr.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}

// userID pulls the authenticated user from the context; a miss means the
// auth middleware was bypassed, which is a server misconfiguration.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return id, true
}

// TransactionsHandler handles manual CRUD on transactions.
type TransactionsHandler struct {
	store store.TransactionStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(store store.TransactionStore, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{store: store, log: log, now: time.Now}
}

// WithClock overrides the clock, used by tests.
func (h *TransactionsHandler) WithClock(now func() time.Time) *TransactionsHandler {
	h.now = now
	return h
}

// transactionPayload is the manual-entry body. Pointer fields distinguish
// an absent key from a zero value; all five keys must be present.
type transactionPayload struct {
	Amount      *json.Number `json:"amount"`
	Type        *string      `json:"type"`
	Date        *string      `json:"date"`
	Category    *string      `json:"category"`
	Description *string      `json:"description"`
}

func (p *transactionPayload) fields() (*domain.TransactionFields, error) {
	if p.Amount == nil || p.Type == nil || p.Date == nil || p.Category == nil || p.Description == nil {
		return nil, apperr.Validation("Missing required fields")
	}

	amount, err := decimal.NewFromString(p.Amount.String())
	if err != nil {
		return nil, apperr.Validation("amount must be a number")
	}

	fields := &domain.TransactionFields{
		Amount:      amount,
		Type:        domain.Type(*p.Type),
		Category:    *p.Category,
		Description: *p.Description,
		Date:        *p.Date,
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	return fields, nil
}

// Create handles POST /api/transactions
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var payload transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fields, err := payload.fields()
	if err != nil {
		writeAppError(w, err)
		return
	}

	tx := &domain.Transaction{
		UserID:        uid,
		TransactionID: uuid.NewString(),
		CreatedAt:     h.now().UTC().Format(time.RFC3339),
	}
	fields.Apply(tx)

	if err := h.store.Put(r.Context(), tx); err != nil {
		h.log.Error().Err(err).Str("user_id", uid).Msg("Failed to store transaction")
		writeAppError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, tx)
}

// List handles GET /api/transactions
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	txs, err := h.store.ListByUser(r.Context(), uid)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", uid).Msg("Failed to list transactions")
		writeAppError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, txs)
}

// Update handles PUT /api/transactions/{id}
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request, transactionID string) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var payload transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fields, err := payload.fields()
	if err != nil {
		writeAppError(w, err)
		return
	}

	if err := h.store.Update(r.Context(), uid, transactionID, fields); err != nil {
		h.log.Error().Err(err).Str("user_id", uid).Str("transaction_id", transactionID).Msg("Failed to update transaction")
		writeAppError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Transaction updated successfully"})
}

// Delete handles DELETE /api/transactions/{id}
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request, transactionID string) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), uid, transactionID); err != nil {
		h.log.Error().Err(err).Str("user_id", uid).Str("transaction_id", transactionID).Msg("Failed to delete transaction")
		writeAppError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

// ExtractionHandler handles natural-language transaction entry.
type ExtractionHandler struct {
	extractor *pipeline.Extractor
	log       zerolog.Logger
}

// NewExtractionHandler creates a new extraction handler.
func NewExtractionHandler(extractor *pipeline.Extractor, log zerolog.Logger) *ExtractionHandler {
	return &ExtractionHandler{extractor: extractor, log: log}
}

// ProcessText handles POST /api/process-text
func (h *ExtractionHandler) ProcessText(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.extractor.ProcessText(r.Context(), uid, req.Text)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", uid).Msg("Failed to process transaction text")
		writeAppError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Transaction processed successfully",
		"data":    tx,
	})
}

// StatsHandler serves the aggregate views.
type StatsHandler struct {
	store store.TransactionStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(store store.TransactionStore, log zerolog.Logger) *StatsHandler {
	return &StatsHandler{store: store, log: log, now: time.Now}
}

// WithClock overrides the clock, used by tests.
func (h *StatsHandler) WithClock(now func() time.Time) *StatsHandler {
	h.now = now
	return h
}

// Get handles GET /api/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	txs, err := h.store.ListByUser(r.Context(), uid)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", uid).Msg("Failed to load transactions for stats")
		writeAppError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, stats.Compute(txs, h.now()))
}
