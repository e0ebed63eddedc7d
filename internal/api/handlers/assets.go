package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/api/middleware"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/apperr"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/domain"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/store"
)

// AssetsHandler handles asset records (Cash, Bank, Investment, Property).
type AssetsHandler struct {
	store store.AssetStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewAssetsHandler creates a new assets handler.
func NewAssetsHandler(store store.AssetStore, log zerolog.Logger) *AssetsHandler {
	return &AssetsHandler{store: store, log: log, now: time.Now}
}

// Create handles POST /api/assets
func (h *AssetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var payload struct {
		Name        *string      `json:"name"`
		Amount      *json.Number `json:"amount"`
		Category    *string      `json:"category"`
		Description string       `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Name == nil || payload.Amount == nil || payload.Category == nil {
		writeAppError(w, apperr.Validation("Missing required fields"))
		return
	}

	amount, err := decimal.NewFromString(payload.Amount.String())
	if err != nil {
		writeAppError(w, apperr.Validation("amount must be a number"))
		return
	}

	asset := &domain.Asset{
		UserID:      uid,
		AssetID:     uuid.NewString(),
		Name:        *payload.Name,
		Amount:      amount,
		Category:    *payload.Category,
		Description: payload.Description,
		UpdatedAt:   h.now().UTC().Format(time.RFC3339),
	}
	if err := asset.Validate(); err != nil {
		writeAppError(w, err)
		return
	}

	if err := h.store.PutAsset(r.Context(), asset); err != nil {
		h.log.Error().Err(err).Str("user_id", uid).Msg("Failed to store asset")
		writeAppError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, asset)
}

// List handles GET /api/assets
func (h *AssetsHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	assets, err := h.store.ListAssetsByUser(r.Context(), uid)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", uid).Msg("Failed to list assets")
		writeAppError(w, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, assets)
}
