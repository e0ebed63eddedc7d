// Package pipeline converts free-form user text into stored transactions
// through a templated model prompt.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/apperr"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/domain"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/store"
)

// Extractor orchestrates the extraction pipeline: validate input, build
// the prompt, invoke the model, parse and validate the response, persist
// the record. Exactly one store write happens on success, none on any
// failure.
type Extractor struct {
	model ModelClient
	store store.TransactionStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewExtractor creates an extractor with injected collaborators.
func NewExtractor(model ModelClient, store store.TransactionStore, log zerolog.Logger) *Extractor {
	return &Extractor{
		model: model,
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// WithClock overrides the clock, used by tests to pin "today".
func (e *Extractor) WithClock(now func() time.Time) *Extractor {
	e.now = now
	return e
}

// ProcessText runs the pipeline for one piece of user text and returns
// the stored transaction.
func (e *Extractor) ProcessText(ctx context.Context, userID, text string) (*domain.Transaction, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validation("Input text is required.")
	}

	now := e.now()
	prompt := BuildPrompt(text, now)

	raw, err := e.model.Invoke(ctx, prompt)
	if err != nil {
		return nil, err
	}

	fields, err := parseExtraction(raw)
	if err != nil {
		e.log.Warn().
			Err(err).
			Str("user_id", userID).
			Msg("Model output rejected")
		return nil, err
	}

	tx := &domain.Transaction{
		UserID:        userID,
		TransactionID: uuid.NewString(),
		CreatedAt:     now.UTC().Format(time.RFC3339),
	}
	fields.Apply(tx)

	if err := e.store.Put(ctx, tx); err != nil {
		return nil, err
	}

	e.log.Info().
		Str("user_id", userID).
		Str("transaction_id", tx.TransactionID).
		Str("type", string(tx.Type)).
		Str("category", tx.Category).
		Msg("Transaction extracted from text")

	return tx, nil
}
