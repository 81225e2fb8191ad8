// Package router implements the confidence-gated decision flow that turns
// parsed transaction input into a committed record, routing through
// auto-accept, confirm, or manual category selection based on classifier
// confidence, and tracking the multi-step conversation per user.
package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/common"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/parse"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/service"
)

// ErrUnexpectedEvent is returned when an event does not apply to the current
// conversation state, e.g. a category pick while awaiting confirmation.
var ErrUnexpectedEvent = errors.New("event not valid in current state")

// Status describes the router's answer to one interaction.
type Status string

// Router outcome statuses.
const (
	// StatusAutoCommitted: saved immediately on high confidence, the only
	// path that writes without explicit user confirmation.
	StatusAutoCommitted Status = "auto_committed"
	// StatusNeedsConfirmation: a suggested category awaits a yes/no.
	StatusNeedsConfirmation Status = "needs_confirmation"
	// StatusNeedsCategory: the user must pick a category from the list.
	StatusNeedsCategory Status = "needs_category"
	// StatusNeedsAmount: fast-add flow awaits a sum.
	StatusNeedsAmount Status = "needs_amount"
	// StatusCommitted: saved after explicit confirmation.
	StatusCommitted Status = "committed"
	// StatusCancelled: pending state discarded.
	StatusCancelled Status = "cancelled"
)

// Outcome is the structured result the conversational surface renders.
type Outcome struct {
	Transaction *model.Transaction
	Pending     *model.PendingTransaction
	Status      Status
	Categories  []model.Category
}

// Config holds the confidence thresholds for the three-way routing decision.
type Config struct {
	DefaultCategory string
	// ConfidenceThreshold is the floor below which the classifier suggestion
	// is discarded and the user picks manually.
	ConfidenceThreshold float64
	// HighConfidenceThreshold is the floor for committing without asking.
	// The band between the two thresholds goes through confirmation.
	HighConfidenceThreshold float64
}

// DefaultConfig returns the default routing thresholds.
func DefaultConfig() Config {
	return Config{
		DefaultCategory:         model.DefaultCategoryName,
		ConfidenceThreshold:     0.80,
		HighConfidenceThreshold: 0.85,
	}
}

// Router drives the per-user transaction conversation. The classifier is an
// explicit dependency and may be nil, in which case every input goes through
// manual category selection.
type Router struct {
	storage    service.Storage
	classifier service.Classifier
	sessions   *sessionStore
	cfg        Config
}

// New creates a router over the given collaborators.
func New(storage service.Storage, classifier service.Classifier, cfg Config) *Router {
	return &Router{
		storage:    storage,
		classifier: classifier,
		sessions:   newSessionStore(),
		cfg:        cfg,
	}
}

// Begin starts a conversation from one raw input line. Any pending
// conversation for the user is overridden, never merged. The returned outcome
// is either a committed transaction (high confidence) or a pending state the
// surface must resolve through Resolve.
func (r *Router) Begin(ctx context.Context, userID int64, text string) (Outcome, error) {
	parsed, err := parse.Parse(text)
	if err != nil {
		return Outcome{}, err
	}
	if err := parse.Validate(parsed.Amount); err != nil {
		return Outcome{}, err
	}

	// A fresh Begin invalidates whatever conversation was in flight.
	r.sessions.clear(userID)

	pending := model.PendingTransaction{
		Token:             uuid.New(),
		UserID:            userID,
		Amount:            parsed.Amount,
		Description:       parsed.Description,
		SuggestedCategory: r.cfg.DefaultCategory,
	}
	r.classify(&pending)

	if cat, catErr := r.storage.GetCategoryByName(ctx, pending.SuggestedCategory); catErr == nil && cat != nil {
		pending.SuggestedID = cat.ID
	} else {
		// Unknown label, e.g. the model was trained against a different
		// category set. Fall back to manual selection.
		if catErr != nil {
			slog.Warn("failed to resolve suggested category", "category", pending.SuggestedCategory, "error", catErr)
		}
		pending.AutoCategory = false
		pending.HighConfidence = false
	}

	switch {
	case pending.HighConfidence:
		txn, commitErr := r.commit(ctx, &pending)
		if commitErr != nil {
			return Outcome{}, commitErr
		}
		return Outcome{Status: StatusAutoCommitted, Transaction: txn, Pending: &pending}, nil

	case pending.AutoCategory:
		r.sessions.put(userID, &session{pending: pending, state: StateAwaitingConfirmation})
		return Outcome{Status: StatusNeedsConfirmation, Pending: &pending}, nil

	default:
		categories, listErr := r.storage.GetCategories(ctx)
		if listErr != nil {
			r.sessions.clear(userID)
			return Outcome{}, fmt.Errorf("failed to list categories: %w", listErr)
		}
		r.sessions.put(userID, &session{pending: pending, state: StateAwaitingCategory})
		return Outcome{Status: StatusNeedsCategory, Pending: &pending, Categories: categories}, nil
	}
}

// classify fills the suggestion fields on pending. A missing classifier, an
// empty description, or a classifier error all leave the pending transaction
// unconfident; classification never fails the conversation.
func (r *Router) classify(pending *model.PendingTransaction) {
	if r.classifier == nil || pending.Description == "" {
		return
	}

	category, confidence, confident, err := r.classifier.PredictWithThreshold(pending.Description, r.cfg.ConfidenceThreshold)
	if err != nil {
		slog.Warn("classification failed, falling back to manual selection",
			"description", pending.Description, "error", err)
		return
	}

	pending.Confidence = confidence
	if confident {
		pending.SuggestedCategory = category
		pending.AutoCategory = true
		pending.HighConfidence = confidence >= r.cfg.HighConfidenceThreshold
	}
}

// Resolve advances a pending conversation by one event. The token must match
// the pending conversation; events from an overridden conversation are
// rejected with common.ErrStaleSession.
func (r *Router) Resolve(ctx context.Context, userID int64, token uuid.UUID, event Event) (Outcome, error) {
	sess := r.sessions.get(userID)
	if sess == nil {
		return Outcome{}, common.ErrNoPending
	}
	if sess.pending.Token != token {
		return Outcome{}, common.ErrStaleSession
	}

	// Cancel applies in every state and always clears.
	if _, ok := event.(Cancel); ok {
		r.sessions.clear(userID)
		return Outcome{Status: StatusCancelled}, nil
	}

	switch sess.state {
	case StateAwaitingConfirmation:
		return r.resolveConfirmation(ctx, userID, sess, event)
	case StateAwaitingCategory:
		return r.resolveSelection(ctx, userID, sess, event)
	case StateAwaitingAmount:
		// The fast flow takes its amount through FastAmount, not an event.
		return Outcome{}, fmt.Errorf("%w: awaiting amount input", ErrUnexpectedEvent)
	default:
		return Outcome{}, fmt.Errorf("%w: unknown state %d", ErrUnexpectedEvent, sess.state)
	}
}

func (r *Router) resolveConfirmation(ctx context.Context, userID int64, sess *session, event Event) (Outcome, error) {
	switch event.(type) {
	case ConfirmYes:
		pending := sess.pending
		r.sessions.clear(userID)
		txn, err := r.commit(ctx, &pending)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Status: StatusCommitted, Transaction: txn, Pending: &pending}, nil

	case ConfirmNo:
		// Only a classifier suggestion is worth re-asking about. Rejecting a
		// category the user picked themselves ends the conversation.
		if !sess.pending.AutoCategory {
			r.sessions.clear(userID)
			return Outcome{Status: StatusCancelled}, nil
		}

		categories, err := r.storage.GetCategories(ctx)
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to list categories: %w", err)
		}
		sess.state = StateAwaitingCategory
		pending := sess.pending
		return Outcome{Status: StatusNeedsCategory, Pending: &pending, Categories: categories}, nil

	default:
		return Outcome{}, fmt.Errorf("%w: awaiting confirmation", ErrUnexpectedEvent)
	}
}

func (r *Router) resolveSelection(ctx context.Context, userID int64, sess *session, event Event) (Outcome, error) {
	pick, ok := event.(SelectCategory)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: awaiting category selection", ErrUnexpectedEvent)
	}

	category, err := r.storage.GetCategoryByID(ctx, pick.CategoryID)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to load category %d: %w", pick.CategoryID, err)
	}
	if category == nil {
		// Unknown id, keep the conversation open so the user can pick again.
		return Outcome{}, fmt.Errorf("%w: category %d", common.ErrNotFound, pick.CategoryID)
	}

	sess.pending.SuggestedID = category.ID
	sess.pending.SuggestedCategory = category.Name
	sess.pending.AutoCategory = false
	sess.pending.HighConfidence = false
	sess.state = StateAwaitingConfirmation

	pending := sess.pending
	return Outcome{Status: StatusNeedsConfirmation, Pending: &pending}, nil
}

// FastSelect starts the fast-add flow: the category is chosen up front and
// the amount follows. Overrides any pending conversation.
func (r *Router) FastSelect(ctx context.Context, userID, categoryID int64) (Outcome, error) {
	category, err := r.storage.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to load category %d: %w", categoryID, err)
	}
	if category == nil {
		return Outcome{}, fmt.Errorf("%w: category %d", common.ErrNotFound, categoryID)
	}

	pending := model.PendingTransaction{
		Token:             uuid.New(),
		UserID:            userID,
		SuggestedID:       category.ID,
		SuggestedCategory: category.Name,
	}
	r.sessions.put(userID, &session{pending: pending, state: StateAwaitingAmount})
	return Outcome{Status: StatusNeedsAmount, Pending: &pending}, nil
}

// FastAmount completes the fast-add flow with a sum entered as text. A
// parse or validation failure keeps the conversation open for another try.
func (r *Router) FastAmount(ctx context.Context, userID int64, token uuid.UUID, text string) (Outcome, error) {
	sess := r.sessions.get(userID)
	if sess == nil {
		return Outcome{}, common.ErrNoPending
	}
	if sess.pending.Token != token {
		return Outcome{}, common.ErrStaleSession
	}
	if sess.state != StateAwaitingAmount {
		return Outcome{}, fmt.Errorf("%w: not awaiting amount", ErrUnexpectedEvent)
	}

	amount, err := parse.ParseValidated(text)
	if err != nil {
		return Outcome{}, err
	}

	pending := sess.pending
	pending.Amount = amount
	r.sessions.clear(userID)

	txn, err := r.commit(ctx, &pending)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Status: StatusCommitted, Transaction: txn, Pending: &pending}, nil
}

// CancelPending discards any pending conversation for the user, reporting
// whether one existed.
func (r *Router) CancelPending(userID int64) bool {
	existed := r.sessions.get(userID) != nil
	r.sessions.clear(userID)
	return existed
}

// commit persists the pending transaction. Pending state must already have
// been cleared by the caller; a storage failure is reported to the user and
// never retried, so the flow can be restarted cleanly.
func (r *Router) commit(ctx context.Context, pending *model.PendingTransaction) (*model.Transaction, error) {
	id, err := r.storage.InsertTransaction(ctx, pending.UserID, pending.Amount, pending.Description, pending.SuggestedID)
	if err != nil {
		return nil, common.NewUserError("не удалось сохранить транзакцию", err)
	}

	txn := &model.Transaction{
		ID:           id,
		UserID:       pending.UserID,
		Amount:       pending.Amount,
		Description:  pending.Description,
		CategoryID:   pending.SuggestedID,
		CategoryName: pending.SuggestedCategory,
		Date:         time.Now(),
	}

	slog.Info("transaction committed",
		"transaction_id", id,
		"user_id", pending.UserID,
		"category", pending.SuggestedCategory,
		"confidence", pending.Confidence,
		"auto", pending.HighConfidence)

	return txn, nil
}
