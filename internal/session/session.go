package session

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fitchef/ember/internal/errors"
	"github.com/fitchef/ember/internal/metrics"
	"github.com/fitchef/ember/internal/services/recipe"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Status is the generation lifecycle state of a session.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusGenerating Status = "generating"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// DefaultHistoryLimit bounds the recent-results history.
const DefaultHistoryLimit = 5

// HistoryEntry is one past successful generation, most-recent-first in the
// session history.
type HistoryEntry struct {
	Recipe    recipe.Recipe `json:"recipe"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Snapshot is a read-only copy of session state for the presentation layer.
type Snapshot struct {
	ID         string           `json:"id"`
	Input      string           `json:"input"`
	DietFilter string           `json:"dietFilter"`
	Status     Status           `json:"status"`
	Current    *recipe.Recipe   `json:"current,omitempty"`
	Thought    string           `json:"thought,omitempty"`
	Error      *errors.AppError `json:"error,omitempty"`
	History    []HistoryEntry   `json:"history"`
}

// Session owns the state of one generation context. All mutation flows
// through its methods; the state machine is Idle -> Generating ->
// {Succeeded, Failed}, with both terminal states re-entering Generating on
// the next submit. At most one generation is in flight per session: a
// submit while one is outstanding is rejected, never queued, so a stale
// response can never overwrite a newer one.
type Session struct {
	id           string
	provider     recipe.Provider
	historyLimit int
	now          func() time.Time

	mu         sync.Mutex
	input      string
	dietFilter string
	status     Status
	current    *recipe.Recipe
	thought    string
	lastErr    *errors.AppError
	history    []HistoryEntry
	inFlight   bool
}

// New creates an idle session bound to the given provider.
func New(id string, provider recipe.Provider, historyLimit int) *Session {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Session{
		id:           id,
		provider:     provider,
		historyLimit: historyLimit,
		status:       StatusIdle,
		now:          time.Now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Submit runs one generation. An empty (trimmed) input is rejected without
// any state transition or external call. A submit while a generation is in
// flight is rejected with a conflict error and does not touch state. Any
// other outcome transitions the session: Succeeded commits the recipe as
// current and appends it to history; Failed records the error kind and
// leaves current unchanged.
func (s *Session) Submit(ctx context.Context, input, dietFilter string) (*recipe.GenerationResult, error) {
	if strings.TrimSpace(input) == "" {
		metrics.SessionSubmitsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "empty_input")))
		return nil, errors.NewEmptyInputError("please enter ingredients or a recipe request")
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		metrics.SessionRejectionsTotal.Add(ctx, 1)
		return nil, errors.NewConflictError("a generation is already in flight for this session", "GENERATION_IN_FLIGHT")
	}
	s.input = input
	s.dietFilter = dietFilter
	s.lastErr = nil
	s.status = StatusGenerating
	s.inFlight = true
	s.mu.Unlock()

	result, err := s.provider.Generate(ctx, input, dietFilter)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	if err != nil {
		s.status = StatusFailed
		s.lastErr = asAppError(err)
		outcome := metric.WithAttributes(attribute.String("outcome", "failed"))
		metrics.SessionSubmitsTotal.Add(ctx, 1, outcome)
		metrics.GenerationsTotal.Add(ctx, 1, outcome)
		slog.Info("Generation failed",
			"session_id", s.id,
			"error_type", string(s.lastErr.Type),
			"error", err.Error())
		return nil, err
	}

	committed := result.Recipe
	s.current = &committed
	s.thought = result.Thought
	s.status = StatusSucceeded
	s.appendHistory(committed)
	outcome := metric.WithAttributes(attribute.String("outcome", "succeeded"))
	metrics.SessionSubmitsTotal.Add(ctx, 1, outcome)
	metrics.GenerationsTotal.Add(ctx, 1, outcome)
	slog.Info("Generation succeeded",
		"session_id", s.id,
		"recipe_name", committed.RecipeName,
		"history_len", len(s.history))
	return result, nil
}

// appendHistory prepends the recipe unless an entry with the same name
// already exists (case-sensitive, first-write-wins position), then
// truncates to the history limit, evicting the oldest. Caller holds s.mu.
func (s *Session) appendHistory(r recipe.Recipe) {
	for _, entry := range s.history {
		if entry.Recipe.RecipeName == r.RecipeName {
			return
		}
	}
	entries := make([]HistoryEntry, 0, len(s.history)+1)
	entries = append(entries, HistoryEntry{Recipe: r, CreatedAt: s.now()})
	entries = append(entries, s.history...)
	if len(entries) > s.historyLimit {
		entries = entries[:s.historyLimit]
	}
	s.history = entries
}

// SelectFromHistory makes the history entry at index the current recipe.
// It does not re-trigger generation and does not mutate history.
func (s *Session) SelectFromHistory(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.history) {
		return errors.NewNotFoundError("no history entry at that index", "HISTORY_INDEX_OUT_OF_RANGE")
	}

	selected := s.history[index].Recipe
	s.current = &selected
	return nil
}

// RemoveFromHistory removes the entry at index, preserving the relative
// order of the remaining entries. It has no other side effects: current is
// untouched even when it was selected from the removed entry.
func (s *Session) RemoveFromHistory(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.history) {
		return errors.NewNotFoundError("no history entry at that index", "HISTORY_INDEX_OUT_OF_RANGE")
	}

	s.history = append(s.history[:index], s.history[index+1:]...)
	return nil
}

// Snapshot returns a copy of the session state safe to read after the
// lock is released.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.id,
		Input:      s.input,
		DietFilter: s.dietFilter,
		Status:     s.status,
		Thought:    s.thought,
		Error:      s.lastErr,
		History:    make([]HistoryEntry, len(s.history)),
	}
	copy(snap.History, s.history)
	if s.current != nil {
		current := *s.current
		snap.Current = &current
	}
	return snap
}

// asAppError maps any error into the AppError taxonomy, defaulting to an
// upstream failure for causes the pipeline did not classify.
func asAppError(err error) *errors.AppError {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return errors.NewUpstreamError("recipe generation failed", "GENERATION_FAILED", err)
}
