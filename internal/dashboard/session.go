// Package dashboard holds the current statement batch and serves the derived
// views. Views are recomputed from the batch and the budget source; the cache
// only avoids repeating identical work.
package dashboard

import (
	"fmt"
	"sync"

	"fjacquet/statement-insights/internal/budget"
	"fjacquet/statement-insights/internal/logging"
	"fjacquet/statement-insights/internal/models"
	"fjacquet/statement-insights/internal/search"
	"fjacquet/statement-insights/internal/stats"

	"github.com/shopspring/decimal"
)

// BudgetSource supplies the current budgets. The session never writes to it.
type BudgetSource interface {
	Load() (models.Budget, error)
}

// View is everything the dashboard renders for one batch and budget state.
type View struct {
	BatchID    string                `json:"batchId" yaml:"batchId"`
	Source     string                `json:"source" yaml:"source"`
	Summary    stats.SummaryStats    `json:"summary" yaml:"summary"`
	Breakdown  []stats.CategoryShare `json:"categoryBreakdown" yaml:"categoryBreakdown"`
	RecentDays []stats.SpendingDay   `json:"recentDays" yaml:"recentDays"`
	Forecast   decimal.Decimal       `json:"monthlyForecast" yaml:"monthlyForecast"`
	Budgets    []budget.Progress     `json:"budgets" yaml:"budgets"`
	Overview   budget.Overview       `json:"overview" yaml:"overview"`
}

type cacheKey struct {
	batchID     string
	fingerprint string
}

// Session is safe for concurrent use.
type Session struct {
	budgets BudgetSource
	logger  logging.Logger

	mu     sync.RWMutex
	batch  *models.Batch
	cached *View
	key    cacheKey
}

// NewSession creates an empty session reading budgets from source.
func NewSession(source BudgetSource, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Session{budgets: source, logger: logger}
}

// Load replaces the current batch wholesale.
func (s *Session) Load(batch models.Batch) {
	transactions := make([]models.Transaction, len(batch.Transactions))
	copy(transactions, batch.Transactions)
	batch.Transactions = transactions

	s.mu.Lock()
	s.batch = &batch
	s.cached = nil
	s.mu.Unlock()

	s.logger.Debug("Session loaded batch",
		logging.Field{Key: logging.FieldBatchID, Value: batch.ID},
		logging.Field{Key: logging.FieldCount, Value: batch.Len()})
}

// Reset clears the batch.
func (s *Session) Reset() {
	s.mu.Lock()
	s.batch = nil
	s.cached = nil
	s.mu.Unlock()
}

// Loaded reports whether a batch is present.
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.batch != nil
}

// Transactions returns a copy of the current batch's transactions.
func (s *Session) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.batch == nil {
		return []models.Transaction{}
	}
	out := make([]models.Transaction, len(s.batch.Transactions))
	copy(out, s.batch.Transactions)
	return out
}

// Search returns the transaction table rows matching term in the given order.
func (s *Session) Search(term string, order search.Order) []models.Transaction {
	return search.Query(s.Transactions(), term, order)
}

// Summary returns the summary statistics of the current batch. An empty
// session yields the empty-input summary.
func (s *Session) Summary() stats.SummaryStats {
	return stats.ComputeSummary(s.Transactions())
}

// Budgets evaluates the current budgets against the current batch.
func (s *Session) Budgets() ([]budget.Progress, error) {
	view, err := s.View()
	if err != nil {
		return nil, err
	}
	return view.Budgets, nil
}

// View returns all derived views. The result is cached until the batch
// changes or the budget source returns different contents.
func (s *Session) View() (View, error) {
	current, err := s.budgets.Load()
	if err != nil {
		return View{}, fmt.Errorf("failed to load budgets: %w", err)
	}

	s.mu.RLock()
	batch := s.batch
	key := cacheKey{fingerprint: current.Fingerprint()}
	if batch != nil {
		key.batchID = batch.ID
	}
	if s.cached != nil && s.key == key {
		view := *s.cached
		s.mu.RUnlock()
		return view, nil
	}
	s.mu.RUnlock()

	var transactions []models.Transaction
	view := View{}
	if batch != nil {
		transactions = batch.Transactions
		view.BatchID = batch.ID
		view.Source = batch.Source
	}
	view.Summary = stats.ComputeSummary(transactions)
	view.Breakdown = stats.CategoryBreakdown(view.Summary)
	view.RecentDays = stats.RecentDays(stats.DailyExpenses(transactions), stats.ChartDays)
	view.Forecast = stats.MonthlyForecast(view.Summary)
	view.Budgets = budget.Evaluate(view.Summary.CategoryTotals, current)
	view.Overview = budget.Summarize(view.Budgets)

	s.mu.Lock()
	// Only cache if the batch was not swapped while computing.
	if s.batch == batch {
		s.cached = &view
		s.key = key
	}
	s.mu.Unlock()
	return view, nil
}
