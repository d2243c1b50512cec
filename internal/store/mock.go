package store

import (
	"sync"

	"fjacquet/statement-insights/internal/models"
)

// MockBudgetStore is an in-memory budget store for tests.
type MockBudgetStore struct {
	mu        sync.Mutex
	Budget    models.Budget
	LoadError error
	SaveError error
	loads     int
}

// Load returns a copy of the stored budget.
func (m *MockBudgetStore) Load() (models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.Budget == nil {
		return models.Budget{}, nil
	}
	return m.Budget.Clone(), nil
}

// Save replaces the stored budget.
func (m *MockBudgetStore) Save(budget models.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Budget = budget.Clone()
	return nil
}

// Loads returns how many times Load was called.
func (m *MockBudgetStore) Loads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}
