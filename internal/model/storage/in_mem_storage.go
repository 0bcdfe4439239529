package storage

import (
	"context"
	"time"

	"max.ks1230/budget-ledger/internal/entity/budget"
)

// InMemStorage holds both documents in memory. It backs tests and
// any embedder that does not want files on disk.
type InMemStorage struct {
	prefs  *budget.Preferences
	ledger *budget.Ledger
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{}
}

func (s *InMemStorage) LoadPreferences(_ context.Context) (budget.Preferences, budget.PreferencesOrigin) {
	if s.prefs == nil {
		return budget.DefaultPreferences(), budget.PreferencesDefaultMissing
	}
	return *s.prefs, budget.PreferencesFromFile
}

func (s *InMemStorage) SavePreferences(_ context.Context, prefs budget.Preferences) error {
	s.prefs = &prefs
	return nil
}

func (s *InMemStorage) LoadLedger(_ context.Context) (budget.Ledger, error) {
	if s.ledger == nil {
		return budget.NewLedger(time.Now().Format(budget.DateLayout)), nil
	}
	return *s.ledger, nil
}

func (s *InMemStorage) SaveLedger(_ context.Context, led budget.Ledger) error {
	s.ledger = &led
	return nil
}
