package storage

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/budget-ledger/internal/entity/budget"
	"max.ks1230/budget-ledger/internal/logger"
)

// ErrCorruptLedger marks a ledger document that exists but cannot be
// parsed. Unlike preferences there is no safe fallback: defaulting
// would silently discard the user's records.
var ErrCorruptLedger = errors.New("corrupt ledger document")

const fileMode = 0o644

type config interface {
	PreferencesFile() string
	LedgerFile() string
}

// FileStorage keeps both documents as JSON files, rewritten whole on
// every save. Concurrent writers are last-writer-wins; the tool
// assumes a single process owns the files.
type FileStorage struct {
	preferencesPath string
	ledgerPath      string
}

func NewFileStorage(config config) *FileStorage {
	return &FileStorage{
		preferencesPath: config.PreferencesFile(),
		ledgerPath:      config.LedgerFile(),
	}
}

func (s *FileStorage) LoadPreferences(_ context.Context) (budget.Preferences, budget.PreferencesOrigin) {
	rawJSON, err := os.ReadFile(s.preferencesPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return budget.DefaultPreferences(), budget.PreferencesDefaultMissing
		}
		logger.Error("reading preferences", zap.String("path", s.preferencesPath), zap.Error(err))
		return budget.DefaultPreferences(), budget.PreferencesDefaultCorrupt
	}

	// Decode over the defaults so fields absent from the document
	// keep their default values.
	prefs := budget.DefaultPreferences()
	if err = json.Unmarshal(rawJSON, &prefs); err != nil {
		logger.Error("parsing preferences", zap.String("path", s.preferencesPath), zap.Error(err))
		return budget.DefaultPreferences(), budget.PreferencesDefaultCorrupt
	}
	if prefs.Goals == nil {
		prefs.Goals = make(map[string]float64)
	}
	return prefs, budget.PreferencesFromFile
}

func (s *FileStorage) SavePreferences(_ context.Context, prefs budget.Preferences) error {
	rawJSON, err := json.MarshalIndent(prefs, "", "    ")
	if err != nil {
		return errors.Wrap(err, "encoding preferences")
	}
	err = os.WriteFile(s.preferencesPath, rawJSON, fileMode)
	return errors.Wrap(err, "writing preferences")
}

func (s *FileStorage) LoadLedger(_ context.Context) (budget.Ledger, error) {
	today := time.Now().Format(budget.DateLayout)

	rawJSON, err := os.ReadFile(s.ledgerPath)
	if errors.Is(err, fs.ErrNotExist) {
		return budget.NewLedger(today), nil
	}
	if err != nil {
		return budget.Ledger{}, errors.Wrap(err, "reading ledger")
	}

	var led budget.Ledger
	if err = json.Unmarshal(rawJSON, &led); err != nil {
		return budget.Ledger{}, errors.Wrapf(ErrCorruptLedger, "%s: %v", s.ledgerPath, err)
	}
	led.Normalize(today)
	return led, nil
}

func (s *FileStorage) SaveLedger(_ context.Context, led budget.Ledger) error {
	rawJSON, err := json.MarshalIndent(led, "", "    ")
	if err != nil {
		return errors.Wrap(err, "encoding ledger")
	}
	err = os.WriteFile(s.ledgerPath, rawJSON, fileMode)
	return errors.Wrap(err, "writing ledger")
}
