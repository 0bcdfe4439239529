package ledger

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/budget-ledger/internal/entity/budget"
	"max.ks1230/budget-ledger/internal/logger"
)

type budgetStorage interface {
	LoadPreferences(ctx context.Context) (budget.Preferences, budget.PreferencesOrigin)
	SavePreferences(ctx context.Context, prefs budget.Preferences) error
	LoadLedger(ctx context.Context) (budget.Ledger, error)
	SaveLedger(ctx context.Context, led budget.Ledger) error
}

// Engine owns the in-memory ledger state. Every mutating call writes
// the whole ledger document back through the storage before returning.
type Engine struct {
	storage     budgetStorage
	prefs       budget.Preferences
	prefsOrigin budget.PreferencesOrigin
	ledger      budget.Ledger
	nowFunc     func() time.Time
}

func New(ctx context.Context, storage budgetStorage) (*Engine, error) {
	return newEngine(ctx, storage, time.Now)
}

func newEngine(ctx context.Context, storage budgetStorage, nowFunc func() time.Time) (*Engine, error) {
	e := &Engine{storage: storage, nowFunc: nowFunc}

	e.prefs, e.prefsOrigin = storage.LoadPreferences(ctx)
	switch e.prefsOrigin {
	case budget.PreferencesDefaultMissing:
		logger.Info("preferences file absent, using defaults")
	case budget.PreferencesDefaultCorrupt:
		logger.Warn("preferences unreadable, using defaults")
	}

	led, err := storage.LoadLedger(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading ledger")
	}
	e.ledger = led

	if err = e.checkMonthReset(ctx); err != nil {
		return nil, errors.Wrap(err, "month rollover")
	}
	return e, nil
}

func (e *Engine) CurrentBalance() float64 {
	return e.ledger.Balance()
}

// AddIncome overwrites the income entry for date. A second income on
// the same date replaces the first, and the amount is credited into
// tomorrow's allowance. Negative amounts are accepted as reductions.
func (e *Engine) AddIncome(ctx context.Context, date string, amount float64) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "addIncome")
	defer span.Finish()

	e.ledger.Incomes[date] = amount
	err := e.updateLimits(ctx, date, -amount)
	if err == nil {
		err = e.storage.SaveLedger(ctx, e.ledger)
	}
	if err != nil {
		ext.Error.Set(span, true)
		return errors.Wrap(err, "add income")
	}

	logger.Info("income recorded", zap.String("date", date), zap.Float64("amount", amount))
	return nil
}

// AddExpense records amount against date. Rejections are a normal
// outcome reported as (false, nil): the date must be today and the
// amount must fit within today's allowance. Rejections never mutate
// state. Same-day expenses accumulate.
func (e *Engine) AddExpense(ctx context.Context, date string, amount float64) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "addExpense")
	defer span.Finish()

	if date != e.today() {
		observeExpense(expenseRejectedWrongDay)
		return false, nil
	}
	if amount > e.DailyLimit(date) {
		observeExpense(expenseRejectedOverLimit)
		return false, nil
	}

	e.ledger.Expenses[date] += amount
	err := e.updateLimits(ctx, date, e.ledger.Expenses[date])
	if err == nil {
		err = e.storage.SaveLedger(ctx, e.ledger)
	}
	if err != nil {
		ext.Error.Set(span, true)
		return false, errors.Wrap(err, "add expense")
	}

	observeExpense(expenseAccepted)
	logger.Info("expense recorded", zap.String("date", date), zap.Float64("amount", amount))
	return true, nil
}

// DailyLimit resolves the allowance for date. The lookback is lazy
// and exactly one day deep: an explicit override wins; otherwise
// yesterday's leftover plus a fresh base allotment; otherwise the
// base limit. A gap of more than one day falls back to the base.
func (e *Engine) DailyLimit(date string) float64 {
	if limit, ok := e.ledger.Limits[date]; ok {
		return limit
	}
	prev := shiftDay(date, -1)
	if limit, ok := e.ledger.Limits[prev]; ok {
		remaining := limit - e.ledger.Expenses[prev]
		return remaining + e.prefs.DailyLimit
	}
	return e.prefs.DailyLimit
}

// updateLimits seeds tomorrow's override as today's leftover topped
// up with a full fresh base limit. Unspent allowance therefore
// compounds day over day; that is the historical behavior and is
// kept on purpose.
func (e *Engine) updateLimits(ctx context.Context, date string, spent float64) error {
	next := shiftDay(date, 1)
	if next == "" {
		return nil
	}
	e.ledger.Limits[next] = e.DailyLimit(date) - spent + e.prefs.DailyLimit
	return e.storage.SaveLedger(ctx, e.ledger)
}

// ResetData replaces the ledger with an empty one dated today.
func (e *Engine) ResetData(ctx context.Context) error {
	e.ledger = budget.NewLedger(e.today())
	return errors.Wrap(e.storage.SaveLedger(ctx, e.ledger), "reset data")
}

func (e *Engine) SpentOn(date string) float64 {
	return e.ledger.Expenses[date]
}

func (e *Engine) LastBalance() float64 {
	return e.ledger.LastBalance
}

func (e *Engine) Preferences() budget.Preferences {
	return e.prefs
}

func (e *Engine) PreferencesOrigin() budget.PreferencesOrigin {
	return e.prefsOrigin
}

// SavePreferences replaces the preferences document wholesale; there
// is no partial update.
func (e *Engine) SavePreferences(ctx context.Context, prefs budget.Preferences) error {
	e.prefs = prefs
	return errors.Wrap(e.storage.SavePreferences(ctx, prefs), "saving preferences")
}

func (e *Engine) today() string {
	return e.nowFunc().Format(budget.DateLayout)
}

func shiftDay(date string, days int) string {
	day, err := time.Parse(budget.DateLayout, date)
	if err != nil {
		return ""
	}
	return day.AddDate(0, 0, days).Format(budget.DateLayout)
}
