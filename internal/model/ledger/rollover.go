package ledger

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/budget-ledger/internal/entity/budget"
	"max.ks1230/budget-ledger/internal/logger"
)

// checkMonthReset runs once, at construction. The comparison is
// month-of-year only: any change of month since last_reset fires the
// rollover exactly once, however many months actually elapsed.
func (e *Engine) checkMonthReset(ctx context.Context) error {
	lastReset, err := time.Parse(budget.DateLayout, e.ledger.LastReset)
	if err != nil {
		return errors.Wrapf(err, "parsing last reset date %q", e.ledger.LastReset)
	}

	if e.nowFunc().Month() == lastReset.Month() {
		return nil
	}

	if err = e.distributeMonthEnd(ctx); err != nil {
		return err
	}
	e.ledger.Limits = make(map[string]float64)
	e.ledger.LastReset = e.today()
	if err = e.storage.SaveLedger(ctx, e.ledger); err != nil {
		return errors.Wrap(err, "saving after rollover")
	}

	observeRollover()
	logger.Info("month rollover complete", zap.String("last_reset", e.ledger.LastReset))
	return nil
}

// distributeMonthEnd splits a positive balance between the configured
// goals, normalizing by the sum of their weights: the whole balance
// is handed out whether or not the percentages add up to 100.
// Repeated credits accumulate under the same goal label.
func (e *Engine) distributeMonthEnd(ctx context.Context) error {
	balance := e.CurrentBalance()
	if balance <= 0 || len(e.prefs.Goals) == 0 {
		return nil
	}
	totalPercent := e.prefs.GoalsTotal()
	if totalPercent <= 0 {
		return nil
	}

	for name, percent := range e.prefs.Goals {
		e.ledger.Incomes[budget.GoalLabel(name)] += balance * percent / totalPercent
	}
	e.ledger.LastBalance = balance
	if err := e.storage.SaveLedger(ctx, e.ledger); err != nil {
		return errors.Wrap(err, "saving distribution")
	}

	logger.Info("month-end balance distributed",
		zap.Float64("balance", balance),
		zap.Int("goals", len(e.prefs.Goals)))
	return nil
}
