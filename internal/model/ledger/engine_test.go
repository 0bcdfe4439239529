package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"max.ks1230/budget-ledger/internal/entity/budget"
	"max.ks1230/budget-ledger/internal/model/storage"
)

func mustDate(t *testing.T, date string) time.Time {
	parsed, err := time.Parse(budget.DateLayout, date)
	require.NoError(t, err)
	return parsed
}

func newTestEngine(t *testing.T, today string, prefs *budget.Preferences, led *budget.Ledger) (*Engine, *storage.InMemStorage) {
	ctx := context.Background()
	store := storage.NewInMemStorage()

	if prefs != nil {
		require.NoError(t, store.SavePreferences(ctx, *prefs))
	}
	if led == nil {
		l := budget.NewLedger(today)
		led = &l
	}
	require.NoError(t, store.SaveLedger(ctx, *led))

	eng, err := newEngine(ctx, store, func() time.Time { return mustDate(t, today) })
	require.NoError(t, err)
	return eng, store
}

func Test_OnEmptyLedger_BalanceShouldBeZero(t *testing.T) {
	eng, _ := newTestEngine(t, "2023-05-15", nil, nil)
	assert.Equal(t, 0.0, eng.CurrentBalance())
}

func Test_OnMixedOperations_BalanceShouldSumIncomesMinusExpenses(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, "2023-05-15", nil, nil)

	require.NoError(t, eng.AddIncome(ctx, "2023-05-10", 700))
	require.NoError(t, eng.AddIncome(ctx, "2023-05-11", -100))

	accepted, err := eng.AddExpense(ctx, "2023-05-15", 150)
	require.NoError(t, err)
	require.True(t, accepted)

	assert.InDelta(t, 450.0, eng.CurrentBalance(), 1e-9)
}

func Test_OnAddIncome_SameDate_ShouldOverwrite(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, "2023-05-15", nil, nil)

	require.NoError(t, eng.AddIncome(ctx, "2023-05-15", 500))
	require.NoError(t, eng.AddIncome(ctx, "2023-05-15", 200))

	assert.InDelta(t, 200.0, eng.CurrentBalance(), 1e-9)
}

func Test_OnAddIncome_ShouldCreditTomorrowAllowance(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, "2023-05-15", nil, nil)

	require.NoError(t, eng.AddIncome(ctx, "2023-05-15", 500))

	// base 1000 + credited 500 + fresh base 1000
	assert.InDelta(t, 2500.0, eng.DailyLimit("2023-05-16"), 1e-9)
}

func Test_OnAddExpense_WrongDay_ShouldRejectWithoutMutation(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, "2023-05-15", nil, nil)

	for _, date := range []string{"2023-05-14", "2023-05-16", "2024-01-01"} {
		accepted, err := eng.AddExpense(ctx, date, 10)
		require.NoError(t, err)
		assert.False(t, accepted, "date %s", date)
		assert.Equal(t, 0.0, eng.SpentOn(date))
	}
	assert.Equal(t, 0.0, eng.CurrentBalance())
}

func Test_OnAddExpense_OverLimit_ShouldRejectWithoutMutation(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, "2023-05-15", nil, nil)

	accepted, err := eng.AddExpense(ctx, "2023-05-15", 1000.01)
	require.NoError(t, err)
	assert.False(t, accepted)
	assert.Equal(t, 0.0, eng.SpentOn("2023-05-15"))
	// no override was seeded for tomorrow either
	assert.InDelta(t, 1000.0, eng.DailyLimit("2023-05-16"), 1e-9)
}

func Test_OnAddExpense_ExactlyAtLimit_ShouldAccept(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, "2023-05-15", nil, nil)

	accepted, err := eng.AddExpense(ctx, "2023-05-15", 1000)
	require.NoError(t, err)
	assert.True(t, accepted)
	assert.InDelta(t, 1000.0, eng.SpentOn("2023-05-15"), 1e-9)
}

func Test_OnAddExpense_SameDay_ShouldAccumulate(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, "2023-05-15", nil, nil)

	for _, amount := range []float64{200, 300} {
		accepted, err := eng.AddExpense(ctx, "2023-05-15", amount)
		require.NoError(t, err)
		require.True(t, accepted)
	}

	assert.InDelta(t, 500.0, eng.SpentOn("2023-05-15"), 1e-9)
	assert.InDelta(t, -500.0, eng.CurrentBalance(), 1e-9)
	// tomorrow reflects the whole day: (1000 - 500) + 1000
	assert.InDelta(t, 1500.0, eng.DailyLimit("2023-05-16"), 1e-9)
}

func Test_OnUnspentDays_AllowanceShouldCompound(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, "2023-05-01", nil, nil)

	accepted, err := eng.AddExpense(ctx, "2023-05-01", 200)
	require.NoError(t, err)
	require.True(t, accepted)

	// spend 200 of 1000 -> next day starts at 800 + 1000
	assert.InDelta(t, 1800.0, eng.DailyLimit("2023-05-02"), 1e-9)
	// an untouched day still adds a fresh base on top of its leftover
	assert.InDelta(t, 2800.0, eng.DailyLimit("2023-05-03"), 1e-9)
}

func Test_OnGapPastOverride_AllowanceShouldFallBackToBase(t *testing.T) {
	ctx := context.Background()
	eng, _ := newTestEngine(t, "2023-05-01", nil, nil)

	accepted, err := eng.AddExpense(ctx, "2023-05-01", 200)
	require.NoError(t, err)
	require.True(t, accepted)

	// the lookback is one day deep: 2023-05-03 carries no override,
	// so 2023-05-04 resets to the base limit
	assert.InDelta(t, 1000.0, eng.DailyLimit("2023-05-04"), 1e-9)
}

func Test_OnSeededOverspentOverride_NextDayAllowanceShouldShrink(t *testing.T) {
	led := budget.NewLedger("2023-05-15")
	led.Limits["2023-05-14"] = 300
	led.Expenses["2023-05-14"] = 500
	eng, _ := newTestEngine(t, "2023-05-15", nil, &led)

	// (300 - 500) + 1000
	assert.InDelta(t, 800.0, eng.DailyLimit("2023-05-15"), 1e-9)
}

func Test_OnResetData_ShouldWipeEverything(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine(t, "2023-05-15", nil, nil)

	require.NoError(t, eng.AddIncome(ctx, "2023-05-10", 700))
	accepted, err := eng.AddExpense(ctx, "2023-05-15", 100)
	require.NoError(t, err)
	require.True(t, accepted)

	require.NoError(t, eng.ResetData(ctx))

	assert.Equal(t, 0.0, eng.CurrentBalance())
	assert.Equal(t, 0.0, eng.SpentOn("2023-05-15"))
	assert.InDelta(t, 1000.0, eng.DailyLimit("2023-05-16"), 1e-9)
	assert.Equal(t, 0.0, eng.LastBalance())

	persisted, err := store.LoadLedger(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted.Incomes)
	assert.Empty(t, persisted.Expenses)
	assert.Empty(t, persisted.Limits)
	assert.Equal(t, "2023-05-15", persisted.LastReset)
}

func Test_OnMutation_ShouldPersistImmediately(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine(t, "2023-05-15", nil, nil)

	require.NoError(t, eng.AddIncome(ctx, "2023-05-15", 400))

	persisted, err := store.LoadLedger(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 400.0, persisted.Incomes["2023-05-15"], 1e-9)
}

func Test_OnBadLastResetDate_ConstructionShouldFail(t *testing.T) {
	ctx := context.Background()
	store := storage.NewInMemStorage()
	led := budget.NewLedger("not-a-date")
	require.NoError(t, store.SaveLedger(ctx, led))

	_, err := newEngine(ctx, store, time.Now)
	assert.Error(t, err)
}

func Test_OnDefaultPreferences_BaseLimitShouldApply(t *testing.T) {
	eng, _ := newTestEngine(t, "2023-05-15", nil, nil)

	assert.Equal(t, budget.PreferencesDefaultMissing, eng.PreferencesOrigin())
	assert.InDelta(t, 1000.0, eng.DailyLimit("2023-05-15"), 1e-9)
}

func Test_OnSavePreferences_ShouldReplaceWholesale(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine(t, "2023-05-15", nil, nil)

	prefs := budget.DefaultPreferences()
	prefs.DailyLimit = 250
	prefs.Goals["Car"] = 40
	require.NoError(t, eng.SavePreferences(ctx, prefs))

	assert.InDelta(t, 250.0, eng.DailyLimit("2023-05-15"), 1e-9)

	saved, origin := store.LoadPreferences(ctx)
	assert.Equal(t, budget.PreferencesFromFile, origin)
	assert.InDelta(t, 250.0, saved.DailyLimit, 1e-9)
	assert.InDelta(t, 40.0, saved.Goals["Car"], 1e-9)
}
