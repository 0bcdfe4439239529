package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBalanceSumsAllKeysIncludingGoalCredits(t *testing.T) {
	led := NewLedger("2023-05-01")
	led.Incomes["2023-05-10"] = 1000
	led.Incomes["2023-05-11"] = -50
	led.Incomes[GoalLabel("Car")] = 200
	led.Expenses["2023-05-10"] = 300
	led.Expenses["2023-05-12"] = 100

	assert.InDelta(t, 750.0, led.Balance(), 1e-9)
}

func TestNormalizeRepairsNullMapsAndEmptyReset(t *testing.T) {
	led := Ledger{}
	led.Normalize("2023-05-01")

	assert.NotNil(t, led.Incomes)
	assert.NotNil(t, led.Expenses)
	assert.NotNil(t, led.Limits)
	assert.Equal(t, "2023-05-01", led.LastReset)

	led.LastReset = "2022-01-01"
	led.Incomes["x"] = 1
	led.Normalize("2023-05-01")
	assert.Equal(t, "2022-01-01", led.LastReset)
	assert.Len(t, led.Incomes, 1)
}

func TestGoalsTotal(t *testing.T) {
	prefs := DefaultPreferences()
	assert.Equal(t, 0.0, prefs.GoalsTotal())

	prefs.Goals["A"] = 60
	prefs.Goals["B"] = 25.5
	assert.InDelta(t, 85.5, prefs.GoalsTotal(), 1e-9)
}

func TestGoalLabelFormat(t *testing.T) {
	assert.Equal(t, "Цель: Car", GoalLabel("Car"))
}

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	assert.InDelta(t, 1000.0, prefs.DailyLimit, 1e-9)
	assert.Equal(t, "руб.", prefs.Currency)
	assert.Equal(t, "darkly", prefs.Theme)
	assert.Empty(t, prefs.Goals)
}
