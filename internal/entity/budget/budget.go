package budget

const DateLayout = "2006-01-02"

// goalLabelPrefix is part of the persisted ledger format: month-end
// credits live in the incomes map under "Цель: <name>" keys.
const goalLabelPrefix = "Цель: "

const (
	DefaultDailyLimit = 1000
	DefaultCurrency   = "руб."
	DefaultTheme      = "darkly"
)

// Preferences is the user-facing configuration document.
type Preferences struct {
	DailyLimit float64            `json:"daily_limit"`
	Goals      map[string]float64 `json:"goals"`
	Currency   string             `json:"currency"`
	Theme      string             `json:"theme"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		DailyLimit: DefaultDailyLimit,
		Goals:      make(map[string]float64),
		Currency:   DefaultCurrency,
		Theme:      DefaultTheme,
	}
}

func (p *Preferences) GoalsTotal() float64 {
	var total float64
	for _, percent := range p.Goals {
		total += percent
	}
	return total
}

// PreferencesOrigin tells where a loaded Preferences value came from,
// so callers can distinguish an absent file from a corrupt one.
type PreferencesOrigin int

const (
	PreferencesFromFile PreferencesOrigin = iota
	PreferencesDefaultMissing
	PreferencesDefaultCorrupt
)

func (o PreferencesOrigin) String() string {
	switch o {
	case PreferencesFromFile:
		return "file"
	case PreferencesDefaultMissing:
		return "default-missing"
	case PreferencesDefaultCorrupt:
		return "default-corrupt"
	}
	return "unknown"
}

// Ledger is the transactional document. Incomes map a date (or a goal
// credit label) to an amount, expenses map a date to the cumulative
// amount spent that day, limits map a date to its carried-over
// allowance.
type Ledger struct {
	Incomes     map[string]float64 `json:"incomes"`
	Expenses    map[string]float64 `json:"expenses"`
	Limits      map[string]float64 `json:"limits"`
	LastReset   string             `json:"last_reset"`
	LastBalance float64            `json:"last_balance"`
}

func NewLedger(resetDate string) Ledger {
	return Ledger{
		Incomes:   make(map[string]float64),
		Expenses:  make(map[string]float64),
		Limits:    make(map[string]float64),
		LastReset: resetDate,
	}
}

// Normalize repairs a ledger decoded from JSON: null maps become
// empty ones and a missing last_reset is set to today.
func (l *Ledger) Normalize(today string) {
	if l.Incomes == nil {
		l.Incomes = make(map[string]float64)
	}
	if l.Expenses == nil {
		l.Expenses = make(map[string]float64)
	}
	if l.Limits == nil {
		l.Limits = make(map[string]float64)
	}
	if l.LastReset == "" {
		l.LastReset = today
	}
}

func (l *Ledger) Balance() float64 {
	var total float64
	for _, amount := range l.Incomes {
		total += amount
	}
	for _, amount := range l.Expenses {
		total -= amount
	}
	return total
}

func GoalLabel(name string) string {
	return goalLabelPrefix + name
}
