package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	expenseAccepted          = "accepted"
	expenseRejectedWrongDay  = "rejected_wrong_day"
	expenseRejectedOverLimit = "rejected_over_limit"
)

var counterExpenses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "budget",
		Subsystem: "ledger",
		Name:      "expenses_total",
	},
	[]string{"status"},
)

var counterRollovers = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "budget",
		Subsystem: "ledger",
		Name:      "month_rollovers_total",
	},
)

func observeExpense(status string) {
	counterExpenses.WithLabelValues(status).Inc()
}

func observeRollover() {
	counterRollovers.Inc()
}
