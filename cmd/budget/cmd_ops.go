package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"max.ks1230/budget-ledger/internal/entity/budget"
)

var (
	incomeDate  string
	expenseDate string
	limitDate   string
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the current balance",
	Args:  cobra.NoArgs,
	RunE:  runBalance,
}

var incomeCmd = &cobra.Command{
	Use:   "income <amount>",
	Short: "Record an income (a second income on the same date replaces the first)",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncome,
}

var expenseCmd = &cobra.Command{
	Use:   "expense <amount>",
	Short: "Record an expense against today's allowance",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpense,
}

var limitCmd = &cobra.Command{
	Use:   "limit",
	Short: "Show the spending allowance for a date",
	Args:  cobra.NoArgs,
	RunE:  runLimit,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show balance, today's allowance and the configured goals",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	incomeCmd.Flags().StringVar(&incomeDate, "date", "", "date in YYYY-MM-DD form (default today)")
	expenseCmd.Flags().StringVar(&expenseDate, "date", "", "date in YYYY-MM-DD form (default today)")
	limitCmd.Flags().StringVar(&limitDate, "date", "", "date in YYYY-MM-DD form (default today)")

	rootCmd.AddCommand(balanceCmd, incomeCmd, expenseCmd, limitCmd, statusCmd)
}

func today() string {
	return now.BeginningOfDay().Format(budget.DateLayout)
}

func orToday(date string) string {
	if date == "" {
		return today()
	}
	return date
}

func parseAmount(arg string) (float64, error) {
	amount, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "amount %q", arg)
	}
	return amount, nil
}

func runBalance(cmd *cobra.Command, _ []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("%.2f %s\n", eng.CurrentBalance(), eng.Preferences().Currency)
	return nil
}

func runIncome(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	date := orToday(incomeDate)
	if err = eng.AddIncome(cmd.Context(), date, amount); err != nil {
		return err
	}
	fmt.Printf("income of %.2f %s recorded for %s\n", amount, eng.Preferences().Currency, date)
	return nil
}

func runExpense(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}

	date := orToday(expenseDate)
	accepted, err := eng.AddExpense(cmd.Context(), date, amount)
	if err != nil {
		return err
	}
	if !accepted {
		if date != today() {
			fmt.Printf("rejected: expenses can only be recorded for today (%s)\n", today())
		} else {
			fmt.Printf("rejected: %.2f is over today's allowance of %.2f %s\n",
				amount, eng.DailyLimit(date), eng.Preferences().Currency)
		}
		return nil
	}
	fmt.Printf("spent %.2f %s on %s (%.2f so far today)\n",
		amount, eng.Preferences().Currency, date, eng.SpentOn(date))
	return nil
}

func runLimit(cmd *cobra.Command, _ []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	date := orToday(limitDate)
	fmt.Printf("allowance for %s: %.2f %s\n", date, eng.DailyLimit(date), eng.Preferences().Currency)
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	prefs := eng.Preferences()
	day := today()

	fmt.Printf("balance:       %.2f %s\n", eng.CurrentBalance(), prefs.Currency)
	fmt.Printf("allowance:     %.2f %s\n", eng.DailyLimit(day), prefs.Currency)
	fmt.Printf("spent today:   %.2f %s\n", eng.SpentOn(day), prefs.Currency)
	if eng.LastBalance() != 0 {
		fmt.Printf("last rollover: %.2f %s distributed\n", eng.LastBalance(), prefs.Currency)
	}

	daysLeft := int(now.EndOfMonth().Sub(now.BeginningOfDay()).Hours()/24) + 1
	fmt.Printf("days until month end: %d\n", daysLeft)

	if len(prefs.Goals) == 0 {
		fmt.Println("no goals configured")
		return nil
	}
	names := make([]string, 0, len(prefs.Goals))
	for name := range prefs.Goals {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("goals:")
	for _, name := range names {
		fmt.Printf("  %s: %.1f%%\n", name, prefs.Goals[name])
	}
	return nil
}
