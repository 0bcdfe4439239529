package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const maxGoalPercent = 100

var (
	setDailyLimit float64
	setCurrency   string
	setTheme      string
	resetConfirm  bool
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage savings goals for month-end distribution",
}

var goalAddCmd = &cobra.Command{
	Use:   "add <name> <percent>",
	Short: "Add or replace a goal with a percentage weight",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalAdd,
}

var goalRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalRemove,
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals and their weights",
	Args:  cobra.NoArgs,
	RunE:  runGoalList,
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Update preferences (daily limit, currency, theme)",
	Args:  cobra.NoArgs,
	RunE:  runSet,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all recorded incomes, expenses and limits",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

func init() {
	goalCmd.AddCommand(goalAddCmd, goalRemoveCmd, goalListCmd)

	setCmd.Flags().Float64Var(&setDailyLimit, "daily-limit", 0, "base daily spending limit")
	setCmd.Flags().StringVar(&setCurrency, "currency", "", "currency label")
	setCmd.Flags().StringVar(&setTheme, "theme", "", "interface theme name")

	resetCmd.Flags().BoolVar(&resetConfirm, "yes", false, "confirm wiping the ledger")

	rootCmd.AddCommand(goalCmd, setCmd, resetCmd)
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	percent, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return errors.Wrapf(err, "percent %q", args[1])
	}
	if percent <= 0 {
		return errors.New("percent must be positive")
	}

	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	prefs := eng.Preferences()

	// Sum validation lives here, at the entry boundary; the engine
	// accepts whatever is already stored on disk.
	total := prefs.GoalsTotal() - prefs.Goals[name] + percent
	if total > maxGoalPercent {
		return errors.Errorf("goals would total %.1f%%, the limit is %d%%", total, maxGoalPercent)
	}

	prefs.Goals[name] = percent
	if err = eng.SavePreferences(cmd.Context(), prefs); err != nil {
		return err
	}
	fmt.Printf("goal %q set to %.1f%% (%.1f%% allocated in total)\n", name, percent, total)
	return nil
}

func runGoalRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	prefs := eng.Preferences()
	if _, ok := prefs.Goals[name]; !ok {
		fmt.Printf("no goal named %q\n", name)
		return nil
	}

	delete(prefs.Goals, name)
	if err = eng.SavePreferences(cmd.Context(), prefs); err != nil {
		return err
	}
	fmt.Printf("goal %q removed\n", name)
	return nil
}

func runGoalList(cmd *cobra.Command, _ []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	prefs := eng.Preferences()
	if len(prefs.Goals) == 0 {
		fmt.Println("no goals configured")
		return nil
	}

	names := make([]string, 0, len(prefs.Goals))
	for name := range prefs.Goals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s: %.1f%%\n", name, prefs.Goals[name])
	}
	fmt.Printf("total: %.1f%%\n", prefs.GoalsTotal())
	return nil
}

func runSet(cmd *cobra.Command, _ []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	prefs := eng.Preferences()

	changed := false
	if cmd.Flags().Changed("daily-limit") {
		if setDailyLimit <= 0 {
			return errors.New("daily limit must be positive")
		}
		prefs.DailyLimit = setDailyLimit
		changed = true
	}
	if cmd.Flags().Changed("currency") {
		prefs.Currency = setCurrency
		changed = true
	}
	if cmd.Flags().Changed("theme") {
		prefs.Theme = setTheme
		changed = true
	}
	if !changed {
		return errors.New("nothing to change, pass at least one flag")
	}

	if err = eng.SavePreferences(cmd.Context(), prefs); err != nil {
		return err
	}
	fmt.Println("preferences saved")
	return nil
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !resetConfirm {
		fmt.Println("this wipes all recorded data; re-run with --yes to confirm")
		return nil
	}

	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	if err = eng.ResetData(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("ledger wiped")
	return nil
}
