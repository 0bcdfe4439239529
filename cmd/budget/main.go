package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"max.ks1230/budget-ledger/internal/config"
	"max.ks1230/budget-ledger/internal/model/ledger"
	"max.ks1230/budget-ledger/internal/model/storage"
)

var rootCmd = &cobra.Command{
	Use:   "budget",
	Short: "Personal budgeting ledger with a rolling daily limit",
	Long: `budget tracks income and expense events against a rolling daily
spending limit. Unused allowance carries over into the next day, and at
each month boundary any surplus is split between the configured savings
goals.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newEngine(ctx context.Context) (*ledger.Engine, error) {
	conf, err := config.New()
	if err != nil {
		return nil, err
	}
	return ledger.New(ctx, storage.NewFileStorage(conf.Storage()))
}
