package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/cli"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/config"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show recent transactions for a period",
		RunE:  runReport,
	}

	cmd.Flags().StringP("period", "p", "month", "period (day, week, month, year, all)")
	cmd.Flags().IntP("limit", "n", 50, "maximum number of transactions")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	periodFlag, _ := cmd.Flags().GetString("period")
	limit, _ := cmd.Flags().GetInt("limit")

	period := model.Period(periodFlag)
	if !period.Valid() {
		return fmt.Errorf("unknown period %q", periodFlag)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	transactions, err := store.GetUserTransactions(ctx, currentUserID(), period, limit)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderTransactions(transactions, period))
	return nil
}
