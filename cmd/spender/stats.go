package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/cli"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/config"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show spending statistics for a period",
		RunE:  runStats,
	}

	cmd.Flags().StringP("period", "p", "month", "period (day, week, month, year, all)")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	periodFlag, _ := cmd.Flags().GetString("period")

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

	stats, err := store.GetPeriodStatistics(ctx, currentUserID(), period)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderStatistics(stats))
	return nil
}
