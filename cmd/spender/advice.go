package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/cli"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/config"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
)

func adviceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advice",
		Short: "Budget recommendations based on the 50/30/20 rule",
		Long: `Сравнивает траты за месяц с правилом 50/30/20 (обязательное/желания/
накопления) и показывает, какие группы вышли за рамки.`,
		Args: cobra.NoArgs,
		RunE: runAdvice,
	}
}

func runAdvice(cmd *cobra.Command, _ []string) error {
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

	userID := currentUserID()

	stats, err := store.GetPeriodStatistics(ctx, userID, model.PeriodMonth)
	if err != nil {
		return err
	}
	if stats.Overall.Count == 0 {
		fmt.Println(cli.FormatInfo("Недостаточно данных для рекомендаций. Добавьте траты через spender add."))
		return nil
	}

	budgets, err := store.GetBudgetStatus(ctx, userID)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderAdvice(stats, budgets))
	return nil
}
