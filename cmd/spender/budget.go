package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/cli"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/config"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/parse"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/service"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage per-category spending limits",
	}

	setCmd := &cobra.Command{
		Use:   "set <category> <limit>",
		Short: "Set a spending limit on a category",
		Example: `  spender budget set Кафе 5000
  spender budget set Продукты 3000 --period weekly`,
		Args: cobra.ExactArgs(2),
		RunE: runBudgetSet,
	}
	setCmd.Flags().String("period", "monthly", "budget period (weekly, monthly)")

	deleteCmd := &cobra.Command{
		Use:   "delete <category>",
		Short: "Remove the budget for a category",
		Args:  cobra.ExactArgs(1),
		RunE:  runBudgetDelete,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show all budgets with current spend",
		Args:  cobra.NoArgs,
		RunE:  runBudgetList,
	}

	cmd.AddCommand(setCmd, deleteCmd, listCmd)
	return cmd
}

func runBudgetSet(cmd *cobra.Command, args []string) error {
	periodFlag, _ := cmd.Flags().GetString("period")
	period := model.BudgetPeriod(periodFlag)
	if !period.Valid() {
		return fmt.Errorf("unknown budget period %q", periodFlag)
	}

	limit, err := parse.ParseValidated(args[1])
	if err != nil {
		return fmt.Errorf("invalid limit %q: %w", args[1], err)
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

	category, err := findCategory(cmd, store, args[0])
	if err != nil || category == nil {
		return err
	}

	if err := store.SetBudget(ctx, currentUserID(), category.ID, limit, period); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Бюджет для «%s» установлен.", category.Name)))
	return nil
}

func runBudgetDelete(cmd *cobra.Command, args []string) error {
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

	category, err := findCategory(cmd, store, args[0])
	if err != nil || category == nil {
		return err
	}

	deleted, err := store.DeleteBudget(ctx, currentUserID(), category.ID)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Println(cli.FormatError(fmt.Sprintf("Бюджет для «%s» не найден.", category.Name)))
		return nil
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Бюджет для «%s» удален.", category.Name)))
	return nil
}

func runBudgetList(cmd *cobra.Command, _ []string) error {
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

	budgets, err := store.GetBudgetStatus(ctx, currentUserID())
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderBudgets(budgets))
	return nil
}

// findCategory resolves a category by name, printing a friendly message when
// it does not exist.
func findCategory(cmd *cobra.Command, store service.Storage, name string) (*model.Category, error) {
	category, err := store.GetCategoryByName(cmd.Context(), name)
	if err != nil {
		return nil, err
	}
	if category == nil {
		fmt.Println(cli.FormatError(fmt.Sprintf("Категория «%s» не найдена. Список: spender categories", name)))
		return nil, nil
	}
	return category, nil
}
