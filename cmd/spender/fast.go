package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/cli"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/config"
)

func fastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fast",
		Short: "Record an expense by picking the category first",
		Long: `Быстрое добавление: выберите категорию из списка, потом введите сумму.
Без классификатора и без описания.`,
		Args: cobra.NoArgs,
		RunE: runFast,
	}
}

func runFast(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	interrupts := cli.NewInterruptHandler(os.Stdout)
	ctx := interrupts.HandleInterrupts(cmd.Context())

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	rt := initRouter(store, nil, cfg)
	prompter := cli.NewPrompter(os.Stdin, os.Stdout)

	_, err = prompter.RunFast(ctx, rt, store, currentUserID())
	if err != nil && interrupts.WasInterrupted() {
		return nil
	}
	return err
}
