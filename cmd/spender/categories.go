package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/cli"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/config"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List available expense categories",
		Args:  cobra.NoArgs,
		RunE:  runCategories,
	}
}

func runCategories(cmd *cobra.Command, _ []string) error {
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

	categories, err := store.GetCategories(ctx)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderCategories(categories))
	return nil
}
