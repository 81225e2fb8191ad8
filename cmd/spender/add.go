package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/cli"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/common"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/config"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Record an expense from a free-form line",
		Long: `Parse a line like "кофе 300", "такси 450 руб" or "1.5к", классифицировать
описание и записать трату. Подтверждение запрашивается только когда
классификатор не уверен.`,
		Example: `  spender add кофе 300
  spender add такси 450 руб
  spender add 1.5к`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAdd,
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
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

	rt := initRouter(store, initClassifier(cfg), cfg)
	prompter := cli.NewPrompter(os.Stdin, os.Stdout)

	_, err = prompter.Run(ctx, rt, currentUserID(), strings.Join(args, " "))
	if err != nil {
		if interrupts.WasInterrupted() {
			return nil
		}
		if common.IsUserCorrectable(err) {
			fmt.Println(cli.FormatError(cli.UserMessage(err)))
			return nil
		}
		return err
	}
	return nil
}
