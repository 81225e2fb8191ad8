package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/classify"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/cli"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/config"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text>",
		Short: "Show how the classifier categorizes a description",
		Long: `Прогоняет текст через классификатор и печатает предсказанную категорию
вместе с полным распределением вероятностей. Ничего не записывает.`,
		Example: `  spender classify кофе в старбакс
  spender classify проездной на метро`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClassify,
	}
}

func runClassify(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	m, err := classify.Load(cfg.ModelPath)
	if err != nil {
		return fmt.Errorf("classifier model not available (run 'spender train' first): %w", err)
	}

	text := strings.Join(args, " ")
	prediction, err := m.Predict(text)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderPrediction(text, prediction))
	return nil
}
