package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/classify"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/cli"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/config"
)

func trainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the classifier from a CSV of labeled descriptions",
		Long: `Обучает классификатор на CSV с колонками description и category и
сохраняет модель туда, откуда ее подхватят add и classify.`,
		Args: cobra.NoArgs,
		RunE: runTrain,
	}

	cmd.Flags().String("data", "", "training CSV path (default: classifier.training_data from config)")
	cmd.Flags().Bool("quiet", false, "suppress the progress bar")

	return cmd
}

func runTrain(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dataPath, _ := cmd.Flags().GetString("data")
	quiet, _ := cmd.Flags().GetBool("quiet")
	if dataPath == "" {
		dataPath = cfg.TrainingDataPath
	}

	m, err := classify.TrainCSV(dataPath, !quiet)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.ModelPath), 0750); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}
	if err := m.Save(cfg.ModelPath); err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Модель обучена (%d категорий) и сохранена в %s",
		len(m.Labels()), cfg.ModelPath)))
	return nil
}
