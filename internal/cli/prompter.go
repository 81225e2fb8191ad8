package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/common"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/report"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/router"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/service"
)

// Prompter drives a transaction conversation interactively: it renders
// router outcomes and turns terminal input into router events until the
// conversation reaches a terminal state.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewPrompter creates a prompter over the given streams. Nil streams default
// to stdin/stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Run drives one add conversation from a raw input line to a committed
// transaction or cancellation. A nil transaction with a nil error means the
// user cancelled.
func (p *Prompter) Run(ctx context.Context, rt *router.Router, userID int64, text string) (*model.Transaction, error) {
	outcome, err := rt.Begin(ctx, userID, text)
	if err != nil {
		return nil, err
	}

	for {
		switch outcome.Status {
		case router.StatusAutoCommitted:
			p.println(FormatSuccess(fmt.Sprintf("Записано автоматически: %s (уверенность %.0f%%)",
				p.describeCommit(outcome.Transaction), outcome.Pending.Confidence*100)))
			return outcome.Transaction, nil

		case router.StatusCommitted:
			p.println(FormatSuccess("Записано: " + p.describeCommit(outcome.Transaction)))
			return outcome.Transaction, nil

		case router.StatusCancelled:
			p.println(FormatInfo("Отменено."))
			return nil, nil

		case router.StatusNeedsConfirmation:
			outcome, err = p.confirm(ctx, rt, userID, outcome)

		case router.StatusNeedsCategory:
			outcome, err = p.selectCategory(ctx, rt, userID, outcome)

		default:
			return nil, fmt.Errorf("unexpected conversation status %q", outcome.Status)
		}

		if err != nil {
			return nil, err
		}
	}
}

// RunFast drives the fast-add flow: category first, amount second. A nil
// transaction with a nil error means the user cancelled.
func (p *Prompter) RunFast(ctx context.Context, rt *router.Router, storage service.Storage, userID int64) (*model.Transaction, error) {
	categories, err := storage.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	category, err := p.pickCategory(ctx, categories)
	if err != nil || category == nil {
		return nil, err
	}

	outcome, err := rt.FastSelect(ctx, userID, category.ID)
	if err != nil {
		return nil, err
	}

	for {
		p.println(FormatPrompt(fmt.Sprintf("Сумма для «%s» (или «отмена»)", category.Name)))
		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return nil, err
		}
		if isCancelWord(line) {
			rt.CancelPending(userID)
			p.println(FormatInfo("Отменено."))
			return nil, nil
		}

		result, err := rt.FastAmount(ctx, userID, outcome.Pending.Token, line)
		if err != nil {
			if common.IsUserCorrectable(err) {
				p.println(FormatError(UserMessage(err)))
				continue
			}
			return nil, err
		}
		p.println(FormatSuccess("Записано: " + p.describeCommit(result.Transaction)))
		return result.Transaction, nil
	}
}

func (p *Prompter) confirm(ctx context.Context, rt *router.Router, userID int64, outcome router.Outcome) (router.Outcome, error) {
	pending := outcome.Pending

	line := fmt.Sprintf("%s | %s", report.FormatMoney(pending.Amount), pending.SuggestedCategory)
	if pending.Description != "" {
		line = pending.Description + " | " + line
	}
	if pending.AutoCategory {
		line += fmt.Sprintf(" (уверенность %.0f%%)", pending.Confidence*100)
	}
	p.println(RenderBox("Подтвердите запись", line))

	choice, err := p.promptChoice(ctx, "Сохранить? [y/n/отмена]", []string{"y", "n", "д", "н"})
	if err != nil {
		return router.Outcome{}, err
	}

	var event router.Event
	switch choice {
	case "y", "д":
		event = router.ConfirmYes{}
	case "n", "н":
		event = router.ConfirmNo{}
	default:
		event = router.Cancel{}
	}
	return rt.Resolve(ctx, userID, pending.Token, event)
}

func (p *Prompter) selectCategory(ctx context.Context, rt *router.Router, userID int64, outcome router.Outcome) (router.Outcome, error) {
	for {
		category, err := p.pickCategory(ctx, outcome.Categories)
		if err != nil {
			return router.Outcome{}, err
		}
		if category == nil {
			return rt.Resolve(ctx, userID, outcome.Pending.Token, router.Cancel{})
		}

		next, err := rt.Resolve(ctx, userID, outcome.Pending.Token, router.SelectCategory{CategoryID: category.ID})
		if errors.Is(err, common.ErrNotFound) {
			p.println(FormatError("Категория не найдена, попробуйте еще раз."))
			continue
		}
		return next, err
	}
}

// pickCategory shows a numbered category list and reads a selection. A nil
// category with a nil error means the user cancelled.
func (p *Prompter) pickCategory(ctx context.Context, categories []model.Category) (*model.Category, error) {
	p.println(FormatTitle("Выберите категорию"))
	for i, category := range categories {
		p.println(fmt.Sprintf("  %2d. %s", i+1, category.Name))
	}
	p.println(SubtleStyle.Render("  (номер или «отмена»)"))

	for {
		p.print(FormatPrompt("Категория"))
		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return nil, err
		}
		if isCancelWord(line) {
			return nil, nil
		}

		index, convErr := strconv.Atoi(line)
		if convErr != nil || index < 1 || index > len(categories) {
			p.println(FormatError("Введите номер из списка."))
			continue
		}
		return &categories[index-1], nil
	}
}

// promptChoice reads input until it matches one of the valid choices or a
// cancel word. A cancel word comes back verbatim.
func (p *Prompter) promptChoice(ctx context.Context, prompt string, validChoices []string) (string, error) {
	for {
		p.print(FormatPrompt(prompt))

		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(line)
		if isCancelWord(choice) {
			return choice, nil
		}
		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}

		p.println(FormatError("Не понял. Попробуйте еще раз."))
	}
}

func (p *Prompter) describeCommit(txn *model.Transaction) string {
	if txn.Description != "" {
		return fmt.Sprintf("%s, %s, %s", txn.Description, report.FormatMoney(txn.Amount), txn.CategoryName)
	}
	return fmt.Sprintf("%s, %s", report.FormatMoney(txn.Amount), txn.CategoryName)
}

// isCancelWord recognizes the words that abort a conversation step.
func isCancelWord(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "отмена", "cancel", "c", "q":
		return true
	}
	return false
}

// UserMessage extracts the user-facing message from an error, falling back to
// a generic re-prompt hint for bare parse and validation sentinels.
func UserMessage(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}

	switch {
	case errors.Is(err, common.ErrNoAmount):
		return "Не могу распознать сумму. Примеры: 500, 1.5к, 250,50, 1000 руб"
	case errors.Is(err, common.ErrAmountNotPositive):
		return "Сумма должна быть положительной"
	case errors.Is(err, common.ErrAmountTooLarge):
		return "Слишком большая сумма. Проверьте ввод."
	default:
		return err.Error()
	}
}

func (p *Prompter) println(s string) {
	fmt.Fprintln(p.writer, s)
}

func (p *Prompter) print(s string) {
	fmt.Fprint(p.writer, s)
}
