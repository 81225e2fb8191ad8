package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
)

const descriptionLimit = 50

// FormatMoney renders an amount with a space as the thousands separator and a
// comma as the decimal point. Whole amounts carry no decimal part.
func FormatMoney(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	abs := amount.Abs()

	var intPart, fracPart string
	if abs.IsInteger() {
		intPart = abs.String()
	} else {
		parts := strings.SplitN(abs.StringFixed(2), ".", 2)
		intPart, fracPart = parts[0], parts[1]
	}

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(intPart[i])
	}

	out := b.String()
	if fracPart != "" {
		out += "," + fracPart
	}
	if negative {
		out = "-" + out
	}
	return out
}

// FormatDate renders a timestamp relative to now: today and yesterday by
// name, current-year dates without the year.
func FormatDate(date, now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	switch {
	case day.Equal(today):
		return "сегодня в " + date.Format("15:04")
	case day.Equal(today.AddDate(0, 0, -1)):
		return "вчера в " + date.Format("15:04")
	case date.Year() == now.Year():
		return date.Format("02.01 в 15:04")
	default:
		return date.Format("02.01.2006 в 15:04")
	}
}

// FormatTransaction renders one transaction as a two-line list entry. A zero
// index omits the list number.
func FormatTransaction(txn model.Transaction, index int, now time.Time) string {
	var prefix string
	if index > 0 {
		prefix = fmt.Sprintf("%d. ", index)
	}

	category := txn.CategoryName
	if category == "" {
		category = "Без категории"
	}

	description := txn.Description
	if runes := []rune(description); len(runes) > descriptionLimit {
		description = string(runes[:descriptionLimit-3]) + "..."
	}
	if description != "" {
		description = " - " + description
	}

	return fmt.Sprintf("%s%s%s\n   %s | %s",
		prefix, FormatDate(txn.Date, now), description, FormatMoney(txn.Amount), category)
}

// FormatBudgetStatus renders one budget with a ten-segment progress bar and
// either the remaining amount or the overrun.
func FormatBudgetStatus(status model.BudgetStatus) string {
	bar := ProgressBar(status.Percentage, 10)

	if status.Percentage > 100 {
		exceededBy := status.CurrentSpent.Sub(status.Limit)
		return fmt.Sprintf("%s\n%s %.1f%%\nЛимит: %s\nПотрачено: %s\nПревышение: %s",
			status.CategoryName, bar, status.Percentage,
			FormatMoney(status.Limit), FormatMoney(status.CurrentSpent), FormatMoney(exceededBy))
	}
	return fmt.Sprintf("%s\n%s %.1f%%\nЛимит: %s\nПотрачено: %s\nОсталось: %s",
		status.CategoryName, bar, status.Percentage,
		FormatMoney(status.Limit), FormatMoney(status.CurrentSpent), FormatMoney(status.Remaining))
}

// ProgressBar renders a filled/empty bar for a percentage, clamped to the bar
// length.
func ProgressBar(percentage float64, length int) string {
	filled := int(percentage / 100 * float64(length))
	if filled > length {
		filled = length
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}
