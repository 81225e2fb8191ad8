package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/report"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/service"
)

// periodNames translates reporting periods for display.
var periodNames = map[model.Period]string{
	model.PeriodDay:   "день",
	model.PeriodWeek:  "неделю",
	model.PeriodMonth: "месяц",
	model.PeriodYear:  "год",
	model.PeriodAll:   "все время",
}

// RenderTransactions renders a transaction list, newest first.
func RenderTransactions(transactions []model.Transaction, period model.Period) string {
	if len(transactions) == 0 {
		return FormatInfo("Нет транзакций за " + periodNames[period] + ".")
	}

	var b strings.Builder
	b.WriteString(FormatTitle("Траты за "+periodNames[period]) + "\n")

	now := time.Now()
	total := decimal.Zero
	for i, txn := range transactions {
		b.WriteString(report.FormatTransaction(txn, i+1, now) + "\n")
		total = total.Add(txn.Amount)
	}

	b.WriteString("\n" + BoldStyle.Render("Итого: "+report.FormatMoney(total)))
	return b.String()
}

// RenderStatistics renders the full period statistics block.
func RenderStatistics(stats *service.PeriodStatistics) string {
	if stats.Overall.Count == 0 {
		return FormatInfo("Нет данных за " + periodNames[stats.Period] + ".")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(ChartIcon+" Статистика за "+periodNames[stats.Period]) + "\n")

	b.WriteString(fmt.Sprintf("Транзакций: %d\n", stats.Overall.Count))
	b.WriteString(fmt.Sprintf("Всего: %s\n", report.FormatMoney(decimal.NewFromFloat(stats.Overall.Total))))
	b.WriteString(fmt.Sprintf("Средний чек: %s\n", report.FormatMoney(decimal.NewFromFloat(stats.Overall.Avg))))
	b.WriteString(fmt.Sprintf("Минимум: %s, максимум: %s\n",
		report.FormatMoney(decimal.NewFromFloat(stats.Overall.Min)),
		report.FormatMoney(decimal.NewFromFloat(stats.Overall.Max))))

	if len(stats.ByCategory) > 0 {
		b.WriteString("\n" + BoldStyle.Render("По категориям:") + "\n")
		for _, cat := range stats.ByCategory {
			var share float64
			if stats.Overall.Total > 0 {
				share = cat.Total / stats.Overall.Total * 100
			}
			b.WriteString(fmt.Sprintf("  %s %s (%.1f%%), %d шт.\n",
				cat.Category, report.FormatMoney(decimal.NewFromFloat(cat.Total)), share, cat.Count))
		}
	}

	for _, insight := range report.Insights(stats) {
		b.WriteString("\n" + InfoStyle.Render(insight))
	}

	return b.String()
}

// RenderBudgets renders every budget with its progress bar.
func RenderBudgets(budgets []model.BudgetStatus) string {
	if len(budgets) == 0 {
		return FormatInfo("У вас нет установленных бюджетов.")
	}

	blocks := make([]string, 0, len(budgets))
	for _, budget := range budgets {
		block := report.FormatBudgetStatus(budget)
		if budget.Exceeded {
			block = ErrorStyle.Render(block)
		}
		blocks = append(blocks, block)
	}

	return FormatTitle("Ваши бюджеты") + "\n" + strings.Join(blocks, "\n\n")
}

// RenderAdvice renders the 50/30/20 recommendations plus exceeded-budget
// warnings.
func RenderAdvice(stats *service.PeriodStatistics, budgets []model.BudgetStatus) string {
	var b strings.Builder
	b.WriteString(FormatTitle("Персональные рекомендации") + "\n")

	for _, rec := range report.Recommendations(stats) {
		b.WriteString(rec + "\n")
	}

	if warnings := report.ExceededWarnings(budgets); len(warnings) > 0 {
		b.WriteString("\n" + WarningStyle.Render("Обратите внимание:") + "\n")
		for _, warning := range warnings {
			b.WriteString("  " + FormatWarning(warning) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderCategories renders the category list.
func RenderCategories(categories []model.Category) string {
	var b strings.Builder
	b.WriteString(FormatTitle("Категории") + "\n")
	for i, category := range categories {
		b.WriteString(fmt.Sprintf("  %2d. %s\n", i+1, category.Name))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderPrediction renders a classifier prediction with its full probability
// distribution, most likely first.
func RenderPrediction(text string, prediction model.Prediction) string {
	var b strings.Builder
	b.WriteString(FormatTitle("Классификация") + "\n")
	b.WriteString(fmt.Sprintf("Текст: %s\n", text))

	if prediction.Category == "" {
		b.WriteString(FormatWarning("Не удалось классифицировать."))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Категория: %s (%.1f%%)\n\n",
		BoldStyle.Render(prediction.Category), prediction.Confidence*100))

	labels := make([]string, 0, len(prediction.Distribution))
	for label := range prediction.Distribution {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return prediction.Distribution[labels[i]] > prediction.Distribution[labels[j]]
	})

	for _, label := range labels {
		b.WriteString(fmt.Sprintf("  %-15s %6.2f%%\n", label, prediction.Distribution[label]*100))
	}
	return strings.TrimRight(b.String(), "\n")
}
