package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/service"
)

// Insights derives a short list of human-readable observations from period
// statistics: totals, the average receipt, top categories, the most expensive
// purchase and transaction frequency.
func Insights(stats *service.PeriodStatistics) []string {
	if stats.Overall.Count == 0 {
		return []string{"У вас еще нет транзакций за этот период."}
	}

	var insights []string

	total := stats.Overall.Total
	if total > 0 {
		insights = append(insights, fmt.Sprintf("Общая сумма трат: %s",
			FormatMoney(decimal.NewFromFloat(total))))
	}
	if stats.Overall.Avg > 0 {
		insights = append(insights, fmt.Sprintf("Средний чек: %s",
			FormatMoney(decimal.NewFromFloat(stats.Overall.Avg))))
	}

	if len(stats.ByCategory) > 0 {
		top := stats.ByCategory
		if len(top) > 3 {
			top = top[:3]
		}
		line := "Топ категории: "
		for i, cat := range top {
			var percentage float64
			if total > 0 {
				percentage = cat.Total / total * 100
			}
			line += fmt.Sprintf("%s (%.1f%%)", cat.Category, percentage)
			if i < len(top)-1 {
				line += ", "
			}
		}
		insights = append(insights, line)
	}

	if stats.MostExpensive != nil {
		description := stats.MostExpensive.Description
		if description == "" {
			description = "Без описания"
		}
		insights = append(insights, fmt.Sprintf("Самая дорогая покупка: %s за %s",
			description, FormatMoney(stats.MostExpensive.Amount)))
	}

	if stats.DaysInPeriod > 0 {
		perDay := float64(stats.Overall.Count) / float64(stats.DaysInPeriod)
		if perDay > 2 {
			insights = append(insights, fmt.Sprintf("Вы активный пользователь: %.1f транзакций в день", perDay))
		} else if perDay < 0.5 {
			insights = append(insights, fmt.Sprintf("Вы экономный пользователь: %.1f транзакций в день", perDay))
		}
	}

	return insights
}

// Recommendations compares the period's spending against the 50/30/20 rule
// and returns one line per group plus an overall verdict.
func Recommendations(stats *service.PeriodStatistics) []string {
	if stats.Overall.Total <= 0 {
		return []string{"Недостаточно данных для рекомендаций по бюджету."}
	}

	shares := GroupShares(stats)

	recommendations := make([]string, 0, len(shares)+1)
	for _, share := range shares {
		switch share.Status {
		case OverTarget:
			recommendations = append(recommendations, fmt.Sprintf(
				"%s превышают норму: %.1f%% вместо %.0f%% (+%.1f%%)",
				share.Name, share.Actual, share.Ideal, share.Deviation))
		case UnderTarget:
			recommendations = append(recommendations, fmt.Sprintf(
				"%s ниже нормы: %.1f%% вместо %.0f%% (%.1f%%)",
				share.Name, share.Actual, share.Ideal, share.Deviation))
		default:
			recommendations = append(recommendations, fmt.Sprintf(
				"%s в норме: %.1f%% при норме %.0f%%",
				share.Name, share.Actual, share.Ideal))
		}
	}

	essentialsOK := shares[0].Status == OnTarget
	wantsOK := shares[1].Status == OnTarget
	switch {
	case essentialsOK && wantsOK:
		recommendations = append(recommendations,
			"Отличное распределение бюджета! Вы следуете правилу 50/30/20.")
	case !essentialsOK:
		recommendations = append(recommendations,
			"Совет: попробуйте сократить обязательные расходы.")
	default:
		recommendations = append(recommendations,
			"Совет: сократите траты на развлечения и желания.")
	}

	return recommendations
}

// ExceededWarnings returns a warning line for each exceeded budget, capped at
// the three worst offenders.
func ExceededWarnings(budgets []model.BudgetStatus) []string {
	var warnings []string
	for _, budget := range budgets {
		if !budget.Exceeded {
			continue
		}
		exceededBy := budget.CurrentSpent.Sub(budget.Limit)
		warnings = append(warnings, fmt.Sprintf("Превышен бюджет '%s' на %s",
			budget.CategoryName, FormatMoney(exceededBy)))
		if len(warnings) == 3 {
			break
		}
	}
	return warnings
}
