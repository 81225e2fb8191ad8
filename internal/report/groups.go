// Package report turns raw period statistics into user-facing insights,
// budget recommendations and formatted output lines.
package report

import "github.com/Alice-Fowler/telegram-bot-nlp/internal/service"

// Group is one of the three buckets of the 50/30/20 budgeting rule.
type Group string

// Budget groups.
const (
	GroupEssentials Group = "essentials"
	GroupWants      Group = "wants"
	GroupSavings    Group = "savings"
)

// groupOrder fixes the presentation order of the three groups.
var groupOrder = []Group{GroupEssentials, GroupWants, GroupSavings}

// groupRatios holds the ideal share of spending per group.
var groupRatios = map[Group]float64{
	GroupEssentials: 0.5,
	GroupWants:      0.3,
	GroupSavings:    0.2,
}

// categoryGroups maps each known category to exactly one group. Categories
// absent from the table (including uncategorized spend) count toward no group.
var categoryGroups = map[string]Group{
	"Продукты":    GroupEssentials,
	"Транспорт":   GroupEssentials,
	"Здоровье":    GroupEssentials,
	"Образование": GroupEssentials,
	"Еда":         GroupWants,
	"Кафе":        GroupWants,
	"Развлечения": GroupWants,
	"Другое":      GroupSavings,
}

// groupNames are the Russian display names of the groups.
var groupNames = map[Group]string{
	GroupEssentials: "Обязательные расходы",
	GroupWants:      "Желания",
	GroupSavings:    "Накопления",
}

// DeviationBand is the tolerance, in percentage points, around each group's
// ideal share before a deviation is reported.
const DeviationBand = 10.0

// TargetStatus classifies a group's actual share against its ideal.
type TargetStatus string

// Target statuses.
const (
	OnTarget    TargetStatus = "on"
	OverTarget  TargetStatus = "over"
	UnderTarget TargetStatus = "under"
)

// GroupShare is the computed position of one budget group for a period.
type GroupShare struct {
	Group     Group
	Name      string
	Status    TargetStatus
	Actual    float64
	Ideal     float64
	Deviation float64
}

// GroupShares maps the per-category totals onto the three budget groups and
// classifies each against its ideal share. A zero total yields zero shares
// rather than NaN.
func GroupShares(stats *service.PeriodStatistics) []GroupShare {
	total := stats.Overall.Total

	spent := make(map[Group]float64, len(groupOrder))
	for _, cat := range stats.ByCategory {
		if group, ok := categoryGroups[cat.Category]; ok {
			spent[group] += cat.Total
		}
	}

	shares := make([]GroupShare, 0, len(groupOrder))
	for _, group := range groupOrder {
		ideal := groupRatios[group] * 100

		var actual float64
		if total > 0 {
			actual = spent[group] / total * 100
		}

		share := GroupShare{
			Group:     group,
			Name:      groupNames[group],
			Actual:    actual,
			Ideal:     ideal,
			Deviation: actual - ideal,
		}
		switch {
		case share.Deviation > DeviationBand:
			share.Status = OverTarget
		case share.Deviation < -DeviationBand:
			share.Status = UnderTarget
		default:
			share.Status = OnTarget
		}
		shares = append(shares, share)
	}

	return shares
}
