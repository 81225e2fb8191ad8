// Package parse extracts transaction amounts and descriptions from free-text
// input using a tolerant grammar: shorthand thousand suffixes, currency words,
// and both dot and comma decimal separators.
package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/common"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
)

var (
	// Shorthand thousands: "1.5к", "2к рублей", "1.5k". Checked before the
	// general grammar and short-circuits it on a match.
	thousandsPattern = regexp.MustCompile(`(?i)^(-?\d+(?:[.,]\d+)?)\s*[кk]\s*(.*)$`)

	// General grammar, tried in order. The trailing currency word is optional
	// in each, so "кофе 300", "такси 450 руб" and a bare "500" all parse.
	linePatterns = []*regexp.Regexp{
		// description, amount, optional currency
		regexp.MustCompile(`(?i)^(.+?)\s+(-?\d+(?:[.,]\d+)?)\s*(?:руб(?:лей|ля)?|р|₽)?$`),
		// amount alone, optional currency
		regexp.MustCompile(`(?i)^(-?\d+(?:[.,]\d+)?)\s*(?:руб(?:лей|ля)?|р|₽)?$`),
	}
)

var currencyWords = map[string]struct{}{
	"руб":    {},
	"рублей": {},
	"рубля":  {},
	"р":      {},
	"₽":      {},
}

// thousand multiplies the shorthand-suffix value.
var thousand = decimal.NewFromInt(1000)

// Parse extracts an amount and a description from a raw input line. The sign
// of the amount is preserved; only a missing or zero amount is a failure here.
// Positivity is a separate contract enforced by Validate.
func Parse(text string) (model.ParsedAmount, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ParsedAmount{}, fmt.Errorf("%w: empty input", common.ErrNoAmount)
	}

	if m := thousandsPattern.FindStringSubmatch(text); m != nil {
		amount, err := parseNumber(m[1])
		if err == nil {
			amount = amount.Mul(thousand)
			// The shorthand form rejects non-positive values outright.
			if amount.Sign() <= 0 {
				return model.ParsedAmount{}, fmt.Errorf("%w: %q", common.ErrNoAmount, text)
			}
			return model.ParsedAmount{
				Amount:      amount,
				Description: stripCurrencyWord(m[2]),
			}, nil
		}
	}

	for _, pattern := range linePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		var description, numText string
		if len(m) == 3 {
			description = strings.TrimSpace(m[1])
			numText = m[2]
		} else {
			numText = m[1]
		}

		amount, err := parseNumber(numText)
		if err != nil {
			continue
		}
		if amount.IsZero() {
			return model.ParsedAmount{}, fmt.Errorf("%w: zero amount", common.ErrNoAmount)
		}

		return model.ParsedAmount{Amount: amount, Description: description}, nil
	}

	return model.ParsedAmount{}, fmt.Errorf("%w: %q", common.ErrNoAmount, text)
}

// Validate enforces the positivity and range contract on an already parsed
// amount: it must be strictly positive and at most one billion.
func Validate(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: %s", common.ErrAmountNotPositive, amount)
	}
	if amount.GreaterThan(model.MaxAmount) {
		return fmt.Errorf("%w: %s", common.ErrAmountTooLarge, amount)
	}
	return nil
}

// ParseValidated parses an amount-only input and applies Validate. Used by
// flows where the user enters just a sum, such as the fast-add path.
func ParseValidated(text string) (decimal.Decimal, error) {
	parsed, err := Parse(text)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if err := Validate(parsed.Amount); err != nil {
		return decimal.Decimal{}, err
	}
	return parsed.Amount, nil
}

func parseNumber(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}

// stripCurrencyWord drops a leading currency token from the text remaining
// after a shorthand amount, so "2к рублей на такси" yields "на такси".
func stripCurrencyWord(rest string) string {
	rest = strings.TrimSpace(rest)
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	if _, ok := currencyWords[strings.ToLower(fields[0])]; ok {
		return strings.Join(fields[1:], " ")
	}
	return rest
}
