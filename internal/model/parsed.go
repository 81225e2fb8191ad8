package model

import "github.com/shopspring/decimal"

// ParsedAmount is the result of extracting an amount and a free-text
// description from one raw input line. The sign is preserved; positivity is
// enforced later, at validation time.
type ParsedAmount struct {
	Description string
	Amount      decimal.Decimal
}
