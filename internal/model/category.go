// Package model defines the core domain models used throughout the application.
package model

import "time"

// Category represents a spending category.
type Category struct {
	CreatedAt time.Time
	Name      string
	ID        int64
}

// DefaultCategoryName is assigned when the classifier cannot suggest anything.
const DefaultCategoryName = "Другое"

// DefaultCategories is the fixed seed set created on first migration. The
// classifier's label set is a subset of these names.
var DefaultCategories = []string{
	"Еда",
	"Транспорт",
	"Развлечения",
	"Кафе",
	"Продукты",
	"Здоровье",
	"Образование",
	"Другое",
}
