// Package model defines the core domain models used throughout the application.
package model

import "strings"

// Category is a spending category from the closed classification set.
type Category string

// The closed set of spending categories.
const (
	CategoryGrocery       Category = "Grocery"
	CategoryDining        Category = "Dining"
	CategoryGas           Category = "Gas"
	CategoryTravel        Category = "Travel"
	CategoryOnline        Category = "Online"
	CategoryEntertainment Category = "Entertainment"
	CategoryTransit       Category = "Transit"
	CategoryHealthcare    Category = "Healthcare"
	CategoryUtilities     Category = "Utilities"
	CategoryInsurance     Category = "Insurance"
	CategoryOther         Category = "Other"

	// CategoryAll is the wildcard used inside reward rules only.
	// It is never a valid classification result.
	CategoryAll Category = "All"
)

// Categories returns the closed set of classification categories.
// The wildcard "All" is excluded: it is legal only inside reward rules.
func Categories() []Category {
	return []Category{
		CategoryGrocery,
		CategoryDining,
		CategoryGas,
		CategoryTravel,
		CategoryOnline,
		CategoryEntertainment,
		CategoryTransit,
		CategoryHealthcare,
		CategoryUtilities,
		CategoryInsurance,
		CategoryOther,
	}
}

// ParseCategory maps a free-text label onto the closed category set.
// Unknown labels coerce to Other with ok=false so callers can tell a
// genuine "Other" from an out-of-set response.
func ParseCategory(label string) (Category, bool) {
	trimmed := strings.TrimSpace(label)
	for _, c := range Categories() {
		if strings.EqualFold(trimmed, string(c)) {
			return c, true
		}
	}
	return CategoryOther, false
}

// Valid reports whether c is a member of the closed classification set.
func (c Category) Valid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

func (c Category) String() string {
	return string(c)
}
