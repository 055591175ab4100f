package models

// Expense category constants. The set is fixed; CategoryOther is the
// fallback used by bulk import when a row carries an unknown category.
const (
	CategoryFood          = "Food"
	CategoryTransport     = "Transport"
	CategoryEntertainment = "Entertainment"
	CategoryBills         = "Bills"
	CategoryShopping      = "Shopping"
	CategoryOther         = "Other"
)

// Categories returns all expense categories.
func Categories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryBills,
		CategoryShopping,
		CategoryOther,
	}
}

// IsValidCategory reports whether name is one of the fixed categories.
func IsValidCategory(name string) bool {
	for _, c := range Categories() {
		if c == name {
			return true
		}
	}
	return false
}
