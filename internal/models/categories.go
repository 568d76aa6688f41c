package models

// ExpenseCategories is the fixed taxonomy for expense transactions.
var ExpenseCategories = []string{
	"Food & Drinks",
	"Groceries",
	"Shopping",
	"Transportation",
	"Fuel",
	"Entertainment",
	"Subscriptions",
	"Bills & Utilities",
	"Health & Medicine",
	"Education",
	"Travel",
	"Home & Rent",
	"Pet Care",
	"Donations",
	"Taxes",
	"Other",
}

// IncomeCategories is the fixed taxonomy for income transactions.
var IncomeCategories = []string{
	"Salary",
	"Freelance",
	"Investment",
	"Gift",
	"Rental Income",
	"Bonus",
	"Interest",
	"Dividends",
	"Refunds",
	"Selling Items",
	"Other",
}

// Categories returns the taxonomy for the given transaction type.
func Categories(t TransactionType) []string {
	if t == Income {
		return IncomeCategories
	}
	return ExpenseCategories
}

// ValidCategory reports whether name belongs to the taxonomy for t.
func ValidCategory(t TransactionType, name string) bool {
	for _, c := range Categories(t) {
		if c == name {
			return true
		}
	}
	return false
}
