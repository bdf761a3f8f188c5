// Package catalog defines the closed set of transaction description
// labels used by the synthesizer.
package catalog

var descriptions = []string{
	"Paycheck", "ATM Withdrawal", "Online Shopping - Amazon", "Grocery Store",
	"Electricity Bill", "Water Bill", "Internet Bill", "Mobile Recharge",
	"Dining - Restaurant", "Fuel Station", "Gym Membership", "Movie Tickets",
	"Credit Card Payment", "Loan EMI", "Mutual Fund Investment", "NEFT Transfer",
	"IMPS Transfer", "UPI Payment", "Subscription - Netflix", "Cash Deposit",
}

// All returns a copy of the catalog so callers cannot mutate it.
func All() []string {
	out := make([]string, len(descriptions))
	copy(out, descriptions)
	return out
}

// Contains reports whether label is a member of the catalog.
func Contains(label string) bool {
	for _, d := range descriptions {
		if d == label {
			return true
		}
	}
	return false
}

// Size returns the number of labels in the catalog.
func Size() int {
	return len(descriptions)
}
