package models

import "slices"

const (
	CategoryGroceries     = "Groceries"
	CategoryEntertainment = "Entertainment"
	CategoryBills         = "Bills"
	CategoryTransport     = "Transport"
	CategoryEatingOut     = "Eating Out"
	CategoryHealthcare    = "Healthcare"
)

var (
	Categories     = []string{CategoryGroceries, CategoryEntertainment, CategoryBills, CategoryTransport, CategoryEatingOut, CategoryHealthcare}
	PaymentMethods = []string{"Cash", "Credit Card", "Debit Card", "Bank Transfer"}
	Locations      = []string{"Supermarket", "Mall", "Online", "Restaurant", "Pharmacy", "Fuel Station"}
	Merchants      = []string{"Walmart", "Amazon", "Starbucks", "Netflix", "Shell", "CVS"}
	Descriptions   = []string{
		"Weekly groceries",
		"Dinner with friends",
		"Monthly subscription",
		"Bus fare",
		"Doctor's visit",
		"Gas refill",
		"Movie night",
		"Gift shopping",
	}
)

// Weekdays lists day names in Monday-first order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func IsKnownCategory(c string) bool      { return slices.Contains(Categories, c) }
func IsKnownPaymentMethod(m string) bool { return slices.Contains(PaymentMethods, m) }
func IsKnownLocation(l string) bool      { return slices.Contains(Locations, l) }
