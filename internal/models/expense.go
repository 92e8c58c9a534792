package models

import "time"

// DateFormat is the on-disk format for calendar dates.
const DateFormat = "2006-01-02"

// Expense table columns.
const (
	ColPerson  = "Person"
	ColDate    = "Date"
	ColAmount  = "Amount"
	ColContent = "Content"
	ColPlace   = "Place"
)

// Expense categories offered by the entry form.
const (
	CategoryFood  = "食費"
	CategoryOther = "その他"
)

// Expense is a single spending record waiting to be settled.
type Expense struct {
	// Person is the participant who paid. Must be one of the two
	// configured participant names.
	Person string

	// Date is the calendar date of the expense.
	Date time.Time

	// Amount is the spent amount in yen. Never negative.
	Amount int64

	// Content is the expense category (食費 or その他). Optional.
	Content string

	// Place is a free-text location label. Optional.
	Place string
}
