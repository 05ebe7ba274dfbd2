package entity

import "github.com/shopspring/decimal"

// CustomerAggregate is one summary row per canonical phone: the customer's
// display name and the sum of all their credit transactions for the current
// import. Name is taken from the first transaction seen in stable input
// order; AmountDue is the decimal sum of Total over the group.
type CustomerAggregate struct {
	Phone     string
	Name      string
	AmountDue decimal.Decimal
}
