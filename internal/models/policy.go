package models

import "github.com/shopspring/decimal"

// SignPolicy turns the debits and credits a ledger received into the amount
// reported for it.
type SignPolicy func(debit, credit decimal.Decimal) decimal.Decimal

// liabilityPolicy nets what was paid back against what was borrowed.
func liabilityPolicy(debit, credit decimal.Decimal) decimal.Decimal {
	return debit.Sub(credit)
}

// normalPolicy only counts what flowed in, credits are ignored.
func normalPolicy(debit, _ decimal.Decimal) decimal.Decimal {
	return debit
}

// Policy returns the sign convention of the kind. Every report shape goes
// through it so balances, daily totals and calendars agree with each other.
func (k Kind) Policy() SignPolicy {
	if k.IsLiability() {
		return liabilityPolicy
	}
	return normalPolicy
}
