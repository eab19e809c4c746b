// Package engine decides when a validated transfer runs and computes the
// resulting account balances. It never modifies the accounts it is given.
package engine

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/payment-instructions/pkg/payment"
)

// ShouldExecuteNow reports whether a transfer dated executeBy runs today.
// Undated transfers always run now; dated ones run once their date, taken at
// UTC midnight, is not after today's UTC date.
func ShouldExecuteNow(executeBy *payment.Date, now time.Time) bool {
	if executeBy == nil {
		return true
	}
	today := payment.DateOf(now).Midnight()
	return !executeBy.Midnight().After(today)
}

// Execute applies inst to every account and returns one snapshot per input
// account, in input order. The debit account loses the amount, the credit
// account gains it, the rest pass through unchanged.
func Execute(accounts []payment.Account, inst payment.Instruction) []payment.AccountSnapshot {
	amount := decimal.NewFromInt(inst.Amount)

	out := make([]payment.AccountSnapshot, 0, len(accounts))
	for _, acc := range accounts {
		balance := acc.Balance
		switch acc.ID {
		case inst.DebitAccount:
			balance = balance.Sub(amount)
		case inst.CreditAccount:
			balance = balance.Add(amount)
		}
		out = append(out, payment.AccountSnapshot{
			ID:            acc.ID,
			Balance:       balance,
			BalanceBefore: acc.Balance,
			Currency:      strings.ToUpper(acc.Currency),
		})
	}
	return out
}

// Unchanged returns snapshots whose balance equals their balance before.
func Unchanged(accounts []payment.Account) []payment.AccountSnapshot {
	out := make([]payment.AccountSnapshot, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, acc.Snapshot())
	}
	return out
}

// Involved keeps the snapshots of the debit and credit accounts, preserving
// their order in snapshots.
func Involved(snapshots []payment.AccountSnapshot, debitID, creditID string) []payment.AccountSnapshot {
	out := make([]payment.AccountSnapshot, 0, 2)
	for _, s := range snapshots {
		if s.ID == debitID || s.ID == creditID {
			out = append(out, s)
		}
	}
	return out
}
