// Package validator checks a parsed instruction against the accounts supplied
// with the request.
package validator

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/payment-instructions/pkg/payment"
)

// Validate applies the business rules in order and returns the first
// violation as a *payment.Failure, or nil when the transfer may proceed.
func Validate(inst payment.Instruction, accounts []payment.Account) error {
	debit, ok := Find(accounts, inst.DebitAccount)
	if !ok {
		return payment.Fail(payment.CodeAccountNotFound, "Account not found: %s", inst.DebitAccount)
	}

	credit, ok := Find(accounts, inst.CreditAccount)
	if !ok {
		return payment.Fail(payment.CodeAccountNotFound, "Account not found: %s", inst.CreditAccount)
	}

	if inst.DebitAccount == inst.CreditAccount {
		return payment.Fail(payment.CodeSameAccount, "Debit and credit accounts cannot be the same")
	}

	if debit.Currency != credit.Currency {
		return payment.Fail(payment.CodeCurrencyMismatch,
			"Account currency mismatch: %s has %s, %s has %s", debit.ID, debit.Currency, credit.ID, credit.Currency)
	}

	currency, ok := payment.ParseCurrency(string(inst.Currency))
	if !ok {
		return payment.Fail(payment.CodeUnsupportedCurrency,
			"Unsupported currency. Only %s are supported", supportedList())
	}

	if payment.Currency(strings.ToUpper(debit.Currency)) != currency {
		return payment.Fail(payment.CodeCurrencyMismatch,
			"Currency mismatch: instruction specifies %s but account %s has %s", currency, debit.ID, debit.Currency)
	}

	if debit.Balance.LessThan(decimal.NewFromInt(inst.Amount)) {
		return payment.Fail(payment.CodeInsufficientFunds,
			"Insufficient funds in account %s: has %s %s, needs %d %s", debit.ID, debit.Balance, debit.Currency, inst.Amount, currency)
	}

	return nil
}

// Find returns the first account whose ID matches id exactly.
func Find(accounts []payment.Account, id string) (payment.Account, bool) {
	for _, acc := range accounts {
		if acc.ID == id {
			return acc, true
		}
	}
	return payment.Account{}, false
}

func supportedList() string {
	codes := make([]string, len(payment.SupportedCurrencies))
	for i, c := range payment.SupportedCurrencies {
		codes[i] = string(c)
	}
	return strings.Join(codes, ", ")
}
