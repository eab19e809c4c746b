// Package payment defines the domain types shared by the instruction parser,
// the transaction validator and the execution engine.
package payment

import "strings"

// InstructionType is the leading keyword of an instruction.
type InstructionType string

const (
	TypeDebit  InstructionType = "DEBIT"
	TypeCredit InstructionType = "CREDIT"
)

// Currency is an ISO 4217 code from the closed set of supported currencies.
type Currency string

const (
	NGN Currency = "NGN"
	USD Currency = "USD"
	GBP Currency = "GBP"
	GHS Currency = "GHS"
)

// SupportedCurrencies lists the accepted currencies in their reporting order.
var SupportedCurrencies = []Currency{NGN, USD, GBP, GHS}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	switch c {
	case NGN, USD, GBP, GHS:
		return true
	}
	return false
}

// ParseCurrency upper-cases code and returns it if supported.
func ParseCurrency(code string) (Currency, bool) {
	c := Currency(strings.ToUpper(code))
	return c, c.Valid()
}

// Status is the outcome of processing one instruction.
type Status string

const (
	StatusSuccessful Status = "successful"
	StatusPending    Status = "pending"
	StatusFailed     Status = "failed"
)

// StatusCode is the stable machine-readable outcome identifier.
type StatusCode string

const (
	CodeMissingKeyword      StatusCode = "SY01"
	CodeInvalidKeywordOrder StatusCode = "SY02"
	CodeMalformed           StatusCode = "SY03"
	CodeInvalidAmount       StatusCode = "AM01"
	CodeCurrencyMismatch    StatusCode = "CU01"
	CodeUnsupportedCurrency StatusCode = "CU02"
	CodeInsufficientFunds   StatusCode = "AC01"
	CodeSameAccount         StatusCode = "AC02"
	CodeAccountNotFound     StatusCode = "AC03"
	CodeInvalidAccountID    StatusCode = "AC04"
	CodeInvalidDate         StatusCode = "DT01"
	CodeExecuted            StatusCode = "AP00"
	CodeScheduled           StatusCode = "AP02"
)

// Status returns the outcome status implied by the code.
func (c StatusCode) Status() Status {
	switch c {
	case CodeExecuted:
		return StatusSuccessful
	case CodeScheduled:
		return StatusPending
	default:
		return StatusFailed
	}
}
