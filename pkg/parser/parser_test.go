package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/pigeonworks-llc/payment-instructions/pkg/payment"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected payment.Instruction
	}{
		{
			name:  "debit",
			input: "DEBIT 500 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2",
			expected: payment.Instruction{
				Type: payment.TypeDebit, Amount: 500, Currency: payment.NGN,
				DebitAccount: "A1", CreditAccount: "A2",
			},
		},
		{
			name:  "credit swaps roles",
			input: "CREDIT 100 USD TO ACCOUNT B2 FOR DEBIT FROM ACCOUNT B1",
			expected: payment.Instruction{
				Type: payment.TypeCredit, Amount: 100, Currency: payment.USD,
				DebitAccount: "B1", CreditAccount: "B2",
			},
		},
		{
			name:  "lower case keywords keep account case",
			input: "debit 20 gbp from account acc-One for credit to account Acc.Two@x",
			expected: payment.Instruction{
				Type: payment.TypeDebit, Amount: 20, Currency: payment.GBP,
				DebitAccount: "acc-One", CreditAccount: "Acc.Two@x",
			},
		},
		{
			name:  "whitespace collapsed",
			input: "  DEBIT   7\tGHS\nFROM   ACCOUNT  X1   FOR CREDIT TO ACCOUNT   X2  ",
			expected: payment.Instruction{
				Type: payment.TypeDebit, Amount: 7, Currency: payment.GHS,
				DebitAccount: "X1", CreditAccount: "X2",
			},
		},
		{
			name:  "leading plus sign accepted",
			input: "DEBIT +5 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2",
			expected: payment.Instruction{
				Type: payment.TypeDebit, Amount: 5, Currency: payment.NGN,
				DebitAccount: "A1", CreditAccount: "A2",
			},
		},
		{
			name:  "currency is the last token",
			input: "DEBIT 500 naira NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2",
			expected: payment.Instruction{
				Type: payment.TypeDebit, Amount: 500, Currency: payment.NGN,
				DebitAccount: "A1", CreditAccount: "A2",
			},
		},
		{
			name:  "execution date",
			input: "CREDIT 100 USD TO ACCOUNT B2 FOR DEBIT FROM ACCOUNT B1 ON 2999-01-01",
			expected: payment.Instruction{
				Type: payment.TypeCredit, Amount: 100, Currency: payment.USD,
				DebitAccount: "B1", CreditAccount: "B2",
				ExecuteBy: &payment.Date{Year: 2999, Month: time.January, Day: 1},
			},
		},
		{
			name:  "day 31 accepted for any month",
			input: "DEBIT 1 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2 on 2025-04-31",
			expected: payment.Instruction{
				Type: payment.TypeDebit, Amount: 1, Currency: payment.NGN,
				DebitAccount: "A1", CreditAccount: "A2",
				ExecuteBy: &payment.Date{Year: 2025, Month: time.April, Day: 31},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			assertInstruction(t, got, tt.expected)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		code   payment.StatusCode
		reason string
	}{
		{"empty", "", payment.CodeMissingKeyword, "Missing required keyword: DEBIT or CREDIT"},
		{"no type keyword", "TRANSFER 500 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2", payment.CodeMissingKeyword, "Missing required keyword: DEBIT or CREDIT"},
		{"debit missing from", "DEBIT 500 NGN ACCOUNT A1 FOR CREDIT TO ACCOUNT A2", payment.CodeMissingKeyword, "Missing required keyword: FROM ACCOUNT"},
		{"debit missing for credit", "DEBIT 500 NGN FROM ACCOUNT A1 TO ACCOUNT A2", payment.CodeMissingKeyword, "Missing required keyword: FOR CREDIT TO ACCOUNT"},
		{"credit missing to", "CREDIT 500 NGN FOR DEBIT FROM ACCOUNT A1", payment.CodeMissingKeyword, "Missing required keyword: TO ACCOUNT"},
		{"credit missing for debit", "CREDIT 500 NGN TO ACCOUNT A1", payment.CodeMissingKeyword, "Missing required keyword: FOR DEBIT FROM ACCOUNT"},
		{"debit wrong order", "DEBIT 500 NGN FOR CREDIT TO ACCOUNT A2 FROM ACCOUNT A1", payment.CodeInvalidKeywordOrder, "Invalid keyword order"},
		{"credit wrong order", "CREDIT 500 NGN FOR DEBIT FROM ACCOUNT A1 TO ACCOUNT A2", payment.CodeInvalidKeywordOrder, "Invalid keyword order"},
		{"missing currency", "DEBIT 500 FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2", payment.CodeMalformed, "Malformed instruction: unable to parse amount and currency"},
		{"missing amount and currency", "DEBIT FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2", payment.CodeMalformed, "Malformed instruction: unable to parse amount and currency"},
		{"decimal amount", "DEBIT 500.50 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2", payment.CodeInvalidAmount, "Amount must be a positive integer (no decimals)"},
		{"negative amount", "DEBIT -500 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2", payment.CodeInvalidAmount, "Amount must be a positive integer (no negatives)"},
		{"zero amount", "DEBIT 0 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2", payment.CodeInvalidAmount, "Amount must be a positive integer"},
		{"non numeric amount", "DEBIT five NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2", payment.CodeInvalidAmount, "Amount must be a positive integer"},
		{"amount overflow", "DEBIT 99999999999999999999 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2", payment.CodeInvalidAmount, "Amount must be a positive integer"},
		{"unsupported currency", "DEBIT 500 EUR FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2", payment.CodeUnsupportedCurrency, "Unsupported currency. Only NGN, USD, GBP, and GHS are supported"},
		{"empty debit account", "DEBIT 500 NGN FROM ACCOUNT FOR CREDIT TO ACCOUNT A2", payment.CodeMalformed, "Account ID cannot be empty"},
		{"empty credit account", "DEBIT 500 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT", payment.CodeMalformed, "Account ID cannot be empty"},
		{"empty credit account before date", "DEBIT 500 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT ON 2025-01-01", payment.CodeMalformed, "Account ID cannot be empty"},
		{"invalid debit account", "DEBIT 500 NGN FROM ACCOUNT A#1 FOR CREDIT TO ACCOUNT A2", payment.CodeInvalidAccountID, "Invalid account ID format: contains invalid character"},
		{"account with space", "CREDIT 500 NGN TO ACCOUNT A 2 FOR DEBIT FROM ACCOUNT A1", payment.CodeInvalidAccountID, "Invalid account ID format: contains invalid character"},
		{"non ascii account", "DEBIT 500 NGN FROM ACCOUNT Aé FOR CREDIT TO ACCOUNT A2", payment.CodeInvalidAccountID, "Invalid account ID format: contains invalid character"},
		{"date wrong length", "DEBIT 500 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2 ON 2025-1-01", payment.CodeInvalidDate, "Invalid date format. Expected YYYY-MM-DD"},
		{"date wrong separator", "DEBIT 500 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2 ON 2025/01/01", payment.CodeInvalidDate, "Invalid date format. Expected YYYY-MM-DD"},
		{"date not numeric", "DEBIT 500 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2 ON 2025-ab-01", payment.CodeInvalidDate, "Invalid date format. Expected YYYY-MM-DD"},
		{"month out of range", "DEBIT 500 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2 ON 2025-13-01", payment.CodeInvalidDate, "Invalid date format. Date values out of range"},
		{"day out of range", "DEBIT 500 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2 ON 2025-01-32", payment.CodeInvalidDate, "Invalid date format. Date values out of range"},
		{"day zero", "DEBIT 500 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2 ON 2025-01-00", payment.CodeInvalidDate, "Invalid date format. Date values out of range"},
		{"overlapping keywords", "CREDITO ACCOUNT A1 FOR DEBIT FROM ACCOUNT A2", payment.CodeMalformed, "Malformed instruction: unable to parse amount and currency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) = %+v, expected error %s", tt.input, got, tt.code)
			}

			var f *payment.Failure
			if !errors.As(err, &f) {
				t.Fatalf("Parse(%q) error %T is not a *payment.Failure", tt.input, err)
			}
			if f.Code != tt.code {
				t.Errorf("Parse(%q) code = %s, expected %s", tt.input, f.Code, tt.code)
			}
			if f.Reason != tt.reason {
				t.Errorf("Parse(%q) reason = %q, expected %q", tt.input, f.Reason, tt.reason)
			}
			if got != (payment.Instruction{}) {
				t.Errorf("Parse(%q) returned partial instruction %+v", tt.input, got)
			}
		})
	}
}

func TestParseFirstFailureWins(t *testing.T) {
	// Bad amount, bad currency and bad account: the amount is checked first.
	_, err := Parse("DEBIT 1.5 EUR FROM ACCOUNT A#1 FOR CREDIT TO ACCOUNT A2 ON 2025-99-99")
	if got := payment.AsFailure(err).Code; got != payment.CodeInvalidAmount {
		t.Errorf("code = %s, expected %s", got, payment.CodeInvalidAmount)
	}

	// Credit account is named first in a CREDIT instruction and checked first.
	_, err = Parse("CREDIT 5 NGN TO ACCOUNT B#2 FOR DEBIT FROM ACCOUNT")
	if got := payment.AsFailure(err).Code; got != payment.CodeInvalidAccountID {
		t.Errorf("code = %s, expected %s", got, payment.CodeInvalidAccountID)
	}
}

func TestParseOnBeforeSecondKeywordIgnored(t *testing.T) {
	// " ON " is searched once; an occurrence before the second keyword
	// leaves the trailing text as part of the credit account.
	_, err := Parse("DEBIT 5 NGN FROM ACCOUNT ON FOR CREDIT TO ACCOUNT A2 ON 2025-01-01")
	if got := payment.AsFailure(err).Code; got != payment.CodeInvalidAccountID {
		t.Errorf("code = %s, expected %s", got, payment.CodeInvalidAccountID)
	}
}

func TestParseIdempotent(t *testing.T) {
	inputs := []string{
		"DEBIT 500 NGN FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2 ON 2025-01-01",
		"CREDIT 100 USD TO ACCOUNT B2 FOR DEBIT FROM ACCOUNT B1",
		"DEBIT 500 EUR FROM ACCOUNT A1 FOR CREDIT TO ACCOUNT A2",
	}

	for _, input := range inputs {
		first, err1 := Parse(input)
		second, err2 := Parse(input)
		assertInstruction(t, first, second)
		if (err1 == nil) != (err2 == nil) || (err1 != nil && err1.Error() != err2.Error()) {
			t.Errorf("Parse(%q) errors differ: %v vs %v", input, err1, err2)
		}
	}
}

func TestAsciiUpperKeepsOffsets(t *testing.T) {
	in := "debit ßtraße"
	out := asciiUpper(in)
	if len(out) != len(in) {
		t.Errorf("asciiUpper changed length: %d -> %d", len(in), len(out))
	}
	if out[:5] != "DEBIT" {
		t.Errorf("asciiUpper(%q) = %q", in, out)
	}
}

func assertInstruction(t *testing.T, got, expected payment.Instruction) {
	t.Helper()

	gotDate, expDate := got.ExecuteBy, expected.ExecuteBy
	got.ExecuteBy, expected.ExecuteBy = nil, nil
	if got != expected {
		t.Errorf("instruction = %+v, expected %+v", got, expected)
	}
	switch {
	case gotDate == nil && expDate == nil:
	case gotDate == nil || expDate == nil:
		t.Errorf("ExecuteBy = %v, expected %v", gotDate, expDate)
	case *gotDate != *expDate:
		t.Errorf("ExecuteBy = %s, expected %s", gotDate, expDate)
	}
}
