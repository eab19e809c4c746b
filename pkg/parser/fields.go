package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/pigeonworks-llc/payment-instructions/pkg/payment"
)

// parseAmount reads "<amount> [...] <currency>". The currency is always the
// last token.
func parseAmount(s string) (int64, payment.Currency, error) {
	parts := strings.Split(strings.TrimSpace(s), " ")
	if len(parts) < 2 {
		return 0, "", payment.Fail(payment.CodeMalformed, "Malformed instruction: unable to parse amount and currency")
	}

	amountText := parts[0]
	if strings.Contains(amountText, ".") {
		return 0, "", payment.Fail(payment.CodeInvalidAmount, "Amount must be a positive integer (no decimals)")
	}
	if strings.Contains(amountText, "-") {
		return 0, "", payment.Fail(payment.CodeInvalidAmount, "Amount must be a positive integer (no negatives)")
	}

	amount, err := strconv.ParseInt(amountText, 10, 64)
	if err != nil || amount <= 0 {
		return 0, "", payment.Fail(payment.CodeInvalidAmount, "Amount must be a positive integer")
	}

	currency, ok := payment.ParseCurrency(parts[len(parts)-1])
	if !ok {
		return 0, "", payment.Fail(payment.CodeUnsupportedCurrency, "Unsupported currency. Only NGN, USD, GBP, and GHS are supported")
	}

	return amount, currency, nil
}

// checkAccountID accepts ASCII letters, digits, '-', '.' and '@'.
func checkAccountID(id string) error {
	if id == "" {
		return payment.Fail(payment.CodeMalformed, "Account ID cannot be empty")
	}

	for i := 0; i < len(id); i++ {
		c := id[i]
		isLetter := ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
		isDigit := '0' <= c && c <= '9'
		if !isLetter && !isDigit && c != '-' && c != '.' && c != '@' {
			return payment.Fail(payment.CodeInvalidAccountID, "Invalid account ID format: contains invalid character")
		}
	}

	return nil
}

// parseDate validates a YYYY-MM-DD date. The day is only checked against 31,
// so dates such as 2025-04-31 are accepted.
func parseDate(s string) (payment.Date, error) {
	formatErr := payment.Fail(payment.CodeInvalidDate, "Invalid date format. Expected YYYY-MM-DD")

	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return payment.Date{}, formatErr
	}

	y, okY := digits(s[0:4])
	m, okM := digits(s[5:7])
	d, okD := digits(s[8:10])
	if !okY || !okM || !okD {
		return payment.Date{}, formatErr
	}

	if m < 1 || m > 12 || d < 1 || d > 31 {
		return payment.Date{}, payment.Fail(payment.CodeInvalidDate, "Invalid date format. Date values out of range")
	}

	return payment.Date{Year: y, Month: time.Month(m), Day: d}, nil
}

// digits parses an unsigned decimal made of ASCII digits only.
func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, s != ""
}
