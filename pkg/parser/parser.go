// Package parser turns free-text payment instructions into payment.Instruction
// values.
//
// Two fixed templates are understood:
//
//	DEBIT <amount> <currency> FROM ACCOUNT <id> FOR CREDIT TO ACCOUNT <id> [ON YYYY-MM-DD]
//	CREDIT <amount> <currency> TO ACCOUNT <id> FOR DEBIT FROM ACCOUNT <id> [ON YYYY-MM-DD]
//
// Keywords are matched case-insensitively at their first occurrence in the
// whitespace-normalised text. Matching is positional, not token based, so a
// keyword that also occurs inside an account ID (for example an ID containing
// "TO ACCOUNT") is detected at the wrong place. This is a known limitation of
// the grammar and is kept as is.
package parser

import (
	"strings"

	"github.com/pigeonworks-llc/payment-instructions/pkg/payment"
)

// onKeyword introduces the optional execution date. The surrounding spaces
// keep it from matching inside words such as "MONEY".
const onKeyword = " ON "

// grammar describes one instruction template.
type grammar struct {
	typ payment.InstructionType
	// first introduces the account named first in the text, second the other.
	first, second string
	// firstIsDebit is true when the first account is the one being debited.
	firstIsDebit bool
}

var grammars = []grammar{
	{typ: payment.TypeDebit, first: "FROM ACCOUNT", second: "FOR CREDIT TO ACCOUNT", firstIsDebit: true},
	{typ: payment.TypeCredit, first: "TO ACCOUNT", second: "FOR DEBIT FROM ACCOUNT", firstIsDebit: false},
}

// Parse parses a raw instruction. On failure it returns a *payment.Failure
// and a zero Instruction; the first failing check wins.
func Parse(raw string) (payment.Instruction, error) {
	text := normalize(raw)
	upper := asciiUpper(text)

	for _, g := range grammars {
		if strings.HasPrefix(upper, string(g.typ)) {
			inst, err := g.parse(text, upper)
			if err != nil {
				return payment.Instruction{}, err
			}
			return inst, nil
		}
	}

	return payment.Instruction{}, payment.Fail(payment.CodeMissingKeyword, "Missing required keyword: DEBIT or CREDIT")
}

func (g grammar) parse(text, upper string) (payment.Instruction, error) {
	first := strings.Index(upper, g.first)
	second := strings.Index(upper, g.second)
	on := strings.Index(upper, onKeyword)

	if first == -1 {
		return payment.Instruction{}, payment.Fail(payment.CodeMissingKeyword, "Missing required keyword: %s", g.first)
	}
	if second == -1 {
		return payment.Instruction{}, payment.Fail(payment.CodeMissingKeyword, "Missing required keyword: %s", g.second)
	}
	if first >= second {
		return payment.Instruction{}, payment.Fail(payment.CodeInvalidKeywordOrder, "Invalid keyword order")
	}

	amount, currency, err := parseAmount(segment(text, len(g.typ), first))
	if err != nil {
		return payment.Instruction{}, err
	}

	firstID := strings.TrimSpace(segment(text, first+len(g.first), second))
	if err := checkAccountID(firstID); err != nil {
		return payment.Instruction{}, err
	}

	// A date clause only counts when it follows the second account keyword.
	hasDate := on != -1 && on > second
	end := len(text)
	if hasDate {
		end = on
	}
	secondID := strings.TrimSpace(segment(text, second+len(g.second), end))
	if err := checkAccountID(secondID); err != nil {
		return payment.Instruction{}, err
	}

	inst := payment.Instruction{
		Type:     g.typ,
		Amount:   amount,
		Currency: currency,
	}
	if g.firstIsDebit {
		inst.DebitAccount, inst.CreditAccount = firstID, secondID
	} else {
		inst.DebitAccount, inst.CreditAccount = secondID, firstID
	}

	if hasDate {
		date, err := parseDate(strings.TrimSpace(text[on+len(onKeyword):]))
		if err != nil {
			return payment.Instruction{}, err
		}
		inst.ExecuteBy = &date
	}

	return inst, nil
}

// normalize trims s and collapses every whitespace run to a single space.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// asciiUpper upper-cases ASCII letters only, so byte offsets found in the
// result are valid in the input.
func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// segment returns s[from:to], or "" when the keywords overlap.
func segment(s string, from, to int) string {
	if from > to || from > len(s) {
		return ""
	}
	return s[from:to]
}
