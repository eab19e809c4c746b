package payment

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Account is a caller-supplied account record. The balance may be an integer
// or a decimal amount.
type Account struct {
	ID       string          `json:"id"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// AccountSnapshot is an account as reported in a Result: its balance after the
// decision and its balance before this call.
type AccountSnapshot struct {
	ID            string
	Balance       decimal.Decimal
	BalanceBefore decimal.Decimal
	Currency      string
}

// Snapshot returns an unchanged snapshot of a with its currency upper-cased.
func (a Account) Snapshot() AccountSnapshot {
	return AccountSnapshot{
		ID:            a.ID,
		Balance:       a.Balance,
		BalanceBefore: a.Balance,
		Currency:      strings.ToUpper(a.Currency),
	}
}

type snapshotJSON struct {
	ID            string      `json:"id"`
	Balance       json.Number `json:"balance"`
	BalanceBefore json.Number `json:"balance_before"`
	Currency      string      `json:"currency"`
}

// MarshalJSON renders balances as JSON numbers rather than quoted strings.
func (s AccountSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{
		ID:            s.ID,
		Balance:       json.Number(s.Balance.String()),
		BalanceBefore: json.Number(s.BalanceBefore.String()),
		Currency:      s.Currency,
	})
}

// UnmarshalJSON accepts numbers or quoted strings for balances.
func (s *AccountSnapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID            string          `json:"id"`
		Balance       decimal.Decimal `json:"balance"`
		BalanceBefore decimal.Decimal `json:"balance_before"`
		Currency      string          `json:"currency"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = AccountSnapshot{
		ID:            raw.ID,
		Balance:       raw.Balance,
		BalanceBefore: raw.BalanceBefore,
		Currency:      raw.Currency,
	}
	return nil
}
