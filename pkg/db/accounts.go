package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/payment-instructions/pkg/payment"
)

// MetaLastAppliedAt records when an executed instruction last changed balances.
const MetaLastAppliedAt = "last_applied_at"

// AccountBook stores the current balance of each account.
type AccountBook struct {
	conn *Connection
}

// NewAccountBook creates a new AccountBook instance.
func NewAccountBook(conn *Connection) *AccountBook {
	return &AccountBook{conn: conn}
}

const upsertAccount = `
	INSERT INTO accounts (id, balance, currency)
	VALUES (?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		balance = excluded.balance,
		currency = excluded.currency,
		updated_at = CURRENT_TIMESTAMP
`

// Upsert inserts the accounts or replaces existing rows with the same ID.
// All rows are written in one transaction.
func (b *AccountBook) Upsert(ctx context.Context, accounts []payment.Account) error {
	return b.conn.Transaction(ctx, func(tx *sql.Tx) error {
		for _, a := range accounts {
			if _, err := tx.ExecContext(ctx, upsertAccount, a.ID, a.Balance.String(), a.Currency); err != nil {
				return fmt.Errorf("failed to upsert account %s: %w", a.ID, err)
			}
		}
		return nil
	})
}

// List returns every account ordered by ID.
func (b *AccountBook) List(ctx context.Context) ([]payment.Account, error) {
	rows, err := b.conn.Query(ctx, `SELECT id, balance, currency FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []payment.Account{}
	for rows.Next() {
		var (
			account payment.Account
			balance string
		)
		if err := rows.Scan(&account.ID, &balance, &account.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		if account.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("account %s has invalid balance %q: %w", account.ID, balance, err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// Get retrieves an account by ID. It returns nil when the account is absent.
func (b *AccountBook) Get(ctx context.Context, id string) (*payment.Account, error) {
	var (
		account payment.Account
		balance string
	)

	err := b.conn.QueryRow(ctx, `SELECT id, balance, currency FROM accounts WHERE id = ?`, id).
		Scan(&account.ID, &balance, &account.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if account.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("account %s has invalid balance %q: %w", id, balance, err)
	}

	return &account, nil
}

// Count returns the number of stored accounts.
func (b *AccountBook) Count(ctx context.Context) (int, error) {
	var count int
	if err := b.conn.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

// Delete removes an account. It reports whether a row was deleted.
func (b *AccountBook) Delete(ctx context.Context, id string) (bool, error) {
	result, err := b.conn.Exec(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// ApplySnapshots writes the post-execution balances of the given snapshots
// and stamps last_applied_at, all in one transaction. Every snapshot must
// refer to an account already in the book.
func (b *AccountBook) ApplySnapshots(ctx context.Context, snapshots []payment.AccountSnapshot, appliedAt time.Time) error {
	return b.conn.Transaction(ctx, func(tx *sql.Tx) error {
		for _, s := range snapshots {
			result, err := tx.ExecContext(ctx,
				`UPDATE accounts SET balance = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
				s.Balance.String(), s.ID)
			if err != nil {
				return fmt.Errorf("failed to update account %s: %w", s.ID, err)
			}
			if n, err := result.RowsAffected(); err != nil {
				return fmt.Errorf("failed to get rows affected: %w", err)
			} else if n == 0 {
				return fmt.Errorf("account %s is not in the book", s.ID)
			}
		}

		return setMetadata(ctx, tx, MetaLastAppliedAt, appliedAt.UTC().Format(time.RFC3339))
	})
}

// SetMetadata stores a metadata value.
func (b *AccountBook) SetMetadata(ctx context.Context, key, value string) error {
	return b.conn.Transaction(ctx, func(tx *sql.Tx) error {
		return setMetadata(ctx, tx, key, value)
	})
}

// GetMetadata retrieves a metadata value. It returns "" when the key is absent.
func (b *AccountBook) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := b.conn.QueryRow(ctx, `SELECT value FROM book_metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}
	return value, nil
}

func setMetadata(ctx context.Context, tx *sql.Tx, key, value string) error {
	query := `
		INSERT INTO book_metadata (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := tx.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}
	return nil
}
