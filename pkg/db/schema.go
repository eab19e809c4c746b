// Package db provides the SQLite account book: current account balances and
// book metadata. It keeps no transaction history.
package db

import "context"

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Accounts table
-- Current balance per account; balances are stored as decimal strings
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    balance TEXT NOT NULL,
    currency TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Book metadata table
-- Key-value metadata such as last_applied_at
CREATE TABLE IF NOT EXISTS book_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema creates all tables if they don't exist.
func InitializeSchema(ctx context.Context, conn *Connection) error {
	_, err := conn.Exec(ctx, Schema)
	return err
}
