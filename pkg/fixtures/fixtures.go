// Package fixtures loads account sets and payment requests from YAML or JSON
// files.
package fixtures

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/pigeonworks-llc/payment-instructions/pkg/payment"
	"github.com/pigeonworks-llc/payment-instructions/pkg/processor"
)

// AccountEntry is an account as written in a fixture file.
type AccountEntry struct {
	ID       string  `yaml:"id"`
	Balance  Balance `yaml:"balance"`
	Currency string  `yaml:"currency"`
}

// Balance decodes integer or decimal YAML scalars without going through float64.
type Balance struct {
	decimal.Decimal
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *Balance) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: balance must be a number", node.Line)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("line %d: invalid balance %q", node.Line, node.Value)
	}
	b.Decimal = d
	return nil
}

// AccountFile is the layout of an account set file.
type AccountFile struct {
	Accounts []AccountEntry `yaml:"accounts"`
}

// RequestFile is the layout of a request file. JSON request bodies are
// valid input as well.
type RequestFile struct {
	Accounts    []AccountEntry `yaml:"accounts"`
	Instruction string         `yaml:"instruction"`
}

// LoadAccounts reads an account set file.
func LoadAccounts(path string) ([]payment.Account, error) {
	var file AccountFile
	if err := decodeFile(path, &file); err != nil {
		return nil, err
	}
	return toAccounts(file.Accounts)
}

// LoadRequest reads a request file.
func LoadRequest(path string) (processor.Request, error) {
	var file RequestFile
	if err := decodeFile(path, &file); err != nil {
		return processor.Request{}, err
	}

	accounts, err := toAccounts(file.Accounts)
	if err != nil {
		return processor.Request{}, err
	}

	return processor.Request{Accounts: accounts, Instruction: file.Instruction}, nil
}

func decodeFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read fixture file: %w", err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}

	return nil
}

func toAccounts(entries []AccountEntry) ([]payment.Account, error) {
	accounts := make([]payment.Account, 0, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("account #%d: id is required", i+1)
		}
		accounts = append(accounts, payment.Account{
			ID:       e.ID,
			Balance:  e.Balance.Decimal,
			Currency: e.Currency,
		})
	}
	return accounts, nil
}
