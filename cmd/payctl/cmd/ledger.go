package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/payment-instructions/pkg/config"
	"github.com/pigeonworks-llc/payment-instructions/pkg/db"
	"github.com/pigeonworks-llc/payment-instructions/pkg/fixtures"
	"github.com/pigeonworks-llc/payment-instructions/pkg/pathutil"
	"github.com/pigeonworks-llc/payment-instructions/pkg/payment"
	"github.com/pigeonworks-llc/payment-instructions/pkg/processor"
)

const metaImportedFrom = "imported_from"

var (
	applyInstruction string
	applyDryRun      bool
	applyNow         string
)

// ledgerCmd groups the account book commands.
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Manage the local SQLite account book",
	Long: `Manage the local account book stored under PAYMENT_DATA_DIR
(or PAYMENT_DB_PATH). The book holds current balances only.

Example:
  payctl ledger import accounts.yaml
  payctl ledger list
  payctl ledger delete a
  payctl ledger apply --instruction "DEBIT 30 USD FROM ACCOUNT a FOR CREDIT TO ACCOUNT b"`,
}

var ledgerImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Load accounts from a YAML or JSON file into the book",
	Args:  cobra.ExactArgs(1),
	Run:   runLedgerImport,
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts in the book",
	Run:   runLedgerList,
}

var ledgerDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Remove an account from the book",
	Args:  cobra.ExactArgs(1),
	Run:   runLedgerDelete,
}

var ledgerApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Process an instruction against the book",
	Long: `Process an instruction against every account in the book.

An executed instruction (AP00) writes the new balances back in one
transaction. Scheduled (AP02) and failed instructions leave the book
untouched. With --dry-run nothing is written.`,
	Run: runLedgerApply,
}

func init() {
	ledgerApplyCmd.Flags().StringVar(&applyInstruction, "instruction", "", "instruction text (required)")
	ledgerApplyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "print the result without updating the book")
	ledgerApplyCmd.Flags().StringVar(&applyNow, "now", "", "evaluate as of this date (YYYY-MM-DD, UTC)")
	_ = ledgerApplyCmd.MarkFlagRequired("instruction")

	ledgerCmd.AddCommand(ledgerImportCmd)
	ledgerCmd.AddCommand(ledgerListCmd)
	ledgerCmd.AddCommand(ledgerDeleteCmd)
	ledgerCmd.AddCommand(ledgerApplyCmd)
}

// loadLedgerConfig loads configuration for the ledger commands.
func loadLedgerConfig() (*config.Config, *pathutil.PathResolver) {
	return loadConfig([]string{"ledger", "dataDir"})
}

func runLedgerImport(cmd *cobra.Command, args []string) {
	_, resolver := loadLedgerConfig()
	ctx := context.Background()

	path := resolver.ResolveFixture(args[0])
	accounts, err := fixtures.LoadAccounts(path)
	exitOnError(err, "failed to load accounts")

	conn, book, err := openBook(resolver)
	exitOnError(err, "failed to open account book")
	defer conn.Close()

	exitOnError(book.Upsert(ctx, accounts), "failed to import accounts")
	exitOnError(book.SetMetadata(ctx, metaImportedFrom, path), "failed to record import source")

	slog.Info("Accounts imported", "count", len(accounts), "source", path)
	fmt.Printf("Imported %d account(s) from %s\n", len(accounts), path)
}

func runLedgerList(cmd *cobra.Command, args []string) {
	_, resolver := loadLedgerConfig()
	ctx := context.Background()

	conn, book, err := openBook(resolver)
	exitOnError(err, "failed to open account book")
	defer conn.Close()

	accounts, err := book.List(ctx)
	exitOnError(err, "failed to list accounts")

	count, err := book.Count(ctx)
	exitOnError(err, "failed to count accounts")

	lastApplied, err := book.GetMetadata(ctx, db.MetaLastAppliedAt)
	exitOnError(err, "failed to read book metadata")

	printBook(os.Stdout, accounts, count, lastApplied)
}

// printBook writes the account book listing.
func printBook(w io.Writer, accounts []payment.Account, count int, lastApplied string) {
	fmt.Fprintln(w, "\n=== Account Book ===")
	for _, a := range accounts {
		fmt.Fprintf(w, "%-24s %20s %s\n", a.ID, a.Balance.String(), a.Currency)
	}
	fmt.Fprintf(w, "\nAccounts:      %d\n", count)
	if lastApplied != "" {
		fmt.Fprintf(w, "Last applied:  %s\n", lastApplied)
	} else {
		fmt.Fprintf(w, "Last applied:  (never)\n")
	}
	fmt.Fprintln(w)
}

func runLedgerDelete(cmd *cobra.Command, args []string) {
	_, resolver := loadLedgerConfig()
	ctx := context.Background()

	conn, book, err := openBook(resolver)
	exitOnError(err, "failed to open account book")
	defer conn.Close()

	removed, err := deleteAccount(ctx, book, args[0])
	exitOnError(err, "failed to delete account")

	slog.Info("Account deleted", "id", removed.ID)
	fmt.Printf("Deleted account %s (%s %s)\n", removed.ID, removed.Balance.String(), removed.Currency)
}

// deleteAccount removes id from the book and returns the removed account.
func deleteAccount(ctx context.Context, book *db.AccountBook, id string) (*payment.Account, error) {
	account, err := book.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %s is not in the book", id)
	}

	if _, err := book.Delete(ctx, id); err != nil {
		return nil, err
	}

	return account, nil
}

func runLedgerApply(cmd *cobra.Command, args []string) {
	_, resolver := loadLedgerConfig()
	ctx := context.Background()

	clock, err := clockFor(applyNow)
	exitOnError(err, "invalid arguments")

	conn, book, err := openBook(resolver)
	exitOnError(err, "failed to open account book")
	defer conn.Close()

	accounts, err := book.List(ctx)
	exitOnError(err, "failed to list accounts")

	p := processor.New(processor.WithClock(clock))
	result := p.Process(ctx, processor.Request{Accounts: accounts, Instruction: applyInstruction})

	switch {
	case result.StatusCode != payment.CodeExecuted:
		slog.Info("Book unchanged", "status_code", result.StatusCode)
	case applyDryRun:
		slog.Info("Dry run: book not updated", "accounts", len(result.Accounts))
	default:
		exitOnError(book.ApplySnapshots(ctx, result.Accounts, clock()), "failed to update account book")
		slog.Info("Book updated", "accounts", len(result.Accounts))
	}

	printJSON(result)
}
