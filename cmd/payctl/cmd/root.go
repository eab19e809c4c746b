// Package cmd provides CLI commands for payctl.
package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/payment-instructions/pkg/config"
	"github.com/pigeonworks-llc/payment-instructions/pkg/db"
	"github.com/pigeonworks-llc/payment-instructions/pkg/pathutil"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "payctl",
	Short: "Parse, validate and execute payment instructions",
	Long: `payctl processes free-text payment instructions such as

  DEBIT 500 USD FROM ACCOUNT N90394 FOR CREDIT TO ACCOUNT N9122
  CREDIT 300 NGN TO ACCOUNT acc-002 FOR DEBIT FROM ACCOUNT acc-001 ON 2026-12-31

against a set of accounts and reports the outcome as JSON.

It supports:
- One-off processing against a YAML or JSON account file
- An HTTP server exposing POST /payment-instructions
- A local SQLite account book that executed instructions update

Example:
  payctl process --request request.json
  payctl serve
  payctl ledger import accounts.yaml`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ledgerCmd)
}

// loadConfig loads and validates configuration and builds the path resolver
// from it. Each required entry is a path such as []string{"server", "port"}.
func loadConfig(required ...[]string) (*config.Config, *pathutil.PathResolver) {
	cfg, err := config.Load(cfgFile)
	exitOnError(err, "failed to load configuration")

	exitOnError(cfg.Validate(required...), "invalid configuration")

	if cfg.Debug && !debug {
		debug = true
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	resolver := pathutil.New(pathutil.Config{
		DataDir:      cfg.Ledger.DataDir,
		DatabasePath: cfg.Ledger.DBPath,
	})

	return cfg, resolver
}

// openBook opens the account book at the resolver's database path, creating
// its directory first.
func openBook(resolver *pathutil.PathResolver) (*db.Connection, *db.AccountBook, error) {
	dbPath := resolver.GetDatabasePath()
	slog.Debug("Opening account book", "path", dbPath)

	if err := resolver.EnsureParentDir(dbPath); err != nil {
		return nil, nil, err
	}

	conn, err := db.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}

	return conn, db.NewAccountBook(conn), nil
}

// clockFor returns a clock pinned to midnight UTC of a YYYY-MM-DD date, or
// time.Now when date is empty.
func clockFor(date string) (func() time.Time, error) {
	if date == "" {
		return time.Now, nil
	}

	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid --now value %q, expected YYYY-MM-DD", date)
	}

	return func() time.Time { return t }, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	exitOnError(enc.Encode(v), "failed to write output")
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
