package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/payment-instructions/pkg/fixtures"
	"github.com/pigeonworks-llc/payment-instructions/pkg/processor"
)

var (
	instructionText string
	accountsFile    string
	requestFile     string
	nowDate         string
)

// processCmd represents the process command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process one payment instruction",
	Long: `Process a single payment instruction and print the result as JSON.

Accounts come either from a request file holding both the accounts and the
instruction, or from an account file combined with --instruction.
Relative file names that do not exist are looked up in the fixtures
directory under PAYMENT_DATA_DIR.

The result is printed even when the instruction fails.

Example:
  payctl process --request request.json
  payctl process --accounts accounts.yaml \
    --instruction "DEBIT 30 USD FROM ACCOUNT a FOR CREDIT TO ACCOUNT b"
  payctl process --request request.yaml --now 2026-12-31`,
	Run: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&instructionText, "instruction", "", "instruction text (overrides the request file)")
	processCmd.Flags().StringVar(&accountsFile, "accounts", "", "YAML or JSON account file")
	processCmd.Flags().StringVar(&requestFile, "request", "", "YAML or JSON request file")
	processCmd.Flags().StringVar(&nowDate, "now", "", "evaluate as of this date (YYYY-MM-DD, UTC)")
	processCmd.MarkFlagsMutuallyExclusive("accounts", "request")
}

func runProcess(cmd *cobra.Command, args []string) {
	_, resolver := loadConfig()

	var req processor.Request
	switch {
	case requestFile != "":
		path := resolver.ResolveFixture(requestFile)
		slog.Debug("Loading request", "path", path)

		loaded, err := fixtures.LoadRequest(path)
		exitOnError(err, "failed to load request")
		req = loaded

		if instructionText != "" {
			req.Instruction = instructionText
		}

	case accountsFile != "":
		if instructionText == "" {
			exitOnError(errors.New("--instruction is required with --accounts"), "invalid arguments")
		}

		path := resolver.ResolveFixture(accountsFile)
		slog.Debug("Loading accounts", "path", path)

		accounts, err := fixtures.LoadAccounts(path)
		exitOnError(err, "failed to load accounts")
		req = processor.Request{Accounts: accounts, Instruction: instructionText}

	default:
		exitOnError(errors.New("one of --request or --accounts is required"), "invalid arguments")
	}

	clock, err := clockFor(nowDate)
	exitOnError(err, "invalid arguments")

	p := processor.New(processor.WithClock(clock))
	result := p.Process(context.Background(), req)

	printJSON(result)
}
