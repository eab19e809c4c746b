// Package processor runs a payment instruction through parsing, validation
// and execution, and assembles the result returned to the caller.
package processor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pigeonworks-llc/payment-instructions/pkg/engine"
	"github.com/pigeonworks-llc/payment-instructions/pkg/parser"
	"github.com/pigeonworks-llc/payment-instructions/pkg/payment"
	"github.com/pigeonworks-llc/payment-instructions/pkg/validator"
)

const (
	reasonExecuted  = "Transaction executed successfully"
	reasonScheduled = "Transaction scheduled for future execution"
)

// Request is one instruction together with the complete set of accounts it
// may refer to.
type Request struct {
	Accounts    []payment.Account `json:"accounts"`
	Instruction string            `json:"instruction"`
}

// Processor holds no account data between calls and is safe for concurrent use.
type Processor struct {
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithClock overrides the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// WithLogger sets the logger used for per-instruction log lines.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

// New creates a Processor. By default it uses time.Now and slog.Default.
func New(opts ...Option) *Processor {
	p := &Processor{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Process parses, validates and executes or schedules req. It always returns
// a complete Result; rejected instructions have status failed.
func (p *Processor) Process(ctx context.Context, req Request) payment.Result {
	log := p.logger.With("ref", uuid.NewString())
	log.DebugContext(ctx, "Processing instruction", "instruction", req.Instruction, "accounts", len(req.Accounts))

	inst, err := parser.Parse(req.Instruction)
	if err != nil {
		f := payment.AsFailure(err)
		log.InfoContext(ctx, "Instruction rejected by parser", "status_code", f.Code, "reason", f.Reason)
		return payment.Unparsed(f)
	}

	if err := validator.Validate(inst, req.Accounts); err != nil {
		f := payment.AsFailure(err)
		log.InfoContext(ctx, "Instruction rejected by validator",
			"status_code", f.Code,
			"reason", f.Reason,
			"debit_account", inst.DebitAccount,
			"credit_account", inst.CreditAccount,
		)
		involved := engine.Involved(engine.Unchanged(req.Accounts), inst.DebitAccount, inst.CreditAccount)
		return payment.NewResult(inst, f.Code, f.Reason, involved)
	}

	if !engine.ShouldExecuteNow(inst.ExecuteBy, p.now()) {
		log.InfoContext(ctx, "Instruction scheduled",
			"status_code", payment.CodeScheduled,
			"execute_by", inst.ExecuteBy.String(),
		)
		involved := engine.Involved(engine.Unchanged(req.Accounts), inst.DebitAccount, inst.CreditAccount)
		return payment.NewResult(inst, payment.CodeScheduled, reasonScheduled, involved)
	}

	updated := engine.Execute(req.Accounts, inst)
	log.InfoContext(ctx, "Instruction executed",
		"status_code", payment.CodeExecuted,
		"amount", inst.Amount,
		"currency", inst.Currency,
		"debit_account", inst.DebitAccount,
		"credit_account", inst.CreditAccount,
	)
	return payment.NewResult(inst, payment.CodeExecuted, reasonExecuted,
		engine.Involved(updated, inst.DebitAccount, inst.CreditAccount))
}
