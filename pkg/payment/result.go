package payment

// Result is the response envelope for one processed instruction.
// Transfer fields are nil when the instruction could not be parsed.
type Result struct {
	Type          *InstructionType  `json:"type"`
	Amount        *int64            `json:"amount"`
	Currency      *Currency         `json:"currency"`
	DebitAccount  *string           `json:"debit_account"`
	CreditAccount *string           `json:"credit_account"`
	ExecuteBy     *string           `json:"execute_by"`
	Status        Status            `json:"status"`
	StatusReason  string            `json:"status_reason"`
	StatusCode    StatusCode        `json:"status_code"`
	Accounts      []AccountSnapshot `json:"accounts"`
}

// NewResult echoes the transfer fields of inst into a Result with the given
// outcome.
func NewResult(inst Instruction, code StatusCode, reason string, accounts []AccountSnapshot) Result {
	r := Result{
		Type:          &inst.Type,
		Amount:        &inst.Amount,
		Currency:      &inst.Currency,
		DebitAccount:  &inst.DebitAccount,
		CreditAccount: &inst.CreditAccount,
		Status:        code.Status(),
		StatusReason:  reason,
		StatusCode:    code,
		Accounts:      accounts,
	}
	if inst.ExecuteBy != nil {
		s := inst.ExecuteBy.String()
		r.ExecuteBy = &s
	}
	if r.Accounts == nil {
		r.Accounts = []AccountSnapshot{}
	}
	return r
}

// Unparsed returns the Result for an instruction rejected by the parser.
func Unparsed(f *Failure) Result {
	return Result{
		Status:       StatusFailed,
		StatusReason: f.Reason,
		StatusCode:   f.Code,
		Accounts:     []AccountSnapshot{},
	}
}

// Failed reports whether the instruction was rejected. Transports map this to
// a client error.
func (r Result) Failed() bool {
	return r.Status == StatusFailed
}
