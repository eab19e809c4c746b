package payment

import (
	"fmt"
	"time"
)

// Date is a calendar date without a time zone, written YYYY-MM-DD.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Midnight returns d at 00:00 UTC. Day values past the end of the month
// roll over into the following month, as time.Date does.
func (d Date) Midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DateOf returns the UTC calendar date of t.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

// Instruction is a fully parsed transfer instruction.
type Instruction struct {
	Type          InstructionType
	Amount        int64
	Currency      Currency
	DebitAccount  string
	CreditAccount string
	ExecuteBy     *Date
}
