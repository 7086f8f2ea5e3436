package settle

import "github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/money"

// BalanceRecord is a participant's derived position. It is recomputed from
// the full event snapshot on every call, never stored or mutated in place.
type BalanceRecord struct {
	ParticipantID int64
	TotalPaid     money.Money
	TotalConsumed money.Money
	// NetBalance is positive when the participant is owed money, negative
	// when they owe money.
	NetBalance money.Money
}

// Settled reports whether the participant's position is within epsilon of
// zero.
func (b *BalanceRecord) Settled() bool {
	return b.NetBalance.WithinEpsilon()
}

// EventRef points at an expense that contributed to an instruction, for
// explainability in the clients.
type EventRef struct {
	Title  string
	Amount money.Money
}

// Instruction is one recommended payment. Applying every instruction of a
// settlement run drives all net balances to within epsilon of zero.
type Instruction struct {
	FromParticipantID  int64
	ToParticipantID    int64
	Amount             money.Money
	ContributingEvents []EventRef
}

// Result is the output of a full settlement computation.
type Result struct {
	Balances      []*BalanceRecord
	Settlements   []*Instruction
	TotalExpenses money.Money
	// Residual is the sum of all net balances. Non-zero beyond epsilon
	// means upstream data corruption; the settlements above are still the
	// best-effort answer for the balances that exist.
	Residual money.Money
}

// Imbalanced reports whether the ledger violates the zero-sum invariant.
func (r *Result) Imbalanced() bool {
	return !r.Residual.WithinEpsilon()
}
