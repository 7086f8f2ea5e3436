package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/money"
)

// Kind discriminates the ledger event variants.
type Kind string

const (
	KindExpense  Kind = "EXPENSE"
	KindIncome   Kind = "INCOME"
	KindTransfer Kind = "TRANSFER"
)

// Validation errors surfaced at event creation. These block the event from
// being recorded; historical events are never re-validated.
var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrNegativeSplit = errors.New("split amounts cannot be negative")
	ErrSplitMismatch = errors.New("split amounts must sum to the expense amount")
	ErrNoSplits      = errors.New("an expense requires at least one split")
	ErrSelfTransfer  = errors.New("cannot transfer to yourself")
	ErrEventNotFound = errors.New("event not found")
	ErrUnknownKind   = errors.New("unknown event kind")
)

// Meta carries the fields shared by every event kind. Events are immutable
// once recorded; an edit deletes the record and creates a new one.
type Meta struct {
	ID        uuid.UUID `json:"id"`
	GroupID   int64     `json:"group_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// EventMeta returns the shared fields. Promoted through embedding so every
// concrete event satisfies Event.
func (m Meta) EventMeta() Meta {
	return m
}

// Event is the ledger event sum type. Exactly three kinds exist; consumers
// switch exhaustively on the concrete type so a new kind forces a review of
// every switch.
type Event interface {
	Kind() Kind
	EventMeta() Meta
	Validate() error
}

// Split is one participant's consumption share of an expense. A zero amount
// means the participant was excluded from that expense.
type Split struct {
	ParticipantID int64
	Amount        money.Money
}

// Expense records one participant paying for something consumed by many.
type Expense struct {
	Meta
	PayerID int64
	Amount  money.Money
	Splits  []Split
}

func (*Expense) Kind() Kind { return KindExpense }

// Validate enforces the split-completeness invariant: splits must cover the
// amount exactly, within one minor unit.
func (e *Expense) Validate() error {
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if len(e.Splits) == 0 {
		return ErrNoSplits
	}
	sum := money.Zero()
	for _, s := range e.Splits {
		if s.Amount.IsNegative() {
			return ErrNegativeSplit
		}
		sum = sum.Add(s.Amount)
	}
	if !sum.Sub(e.Amount).WithinEpsilon() {
		return ErrSplitMismatch
	}
	return nil
}

// Income records a personal inflow to exactly one participant. Income is
// never split, so it carries no group-debt implication.
type Income struct {
	Meta
	ReceiverID int64
	Amount     money.Money
}

func (*Income) Kind() Kind { return KindIncome }

func (i *Income) Validate() error {
	if !i.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// Transfer records a direct peer-to-peer payment that retires debt.
type Transfer struct {
	Meta
	FromID int64
	ToID   int64
	Amount money.Money
}

func (*Transfer) Kind() Kind { return KindTransfer }

func (t *Transfer) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if t.FromID == t.ToID {
		return ErrSelfTransfer
	}
	return nil
}
