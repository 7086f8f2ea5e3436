package report

import (
	"github.com/google/uuid"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/ledger"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/money"
)

// BreakdownEntry explains one expense from a participant's point of view:
// either they were excluded from it, or they carried a custom share that
// differs from the even split.
type BreakdownEntry struct {
	EventID       uuid.UUID
	Title         string
	ExpenseAmount money.Money
	Share         money.Money
	// EvenShare is what the participant would have consumed under an even
	// split of the same expense, for reference.
	EvenShare money.Money
	Excluded  bool
}

// Breakdown walks the event snapshot and collects the expenses where the
// participant's share needs explaining. Expenses that never named the
// participant are not theirs to explain and are skipped.
func Breakdown(participantID int64, events []ledger.Event) []*BreakdownEntry {
	var entries []*BreakdownEntry
	for _, ev := range events {
		expense, ok := ev.(*ledger.Expense)
		if !ok {
			continue
		}

		var share money.Money
		named := false
		for _, s := range expense.Splits {
			if s.ParticipantID == participantID {
				share = s.Amount
				named = true
				break
			}
		}
		if !named || len(expense.Splits) == 0 {
			continue
		}

		evenShare := expense.Amount.Div(int64(len(expense.Splits))).RoundCents()
		excluded := share.IsZero()
		custom := !share.Sub(evenShare).WithinEpsilon()
		if !excluded && !custom {
			continue
		}

		entries = append(entries, &BreakdownEntry{
			EventID:       expense.ID,
			Title:         expense.Title,
			ExpenseAmount: expense.Amount,
			Share:         share,
			EvenShare:     evenShare,
			Excluded:      excluded,
		})
	}
	return entries
}
