package settle

import (
	"log/slog"
	"sort"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/group"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/ledger"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/money"
)

// maxContributingEvents caps the per-instruction explanation list.
const maxContributingEvents = 3

// Engine computes balances and settlement instructions. All methods are
// pure over their inputs; callers pass a consistent event snapshot and get
// fresh derived data back.
type Engine struct {
	log *slog.Logger
}

// NewEngine creates an engine. A nil logger falls back to slog.Default.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{log: logger}
}

// Aggregate folds the event snapshot into per-participant paid/consumed
// pairs. Every known participant appears in the result, even with no
// events, so downstream code can tell "fully settled" from "absent".
//
// Income and transfers are not folded here: income carries no group debt,
// and transfers are applied by ApplyTransfers. Events referencing unknown
// participant ids are skipped and logged; historical data cannot be edited,
// so a hygiene fault must not halt the computation.
func (e *Engine) Aggregate(participants []*group.Participant, events []ledger.Event) map[int64]*BalanceRecord {
	balances := make(map[int64]*BalanceRecord, len(participants))
	for _, p := range participants {
		balances[p.ID] = &BalanceRecord{
			ParticipantID: p.ID,
			TotalPaid:     money.Zero(),
			TotalConsumed: money.Zero(),
			NetBalance:    money.Zero(),
		}
	}

	for _, ev := range events {
		switch ev := ev.(type) {
		case *ledger.Expense:
			if rec, ok := balances[ev.PayerID]; ok {
				rec.TotalPaid = rec.TotalPaid.Add(ev.Amount)
			} else {
				e.log.Warn("skipping expense payer unknown to the group",
					"event_id", ev.ID, "payer_id", ev.PayerID)
			}
			for _, s := range ev.Splits {
				rec, ok := balances[s.ParticipantID]
				if !ok {
					e.log.Warn("skipping split for unknown participant",
						"event_id", ev.ID, "participant_id", s.ParticipantID)
					continue
				}
				rec.TotalConsumed = rec.TotalConsumed.Add(s.Amount)
			}
		case *ledger.Income:
			// Personal inflow; intentionally not split, so no group debt.
		case *ledger.Transfer:
			// Phase 2, see ApplyTransfers.
		}
	}

	// Net is computed once after the full fold, not incrementally per
	// event, so it cannot accumulate order-dependent error.
	for _, rec := range balances {
		rec.NetBalance = rec.TotalPaid.Sub(rec.TotalConsumed)
	}
	return balances
}

// ApplyTransfers overlays peer-to-peer settlement payments on aggregated
// balances and returns a new map; the input is never aliased. The sender's
// TotalPaid rises too: "amount paid" in the clients must include money paid
// directly to settle debts, not only money paid to merchants. Transfers
// commute, so iteration order cannot change the outcome.
func (e *Engine) ApplyTransfers(balances map[int64]*BalanceRecord, events []ledger.Event) map[int64]*BalanceRecord {
	out := make(map[int64]*BalanceRecord, len(balances))
	for id, rec := range balances {
		clone := *rec
		out[id] = &clone
	}

	for _, ev := range events {
		transfer, ok := ev.(*ledger.Transfer)
		if !ok {
			continue
		}
		sender, senderOK := out[transfer.FromID]
		receiver, receiverOK := out[transfer.ToID]
		if !senderOK || !receiverOK {
			e.log.Warn("skipping transfer with unknown participant",
				"event_id", transfer.ID, "from_id", transfer.FromID, "to_id", transfer.ToID)
			continue
		}
		sender.TotalPaid = sender.TotalPaid.Add(transfer.Amount)
		sender.NetBalance = sender.NetBalance.Add(transfer.Amount)
		receiver.NetBalance = receiver.NetBalance.Sub(transfer.Amount)
	}
	return out
}

// side is one remaining debtor or creditor during matching.
type side struct {
	id        int64
	remaining money.Money
}

// Settle reduces net balances to a short list of debtor-to-creditor
// payments using greedy largest-vs-largest matching. The greedy pairing is
// the accepted practical approximation of minimum transaction count; the
// true minimum is a subset-partition search and NP-hard in general.
//
// The returned residual is the sum of all net balances; beyond epsilon it
// indicates an inconsistent ledger (surfaced, not fatal — instructions are
// still produced from whatever balances exist).
func (e *Engine) Settle(balances map[int64]*BalanceRecord, events []ledger.Event) ([]*Instruction, money.Money) {
	residual := money.Zero()
	var debtors, creditors []side
	for _, rec := range balances {
		residual = residual.Add(rec.NetBalance)
		switch {
		case rec.Settled():
			// Already settled, omitted entirely.
		case rec.NetBalance.IsNegative():
			debtors = append(debtors, side{id: rec.ParticipantID, remaining: rec.NetBalance.Abs()})
		default:
			creditors = append(creditors, side{id: rec.ParticipantID, remaining: rec.NetBalance})
		}
	}

	if !residual.WithinEpsilon() {
		e.log.Warn("ledger imbalance: net balances do not sum to zero",
			"residual", residual.String())
	}

	// Largest magnitude first; ties break on participant id so output is
	// deterministic.
	byMagnitude := func(s []side) func(i, j int) bool {
		return func(i, j int) bool {
			if c := s[i].remaining.Cmp(s[j].remaining); c != 0 {
				return c > 0
			}
			return s[i].id < s[j].id
		}
	}
	sort.Slice(debtors, byMagnitude(debtors))
	sort.Slice(creditors, byMagnitude(creditors))

	var instructions []*Instruction
	di, ci := 0, 0
	for di < len(debtors) && ci < len(creditors) {
		debtor := &debtors[di]
		creditor := &creditors[ci]

		amount := money.Min(debtor.remaining, creditor.remaining).RoundCents()
		instructions = append(instructions, &Instruction{
			FromParticipantID:  debtor.id,
			ToParticipantID:    creditor.id,
			Amount:             amount,
			ContributingEvents: contributingEvents(creditor.id, debtor.id, events),
		})

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)
		if debtor.remaining.WithinEpsilon() {
			di++
		}
		if creditor.remaining.WithinEpsilon() {
			ci++
		}
	}

	return instructions, residual
}

// contributingEvents collects up to maxContributingEvents expenses where the
// creditor paid and the debtor had a non-zero share. Cosmetic: it explains
// an instruction, it does not influence its amount.
func contributingEvents(creditorID, debtorID int64, events []ledger.Event) []EventRef {
	var refs []EventRef
	for _, ev := range events {
		expense, ok := ev.(*ledger.Expense)
		if !ok || expense.PayerID != creditorID {
			continue
		}
		for _, s := range expense.Splits {
			if s.ParticipantID == debtorID && !s.Amount.IsZero() {
				refs = append(refs, EventRef{Title: expense.Title, Amount: s.Amount})
				break
			}
		}
		if len(refs) == maxContributingEvents {
			break
		}
	}
	return refs
}

// CalculateSettlements runs the full pipeline over one snapshot: aggregate,
// reconcile transfers, match. Balances come back sorted by participant id.
func (e *Engine) CalculateSettlements(participants []*group.Participant, events []ledger.Event) *Result {
	balances := e.ApplyTransfers(e.Aggregate(participants, events), events)
	instructions, residual := e.Settle(balances, events)

	totalExpenses := money.Zero()
	for _, ev := range events {
		if expense, ok := ev.(*ledger.Expense); ok {
			totalExpenses = totalExpenses.Add(expense.Amount)
		}
	}

	sorted := make([]*BalanceRecord, 0, len(balances))
	for _, rec := range balances {
		sorted = append(sorted, rec)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ParticipantID < sorted[j].ParticipantID
	})

	return &Result{
		Balances:      sorted,
		Settlements:   instructions,
		TotalExpenses: totalExpenses,
		Residual:      residual,
	}
}
