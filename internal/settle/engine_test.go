package settle

import (
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/group"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/ledger"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/money"
)

func testEngine() *Engine {
	return NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testParticipants(names ...string) []*group.Participant {
	ps := make([]*group.Participant, len(names))
	for i, name := range names {
		ps[i] = &group.Participant{ID: int64(i + 1), GroupID: 1, Name: name}
	}
	return ps
}

func testExpense(title string, payerID int64, amount float64, shares map[int64]float64) *ledger.Expense {
	e := &ledger.Expense{
		Meta:    ledger.Meta{ID: uuid.New(), GroupID: 1, Title: title, CreatedAt: time.Now()},
		PayerID: payerID,
		Amount:  money.FromFloat(amount),
	}
	ids := make([]int64, 0, len(shares))
	for id := range shares {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		e.Splits = append(e.Splits, ledger.Split{ParticipantID: id, Amount: money.FromFloat(shares[id])})
	}
	return e
}

func testTransfer(fromID, toID int64, amount float64) *ledger.Transfer {
	return &ledger.Transfer{
		Meta:   ledger.Meta{ID: uuid.New(), GroupID: 1, Title: "settle up", CreatedAt: time.Now()},
		FromID: fromID,
		ToID:   toID,
		Amount: money.FromFloat(amount),
	}
}

// dinnerEvents is the shared scenario: A pays 300 for dinner split equally
// among A, B, C; B pays 90 for snacks split equally between A and B.
func dinnerEvents() []ledger.Event {
	return []ledger.Event{
		testExpense("dinner", 1, 300, map[int64]float64{1: 100, 2: 100, 3: 100}),
		testExpense("snacks", 2, 90, map[int64]float64{1: 45, 2: 45}),
	}
}

func TestDinnerScenario(t *testing.T) {
	e := testEngine()
	ps := testParticipants("A", "B", "C")
	events := dinnerEvents()

	balances := e.Aggregate(ps, events)

	checks := []struct {
		id                  int64
		paid, consumed, net string
	}{
		{1, "300.00", "145.00", "155.00"},
		{2, "90.00", "145.00", "-55.00"},
		{3, "0.00", "100.00", "-100.00"},
	}
	for _, c := range checks {
		rec := balances[c.id]
		if rec == nil {
			t.Fatalf("participant %d missing from balances", c.id)
		}
		if rec.TotalPaid.String() != c.paid {
			t.Errorf("participant %d paid: got %s, want %s", c.id, rec.TotalPaid, c.paid)
		}
		if rec.TotalConsumed.String() != c.consumed {
			t.Errorf("participant %d consumed: got %s, want %s", c.id, rec.TotalConsumed, c.consumed)
		}
		if rec.NetBalance.String() != c.net {
			t.Errorf("participant %d net: got %s, want %s", c.id, rec.NetBalance, c.net)
		}
	}

	instructions, residual := e.Settle(balances, events)
	if !residual.WithinEpsilon() {
		t.Errorf("residual: got %s, want ~0", residual)
	}
	if len(instructions) != 2 {
		t.Fatalf("instructions: got %d, want 2", len(instructions))
	}

	// Largest debtor first: C owes 100 to A, then B owes 55 to A.
	first, second := instructions[0], instructions[1]
	if first.FromParticipantID != 3 || first.ToParticipantID != 1 || first.Amount.String() != "100.00" {
		t.Errorf("first instruction: got %d->%d %s, want 3->1 100.00",
			first.FromParticipantID, first.ToParticipantID, first.Amount)
	}
	if second.FromParticipantID != 2 || second.ToParticipantID != 1 || second.Amount.String() != "55.00" {
		t.Errorf("second instruction: got %d->%d %s, want 2->1 55.00",
			second.FromParticipantID, second.ToParticipantID, second.Amount)
	}

	// C only shared the dinner with A, so that is the explanation.
	if len(first.ContributingEvents) != 1 || first.ContributingEvents[0].Title != "dinner" {
		t.Errorf("contributing events for C->A: got %+v, want [dinner]", first.ContributingEvents)
	}
}

func TestTransferReconciliation(t *testing.T) {
	e := testEngine()
	ps := testParticipants("A", "B", "C")
	events := append(dinnerEvents(), testTransfer(2, 1, 55))

	balances := e.ApplyTransfers(e.Aggregate(ps, events), events)

	if got := balances[2].NetBalance; !got.WithinEpsilon() {
		t.Errorf("B net after transfer: got %s, want 0", got)
	}
	if got := balances[1].NetBalance.String(); got != "100.00" {
		t.Errorf("A net after transfer: got %s, want 100.00", got)
	}
	// The sender's paid total includes the settlement payment.
	if got := balances[2].TotalPaid.String(); got != "145.00" {
		t.Errorf("B paid after transfer: got %s, want 145.00", got)
	}
	// Transfers never touch consumption.
	if got := balances[2].TotalConsumed.String(); got != "145.00" {
		t.Errorf("B consumed after transfer: got %s, want 145.00", got)
	}

	instructions, _ := e.Settle(balances, events)
	if len(instructions) != 1 {
		t.Fatalf("instructions: got %d, want 1", len(instructions))
	}
	ins := instructions[0]
	if ins.FromParticipantID != 3 || ins.ToParticipantID != 1 || ins.Amount.String() != "100.00" {
		t.Errorf("instruction: got %d->%d %s, want 3->1 100.00",
			ins.FromParticipantID, ins.ToParticipantID, ins.Amount)
	}
}

func TestApplyTransfersDoesNotAliasInput(t *testing.T) {
	e := testEngine()
	ps := testParticipants("A", "B")
	events := []ledger.Event{
		testExpense("lunch", 1, 20, map[int64]float64{1: 10, 2: 10}),
		testTransfer(2, 1, 10),
	}

	aggregated := e.Aggregate(ps, events)
	before := aggregated[2].NetBalance.String()

	reconciled := e.ApplyTransfers(aggregated, events)

	if aggregated[2].NetBalance.String() != before {
		t.Error("ApplyTransfers mutated its input map")
	}
	if !reconciled[2].NetBalance.WithinEpsilon() {
		t.Errorf("B net: got %s, want 0", reconciled[2].NetBalance)
	}
}

func TestTransferOrderIndependence(t *testing.T) {
	e := testEngine()
	ps := testParticipants("A", "B", "C")
	t1 := testTransfer(2, 1, 55)
	t2 := testTransfer(3, 1, 40)

	base := dinnerEvents()
	forward := e.ApplyTransfers(e.Aggregate(ps, base), []ledger.Event{t1, t2})
	backward := e.ApplyTransfers(e.Aggregate(ps, base), []ledger.Event{t2, t1})

	for id := range forward {
		if !forward[id].NetBalance.Equal(backward[id].NetBalance) {
			t.Errorf("participant %d net differs by transfer order: %s vs %s",
				id, forward[id].NetBalance, backward[id].NetBalance)
		}
	}
}

func TestZeroSumInvariant(t *testing.T) {
	e := testEngine()
	ps := testParticipants("A", "B", "C", "D")
	events := []ledger.Event{
		testExpense("groceries", 1, 87.31, map[int64]float64{1: 21.83, 2: 21.83, 3: 21.83, 4: 21.82}),
		testExpense("fuel", 2, 45.50, map[int64]float64{2: 22.75, 4: 22.75}),
		testExpense("tickets", 4, 120, map[int64]float64{1: 30, 2: 30, 3: 30, 4: 30}),
		testTransfer(3, 1, 10),
	}

	balances := e.ApplyTransfers(e.Aggregate(ps, events), events)

	sum := money.Zero()
	for _, rec := range balances {
		sum = sum.Add(rec.NetBalance)
	}
	if !sum.WithinEpsilon() {
		t.Errorf("net balances sum: got %s, want ~0", sum)
	}
}

func TestSettlementCorrectness(t *testing.T) {
	e := testEngine()
	ps := testParticipants("A", "B", "C", "D", "E")
	events := []ledger.Event{
		testExpense("hotel", 1, 500, map[int64]float64{1: 100, 2: 100, 3: 100, 4: 100, 5: 100}),
		testExpense("dinner", 2, 180, map[int64]float64{1: 60, 2: 60, 3: 60}),
		testExpense("taxi", 5, 33.33, map[int64]float64{4: 16.66, 5: 16.67}),
	}

	balances := e.ApplyTransfers(e.Aggregate(ps, events), events)
	instructions, _ := e.Settle(balances, events)

	// Replay the instructions onto the balances; everyone must end settled.
	remaining := make(map[int64]money.Money, len(balances))
	for id, rec := range balances {
		remaining[id] = rec.NetBalance
	}
	for _, ins := range instructions {
		remaining[ins.FromParticipantID] = remaining[ins.FromParticipantID].Add(ins.Amount)
		remaining[ins.ToParticipantID] = remaining[ins.ToParticipantID].Sub(ins.Amount)
	}
	for id, net := range remaining {
		if !net.WithinEpsilon() {
			t.Errorf("participant %d not settled after replay: %s", id, net)
		}
	}

	// The greedy matcher stays within the debtors+creditors-1 bound.
	debtors, creditors := 0, 0
	for _, rec := range balances {
		switch {
		case rec.Settled():
		case rec.NetBalance.IsNegative():
			debtors++
		default:
			creditors++
		}
	}
	if limit := debtors + creditors - 1; len(instructions) > limit {
		t.Errorf("instructions: got %d, want <= %d", len(instructions), limit)
	}
}

func TestSettleIdempotence(t *testing.T) {
	e := testEngine()
	ps := testParticipants("A", "B")
	events := []ledger.Event{
		testExpense("lunch", 1, 20, map[int64]float64{1: 10, 2: 10}),
		testTransfer(2, 1, 10),
	}

	balances := e.ApplyTransfers(e.Aggregate(ps, events), events)
	instructions, _ := e.Settle(balances, events)
	if len(instructions) != 0 {
		t.Errorf("settled ledger: got %d instructions, want 0", len(instructions))
	}
}

func TestIdleParticipantStillAppears(t *testing.T) {
	e := testEngine()
	ps := testParticipants("A", "B", "Idle")
	events := []ledger.Event{
		testExpense("coffee", 1, 8, map[int64]float64{1: 4, 2: 4}),
	}

	balances := e.Aggregate(ps, events)
	rec, ok := balances[3]
	if !ok {
		t.Fatal("idle participant missing from balances")
	}
	if !rec.Settled() {
		t.Errorf("idle participant should be settled, net %s", rec.NetBalance)
	}
}

func TestIncomeExcludedFromGroupDebt(t *testing.T) {
	e := testEngine()
	ps := testParticipants("A", "B")
	events := []ledger.Event{
		testExpense("lunch", 1, 20, map[int64]float64{1: 10, 2: 10}),
		&ledger.Income{
			Meta:       ledger.Meta{ID: uuid.New(), GroupID: 1, Title: "salary", CreatedAt: time.Now()},
			ReceiverID: 2,
			Amount:     money.FromFloat(5000),
		},
	}

	balances := e.Aggregate(ps, events)
	if got := balances[2].NetBalance.String(); got != "-10.00" {
		t.Errorf("B net: got %s, want -10.00 (income must not affect group debt)", got)
	}
}

func TestUnknownParticipantSoftFail(t *testing.T) {
	e := testEngine()
	ps := testParticipants("A")
	// Half the split references a participant the directory does not know.
	events := []ledger.Event{
		testExpense("ghost dinner", 1, 100, map[int64]float64{1: 50, 99: 50}),
	}

	result := e.CalculateSettlements(ps, events)
	if !result.Imbalanced() {
		t.Error("expected imbalance flag when a split references an unknown participant")
	}
	if got := result.Residual.String(); got != "50.00" {
		t.Errorf("residual: got %s, want 50.00", got)
	}
	// Still produces a deterministic (if best-effort) answer.
	if len(result.Balances) != 1 {
		t.Errorf("balances: got %d, want 1", len(result.Balances))
	}
}

func TestCalculateSettlements(t *testing.T) {
	e := testEngine()
	ps := testParticipants("A", "B", "C")
	events := dinnerEvents()

	result := e.CalculateSettlements(ps, events)

	if got := result.TotalExpenses.String(); got != "390.00" {
		t.Errorf("total expenses: got %s, want 390.00", got)
	}
	if result.Imbalanced() {
		t.Errorf("unexpected imbalance: residual %s", result.Residual)
	}
	if len(result.Balances) != 3 {
		t.Fatalf("balances: got %d, want 3", len(result.Balances))
	}
	// Sorted by participant id.
	for i, rec := range result.Balances {
		if rec.ParticipantID != int64(i+1) {
			t.Errorf("balance %d: got participant %d, want %d", i, rec.ParticipantID, i+1)
		}
	}
	if len(result.Settlements) != 2 {
		t.Errorf("settlements: got %d, want 2", len(result.Settlements))
	}
}
