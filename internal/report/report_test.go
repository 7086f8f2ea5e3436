package report

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/group"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/ledger"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/settle"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/money"
)

func testExpense(title string, payerID int64, amount float64, shares map[int64]float64) *ledger.Expense {
	e := &ledger.Expense{
		Meta:    ledger.Meta{ID: uuid.New(), GroupID: 1, Title: title, CreatedAt: time.Now()},
		PayerID: payerID,
		Amount:  money.FromFloat(amount),
	}
	for id, share := range shares {
		e.Splits = append(e.Splits, ledger.Split{ParticipantID: id, Amount: money.FromFloat(share)})
	}
	return e
}

func TestBreakdown(t *testing.T) {
	events := []ledger.Event{
		// Even three-way split: unremarkable, should not be reported.
		testExpense("dinner", 1, 300, map[int64]float64{1: 100, 2: 100, 3: 100}),
		// B excluded.
		testExpense("wine", 1, 40, map[int64]float64{1: 20, 2: 0, 3: 20}),
		// B carries a custom share (even would be 30).
		testExpense("taxi", 3, 60, map[int64]float64{2: 45, 3: 15}),
		// B not named at all: not theirs to explain.
		testExpense("parking", 1, 12, map[int64]float64{1: 6, 3: 6}),
	}

	entries := Breakdown(2, events)
	if len(entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(entries))
	}

	wine := entries[0]
	if wine.Title != "wine" || !wine.Excluded {
		t.Errorf("first entry: got %q excluded=%v, want wine excluded", wine.Title, wine.Excluded)
	}
	if got := wine.EvenShare.String(); got != "13.33" {
		t.Errorf("wine even share: got %s, want 13.33", got)
	}

	taxi := entries[1]
	if taxi.Title != "taxi" || taxi.Excluded {
		t.Errorf("second entry: got %q excluded=%v, want taxi not excluded", taxi.Title, taxi.Excluded)
	}
	if got := taxi.Share.String(); got != "45.00" {
		t.Errorf("taxi share: got %s, want 45.00", got)
	}
	if got := taxi.EvenShare.String(); got != "30.00" {
		t.Errorf("taxi even share: got %s, want 30.00", got)
	}
}

func TestBreakdownIgnoresNonExpenses(t *testing.T) {
	events := []ledger.Event{
		&ledger.Transfer{
			Meta:   ledger.Meta{ID: uuid.New(), GroupID: 1, Title: "settle up", CreatedAt: time.Now()},
			FromID: 2, ToID: 1,
			Amount: money.FromFloat(10),
		},
		&ledger.Income{
			Meta:       ledger.Meta{ID: uuid.New(), GroupID: 1, Title: "refund", CreatedAt: time.Now()},
			ReceiverID: 2,
			Amount:     money.FromFloat(25),
		},
	}
	if entries := Breakdown(2, events); len(entries) != 0 {
		t.Errorf("entries: got %d, want 0", len(entries))
	}
}

func narrativeFixture(t *testing.T) (*group.Group, []*group.Participant, *settle.Result) {
	t.Helper()
	g := &group.Group{ID: 1, Name: "Ski trip", Currency: "EUR"}
	participants := []*group.Participant{
		{ID: 1, GroupID: 1, Name: "Alice"},
		{ID: 2, GroupID: 1, Name: "Bob"},
		{ID: 3, GroupID: 1, Name: "Cara"},
	}
	events := []ledger.Event{
		testExpense("dinner", 1, 300, map[int64]float64{1: 100, 2: 100, 3: 100}),
		testExpense("snacks", 2, 90, map[int64]float64{1: 45, 2: 45}),
	}
	engine := settle.NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return g, participants, engine.CalculateSettlements(participants, events)
}

func TestNarrative(t *testing.T) {
	g, participants, result := narrativeFixture(t)
	at := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

	out := Narrative(g, participants, result, 2, at)

	wantLines := []string{
		"Ski trip — settlement summary (14 Mar 2026)",
		"Total spent: 390.00 EUR",
		"Alice: paid 300.00, consumed 145.00, net +155.00",
		"Bob (you): paid 90.00, consumed 145.00, net -55.00",
		"Cara: paid 0.00, consumed 100.00, net -100.00",
		"Cara pays Alice 100.00",
		"Bob (you) pays Alice 55.00",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("narrative missing %q\nfull output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Warning") {
		t.Errorf("unexpected imbalance warning in:\n%s", out)
	}

	// Balances listed alphabetically by name.
	if strings.Index(out, "Alice:") > strings.Index(out, "Bob") {
		t.Error("balances not sorted by name")
	}
}

func TestNarrativeSettledUp(t *testing.T) {
	g := &group.Group{ID: 1, Name: "Flat", Currency: "USD"}
	participants := []*group.Participant{
		{ID: 1, GroupID: 1, Name: "Alice"},
		{ID: 2, GroupID: 1, Name: "Bob"},
	}
	engine := settle.NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
	result := engine.CalculateSettlements(participants, []ledger.Event{
		testExpense("rent", 1, 100, map[int64]float64{1: 50, 2: 50}),
		&ledger.Transfer{
			Meta:   ledger.Meta{ID: uuid.New(), GroupID: 1, Title: "settle up", CreatedAt: time.Now()},
			FromID: 2, ToID: 1,
			Amount: money.FromFloat(50),
		},
	})

	out := Narrative(g, participants, result, 0, time.Now())
	if !strings.Contains(out, "Everyone is settled up.") {
		t.Errorf("missing settled-up line in:\n%s", out)
	}
	if strings.Contains(out, "Settle up:") {
		t.Errorf("unexpected instruction section in:\n%s", out)
	}
	// No viewer header when the viewer id matches nobody.
	if strings.Contains(out, "(you)") {
		t.Errorf("unexpected viewer marker in:\n%s", out)
	}
}

func TestNarrativeImbalanceWarning(t *testing.T) {
	g := &group.Group{ID: 1, Name: "Flat", Currency: "USD"}
	participants := []*group.Participant{{ID: 1, GroupID: 1, Name: "Alice"}}
	engine := settle.NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
	// Split references an id outside the group, leaving a residual.
	result := engine.CalculateSettlements(participants, []ledger.Event{
		testExpense("ghost", 1, 100, map[int64]float64{1: 50, 99: 50}),
	})

	out := Narrative(g, participants, result, 0, time.Now())
	if !strings.Contains(out, "Warning: balances do not sum to zero") {
		t.Errorf("missing imbalance warning in:\n%s", out)
	}
}
