package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/group"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/settle"
)

// Narrative renders a plain-text settlement summary suitable for direct
// display or clipboard/share-sheet hand-off. Output is deterministic:
// balances are listed by participant name, instructions in matcher order.
func Narrative(g *group.Group, participants []*group.Participant, result *settle.Result, viewerID int64, at time.Time) string {
	names := make(map[int64]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}
	display := func(id int64) string {
		name, ok := names[id]
		if !ok {
			return fmt.Sprintf("participant %d", id)
		}
		if id == viewerID {
			return name + " (you)"
		}
		return name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s — settlement summary (%s)\n", g.Name, at.Format("2 Jan 2006"))
	fmt.Fprintf(&b, "Total spent: %s %s\n", result.TotalExpenses.String(), g.Currency)
	if result.Imbalanced() {
		fmt.Fprintf(&b, "Warning: balances do not sum to zero (off by %s); figures are best effort.\n", result.Residual.String())
	}

	b.WriteString("\nBalances:\n")
	byName := make([]*settle.BalanceRecord, len(result.Balances))
	copy(byName, result.Balances)
	sort.Slice(byName, func(i, j int) bool {
		ni, nj := names[byName[i].ParticipantID], names[byName[j].ParticipantID]
		if ni != nj {
			return ni < nj
		}
		return byName[i].ParticipantID < byName[j].ParticipantID
	})
	for _, rec := range byName {
		fmt.Fprintf(&b, "  %s: paid %s, consumed %s, net %s\n",
			display(rec.ParticipantID), rec.TotalPaid.String(), rec.TotalConsumed.String(), signed(rec))
	}

	if len(result.Settlements) == 0 {
		b.WriteString("\nEveryone is settled up.\n")
		return b.String()
	}

	b.WriteString("\nSettle up:\n")
	for _, ins := range result.Settlements {
		fmt.Fprintf(&b, "  %s pays %s %s\n",
			display(ins.FromParticipantID), display(ins.ToParticipantID), ins.Amount.String())
	}
	return b.String()
}

func signed(rec *settle.BalanceRecord) string {
	if rec.NetBalance.IsPositive() {
		return "+" + rec.NetBalance.String()
	}
	return rec.NetBalance.String()
}
