package settle

// BalanceResponse represents one participant's derived position
type BalanceResponse struct {
	ParticipantID   int64   `json:"participant_id"`
	ParticipantName string  `json:"participant_name,omitempty"`
	TotalPaid       float64 `json:"total_paid"`
	TotalConsumed   float64 `json:"total_consumed"`
	NetBalance      float64 `json:"net_balance"`
	Settled         bool    `json:"settled"`
}

// EventRefResponse represents one contributing expense
type EventRefResponse struct {
	Title  string  `json:"title"`
	Amount float64 `json:"amount"`
}

// InstructionResponse represents one recommended payment
type InstructionResponse struct {
	FromParticipantID   int64               `json:"from_participant_id"`
	FromParticipantName string              `json:"from_participant_name,omitempty"`
	ToParticipantID     int64               `json:"to_participant_id"`
	ToParticipantName   string              `json:"to_participant_name,omitempty"`
	Amount              float64             `json:"amount"`
	ContributingEvents  []*EventRefResponse `json:"contributing_events,omitempty"`
}

// SettlementResponse is the full settlement view for a group
type SettlementResponse struct {
	GroupID       int64                  `json:"group_id"`
	Currency      string                 `json:"currency"`
	TotalExpenses float64                `json:"total_expenses"`
	Balances      []*BalanceResponse     `json:"balances"`
	Settlements   []*InstructionResponse `json:"settlements"`
	// Imbalanced annotates the view when net balances fail the zero-sum
	// check; the settlements are still usable best-effort output.
	Imbalanced bool    `json:"imbalanced"`
	Residual   float64 `json:"residual,omitempty"`
}

// toResponse renders a Result with participant names resolved.
func toResponse(groupID int64, currency string, names map[int64]string, result *Result) *SettlementResponse {
	resp := &SettlementResponse{
		GroupID:       groupID,
		Currency:      currency,
		TotalExpenses: result.TotalExpenses.Float64(),
		Balances:      make([]*BalanceResponse, len(result.Balances)),
		Settlements:   make([]*InstructionResponse, len(result.Settlements)),
		Imbalanced:    result.Imbalanced(),
	}
	if resp.Imbalanced {
		resp.Residual = result.Residual.Float64()
	}

	for i, b := range result.Balances {
		resp.Balances[i] = &BalanceResponse{
			ParticipantID:   b.ParticipantID,
			ParticipantName: names[b.ParticipantID],
			TotalPaid:       b.TotalPaid.Float64(),
			TotalConsumed:   b.TotalConsumed.Float64(),
			NetBalance:      b.NetBalance.Float64(),
			Settled:         b.Settled(),
		}
	}

	for i, ins := range result.Settlements {
		refs := make([]*EventRefResponse, len(ins.ContributingEvents))
		for j, ref := range ins.ContributingEvents {
			refs[j] = &EventRefResponse{Title: ref.Title, Amount: ref.Amount.Float64()}
		}
		resp.Settlements[i] = &InstructionResponse{
			FromParticipantID:   ins.FromParticipantID,
			FromParticipantName: names[ins.FromParticipantID],
			ToParticipantID:     ins.ToParticipantID,
			ToParticipantName:   names[ins.ToParticipantID],
			Amount:              ins.Amount.Float64(),
			ContributingEvents:  refs,
		}
	}

	return resp
}
