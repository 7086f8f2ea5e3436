package report

// BreakdownEntryResponse explains one expense for a participant
type BreakdownEntryResponse struct {
	EventID       string  `json:"event_id"`
	Title         string  `json:"title"`
	ExpenseAmount float64 `json:"expense_amount"`
	Share         float64 `json:"share"`
	EvenShare     float64 `json:"even_share"`
	Excluded      bool    `json:"excluded"`
}

// BreakdownResponse lists the expenses that need explaining for one
// participant
type BreakdownResponse struct {
	GroupID         int64                     `json:"group_id"`
	ParticipantID   int64                     `json:"participant_id"`
	ParticipantName string                    `json:"participant_name"`
	Entries         []*BreakdownEntryResponse `json:"entries"`
}

func toBreakdownResponse(groupID, participantID int64, name string, entries []*BreakdownEntry) *BreakdownResponse {
	resp := &BreakdownResponse{
		GroupID:         groupID,
		ParticipantID:   participantID,
		ParticipantName: name,
		Entries:         make([]*BreakdownEntryResponse, len(entries)),
	}
	for i, e := range entries {
		resp.Entries[i] = &BreakdownEntryResponse{
			EventID:       e.EventID.String(),
			Title:         e.Title,
			ExpenseAmount: e.ExpenseAmount.Float64(),
			Share:         e.Share.Float64(),
			EvenShare:     e.EvenShare.Float64(),
			Excluded:      e.Excluded,
		}
	}
	return resp
}
