package ledger

import (
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/ledger/split"
)

// SplitShare is one participant's entry when creating an expense
type SplitShare struct {
	ParticipantID int64    `json:"participant_id"`
	Amount        *float64 `json:"amount,omitempty"`     // Locked/exact amount
	Percentage    *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
}

// ToSplitInput converts to the split package's input type
func (s *SplitShare) ToSplitInput() split.SplitInput {
	return split.SplitInput{
		ParticipantID: s.ParticipantID,
		Amount:        s.Amount,
		Percentage:    s.Percentage,
	}
}

// CreateExpenseRequest represents the request to record an expense
type CreateExpenseRequest struct {
	GroupID      int64         `json:"group_id" validate:"required"`
	Title        string        `json:"title" validate:"required,min=1,max=255"`
	Amount       float64       `json:"amount" validate:"required,gt=0"`
	PayerID      int64         `json:"payer_id" validate:"required"`
	SplitType    string        `json:"split_type"` // EVEN, PERCENTAGE, EXACT; defaults to EVEN
	Participants []*SplitShare `json:"participants" validate:"required,min=1"`
}

// CreateIncomeRequest represents the request to record a personal income
type CreateIncomeRequest struct {
	GroupID    int64   `json:"group_id" validate:"required"`
	Title      string  `json:"title" validate:"required,min=1,max=255"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	ReceiverID int64   `json:"receiver_id" validate:"required"`
}

// CreateTransferRequest represents the request to record a settlement payment
type CreateTransferRequest struct {
	GroupID int64   `json:"group_id" validate:"required"`
	Title   string  `json:"title"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	FromID  int64   `json:"from_id" validate:"required"`
	ToID    int64   `json:"to_id" validate:"required"`
}

// SplitResponse represents one consumption share in a response
type SplitResponse struct {
	ParticipantID int64   `json:"participant_id"`
	Amount        float64 `json:"amount"`
}

// EventResponse is the wire shape for any ledger event. Kind decides which
// of the optional fields are set.
type EventResponse struct {
	ID         string           `json:"id"`
	GroupID    int64            `json:"group_id"`
	Kind       Kind             `json:"kind"`
	Title      string           `json:"title"`
	Amount     float64          `json:"amount"`
	CreatedAt  string           `json:"created_at"`
	PayerID    *int64           `json:"payer_id,omitempty"`
	ReceiverID *int64           `json:"receiver_id,omitempty"`
	FromID     *int64           `json:"from_id,omitempty"`
	ToID       *int64           `json:"to_id,omitempty"`
	Splits     []*SplitResponse `json:"splits,omitempty"`
}

// ToResponse converts any event to its wire shape
func ToResponse(ev Event) *EventResponse {
	meta := ev.EventMeta()
	resp := &EventResponse{
		ID:        meta.ID.String(),
		GroupID:   meta.GroupID,
		Kind:      ev.Kind(),
		Title:     meta.Title,
		CreatedAt: meta.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}

	switch e := ev.(type) {
	case *Expense:
		resp.Amount = e.Amount.Float64()
		resp.PayerID = &e.PayerID
		resp.Splits = make([]*SplitResponse, len(e.Splits))
		for i, s := range e.Splits {
			resp.Splits[i] = &SplitResponse{
				ParticipantID: s.ParticipantID,
				Amount:        s.Amount.Float64(),
			}
		}
	case *Income:
		resp.Amount = e.Amount.Float64()
		resp.ReceiverID = &e.ReceiverID
	case *Transfer:
		resp.Amount = e.Amount.Float64()
		resp.FromID = &e.FromID
		resp.ToID = &e.ToID
	}

	return resp
}
