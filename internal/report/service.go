package report

import (
	"context"
	"time"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/group"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/settle"
)

// Service renders settlement results for humans. It reuses the settlement
// service's snapshot so summary and settlement views agree on their inputs.
type Service struct {
	settlements *settle.Service
	engine      *settle.Engine
}

// NewService creates a new report service
func NewService(settlements *settle.Service, engine *settle.Engine) *Service {
	return &Service{
		settlements: settlements,
		engine:      engine,
	}
}

// Summary produces the shareable plain-text settlement summary for a group.
func (s *Service) Summary(ctx context.Context, groupID, viewerID int64) (string, error) {
	g, participants, events, err := s.settlements.Snapshot(ctx, groupID)
	if err != nil {
		return "", err
	}

	result := s.engine.CalculateSettlements(participants, events)
	return Narrative(g, participants, result, viewerID, time.Now()), nil
}

// ParticipantBreakdown explains a participant's share in every expense
// where it was excluded or custom.
func (s *Service) ParticipantBreakdown(ctx context.Context, groupID, participantID int64) (*BreakdownResponse, error) {
	_, participants, events, err := s.settlements.Snapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var name string
	found := false
	for _, p := range participants {
		if p.ID == participantID {
			name = p.Name
			found = true
			break
		}
	}
	if !found {
		return nil, group.ErrParticipantNotFound
	}

	entries := Breakdown(participantID, events)
	return toBreakdownResponse(groupID, participantID, name, entries), nil
}
