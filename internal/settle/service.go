package settle

import (
	"context"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/group"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/ledger"
)

// Service wires the engine to the participant directory and the event
// store. Every computation starts from a fresh full snapshot; nothing here
// holds derived state between calls.
type Service struct {
	groupRepo  *group.Repository
	ledgerRepo *ledger.Repository
	engine     *Engine
}

// NewService creates a new settlement service
func NewService(groupRepo *group.Repository, ledgerRepo *ledger.Repository, engine *Engine) *Service {
	return &Service{
		groupRepo:  groupRepo,
		ledgerRepo: ledgerRepo,
		engine:     engine,
	}
}

// Snapshot loads the group, its participant directory and the full event
// list. Shared with the report layer so both compute over the same inputs.
func (s *Service) Snapshot(ctx context.Context, groupID int64) (*group.Group, []*group.Participant, []ledger.Event, error) {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, nil, nil, err
	}
	if g == nil {
		return nil, nil, nil, group.ErrGroupNotFound
	}

	participants, err := s.groupRepo.GetParticipants(ctx, groupID)
	if err != nil {
		return nil, nil, nil, err
	}

	events, err := s.ledgerRepo.SnapshotByGroupID(ctx, groupID)
	if err != nil {
		return nil, nil, nil, err
	}

	return g, participants, events, nil
}

// GetSettlement computes the full settlement view for a group.
func (s *Service) GetSettlement(ctx context.Context, groupID int64) (*SettlementResponse, error) {
	g, participants, events, err := s.Snapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}

	result := s.engine.CalculateSettlements(participants, events)

	names := make(map[int64]string, len(participants))
	for _, p := range participants {
		names[p.ID] = p.Name
	}

	return toResponse(g.ID, g.Currency, names, result), nil
}
