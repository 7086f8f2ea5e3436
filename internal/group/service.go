package group

import (
	"context"
	"errors"
	"strings"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrEmptyName           = errors.New("name cannot be empty")
)

// Service handles group business logic
type Service struct {
	repo *Repository
}

// NewService creates a new group service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new group with its owner and any seeded participants.
// Participants exist only inside their group; there are no user accounts.
func (s *Service) Create(ctx context.Context, req *CreateGroupRequest) (*Group, []*Participant, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.OwnerName) == "" {
		return nil, nil, ErrEmptyName
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	group, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	owner, err := s.repo.AddParticipant(ctx, group.ID, strings.TrimSpace(req.OwnerName), true)
	if err != nil {
		// TODO: Should rollback group creation in a transaction
		return nil, nil, err
	}

	participants := []*Participant{owner}
	for _, name := range req.ParticipantNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p, err := s.repo.AddParticipant(ctx, group.ID, name, false)
		if err != nil {
			return nil, nil, err
		}
		participants = append(participants, p)
	}

	return group, participants, nil
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// GetByIDWithParticipants retrieves a group with all its participants
func (s *Service) GetByIDWithParticipants(ctx context.Context, id int64) (*Group, []*Participant, error) {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	participants, err := s.repo.GetParticipants(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return group, participants, nil
}

// List retrieves groups with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Group, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Update modifies an existing group
func (s *Service) Update(ctx context.Context, id int64, req *UpdateGroupRequest) (*Group, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a group
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// AddParticipant adds a participant to a group. There is no corresponding
// removal: balances must stay explainable against the full event history.
func (s *Service) AddParticipant(ctx context.Context, groupID int64, req *AddParticipantRequest) (*Participant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.AddParticipant(ctx, groupID, strings.TrimSpace(req.Name), false)
}

// GetParticipants retrieves all participants of a group
func (s *Service) GetParticipants(ctx context.Context, groupID int64) ([]*Participant, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.GetParticipants(ctx, groupID)
}

// RenameParticipant updates a participant's display name
func (s *Service) RenameParticipant(ctx context.Context, groupID, participantID int64, req *RenameParticipantRequest) (*Participant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	participant, err := s.repo.RenameParticipant(ctx, groupID, participantID, strings.TrimSpace(req.Name))
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}
	return participant, nil
}
