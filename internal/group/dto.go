package group

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	Currency    string  `json:"currency"`
	// OwnerName names the creating participant (the local viewing user).
	OwnerName string `json:"owner_name" validate:"required,min=1,max=100"`
	// ParticipantNames optionally seeds the rest of the group.
	ParticipantNames []string `json:"participant_names,omitempty"`
}

// UpdateGroupRequest represents the request to update a group
type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
}

// AddParticipantRequest represents the request to add a participant to a group
type AddParticipantRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// RenameParticipantRequest represents the request to rename a participant
type RenameParticipantRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID           int64                  `json:"id"`
	Name         string                 `json:"name"`
	Description  *string                `json:"description,omitempty"`
	Currency     string                 `json:"currency"`
	CreatedAt    string                 `json:"created_at"`
	Participants []*ParticipantResponse `json:"participants,omitempty"`
}

// ParticipantResponse represents a participant in a group response
type ParticipantResponse struct {
	ID       int64  `json:"id"`
	GroupID  int64  `json:"group_id"`
	Name     string `json:"name"`
	IsOwner  bool   `json:"is_owner"`
	JoinedAt string `json:"joined_at"`
}

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Currency:    g.Currency,
		CreatedAt:   g.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Participant model to a ParticipantResponse DTO
func (p *Participant) ToResponse() *ParticipantResponse {
	return &ParticipantResponse{
		ID:       p.ID,
		GroupID:  p.GroupID,
		Name:     p.Name,
		IsOwner:  p.IsOwner,
		JoinedAt: p.JoinedAt.Format("2006-01-02T15:04:05Z"),
	}
}
