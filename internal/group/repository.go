package group

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles group and participant data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group into the database
func (r *Repository) Create(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	query := `
		INSERT INTO groups (name, description, currency)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, currency, created_at
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, req.Name, req.Description, req.Currency).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.Currency,
		&group.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Group, error) {
	query := `
		SELECT id, name, description, currency, created_at
		FROM groups
		WHERE id = $1
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.Currency,
		&group.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// List retrieves groups ordered by creation time, newest first
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Group, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM groups`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count groups: %w", err)
	}

	query := `
		SELECT id, name, description, currency, created_at
		FROM groups
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		group := &Group{}
		if err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.Currency,
			&group.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, total, nil
}

// Update modifies an existing group
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateGroupRequest) (*Group, error) {
	query := `
		UPDATE groups
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description)
		WHERE id = $1
		RETURNING id, name, description, currency, created_at
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Description).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.Currency,
		&group.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	return group, nil
}

// Delete removes a group and its participants and events
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM groups WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("group not found")
	}

	return nil
}

// AddParticipant adds a participant to a group
func (r *Repository) AddParticipant(ctx context.Context, groupID int64, name string, isOwner bool) (*Participant, error) {
	query := `
		INSERT INTO participants (group_id, name, is_owner)
		VALUES ($1, $2, $3)
		RETURNING id, group_id, name, is_owner, joined_at
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, groupID, name, isOwner).Scan(
		&participant.ID,
		&participant.GroupID,
		&participant.Name,
		&participant.IsOwner,
		&participant.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}

	return participant, nil
}

// GetParticipants retrieves all participants of a group
func (r *Repository) GetParticipants(ctx context.Context, groupID int64) ([]*Participant, error) {
	query := `
		SELECT id, group_id, name, is_owner, joined_at
		FROM participants
		WHERE group_id = $1
		ORDER BY joined_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []*Participant
	for rows.Next() {
		participant := &Participant{}
		if err := rows.Scan(
			&participant.ID,
			&participant.GroupID,
			&participant.Name,
			&participant.IsOwner,
			&participant.JoinedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, participant)
	}

	return participants, nil
}

// GetParticipant retrieves a specific participant of a group
func (r *Repository) GetParticipant(ctx context.Context, groupID, participantID int64) (*Participant, error) {
	query := `
		SELECT id, group_id, name, is_owner, joined_at
		FROM participants
		WHERE group_id = $1 AND id = $2
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, groupID, participantID).Scan(
		&participant.ID,
		&participant.GroupID,
		&participant.Name,
		&participant.IsOwner,
		&participant.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return participant, nil
}

// RenameParticipant updates a participant's display name
func (r *Repository) RenameParticipant(ctx context.Context, groupID, participantID int64, name string) (*Participant, error) {
	query := `
		UPDATE participants
		SET name = $3
		WHERE group_id = $1 AND id = $2
		RETURNING id, group_id, name, is_owner, joined_at
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, groupID, participantID, name).Scan(
		&participant.ID,
		&participant.GroupID,
		&participant.Name,
		&participant.IsOwner,
		&participant.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to rename participant: %w", err)
	}

	return participant, nil
}
