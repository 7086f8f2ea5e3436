package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/money"
)

// Repository handles ledger event persistence. Events of all kinds live in
// one table with a kind discriminator; expense shares live in event_splits.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new ledger repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// eventRow is the flat scan target for the ledger_events table.
type eventRow struct {
	ID         uuid.UUID
	GroupID    int64
	Kind       Kind
	Title      string
	Amount     money.Money
	PayerID    sql.NullInt64
	ReceiverID sql.NullInt64
	FromID     sql.NullInt64
	ToID       sql.NullInt64
	CreatedAt  time.Time
}

// toEvent rebuilds the typed event from a flat row.
func (row *eventRow) toEvent(splits []Split) (Event, error) {
	meta := Meta{
		ID:        row.ID,
		GroupID:   row.GroupID,
		Title:     row.Title,
		CreatedAt: row.CreatedAt,
	}

	switch row.Kind {
	case KindExpense:
		return &Expense{
			Meta:    meta,
			PayerID: row.PayerID.Int64,
			Amount:  row.Amount,
			Splits:  splits,
		}, nil
	case KindIncome:
		return &Income{
			Meta:       meta,
			ReceiverID: row.ReceiverID.Int64,
			Amount:     row.Amount,
		}, nil
	case KindTransfer:
		return &Transfer{
			Meta:   meta,
			FromID: row.FromID.Int64,
			ToID:   row.ToID.Int64,
			Amount: row.Amount,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, row.Kind)
	}
}

// Create inserts an event and, for expenses, its splits in one transaction.
func (r *Repository) Create(ctx context.Context, ev Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO ledger_events (id, group_id, kind, title, amount, payer_id, receiver_id, from_id, to_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	meta := ev.EventMeta()
	var payerID, receiverID, fromID, toID sql.NullInt64
	var amount money.Money
	var splits []Split

	switch e := ev.(type) {
	case *Expense:
		payerID = sql.NullInt64{Int64: e.PayerID, Valid: true}
		amount = e.Amount
		splits = e.Splits
	case *Income:
		receiverID = sql.NullInt64{Int64: e.ReceiverID, Valid: true}
		amount = e.Amount
	case *Transfer:
		fromID = sql.NullInt64{Int64: e.FromID, Valid: true}
		toID = sql.NullInt64{Int64: e.ToID, Valid: true}
		amount = e.Amount
	default:
		return ErrUnknownKind
	}

	if _, err := tx.ExecContext(ctx, query,
		meta.ID, meta.GroupID, ev.Kind(), meta.Title, amount,
		payerID, receiverID, fromID, toID, meta.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	for _, s := range splits {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO event_splits (event_id, participant_id, amount) VALUES ($1, $2, $3)`,
			meta.ID, s.ParticipantID, s.Amount,
		); err != nil {
			return fmt.Errorf("failed to create split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit event: %w", err)
	}
	return nil
}

// GetByID retrieves a single event with its splits
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Event, error) {
	query := `
		SELECT id, group_id, kind, title, amount, payer_id, receiver_id, from_id, to_id, created_at
		FROM ledger_events
		WHERE id = $1
	`

	row := &eventRow{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&row.ID, &row.GroupID, &row.Kind, &row.Title, &row.Amount,
		&row.PayerID, &row.ReceiverID, &row.FromID, &row.ToID, &row.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var splits []Split
	if row.Kind == KindExpense {
		splits, err = r.getSplits(ctx, []uuid.UUID{id})
		if err != nil {
			return nil, err
		}
	}

	return row.toEvent(splits)
}

// ListByGroupID retrieves a page of a group's events, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]Event, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ledger_events WHERE group_id = $1`, groupID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := `
		SELECT id, group_id, kind, title, amount, payer_id, receiver_id, from_id, to_id, created_at
		FROM ledger_events
		WHERE group_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	events, err := r.queryEvents(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// SnapshotByGroupID retrieves the full event list of a group in recorded
// order. The settlement engine always works over this complete snapshot.
func (r *Repository) SnapshotByGroupID(ctx context.Context, groupID int64) ([]Event, error) {
	query := `
		SELECT id, group_id, kind, title, amount, payer_id, receiver_id, from_id, to_id, created_at
		FROM ledger_events
		WHERE group_id = $1
		ORDER BY created_at, id
	`
	return r.queryEvents(ctx, query, groupID)
}

// Delete removes an event (and its splits via cascade). Events are
// immutable; an edit is a delete plus a re-create.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ledger_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *Repository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var eventRows []*eventRow
	var expenseIDs []uuid.UUID
	for rows.Next() {
		row := &eventRow{}
		if err := rows.Scan(
			&row.ID, &row.GroupID, &row.Kind, &row.Title, &row.Amount,
			&row.PayerID, &row.ReceiverID, &row.FromID, &row.ToID, &row.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		eventRows = append(eventRows, row)
		if row.Kind == KindExpense {
			expenseIDs = append(expenseIDs, row.ID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}

	splitsByEvent := make(map[uuid.UUID][]Split)
	if len(expenseIDs) > 0 {
		byEvent, err := r.getSplitsByEvent(ctx, expenseIDs)
		if err != nil {
			return nil, err
		}
		splitsByEvent = byEvent
	}

	events := make([]Event, 0, len(eventRows))
	for _, row := range eventRows {
		ev, err := row.toEvent(splitsByEvent[row.ID])
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func (r *Repository) getSplits(ctx context.Context, eventIDs []uuid.UUID) ([]Split, error) {
	byEvent, err := r.getSplitsByEvent(ctx, eventIDs)
	if err != nil {
		return nil, err
	}
	if len(eventIDs) == 1 {
		return byEvent[eventIDs[0]], nil
	}
	var all []Split
	for _, splits := range byEvent {
		all = append(all, splits...)
	}
	return all, nil
}

func (r *Repository) getSplitsByEvent(ctx context.Context, eventIDs []uuid.UUID) (map[uuid.UUID][]Split, error) {
	query := `
		SELECT event_id, participant_id, amount
		FROM event_splits
		WHERE event_id = ANY($1)
		ORDER BY participant_id
	`

	ids := make([]string, len(eventIDs))
	for i, id := range eventIDs {
		ids[i] = id.String()
	}

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	byEvent := make(map[uuid.UUID][]Split)
	for rows.Next() {
		var eventID uuid.UUID
		var s Split
		if err := rows.Scan(&eventID, &s.ParticipantID, &s.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		byEvent[eventID] = append(byEvent[eventID], s)
	}
	return byEvent, rows.Err()
}
