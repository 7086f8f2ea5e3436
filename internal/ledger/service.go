package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/internal/ledger/split"
	"github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/money"
)

// Service handles ledger event business logic. Structural validation happens
// here, at the recording boundary: an event that fails validation is never
// persisted.
type Service struct {
	repo         *Repository
	splitFactory *split.Factory
}

// NewService creates a new ledger service with dependencies injected
func NewService(repo *Repository, splitFactory *split.Factory) *Service {
	return &Service{
		repo:         repo,
		splitFactory: splitFactory,
	}
}

// RecordExpense calculates the consumption splits with the requested
// strategy, validates the resulting event and persists it.
func (s *Service) RecordExpense(ctx context.Context, req *CreateExpenseRequest) (*Expense, error) {
	splitType := req.SplitType
	if splitType == "" {
		splitType = string(split.SplitTypeEven)
	}

	strategy, err := s.splitFactory.CreateFromString(splitType)
	if err != nil {
		return nil, err
	}

	inputs := make([]split.SplitInput, len(req.Participants))
	for i, p := range req.Participants {
		inputs[i] = p.ToSplitInput()
	}

	total := money.FromFloat(req.Amount).RoundCents()
	shares, err := strategy.Calculate(total, inputs)
	if err != nil {
		return nil, err
	}

	splits := make([]Split, len(shares))
	for i, share := range shares {
		splits[i] = Split{
			ParticipantID: share.ParticipantID,
			Amount:        share.Amount,
		}
	}

	expense := &Expense{
		Meta: Meta{
			ID:        uuid.New(),
			GroupID:   req.GroupID,
			Title:     req.Title,
			CreatedAt: time.Now().UTC(),
		},
		PayerID: req.PayerID,
		Amount:  total,
		Splits:  splits,
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// RecordIncome persists a personal income event. Income carries no splits;
// it only ever credits the receiver.
func (s *Service) RecordIncome(ctx context.Context, req *CreateIncomeRequest) (*Income, error) {
	income := &Income{
		Meta: Meta{
			ID:        uuid.New(),
			GroupID:   req.GroupID,
			Title:     req.Title,
			CreatedAt: time.Now().UTC(),
		},
		ReceiverID: req.ReceiverID,
		Amount:     money.FromFloat(req.Amount).RoundCents(),
	}
	if err := income.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, income); err != nil {
		return nil, err
	}
	return income, nil
}

// RecordTransfer persists a peer-to-peer settlement payment.
func (s *Service) RecordTransfer(ctx context.Context, req *CreateTransferRequest) (*Transfer, error) {
	title := req.Title
	if title == "" {
		title = "Settlement payment"
	}

	transfer := &Transfer{
		Meta: Meta{
			ID:        uuid.New(),
			GroupID:   req.GroupID,
			Title:     title,
			CreatedAt: time.Now().UTC(),
		},
		FromID: req.FromID,
		ToID:   req.ToID,
		Amount: money.FromFloat(req.Amount).RoundCents(),
	}
	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

// GetEvent retrieves an event by its ID
func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (Event, error) {
	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}
	return ev, nil
}

// ListEvents retrieves a page of a group's events
func (s *Service) ListEvents(ctx context.Context, groupID int64, page, perPage int) ([]Event, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByGroupID(ctx, groupID, perPage, offset)
}

// DeleteEvent removes an event. Recorded events are immutable, so editing
// in the clients is implemented as delete plus re-create.
func (s *Service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
