package split

import (
	"errors"
	"fmt"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/money"
)

// SplitType defines the type of split strategy
type SplitType string

const (
	SplitTypeEven       SplitType = "EVEN"
	SplitTypePercentage SplitType = "PERCENTAGE"
	SplitTypeExact      SplitType = "EXACT"
)

// SplitInput represents a participant in a split with optional overrides.
// For EVEN splits a non-nil Amount locks that participant's share; for EXACT
// splits Amount is required; for PERCENTAGE splits Percentage is required.
type SplitInput struct {
	ParticipantID int64    `json:"participant_id"`
	Amount        *float64 `json:"amount,omitempty"`
	Percentage    *float64 `json:"percentage,omitempty"`
}

// SplitOutput is the calculated consumption share for a single participant.
// Every named participant gets a share, the payer included; a zero share
// marks the participant as excluded from the expense.
type SplitOutput struct {
	ParticipantID int64
	Amount        money.Money
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes the share amounts for all participants. The shares
	// always sum to exactly the total.
	Calculate(total money.Money, participants []SplitInput) ([]SplitOutput, error)

	// Type returns the type identifier for this strategy
	Type() SplitType

	// Validate checks if the inputs are valid for this strategy
	Validate(total money.Money, participants []SplitInput) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewSplitStrategyFactory creates a new factory instance
func NewSplitStrategyFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType SplitType) (Strategy, error) {
	switch splitType {
	case SplitTypeEven:
		return &EvenStrategy{}, nil
	case SplitTypePercentage:
		return &PercentageStrategy{}, nil
	case SplitTypeExact:
		return &ExactStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(SplitType(splitType))
}

var (
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrInvalidTotal         = errors.New("total amount must be positive")
	ErrNegativeAmount       = errors.New("amounts cannot be negative")
	ErrOverAllocatedSplit   = errors.New("locked amounts exceed the total amount")
	ErrUnallocatedRemainder = errors.New("locked amounts do not cover the total and no participant is left to absorb the remainder")
	ErrInvalidPercentages   = errors.New("percentages must sum to 100")
	ErrInvalidExactAmounts  = errors.New("exact amounts must sum to total amount")
	ErrMissingPercentage    = errors.New("percentage value required for all participants")
	ErrMissingExactAmount   = errors.New("exact amount required for all participants")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
)
