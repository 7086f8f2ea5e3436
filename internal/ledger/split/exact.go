package split

import "github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/money"

// =============================================================================
// EXACT SPLIT STRATEGY
// Each participant consumes a specific exact amount (must sum to total)
// =============================================================================

// ExactStrategy implements the Strategy interface for exact amount splits
type ExactStrategy struct{}

// Type returns the split type identifier
func (s *ExactStrategy) Type() SplitType {
	return SplitTypeExact
}

// Validate checks if the inputs are valid for an exact split
func (s *ExactStrategy) Validate(total money.Money, participants []SplitInput) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if !total.IsPositive() {
		return ErrInvalidTotal
	}

	sum := money.Zero()
	for _, p := range participants {
		if p.Amount == nil {
			return ErrMissingExactAmount
		}
		if *p.Amount < 0 {
			return ErrNegativeAmount
		}
		sum = sum.Add(money.FromFloat(*p.Amount))
	}

	if !sum.Sub(total).WithinEpsilon() {
		return ErrInvalidExactAmounts
	}
	return nil
}

// Calculate returns the exact amounts specified for each participant.
func (s *ExactStrategy) Calculate(total money.Money, participants []SplitInput) ([]SplitOutput, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	outputs := make([]SplitOutput, len(participants))
	for i, p := range participants {
		outputs[i] = SplitOutput{
			ParticipantID: p.ParticipantID,
			Amount:        money.FromFloat(*p.Amount).RoundCents(),
		}
	}
	return outputs, nil
}
