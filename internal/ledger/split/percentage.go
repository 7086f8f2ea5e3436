package split

import (
	"math"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/money"
)

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the total based on specified percentages for each participant
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() SplitType {
	return SplitTypePercentage
}

// Validate checks if the inputs are valid for a percentage split
func (s *PercentageStrategy) Validate(total money.Money, participants []SplitInput) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if !total.IsPositive() {
		return ErrInvalidTotal
	}

	var totalPercentage float64
	for _, p := range participants {
		if p.Percentage == nil {
			return ErrMissingPercentage
		}
		if *p.Percentage < 0 || *p.Percentage > 100 {
			return ErrPercentageOutOfRange
		}
		totalPercentage += *p.Percentage
	}

	// Allow for small floating point errors (99.99 to 100.01)
	if math.Abs(totalPercentage-100) > 0.01 {
		return ErrInvalidPercentages
	}
	return nil
}

// Calculate divides the total based on each participant's percentage. The
// last participant absorbs the rounding residual so shares sum to the total.
func (s *PercentageStrategy) Calculate(total money.Money, participants []SplitInput) ([]SplitOutput, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	outputs := make([]SplitOutput, len(participants))
	distributed := money.Zero()

	for i, p := range participants {
		outputs[i].ParticipantID = p.ParticipantID
		if i == len(participants)-1 {
			outputs[i].Amount = total.Sub(distributed).RoundCents()
			break
		}
		share := total.MulFloat(*p.Percentage / 100).RoundCents()
		outputs[i].Amount = share
		distributed = distributed.Add(share)
	}

	return outputs, nil
}
