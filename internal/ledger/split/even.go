package split

import "github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/money"

// =============================================================================
// EVEN SPLIT STRATEGY
// Divides the total equally among all participants. Participants with a
// locked amount keep it; the remainder is divided evenly across the rest.
// =============================================================================

// EvenStrategy implements the Strategy interface for even splits
type EvenStrategy struct{}

// Type returns the split type identifier
func (s *EvenStrategy) Type() SplitType {
	return SplitTypeEven
}

// Validate checks if the inputs are valid for an even split
func (s *EvenStrategy) Validate(total money.Money, participants []SplitInput) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if !total.IsPositive() {
		return ErrInvalidTotal
	}

	locked := money.Zero()
	unlocked := 0
	for _, p := range participants {
		if p.Amount == nil {
			unlocked++
			continue
		}
		if *p.Amount < 0 {
			return ErrNegativeAmount
		}
		locked = locked.Add(money.FromFloat(*p.Amount))
	}

	// Over-allocation must be caught before the remainder is divided,
	// otherwise the remainder goes negative.
	if locked.GreaterThan(total) {
		return ErrOverAllocatedSplit
	}
	if unlocked == 0 && !locked.Sub(total).WithinEpsilon() {
		return ErrUnallocatedRemainder
	}
	return nil
}

// Calculate divides the remainder after locked amounts evenly. Each share is
// rounded to the minor unit; the last unlocked participant absorbs the
// residual cents so the shares sum to exactly the total.
func (s *EvenStrategy) Calculate(total money.Money, participants []SplitInput) ([]SplitOutput, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	locked := money.Zero()
	var unlockedIdx []int
	for i, p := range participants {
		if p.Amount != nil {
			locked = locked.Add(money.FromFloat(*p.Amount))
		} else {
			unlockedIdx = append(unlockedIdx, i)
		}
	}

	outputs := make([]SplitOutput, len(participants))
	for i, p := range participants {
		outputs[i].ParticipantID = p.ParticipantID
		if p.Amount != nil {
			outputs[i].Amount = money.FromFloat(*p.Amount).RoundCents()
		}
	}

	if len(unlockedIdx) == 0 {
		return outputs, nil
	}

	remainder := total.Sub(locked)
	share := remainder.Div(int64(len(unlockedIdx))).RoundCents()

	distributed := money.Zero()
	for _, idx := range unlockedIdx[:len(unlockedIdx)-1] {
		outputs[idx].Amount = share
		distributed = distributed.Add(share)
	}
	// Last unlocked participant absorbs the rounding residual.
	last := unlockedIdx[len(unlockedIdx)-1]
	outputs[last].Amount = remainder.Sub(distributed).RoundCents()

	return outputs, nil
}
