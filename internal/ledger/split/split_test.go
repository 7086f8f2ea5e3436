package split

import (
	"errors"
	"testing"

	"github.com/ZORO-69-max/MyXpenseAPP-sub001/pkg/money"
)

func floatPtr(f float64) *float64 { return &f }

func sumShares(shares []SplitOutput) money.Money {
	sum := money.Zero()
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	return sum
}

func TestEvenSplit(t *testing.T) {
	s := &EvenStrategy{}

	t.Run("rounding conservation", func(t *testing.T) {
		shares, err := s.Calculate(money.FromFloat(100), []SplitInput{
			{ParticipantID: 1}, {ParticipantID: 2}, {ParticipantID: 3},
		})
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if got := sumShares(shares); !got.Equal(money.FromFloat(100)) {
			t.Errorf("share sum: got %s, want 100.00", got)
		}
		// two even shares plus one absorbing the extra cent
		if shares[0].Amount.String() != "33.33" || shares[1].Amount.String() != "33.33" || shares[2].Amount.String() != "33.34" {
			t.Errorf("shares: got %s/%s/%s, want 33.33/33.33/33.34",
				shares[0].Amount, shares[1].Amount, shares[2].Amount)
		}
	})

	t.Run("locked amounts honored", func(t *testing.T) {
		shares, err := s.Calculate(money.FromFloat(100), []SplitInput{
			{ParticipantID: 1, Amount: floatPtr(70)},
			{ParticipantID: 2},
			{ParticipantID: 3},
		})
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if shares[0].Amount.String() != "70.00" {
			t.Errorf("locked share: got %s, want 70.00", shares[0].Amount)
		}
		if shares[1].Amount.String() != "15.00" || shares[2].Amount.String() != "15.00" {
			t.Errorf("remainder shares: got %s/%s, want 15.00/15.00", shares[1].Amount, shares[2].Amount)
		}
	})

	t.Run("zero lock marks exclusion", func(t *testing.T) {
		shares, err := s.Calculate(money.FromFloat(90), []SplitInput{
			{ParticipantID: 1},
			{ParticipantID: 2},
			{ParticipantID: 3, Amount: floatPtr(0)},
		})
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if !shares[2].Amount.IsZero() {
			t.Errorf("excluded share: got %s, want 0.00", shares[2].Amount)
		}
		if shares[0].Amount.String() != "45.00" || shares[1].Amount.String() != "45.00" {
			t.Errorf("shares: got %s/%s, want 45.00/45.00", shares[0].Amount, shares[1].Amount)
		}
	})

	t.Run("over-allocation rejected before division", func(t *testing.T) {
		_, err := s.Calculate(money.FromFloat(50), []SplitInput{
			{ParticipantID: 1, Amount: floatPtr(60)},
			{ParticipantID: 2},
		})
		if !errors.Is(err, ErrOverAllocatedSplit) {
			t.Errorf("got %v, want ErrOverAllocatedSplit", err)
		}
	})

	t.Run("all locked must cover total", func(t *testing.T) {
		_, err := s.Calculate(money.FromFloat(50), []SplitInput{
			{ParticipantID: 1, Amount: floatPtr(20)},
			{ParticipantID: 2, Amount: floatPtr(20)},
		})
		if !errors.Is(err, ErrUnallocatedRemainder) {
			t.Errorf("got %v, want ErrUnallocatedRemainder", err)
		}
	})

	t.Run("invalid inputs", func(t *testing.T) {
		if _, err := s.Calculate(money.FromFloat(10), nil); !errors.Is(err, ErrNoParticipants) {
			t.Errorf("got %v, want ErrNoParticipants", err)
		}
		if _, err := s.Calculate(money.Zero(), []SplitInput{{ParticipantID: 1}}); !errors.Is(err, ErrInvalidTotal) {
			t.Errorf("got %v, want ErrInvalidTotal", err)
		}
		if _, err := s.Calculate(money.FromFloat(10), []SplitInput{{ParticipantID: 1, Amount: floatPtr(-5)}}); !errors.Is(err, ErrNegativeAmount) {
			t.Errorf("got %v, want ErrNegativeAmount", err)
		}
	})
}

func TestPercentageSplit(t *testing.T) {
	s := &PercentageStrategy{}

	t.Run("shares follow percentages and sum exactly", func(t *testing.T) {
		shares, err := s.Calculate(money.FromFloat(100), []SplitInput{
			{ParticipantID: 1, Percentage: floatPtr(50)},
			{ParticipantID: 2, Percentage: floatPtr(30)},
			{ParticipantID: 3, Percentage: floatPtr(20)},
		})
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if shares[0].Amount.String() != "50.00" || shares[1].Amount.String() != "30.00" || shares[2].Amount.String() != "20.00" {
			t.Errorf("shares: got %s/%s/%s", shares[0].Amount, shares[1].Amount, shares[2].Amount)
		}
	})

	t.Run("last share absorbs rounding", func(t *testing.T) {
		shares, err := s.Calculate(money.FromFloat(100), []SplitInput{
			{ParticipantID: 1, Percentage: floatPtr(33.33)},
			{ParticipantID: 2, Percentage: floatPtr(33.33)},
			{ParticipantID: 3, Percentage: floatPtr(33.34)},
		})
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if got := sumShares(shares); !got.Equal(money.FromFloat(100)) {
			t.Errorf("share sum: got %s, want 100.00", got)
		}
	})

	t.Run("validation", func(t *testing.T) {
		if _, err := s.Calculate(money.FromFloat(100), []SplitInput{{ParticipantID: 1}}); !errors.Is(err, ErrMissingPercentage) {
			t.Errorf("got %v, want ErrMissingPercentage", err)
		}
		if _, err := s.Calculate(money.FromFloat(100), []SplitInput{
			{ParticipantID: 1, Percentage: floatPtr(120)},
		}); !errors.Is(err, ErrPercentageOutOfRange) {
			t.Errorf("got %v, want ErrPercentageOutOfRange", err)
		}
		if _, err := s.Calculate(money.FromFloat(100), []SplitInput{
			{ParticipantID: 1, Percentage: floatPtr(40)},
			{ParticipantID: 2, Percentage: floatPtr(40)},
		}); !errors.Is(err, ErrInvalidPercentages) {
			t.Errorf("got %v, want ErrInvalidPercentages", err)
		}
	})
}

func TestExactSplit(t *testing.T) {
	s := &ExactStrategy{}

	t.Run("amounts pass through", func(t *testing.T) {
		shares, err := s.Calculate(money.FromFloat(75.50), []SplitInput{
			{ParticipantID: 1, Amount: floatPtr(50.25)},
			{ParticipantID: 2, Amount: floatPtr(25.25)},
		})
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if shares[0].Amount.String() != "50.25" || shares[1].Amount.String() != "25.25" {
			t.Errorf("shares: got %s/%s", shares[0].Amount, shares[1].Amount)
		}
	})

	t.Run("mismatching sum rejected", func(t *testing.T) {
		_, err := s.Calculate(money.FromFloat(100), []SplitInput{
			{ParticipantID: 1, Amount: floatPtr(50)},
			{ParticipantID: 2, Amount: floatPtr(40)},
		})
		if !errors.Is(err, ErrInvalidExactAmounts) {
			t.Errorf("got %v, want ErrInvalidExactAmounts", err)
		}
	})

	t.Run("missing amount rejected", func(t *testing.T) {
		_, err := s.Calculate(money.FromFloat(100), []SplitInput{
			{ParticipantID: 1, Amount: floatPtr(100)},
			{ParticipantID: 2},
		})
		if !errors.Is(err, ErrMissingExactAmount) {
			t.Errorf("got %v, want ErrMissingExactAmount", err)
		}
	})
}

func TestFactory(t *testing.T) {
	f := NewSplitStrategyFactory()

	for _, st := range []SplitType{SplitTypeEven, SplitTypePercentage, SplitTypeExact} {
		strategy, err := f.Create(st)
		if err != nil {
			t.Fatalf("Create(%s): %v", st, err)
		}
		if strategy.Type() != st {
			t.Errorf("Type(): got %s, want %s", strategy.Type(), st)
		}
	}

	if _, err := f.CreateFromString("RANDOM"); err == nil {
		t.Error("expected error for unknown split type")
	}
}
