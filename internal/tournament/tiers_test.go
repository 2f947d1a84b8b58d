package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
)

func TestPaidPlaces(t *testing.T) {
	tests := []struct {
		name         string
		participants int
		want         int
	}{
		{"tiny field floors at three", 10, 3},
		{"exactly the floor", 60, 3},
		{"rounds up past the floor", 61, 4},
		{"hundred pays five", 100, 5},
		{"odd field rounds up", 101, 6},
		{"thousand pays fifty", 1000, 50},
		{"empty field still has a podium", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PaidPlaces(tt.participants))
		})
	}
}

func TestBuildPayoutTiers(t *testing.T) {
	t.Run("podium shares are fixed", func(t *testing.T) {
		tiers := BuildPayoutTiers(200)
		assert.Equal(t, domain.PayoutTier{Rank: 1, PercentBps: 2500}, tiers[0])
		assert.Equal(t, domain.PayoutTier{Rank: 2, PercentBps: 1500}, tiers[1])
		assert.Equal(t, domain.PayoutTier{Rank: 3, PercentBps: 500}, tiers[2])
	})

	t.Run("podium only when field is small", func(t *testing.T) {
		tiers := BuildPayoutTiers(40)
		assert.Len(t, tiers, 3)
		assert.Equal(t, 4500, domain.TotalBps(tiers))
	})

	t.Run("tail splits the remaining share exactly", func(t *testing.T) {
		for _, participants := range []int{61, 100, 137, 500, 999, 1000} {
			tiers := BuildPayoutTiers(participants)
			assert.Len(t, tiers, PaidPlaces(participants))
			assert.Equal(t, 10000, domain.TotalBps(tiers), "participants=%d", participants)
		}
	})

	t.Run("ranks are contiguous from one", func(t *testing.T) {
		tiers := BuildPayoutTiers(300)
		for i, tier := range tiers {
			assert.Equal(t, i+1, tier.Rank)
		}
	})

	t.Run("small tail splits evenly", func(t *testing.T) {
		tiers := BuildPayoutTiers(100)
		assert.Equal(t, 2750, tiers[3].PercentBps)
		assert.Equal(t, 2750, tiers[4].PercentBps)
	})

	t.Run("every tail share is positive", func(t *testing.T) {
		for _, tier := range BuildPayoutTiers(1000)[3:] {
			assert.Positive(t, tier.PercentBps)
		}
	})

	t.Run("built tiers pass the rollover validation", func(t *testing.T) {
		for _, participants := range []int{0, 3, 40, 61, 100, 250, 1000} {
			tiers := BuildPayoutTiers(participants)
			assert.NoError(t, domain.ValidatePayoutTiers(tiers), "participants=%d", participants)
		}
	})
}

func TestPrizePool(t *testing.T) {
	assert.Equal(t, int64(25000), PrizePool(250, 100))
	assert.Equal(t, int64(0), PrizePool(0, 100))
}
