package standings

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
)

func standingsWithRanks(ranks ...int) []Standing {
	out := make([]Standing, len(ranks))
	for i, r := range ranks {
		out[i] = Standing{WalletID: uuid.New(), UserID: uuid.New(), Rank: r}
	}
	return out
}

func TestTierAmounts(t *testing.T) {
	t.Run("amounts telescope to the covered share", func(t *testing.T) {
		tiers := []domain.PayoutTier{
			{Rank: 1, PercentBps: 2500},
			{Rank: 2, PercentBps: 1500},
			{Rank: 3, PercentBps: 500},
		}
		amounts := tierAmounts(100000, tiers)
		assert.Equal(t, int64(25000), amounts[1])
		assert.Equal(t, int64(15000), amounts[2])
		assert.Equal(t, int64(5000), amounts[3])
	})

	t.Run("awkward pool sizes never drift", func(t *testing.T) {
		tiers := []domain.PayoutTier{
			{Rank: 1, PercentBps: 3333},
			{Rank: 2, PercentBps: 3333},
			{Rank: 3, PercentBps: 3334},
		}
		for _, pool := range []int64{1, 7, 99, 1001, 54321} {
			amounts := tierAmounts(pool, tiers)
			var total int64
			for _, a := range amounts {
				total += a
			}
			assert.Equal(t, pool, total, "pool=%d", pool)
		}
	})
}

func TestDistribute(t *testing.T) {
	podium := []domain.PayoutTier{
		{Rank: 1, PercentBps: 2500},
		{Rank: 2, PercentBps: 1500},
		{Rank: 3, PercentBps: 500},
	}

	t.Run("no ties pays tier amounts directly", func(t *testing.T) {
		awards := Distribute(100000, podium, standingsWithRanks(1, 2, 3, 4))
		require.Len(t, awards, 3)
		assert.Equal(t, int64(25000), awards[0].Amount)
		assert.Equal(t, int64(15000), awards[1].Amount)
		assert.Equal(t, int64(5000), awards[2].Amount)
	})

	t.Run("two way tie for first pools ranks one and two", func(t *testing.T) {
		awards := Distribute(1000, podium, standingsWithRanks(1, 1, 3))
		require.Len(t, awards, 3)
		// 25% + 15% of 1000 pooled and split: 200 each.
		assert.Equal(t, int64(200), awards[0].Amount)
		assert.Equal(t, int64(200), awards[1].Amount)
		assert.Equal(t, int64(50), awards[2].Amount)
	})

	t.Run("indivisible remainder goes to earliest entries", func(t *testing.T) {
		tiers := []domain.PayoutTier{
			{Rank: 1, PercentBps: 5000},
			{Rank: 2, PercentBps: 5000},
		}
		// Pool of 101 over a two-way tie: 101 total, 51 and 50.
		awards := Distribute(101, tiers, standingsWithRanks(1, 1))
		require.Len(t, awards, 2)
		assert.Equal(t, int64(51), awards[0].Amount)
		assert.Equal(t, int64(50), awards[1].Amount)
	})

	t.Run("tie spanning the last paid place consumes partial tiers", func(t *testing.T) {
		// Three tied at rank 2 occupy positions 2, 3, and 4; only
		// positions 2 and 3 are paid, so the group splits those.
		awards := Distribute(1000, podium, standingsWithRanks(1, 2, 2, 2))
		require.Len(t, awards, 4)
		assert.Equal(t, int64(250), awards[0].Amount)
		var tied int64
		for _, a := range awards[1:] {
			tied += a.Amount
		}
		assert.Equal(t, int64(200), tied)
	})

	t.Run("total never exceeds the pool", func(t *testing.T) {
		for _, pool := range []int64{1, 13, 999, 12345} {
			awards := Distribute(pool, podium, standingsWithRanks(1, 1, 1, 4, 5))
			var total int64
			for _, a := range awards {
				total += a.Amount
			}
			assert.LessOrEqual(t, total, pool, "pool=%d", pool)
		}
	})

	t.Run("conservation against tier totals", func(t *testing.T) {
		tiers := []domain.PayoutTier{
			{Rank: 1, PercentBps: 2500},
			{Rank: 2, PercentBps: 1500},
			{Rank: 3, PercentBps: 500},
			{Rank: 4, PercentBps: 2750},
			{Rank: 5, PercentBps: 2750},
		}
		pool := int64(54321)
		amounts := tierAmounts(pool, tiers)
		var tierTotal int64
		for _, a := range amounts {
			tierTotal += a
		}

		awards := Distribute(pool, tiers, standingsWithRanks(1, 2, 2, 4, 5, 6))
		var awarded int64
		for _, a := range awards {
			awarded += a.Amount
		}
		assert.Equal(t, tierTotal, awarded)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Nil(t, Distribute(0, podium, standingsWithRanks(1)))
		assert.Nil(t, Distribute(1000, nil, standingsWithRanks(1)))
		assert.Nil(t, Distribute(1000, podium, nil))
	})
}
