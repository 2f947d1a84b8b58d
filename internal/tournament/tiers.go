package tournament

import "github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"

// Fixed shares for the podium places, in basis points. The remainder
// spreads evenly over the tail of paid ranks.
const (
	rank1Bps = 2500
	rank2Bps = 1500
	rank3Bps = 500
	tailBps  = 5500
)

// PaidPlaces returns how many standings earn a payout: 5% of the field,
// rounded up, never fewer than the three podium places.
func PaidPlaces(participantCount int) int {
	n := (participantCount*5 + 99) / 100
	if n < 3 {
		return 3
	}
	return n
}

// BuildPayoutTiers constructs the tier table for a period with the
// given field size. The podium takes 25/15/5 percent and the remaining
// 55 percent splits across ranks 4..N. Splitting uses cumulative floors
// so the tiers always sum to at most 10000 bps with no drift.
func BuildPayoutTiers(participantCount int) []domain.PayoutTier {
	places := PaidPlaces(participantCount)
	tiers := []domain.PayoutTier{
		{Rank: 1, PercentBps: rank1Bps},
		{Rank: 2, PercentBps: rank2Bps},
		{Rank: 3, PercentBps: rank3Bps},
	}

	tail := places - 3
	if tail <= 0 {
		return tiers
	}

	prev := 0
	for i := 1; i <= tail; i++ {
		cum := tailBps * i / tail
		tiers = append(tiers, domain.PayoutTier{Rank: 3 + i, PercentBps: cum - prev})
		prev = cum
	}
	return tiers
}

// PrizePool computes the period prize pool from the active subscriber
// count and the per-subscriber contribution.
func PrizePool(activeSubscribers int, perSubscriberContribution int64) int64 {
	return int64(activeSubscribers) * perSubscriberContribution
}
