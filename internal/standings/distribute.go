package standings

import (
	"sort"

	"github.com/google/uuid"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
)

// Award is one winner's share of the prize pool.
type Award struct {
	WalletID uuid.UUID `json:"wallet_id"`
	UserID   uuid.UUID `json:"user_id"`
	Rank     int       `json:"rank"`
	Amount   int64     `json:"amount"`
}

// tierAmounts converts tier shares to whole coin amounts using
// cumulative floors, so the amounts telescope and their sum is exactly
// floor(pool * totalBps / 10000) with no rounding drift.
func tierAmounts(pool int64, tiers []domain.PayoutTier) map[int]int64 {
	sorted := make([]domain.PayoutTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	amounts := make(map[int]int64, len(sorted))
	cum := 0
	var prev int64
	for _, t := range sorted {
		cum += t.PercentBps
		next := pool * int64(cum) / 10000
		amounts[t.Rank] = next - prev
		prev = next
	}
	return amounts
}

// Distribute allocates the prize pool across ranked standings. Tied
// entries pool the tier amounts their occupied positions would have
// earned and split them evenly, with any indivisible remainder going to
// the earliest entries in the group. The awarded total always equals
// the sum of the consumed tier amounts.
func Distribute(pool int64, tiers []domain.PayoutTier, ranked []Standing) []Award {
	if pool <= 0 || len(tiers) == 0 || len(ranked) == 0 {
		return nil
	}
	amounts := tierAmounts(pool, tiers)

	var awards []Award
	for start := 0; start < len(ranked); {
		end := start
		for end < len(ranked) && ranked[end].Rank == ranked[start].Rank {
			end++
		}
		group := ranked[start:end]

		// Positions start..end-1 are the standings slots this tie
		// group occupies, paid or not.
		var pooled int64
		for pos := start; pos < end; pos++ {
			pooled += amounts[pos+1]
		}
		if pooled > 0 {
			share := pooled / int64(len(group))
			remainder := pooled % int64(len(group))
			for i, s := range group {
				amt := share
				if int64(i) < remainder {
					amt++
				}
				if amt > 0 {
					awards = append(awards, Award{
						WalletID: s.WalletID,
						UserID:   s.UserID,
						Rank:     s.Rank,
						Amount:   amt,
					})
				}
			}
		}
		start = end
	}
	return awards
}
