package standings

import (
	"bytes"
	"sort"

	"github.com/google/uuid"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
)

// Standing is one ranked wallet in a tournament's final standings.
type Standing struct {
	WalletID uuid.UUID `json:"wallet_id"`
	UserID   uuid.UUID `json:"user_id"`
	Score    int64     `json:"score"`
	Rank     int       `json:"rank"`
}

// Rank orders wallets by total score descending and assigns competition
// ranks: equal scores share a rank and the next distinct score skips the
// tied positions, so scores 100/100/90/80 rank 1/1/3/4.
//
// Ties order deterministically by user ID so repeated runs over the same
// wallets always produce the same standings.
func Rank(wallets []domain.Wallet) []Standing {
	out := make([]Standing, 0, len(wallets))
	for i := range wallets {
		w := &wallets[i]
		out = append(out, Standing{
			WalletID: w.ID,
			UserID:   w.UserID,
			Score:    w.TotalScore(),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return bytes.Compare(out[i].UserID[:], out[j].UserID[:]) < 0
	})

	for i := range out {
		if i > 0 && out[i].Score == out[i-1].Score {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	return out
}
