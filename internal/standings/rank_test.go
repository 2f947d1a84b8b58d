package standings

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
)

func walletWithScore(remaining, won int64) domain.Wallet {
	return domain.Wallet{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		CoinsRemaining: remaining,
		CoinsWon:       won,
	}
}

func TestRank(t *testing.T) {
	t.Run("orders by total score descending", func(t *testing.T) {
		wallets := []domain.Wallet{
			walletWithScore(100, 0),
			walletWithScore(500, 200),
			walletWithScore(300, 50),
		}
		ranked := Rank(wallets)
		require.Len(t, ranked, 3)
		assert.Equal(t, []int64{700, 350, 100}, []int64{ranked[0].Score, ranked[1].Score, ranked[2].Score})
		assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
	})

	t.Run("score counts coins remaining plus coins won", func(t *testing.T) {
		conservative := walletWithScore(1000, 0)
		gambler := walletWithScore(0, 999)
		ranked := Rank([]domain.Wallet{gambler, conservative})
		assert.Equal(t, conservative.ID, ranked[0].WalletID)
	})

	t.Run("ties share a rank and skip positions", func(t *testing.T) {
		wallets := []domain.Wallet{
			walletWithScore(100, 0),
			walletWithScore(100, 0),
			walletWithScore(90, 0),
			walletWithScore(80, 0),
		}
		ranked := Rank(wallets)
		assert.Equal(t, []int{1, 1, 3, 4}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank, ranked[3].Rank})
	})

	t.Run("deterministic order within ties", func(t *testing.T) {
		wallets := []domain.Wallet{
			walletWithScore(100, 0),
			walletWithScore(100, 0),
			walletWithScore(100, 0),
		}
		first := Rank(wallets)
		// Shuffled input produces identical output.
		shuffled := []domain.Wallet{wallets[2], wallets[0], wallets[1]}
		second := Rank(shuffled)
		assert.Equal(t, first, second)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Rank(nil))
	})
}
