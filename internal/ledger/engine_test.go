package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/repository"
)

// In-memory repositories. The engine threads its pgx.Tx straight
// through to the repository layer, so these ignore the tx and a nil
// one is fine in tests. Methods outside the engine's reach stay on
// the embedded interface.

type memWallets struct {
	repository.WalletRepository
	byID map[uuid.UUID]*domain.Wallet
}

func (m *memWallets) LockForUpdate(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	w, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (m *memWallets) ApplyDelta(_ context.Context, _ pgx.Tx, walletID uuid.UUID, delta domain.WalletUpdate) (*domain.Wallet, error) {
	w := m.byID[walletID]
	w.CoinsRemaining += delta.CoinsRemaining
	w.CoinsBet += delta.CoinsBet
	w.CoinsWon += delta.CoinsWon
	w.WagersPlaced += delta.WagersPlaced
	w.WagersWon += delta.WagersWon
	if w.CoinsRemaining < 0 {
		return nil, assert.AnError
	}
	cp := *w
	return &cp, nil
}

type memWagers struct {
	repository.WagerRepository
	byID map[uuid.UUID]*domain.Wager
}

func (m *memWagers) Insert(_ context.Context, _ repository.DBTX, w *domain.Wager) error {
	cp := *w
	m.byID[w.ID] = &cp
	return nil
}

func (m *memWagers) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Wager, error) {
	w, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (m *memWagers) TransitionFromPending(_ context.Context, _ pgx.Tx, wagerID uuid.UUID, to domain.WagerStatus) (bool, error) {
	w, ok := m.byID[wagerID]
	if !ok || w.Status != domain.WagerPending {
		return false, nil
	}
	w.Status = to
	return true, nil
}

type memJournal struct {
	repository.TransactionRepository
	entries []domain.Transaction
}

func (m *memJournal) Insert(_ context.Context, _ repository.DBTX, params domain.PostEntryParams, after *domain.Wallet) (*domain.Transaction, error) {
	entry := domain.Transaction{
		ID:             uuid.New(),
		WalletID:       params.WalletID,
		Type:           params.Type,
		Amount:         params.Amount,
		RemainingAfter: after.CoinsRemaining,
		BetAfter:       after.CoinsBet,
		WonAfter:       after.CoinsWon,
		WagerID:        params.WagerID,
		Metadata:       params.Metadata,
	}
	m.entries = append(m.entries, entry)
	return &entry, nil
}

type memOutbox struct {
	repository.OutboxRepository
	drafts []domain.OutboxDraft
}

func (m *memOutbox) Insert(_ context.Context, _ repository.DBTX, draft domain.OutboxDraft) error {
	m.drafts = append(m.drafts, draft)
	return nil
}

type engineFixture struct {
	engine  *Engine
	wallets *memWallets
	wagers  *memWagers
	journal *memJournal
	outbox  *memOutbox
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		wallets: &memWallets{byID: map[uuid.UUID]*domain.Wallet{}},
		wagers:  &memWagers{byID: map[uuid.UUID]*domain.Wager{}},
		journal: &memJournal{},
		outbox:  &memOutbox{},
	}
	f.engine = NewEngine(f.wallets, f.wagers, f.journal, f.outbox)
	return f
}

func (f *engineFixture) seedWallet(coins int64) *domain.Wallet {
	w := &domain.Wallet{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		TournamentID:   uuid.New(),
		CoinsRemaining: coins,
	}
	f.wallets.byID[w.ID] = w
	return w
}

func openGame() *domain.Game {
	return &domain.Game{
		ID:       uuid.New(),
		HomeTeam: "ATL",
		AwayTeam: "BOS",
		StartsAt: time.Now().Add(2 * time.Hour),
		CutoffAt: time.Now().Add(time.Hour),
	}
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestPlaceAndCancelRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()
	wallet := f.seedWallet(1000)
	game := openGame()

	placed, err := f.engine.ExecutePlaceWager(ctx, nil, domain.PlaceWagerParams{
		WalletID: wallet.ID,
		UserID:   wallet.UserID,
		Draft:    domain.WagerDraft{GameID: game.ID, Amount: 300, SpreadTenths: -35, BackedSide: domain.SideHome},
	}, game, time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(700), placed.Wallet.CoinsRemaining)
	assert.Equal(t, int64(300), placed.Wallet.CoinsBet)
	assert.Equal(t, 1, placed.Wallet.WagersPlaced)
	assert.Equal(t, domain.WagerPending, placed.Wager.Status)

	cancelled, err := f.engine.ExecuteCancelWager(ctx, nil, domain.CancelWagerParams{
		WalletID: wallet.ID,
		WagerID:  placed.Wager.ID,
	})
	require.NoError(t, err)

	// The cancel restores the wallet to its pre-wager state exactly.
	assert.Equal(t, int64(1000), cancelled.Wallet.CoinsRemaining)
	assert.Equal(t, int64(0), cancelled.Wallet.CoinsBet)
	assert.Equal(t, 0, cancelled.Wallet.WagersPlaced)
	assert.Equal(t, domain.WagerCancelled, cancelled.Wager.Status)

	require.Len(t, f.journal.entries, 2)
	assert.Equal(t, domain.TxWagerPlaced, f.journal.entries[0].Type)
	assert.Equal(t, domain.TxWagerCancelled, f.journal.entries[1].Type)
}

func TestPlaceWagerInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()
	wallet := f.seedWallet(200)
	game := openGame()

	_, err := f.engine.ExecutePlaceWager(ctx, nil, domain.PlaceWagerParams{
		WalletID: wallet.ID,
		UserID:   wallet.UserID,
		Draft:    domain.WagerDraft{GameID: game.ID, Amount: 500, BackedSide: domain.SideAway},
	}, game, time.Now())
	require.Error(t, err)
	assert.Equal(t, "INSUFFICIENT_FUNDS", appCode(t, err))

	// Nothing moved and nothing was journaled.
	assert.Equal(t, int64(200), f.wallets.byID[wallet.ID].CoinsRemaining)
	assert.Empty(t, f.journal.entries)
	assert.Empty(t, f.wagers.byID)
}

func TestPlaceWagerAfterCutoff(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()
	wallet := f.seedWallet(1000)
	game := openGame()

	_, err := f.engine.ExecutePlaceWager(ctx, nil, domain.PlaceWagerParams{
		WalletID: wallet.ID,
		UserID:   wallet.UserID,
		Draft:    domain.WagerDraft{GameID: game.ID, Amount: 100, BackedSide: domain.SideHome},
	}, game, game.CutoffAt.Add(time.Minute))
	require.Error(t, err)
	assert.Equal(t, "GAME_LOCKED", appCode(t, err))
	assert.Equal(t, int64(1000), f.wallets.byID[wallet.ID].CoinsRemaining)
}

func TestCancelWagerFromPreviousPeriod(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()

	// A pending wager left over from a closed period, and the owner's
	// fresh wallet in the current period holding only the grant.
	wallet := f.seedWallet(1000)
	stale := &domain.Wager{
		ID:           uuid.New(),
		UserID:       wallet.UserID,
		GameID:       uuid.New(),
		TournamentID: uuid.New(),
		Amount:       500,
		BackedSide:   domain.SideHome,
		Status:       domain.WagerPending,
	}
	f.wagers.byID[stale.ID] = stale

	_, err := f.engine.ExecuteCancelWager(ctx, nil, domain.CancelWagerParams{
		WalletID: wallet.ID,
		WagerID:  stale.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appCode(t, err))

	// The fresh wallet must be untouched: no phantom refund, no
	// negative bet counters.
	got := f.wallets.byID[wallet.ID]
	assert.Equal(t, int64(1000), got.CoinsRemaining)
	assert.Equal(t, int64(0), got.CoinsBet)
	assert.Equal(t, 0, got.WagersPlaced)
	assert.Equal(t, domain.WagerPending, f.wagers.byID[stale.ID].Status)
	assert.Empty(t, f.journal.entries)
}

func TestCancelWagerOwnedByAnotherUser(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()
	wallet := f.seedWallet(1000)

	other := &domain.Wager{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		GameID:       uuid.New(),
		TournamentID: wallet.TournamentID,
		Amount:       200,
		BackedSide:   domain.SideAway,
		Status:       domain.WagerPending,
	}
	f.wagers.byID[other.ID] = other

	_, err := f.engine.ExecuteCancelWager(ctx, nil, domain.CancelWagerParams{
		WalletID: wallet.ID,
		WagerID:  other.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appCode(t, err))
	assert.Equal(t, int64(1000), f.wallets.byID[wallet.ID].CoinsRemaining)
}

func TestCancelSettledWager(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()
	wallet := f.seedWallet(1000)
	game := openGame()

	placed, err := f.engine.ExecutePlaceWager(ctx, nil, domain.PlaceWagerParams{
		WalletID: wallet.ID,
		UserID:   wallet.UserID,
		Draft:    domain.WagerDraft{GameID: game.ID, Amount: 300, BackedSide: domain.SideHome},
	}, game, time.Now())
	require.NoError(t, err)

	f.wagers.byID[placed.Wager.ID].Status = domain.WagerWon

	_, err = f.engine.ExecuteCancelWager(ctx, nil, domain.CancelWagerParams{
		WalletID: wallet.ID,
		WagerID:  placed.Wager.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "CANNOT_CANCEL", appCode(t, err))

	// The losing transition must not refund.
	got := f.wallets.byID[wallet.ID]
	assert.Equal(t, int64(700), got.CoinsRemaining)
	assert.Equal(t, int64(300), got.CoinsBet)
}

func TestCreditWinPaysEvenMoney(t *testing.T) {
	ctx := context.Background()
	f := newEngineFixture()
	wallet := f.seedWallet(700)
	wallet.CoinsBet = 300
	wallet.WagersPlaced = 1
	wagerID := uuid.New()

	result, err := f.engine.ExecuteCreditWin(ctx, nil, domain.CreditWinParams{
		WalletID: wallet.ID,
		WagerID:  wagerID,
		Amount:   300,
	})
	require.NoError(t, err)

	// Stake back plus equal winnings; only the profit counts as won.
	assert.Equal(t, int64(1300), result.Wallet.CoinsRemaining)
	assert.Equal(t, int64(300), result.Wallet.CoinsWon)
	assert.Equal(t, 1, result.Wallet.WagersWon)
	assert.Equal(t, int64(1600), result.Wallet.TotalScore())
}
