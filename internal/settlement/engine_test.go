package settlement

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/ledger"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/repository"
)

// fakeTx satisfies pgx.Tx for engine tests. The repositories below
// never touch the tx, so only Commit and Rollback have real bodies.
type fakeTx struct {
	pgx.Tx
	committed bool
}

func (t *fakeTx) Commit(context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(context.Context) error { return nil }

type fakeDB struct {
	repository.DB
}

func (d *fakeDB) Begin(context.Context) (pgx.Tx, error) { return &fakeTx{}, nil }

type memGames struct {
	repository.GameRepository
	game *domain.Game
}

func (m *memGames) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Game, error) {
	if m.game == nil || m.game.ID != id {
		return nil, nil
	}
	cp := *m.game
	return &cp, nil
}

func (m *memGames) RecordFinalScore(_ context.Context, _ repository.DBTX, _ uuid.UUID, home, away int) error {
	m.game.HomeScore = &home
	m.game.AwayScore = &away
	m.game.Final = true
	return nil
}

// memWagers lists every wager staked on the game regardless of status,
// the way a redelivered outcome message can observe a snapshot taken
// before the first run committed. The pending-status guard is the only
// thing standing between that and a double credit.
type memWagers struct {
	repository.WagerRepository
	byID map[uuid.UUID]*domain.Wager
}

func (m *memWagers) ListPendingByGame(_ context.Context, _ repository.DBTX, gameID uuid.UUID) ([]domain.Wager, error) {
	var out []domain.Wager
	for _, w := range m.byID {
		if w.GameID == gameID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (m *memWagers) TransitionFromPending(_ context.Context, _ pgx.Tx, wagerID uuid.UUID, to domain.WagerStatus) (bool, error) {
	w, ok := m.byID[wagerID]
	if !ok || w.Status != domain.WagerPending {
		return false, nil
	}
	w.Status = to
	return true, nil
}

type memWallets struct {
	repository.WalletRepository
	byID map[uuid.UUID]*domain.Wallet
}

func (m *memWallets) FindByUserAndTournament(_ context.Context, _ repository.DBTX, userID, tournamentID uuid.UUID) (*domain.Wallet, error) {
	for _, w := range m.byID {
		if w.UserID == userID && w.TournamentID == tournamentID {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
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
	cp := *w
	return &cp, nil
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

type settleFixture struct {
	engine  *Engine
	games   *memGames
	wagers  *memWagers
	wallets *memWallets
	journal *memJournal
}

func newSettleFixture(policy PushPolicy) *settleFixture {
	f := &settleFixture{
		games:   &memGames{},
		wagers:  &memWagers{byID: map[uuid.UUID]*domain.Wager{}},
		wallets: &memWallets{byID: map[uuid.UUID]*domain.Wallet{}},
		journal: &memJournal{},
	}
	outbox := &memOutbox{}
	ledgerEngine := ledger.NewEngine(f.wallets, f.wagers, f.journal, outbox)
	f.engine = NewEngine(&fakeDB{}, ledgerEngine, f.games, f.wagers, f.wallets, outbox,
		policy, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func (f *settleFixture) seed(stake int64, side domain.Side, spreadTenths int) (*domain.Wallet, *domain.Wager) {
	game := &domain.Game{ID: uuid.New(), HomeTeam: "ATL", AwayTeam: "BOS"}
	f.games.game = game

	wallet := &domain.Wallet{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		TournamentID:   uuid.New(),
		CoinsRemaining: 1000 - stake,
		CoinsBet:       stake,
		WagersPlaced:   1,
	}
	f.wallets.byID[wallet.ID] = wallet

	wager := &domain.Wager{
		ID:           uuid.New(),
		UserID:       wallet.UserID,
		GameID:       game.ID,
		TournamentID: wallet.TournamentID,
		Amount:       stake,
		SpreadTenths: spreadTenths,
		BackedSide:   side,
		Status:       domain.WagerPending,
	}
	f.wagers.byID[wager.ID] = wager
	return wallet, wager
}

func TestSettleGameDoubleDelivery(t *testing.T) {
	ctx := context.Background()
	f := newSettleFixture(PushAsLoss)
	wallet, wager := f.seed(300, domain.SideHome, -35)

	first, err := f.engine.SettleGame(ctx, f.games.game.ID, 24, 14)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Won)
	assert.Equal(t, 1, first.Settled)
	assert.Equal(t, 0, first.Skipped)

	got := f.wallets.byID[wallet.ID]
	assert.Equal(t, int64(1300), got.CoinsRemaining)
	assert.Equal(t, int64(300), got.CoinsWon)
	assert.Equal(t, domain.WagerWon, f.wagers.byID[wager.ID].Status)
	require.Len(t, f.journal.entries, 1)

	// A redelivered outcome message re-runs settlement. The status
	// guard must swallow it without touching the wallet again.
	second, err := f.engine.SettleGame(ctx, f.games.game.ID, 24, 14)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Won)
	assert.Equal(t, 0, second.Settled)
	assert.Equal(t, 1, second.Skipped)

	got = f.wallets.byID[wallet.ID]
	assert.Equal(t, int64(1300), got.CoinsRemaining)
	assert.Equal(t, int64(300), got.CoinsWon)
	assert.Len(t, f.journal.entries, 1)
}

func TestSettleGameLoss(t *testing.T) {
	ctx := context.Background()
	f := newSettleFixture(PushAsLoss)
	wallet, wager := f.seed(300, domain.SideAway, -50)

	result, err := f.engine.SettleGame(ctx, f.games.game.ID, 24, 14)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Lost)

	// A loss is journal-only: the stake already left coins_remaining
	// at placement and stays in coins_bet for the season record.
	got := f.wallets.byID[wallet.ID]
	assert.Equal(t, int64(700), got.CoinsRemaining)
	assert.Equal(t, int64(300), got.CoinsBet)
	assert.Equal(t, domain.WagerLost, f.wagers.byID[wager.ID].Status)
	require.Len(t, f.journal.entries, 1)
	assert.Equal(t, domain.TxWagerLost, f.journal.entries[0].Type)
}

func TestSettleGamePushRefund(t *testing.T) {
	ctx := context.Background()
	f := newSettleFixture(PushAsRefund)
	wallet, wager := f.seed(300, domain.SideHome, -100)

	// Home wins by exactly the spread: a push.
	result, err := f.engine.SettleGame(ctx, f.games.game.ID, 24, 14)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Refunded)

	got := f.wallets.byID[wallet.ID]
	assert.Equal(t, int64(1000), got.CoinsRemaining)
	assert.Equal(t, int64(0), got.CoinsBet)
	assert.Equal(t, domain.WagerCancelled, f.wagers.byID[wager.ID].Status)
}

func TestSettleUnknownGame(t *testing.T) {
	ctx := context.Background()
	f := newSettleFixture(PushAsLoss)

	_, err := f.engine.SettleGame(ctx, uuid.New(), 10, 7)
	require.Error(t, err)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
