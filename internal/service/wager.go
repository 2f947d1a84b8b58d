package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/ledger"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/repository"
)

// WagerService handles wager placement and cancellation against the
// active tournament's wallet.
type WagerService struct {
	pool        *pgxpool.Pool
	engine      *ledger.Engine
	tournaments repository.TournamentRepository
	wallets     repository.WalletRepository
	wagers      repository.WagerRepository
	games       repository.GameRepository
}

// NewWagerService creates a new WagerService.
func NewWagerService(
	pool *pgxpool.Pool,
	engine *ledger.Engine,
	tournaments repository.TournamentRepository,
	wallets repository.WalletRepository,
	wagers repository.WagerRepository,
	games repository.GameRepository,
) *WagerService {
	return &WagerService{
		pool:        pool,
		engine:      engine,
		tournaments: tournaments,
		wallets:     wallets,
		wagers:      wagers,
		games:       games,
	}
}

// activeWallet resolves the caller's wallet in the active tournament.
func (s *WagerService) activeWallet(ctx context.Context, db repository.DBTX, userID uuid.UUID) (*domain.Wallet, error) {
	active, err := s.tournaments.FindActive(ctx, db)
	if err != nil {
		return nil, domain.ErrInternal("find active tournament", err)
	}
	if active == nil {
		return nil, domain.ErrTournamentInactive("none")
	}
	wallet, err := s.wallets.FindByUserAndTournament(ctx, db, userID, active.ID)
	if err != nil {
		return nil, domain.ErrInternal("find wallet", err)
	}
	if wallet == nil {
		return nil, domain.ErrWalletNotFound(userID.String())
	}
	return wallet, nil
}

// PlaceWager stakes coins from the caller's active wallet on a game.
func (s *WagerService) PlaceWager(ctx context.Context, userID uuid.UUID, draft domain.WagerDraft) (*domain.CommandResult, error) {
	game, err := s.games.FindByID(ctx, s.pool, draft.GameID)
	if err != nil {
		return nil, domain.ErrInternal("find game", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	wallet, err := s.activeWallet(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.ExecutePlaceWager(ctx, tx, domain.PlaceWagerParams{
		WalletID: wallet.ID,
		UserID:   userID,
		Draft:    draft,
	}, game, time.Now())
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}
	return result, nil
}

// CancelWager voids a pending wager and returns its stake.
func (s *WagerService) CancelWager(ctx context.Context, userID, wagerID uuid.UUID) (*domain.CommandResult, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	wallet, err := s.activeWallet(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.ExecuteCancelWager(ctx, tx, domain.CancelWagerParams{
		WalletID: wallet.ID,
		WagerID:  wagerID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}
	return result, nil
}

// ListMyWagers returns the caller's wagers in the active tournament,
// newest first.
func (s *WagerService) ListMyWagers(ctx context.Context, userID uuid.UUID) ([]domain.Wager, error) {
	wallet, err := s.activeWallet(ctx, s.pool, userID)
	if err != nil {
		return nil, err
	}
	wagers, err := s.wagers.ListByUserAndTournament(ctx, s.pool, userID, wallet.TournamentID)
	if err != nil {
		return nil, domain.ErrInternal("list wagers", err)
	}
	return wagers, nil
}
