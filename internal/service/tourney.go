package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/repository"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/standings"
)

// TourneyService serves the read surface: wallet state, live
// standings, and finished-tournament results.
type TourneyService struct {
	pool         *pgxpool.Pool
	tournaments  repository.TournamentRepository
	wallets      repository.WalletRepository
	payouts      repository.PayoutRepository
	transactions repository.TransactionRepository
	subscribers  repository.SubscriberRepository
}

// NewTourneyService creates a new TourneyService.
func NewTourneyService(
	pool *pgxpool.Pool,
	tournaments repository.TournamentRepository,
	wallets repository.WalletRepository,
	payouts repository.PayoutRepository,
	transactions repository.TransactionRepository,
	subscribers repository.SubscriberRepository,
) *TourneyService {
	return &TourneyService{
		pool:         pool,
		tournaments:  tournaments,
		wallets:      wallets,
		payouts:      payouts,
		transactions: transactions,
		subscribers:  subscribers,
	}
}

// ActiveTournament returns the running tournament with its payout tiers.
func (s *TourneyService) ActiveTournament(ctx context.Context) (*domain.Tournament, error) {
	active, err := s.tournaments.FindActive(ctx, s.pool)
	if err != nil {
		return nil, domain.ErrInternal("find active tournament", err)
	}
	if active == nil {
		return nil, domain.ErrNotFound("active tournament", "current")
	}
	return active, nil
}

// MyWallet returns the caller's wallet for the active tournament.
func (s *TourneyService) MyWallet(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	active, err := s.ActiveTournament(ctx)
	if err != nil {
		return nil, err
	}
	wallet, err := s.wallets.FindByUserAndTournament(ctx, s.pool, userID, active.ID)
	if err != nil {
		return nil, domain.ErrInternal("find wallet", err)
	}
	if wallet == nil {
		return nil, domain.ErrWalletNotFound(userID.String())
	}
	return wallet, nil
}

// MyTransactions returns the caller's recent journal entries.
func (s *TourneyService) MyTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	wallet, err := s.MyWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries, err := s.transactions.ListByWallet(ctx, s.pool, wallet.ID, limit)
	if err != nil {
		return nil, domain.ErrInternal("list transactions", err)
	}
	return entries, nil
}

// LiveStandings ranks the active tournament's wallets on the fly.
// Final ranks are only authoritative once the finalizer persists them.
func (s *TourneyService) LiveStandings(ctx context.Context) ([]standings.Standing, error) {
	active, err := s.ActiveTournament(ctx)
	if err != nil {
		return nil, err
	}
	wallets, err := s.wallets.ListByTournament(ctx, s.pool, active.ID)
	if err != nil {
		return nil, domain.ErrInternal("list wallets", err)
	}
	return standings.Rank(wallets), nil
}

// TournamentResults returns a finished tournament and its payouts.
func (s *TourneyService) TournamentResults(ctx context.Context, tournamentID uuid.UUID) (*domain.Tournament, []domain.Payout, error) {
	t, err := s.tournaments.FindByID(ctx, s.pool, tournamentID)
	if err != nil {
		return nil, nil, domain.ErrInternal("find tournament", err)
	}
	if t == nil {
		return nil, nil, domain.ErrNotFound("tournament", tournamentID.String())
	}
	payouts, err := s.payouts.ListByTournament(ctx, s.pool, tournamentID)
	if err != nil {
		return nil, nil, domain.ErrInternal("list payouts", err)
	}
	return t, payouts, nil
}

// Profile returns a subscriber's directory record.
func (s *TourneyService) Profile(ctx context.Context, userID uuid.UUID) (*domain.Subscriber, error) {
	sub, err := s.subscribers.FindByID(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("find subscriber", err)
	}
	if sub == nil {
		return nil, domain.ErrNotFound("subscriber", userID.String())
	}
	return sub, nil
}
