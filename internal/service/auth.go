package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/auth"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/bonus"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/domain"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/repository"
)

// AuthService handles subscriber registration and login. Login runs the
// streak bonus processor, so the first login of a day also credits coins.
type AuthService struct {
	pool        *pgxpool.Pool
	subscribers repository.SubscriberRepository
	wallets     repository.WalletRepository
	tournaments repository.TournamentRepository
	bonuses     *bonus.Processor
	jwtMgr      *auth.JWTManager
	grant       int64
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	pool *pgxpool.Pool,
	subscribers repository.SubscriberRepository,
	wallets repository.WalletRepository,
	tournaments repository.TournamentRepository,
	bonuses *bonus.Processor,
	jwtMgr *auth.JWTManager,
	startingGrant int64,
) *AuthService {
	return &AuthService{
		pool:        pool,
		subscribers: subscribers,
		wallets:     wallets,
		tournaments: tournaments,
		bonuses:     bonuses,
		jwtMgr:      jwtMgr,
		grant:       startingGrant,
	}
}

// RegisterInput holds the registration request fields.
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token      string    `json:"token"`
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	Streak     int       `json:"streak"`
	LoginBonus int64     `json:"login_bonus,omitempty"`
}

// Register creates a subscriber and, when a tournament is running,
// a wallet funded with the starting grant.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrValidation("password must be at least 8 characters")
	}
	if input.DisplayName == "" {
		return nil, domain.ErrValidation("display name is required")
	}

	existing, _, err := s.subscribers.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find subscriber", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	sub := &domain.Subscriber{
		ID:          uuid.New(),
		Email:       input.Email,
		DisplayName: input.DisplayName,
		Active:      true,
	}
	if err := s.subscribers.Create(ctx, tx, sub, string(hash)); err != nil {
		return nil, domain.ErrInternal("create subscriber", err)
	}

	// Mid-period signups join the running tournament immediately.
	active, err := s.tournaments.FindActive(ctx, tx)
	if err != nil {
		return nil, domain.ErrInternal("find active tournament", err)
	}
	if active != nil {
		if err := s.wallets.ResetForTournament(ctx, tx, sub.ID, active.ID, s.grant); err != nil {
			return nil, domain.ErrInternal("create wallet", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	token, err := s.jwtMgr.GenerateToken(auth.RealmPlayer, sub.ID, sub.Email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{Token: token, UserID: sub.ID, Email: sub.Email}, nil
}

// LoginInput holds the login request fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a subscriber, advances the login streak, and
// returns a JWT.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	sub, hash, err := s.subscribers.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find subscriber", err)
	}
	if sub == nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}
	if !sub.Active {
		return nil, domain.ErrUnauthorized("account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized("invalid credentials")
	}

	login, err := s.bonuses.OnLogin(ctx, sub.ID, time.Now())
	if err != nil {
		// A missing wallet or a gap between periods must not lock
		// subscribers out; they just miss the day's bonus. The streak
		// advance has already committed, and OnLogin returns it even
		// when the credit was skipped.
		var appErr *domain.AppError
		if !errors.As(err, &appErr) || (appErr.Code != "OPERATION_NOT_SUPPORTED" && appErr.Code != "WALLET_NOT_FOUND") {
			return nil, err
		}
		if login == nil {
			login = &bonus.LoginResult{Streak: sub.CurrentStreak}
		}
	}

	token, err := s.jwtMgr.GenerateToken(auth.RealmPlayer, sub.ID, sub.Email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{
		Token:      token,
		UserID:     sub.ID,
		Email:      sub.Email,
		Streak:     login.Streak,
		LoginBonus: login.Bonus,
	}, nil
}
