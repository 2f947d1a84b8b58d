package app

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/auth"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/bonus"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/handler"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/infra"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/ledger"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/repository"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/service"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/settlement"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/standings"
	"github.com/theaPAULo/BettorOddsTourney-sub000/internal/tournament"
)

// Deps holds everything NewRouter needs that outlives a request.
type Deps struct {
	Pool   *pgxpool.Pool
	Cfg    *infra.Config
	JWTMgr *auth.JWTManager
	Logger *slog.Logger
}

// Core bundles the wired domain components so the API and the worker
// binaries assemble them identically.
type Core struct {
	Ledger    *ledger.Engine
	Settler   *settlement.Engine
	Lifecycle *tournament.Manager
	Finalizer *standings.Finalizer
	Bonuses   *bonus.Processor

	Wallets      repository.WalletRepository
	Wagers       repository.WagerRepository
	Tournaments  repository.TournamentRepository
	Payouts      repository.PayoutRepository
	Subscribers  repository.SubscriberRepository
	Games        repository.GameRepository
	Transactions repository.TransactionRepository
	Outbox       repository.OutboxRepository
}

// NewCore wires repositories and engines against a pool.
func NewCore(pool *pgxpool.Pool, cfg *infra.Config, logger *slog.Logger) *Core {
	c := &Core{
		Wallets:      repository.NewWalletRepository(),
		Wagers:       repository.NewWagerRepository(),
		Tournaments:  repository.NewTournamentRepository(),
		Payouts:      repository.NewPayoutRepository(),
		Subscribers:  repository.NewSubscriberRepository(),
		Games:        repository.NewGameRepository(),
		Transactions: repository.NewTransactionRepository(),
		Outbox:       repository.NewOutboxRepository(),
	}

	c.Ledger = ledger.NewEngine(c.Wallets, c.Wagers, c.Transactions, c.Outbox)
	c.Settler = settlement.NewEngine(pool, c.Ledger, c.Games, c.Wagers, c.Wallets, c.Outbox,
		settlement.PushPolicy(cfg.PushPolicy), logger)
	c.Lifecycle = tournament.NewManager(pool, c.Tournaments, c.Subscribers, c.Wallets, c.Outbox,
		cfg.StartingGrant, cfg.PerSubscriberContribution, cfg.PeriodDays, logger)
	c.Finalizer = standings.NewFinalizer(pool, c.Tournaments, c.Wallets, c.Payouts,
		c.Subscribers, c.Outbox, logger)
	c.Bonuses = bonus.NewProcessor(pool, c.Ledger, c.Subscribers, c.Tournaments, c.Wallets, logger)

	return c
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps Deps) chi.Router {
	pool := deps.Pool
	cfg := deps.Cfg
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	core := NewCore(pool, cfg, logger)

	// Services
	authSvc := service.NewAuthService(pool, core.Subscribers, core.Wallets, core.Tournaments,
		core.Bonuses, jwtMgr, cfg.StartingGrant)
	wagerSvc := service.NewWagerService(pool, core.Ledger, core.Tournaments, core.Wallets,
		core.Wagers, core.Games)
	tourneySvc := service.NewTourneyService(pool, core.Tournaments, core.Wallets, core.Payouts,
		core.Transactions, core.Subscribers)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	wagerHandler := handler.NewWagerHandler(wagerSvc)
	walletHandler := handler.NewWalletHandler(tourneySvc)
	standingsHandler := handler.NewStandingsHandler(tourneySvc)
	gameHandler := handler.NewGameHandler(pool, core.Games)
	adminHandler := handler.NewAdminHandler(pool, core.Games, core.Wallets, core.Wagers,
		core.Settler, core.Lifecycle, core.Finalizer)

	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS)
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Auth routes (no auth)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Player-authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthenticatePlayer(jwtMgr))

		r.Get("/subscribers/me", walletHandler.Profile)

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/balance", walletHandler.Balance)
			r.Get("/transactions", walletHandler.Transactions)
		})

		r.Route("/wagers", func(r chi.Router) {
			r.Post("/", wagerHandler.Place)
			r.Get("/me", wagerHandler.Mine)
			r.Delete("/{id}", wagerHandler.Cancel)
		})

		r.Get("/games", gameHandler.Upcoming)

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/current", standingsHandler.Current)
			r.Get("/current/standings", standingsHandler.Live)
			r.Get("/{id}/results", standingsHandler.Results)
		})
	})

	// Admin-authenticated routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.AuthenticateAdmin(jwtMgr))

		r.Route("/games", func(r chi.Router) {
			r.Post("/", adminHandler.CreateGame)
			r.Post("/{id}/result", adminHandler.RecordResult)
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Post("/rollover", adminHandler.TriggerRollover)
			r.Post("/finalize", adminHandler.TriggerFinalize)
		})

		r.Get("/wallets/{id}/reconcile", adminHandler.ReconcileWallet)
	})

	return r
}

// JWTExpiries parses the configured JWT expiry durations.
func JWTExpiries(cfg *infra.Config) (player, admin time.Duration, err error) {
	player, err = time.ParseDuration(cfg.JWTPlayerExpiry)
	if err != nil {
		return 0, 0, err
	}
	admin, err = time.ParseDuration(cfg.JWTAdminExpiry)
	if err != nil {
		return 0, 0, err
	}
	return player, admin, nil
}
