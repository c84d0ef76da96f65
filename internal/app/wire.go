package app

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/playvault/platform/internal/auth"
	"github.com/playvault/platform/internal/handler"
	adminhandler "github.com/playvault/platform/internal/handler/admin"
	"github.com/playvault/platform/internal/infra"
	"github.com/playvault/platform/internal/ledger"
	"github.com/playvault/platform/internal/repository"
	"github.com/playvault/platform/internal/service"
	"github.com/redis/go-redis/v9"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool        *pgxpool.Pool
	Redis       *redis.Client
	Metrics     *infra.Metrics
	Logger      *slog.Logger
	AdminSecret string

	AllowPlayerCreditGrants bool
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	logger := deps.Logger

	// Repositories
	playerRepo := repository.NewPlayerRepository()
	inventoryRepo := repository.NewInventoryRepository()
	cosmeticRepo := repository.NewCosmeticRepository()
	friendshipRepo := repository.NewFriendshipRepository()
	saveRepo := repository.NewSaveRepository()
	configRepo := repository.NewConfigRepository()
	outboxRepo := repository.NewOutboxRepository()

	// Ledger engine
	ledgerEngine := ledger.NewEngine(playerRepo, outboxRepo)

	// Services
	authSvc := service.NewAuthService(pool, playerRepo, outboxRepo)
	economySvc := service.NewEconomyService(pool, playerRepo, outboxRepo, ledgerEngine, deps.AllowPlayerCreditGrants)
	inventorySvc := service.NewInventoryService(pool, inventoryRepo)
	cosmeticsSvc := service.NewCosmeticsService(pool, cosmeticRepo, playerRepo, outboxRepo, ledgerEngine)
	socialSvc := service.NewSocialService(pool, playerRepo, friendshipRepo)
	saveSvc := service.NewSaveService(pool, saveRepo)
	configSvc := service.NewGameConfigService(pool, configRepo)
	leaderboardSvc := service.NewLeaderboardService(pool, playerRepo, saveRepo, deps.Redis, logger)
	adminSvc := service.NewAdminService(pool, playerRepo, inventoryRepo, cosmeticRepo, friendshipRepo, saveRepo, outboxRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	playerHandler := handler.NewPlayerHandler()
	walletHandler := handler.NewWalletHandler(economySvc)
	inventoryHandler := handler.NewInventoryHandler(inventorySvc)
	cosmeticsHandler := handler.NewCosmeticsHandler(cosmeticsSvc)
	socialHandler := handler.NewSocialHandler(socialSvc)
	saveHandler := handler.NewSaveHandler(saveSvc)
	configHandler := handler.NewConfigHandler(configSvc)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)

	// Admin handlers
	playerAdmin := adminhandler.NewPlayerAdminHandler(adminSvc, economySvc, authSvc)
	cosmeticAdmin := adminhandler.NewCosmeticAdminHandler(cosmeticsSvc)
	configAdmin := adminhandler.NewConfigAdminHandler(configSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	if deps.Metrics != nil {
		r.Use(handler.InstrumentRequests(deps.Metrics))
	}
	r.Use(handler.CORS)
	r.Use(handler.JSONContentType)

	// Health and metrics (no auth)
	r.Get("/health", handler.HealthHandler(pool))
	if deps.Metrics != nil {
		r.Method("GET", "/metrics", deps.Metrics.Handler())
	}

	// Auth routes (no auth)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Player-authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthenticatePlayer(pool, playerRepo))

		r.Get("/players/me", playerHandler.GetMe)

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/balance", walletHandler.GetBalance)
			r.Post("/spend", walletHandler.Spend)
			r.Post("/add", walletHandler.Add)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", inventoryHandler.List)
			r.Post("/add", inventoryHandler.Add)
			r.Post("/remove", inventoryHandler.Remove)
		})

		r.Route("/cosmetics", func(r chi.Router) {
			r.Get("/", cosmeticsHandler.ListCatalog)
			r.Get("/owned", cosmeticsHandler.ListOwned)
			r.Post("/{id}/buy", cosmeticsHandler.Buy)
			r.Post("/{id}/equip", cosmeticsHandler.Equip)
		})

		r.Route("/friends", func(r chi.Router) {
			r.Get("/", socialHandler.ListFriends)
			r.Get("/requests", socialHandler.ListRequests)
			r.Post("/request", socialHandler.Request)
			r.Post("/accept", socialHandler.Accept)
		})

		r.Route("/saves", func(r chi.Router) {
			r.Get("/", saveHandler.List)
			r.Get("/{key}", saveHandler.Get)
			r.Put("/{key}", saveHandler.Put)
			r.Delete("/{key}", saveHandler.Delete)
		})

		r.Route("/config", func(r chi.Router) {
			r.Get("/", configHandler.List)
			r.Get("/{key}", configHandler.Get)
		})

		r.Route("/leaderboards", func(r chi.Router) {
			r.Get("/credits", leaderboardHandler.TopByCredits)
			r.Get("/stats/{key}", leaderboardHandler.TopByStat)
		})
	})

	// Admin-authenticated routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.AuthenticateAdmin(deps.AdminSecret))

		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerAdmin.ListPlayers)
			r.Get("/{id}", playerAdmin.GetPlayer)
			r.Delete("/{id}", playerAdmin.DeletePlayer)
			r.Post("/{id}/credits/give", playerAdmin.GiveCredits)
			r.Post("/{id}/credits/set", playerAdmin.SetCredits)
			r.Post("/{id}/reset-password", playerAdmin.ResetPassword)
			r.Post("/bulk/ban", playerAdmin.BulkBan)
			r.Post("/bulk/unban", playerAdmin.BulkUnban)
			r.Post("/bulk/credits", playerAdmin.BulkGiveCredits)
			r.Post("/bulk/delete", playerAdmin.BulkDelete)
		})

		r.Route("/cosmetics", func(r chi.Router) {
			r.Get("/", cosmeticAdmin.ListDefinitions)
			r.Post("/", cosmeticAdmin.CreateDefinition)
			r.Put("/{id}", cosmeticAdmin.UpdateDefinition)
			r.Delete("/{id}", cosmeticAdmin.DeleteDefinition)
			r.Post("/{id}/grant", cosmeticAdmin.Grant)
		})

		r.Route("/config", func(r chi.Router) {
			r.Get("/{gameID}", configAdmin.List)
			r.Put("/{gameID}/{key}", configAdmin.Put)
			r.Delete("/{gameID}/{key}", configAdmin.Delete)
		})
	})

	return r
}
