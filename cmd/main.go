package main

import (
	"context"

	accapp "github.com/cristianortiz/pointAuction/internal/account/application"
	acchttp "github.com/cristianortiz/pointAuction/internal/account/infra/http"
	accpg "github.com/cristianortiz/pointAuction/internal/account/infra/repository/postgres"
	"github.com/cristianortiz/pointAuction/internal/account/ledger"
	"github.com/cristianortiz/pointAuction/internal/auction/application"
	"github.com/cristianortiz/pointAuction/internal/auction/domain"
	"github.com/cristianortiz/pointAuction/internal/auction/engine"
	aucthttp "github.com/cristianortiz/pointAuction/internal/auction/infra/http"
	"github.com/cristianortiz/pointAuction/internal/auction/infra/notifier"
	auctpg "github.com/cristianortiz/pointAuction/internal/auction/infra/repository/postgres"
	auctws "github.com/cristianortiz/pointAuction/internal/auction/infra/websocket"
	"github.com/cristianortiz/pointAuction/internal/shared/config"
	"github.com/cristianortiz/pointAuction/internal/shared/db"
	"github.com/cristianortiz/pointAuction/internal/shared/db/migrations"
	"github.com/cristianortiz/pointAuction/internal/shared/httpserver"
	"github.com/cristianortiz/pointAuction/internal/shared/logger"
	sharedws "github.com/cristianortiz/pointAuction/internal/shared/websocket"
	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting point auction server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("Running database migrations...")
	if err := migrations.RunMigrations(); err != nil {
		log.Fatal("Database migration failed", zap.Error(err))
	}

	pool, err := db.GetPostgresDBPool(ctx)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// Stores and transaction runner.
	accountStore := accpg.NewAccountStore(pool)
	chargeStore := accpg.NewChargeStore(pool)
	itemStore := auctpg.NewAuctionItemStore(pool)
	bidStore := auctpg.NewBidStore(pool)
	run := db.NewPoolRunner(pool)

	// Core engine.
	pointLedger := ledger.New(accountStore)
	locks := engine.NewItemLocks()
	book := engine.NewBidBook(locks, itemStore, bidStore, accountStore, pointLedger, run)
	registry := engine.NewAuctionRegistry(locks, itemStore, bidStore, book, pointLedger, run)
	winnerNotifier := notifier.NewWebhookNotifier(cfg.NotifierURL, cfg.NotifierTimeout)
	settlement := engine.NewSettlementService(locks, itemStore, bidStore, pointLedger, winnerNotifier, run)
	scheduler := engine.NewClosingScheduler(cfg.ClosingInterval, itemStore, registry)

	// Application services.
	accountService := accapp.NewAccountService(
		accapp.NewRegisterUseCase(accountStore),
		accapp.NewChargePointsUseCase(accountStore, chargeStore, pointLedger, run),
		accapp.NewSetBanUseCase(accountStore),
		accapp.NewGetAccountUseCase(accountStore),
		accapp.NewChargeHistoryUseCase(chargeStore),
	)
	auctionService := application.NewAuctionService(
		application.NewPlaceBidUseCase(book),
		application.NewListItemUseCase(registry),
		application.NewGetItemStateUseCase(itemStore, bidStore),
		application.NewListItemsUseCase(itemStore, bidStore),
		application.NewConfirmPurchaseUseCase(settlement),
		application.NewDeleteItemUseCase(accountStore, registry),
	)

	// Websocket hub and the auction handler feeding off it.
	hub := sharedws.NewHub()
	go hub.Run(ctx)
	wsHandler := auctws.NewAuctionWSHandler(auctionService, hub)
	go wsHandler.ListenForMessages(ctx)

	scheduler.OnClosed(func(item *domain.AuctionItem) {
		wsHandler.BroadcastItemState(ctx, item.ID)
	})
	scheduler.Start(ctx)

	// HTTP server and routes.
	server := httpserver.NewServer(cfg.ShutdownTimeout)
	app := server.App()
	acchttp.NewAccountHandler(accountService).RegisterRoutes(app)
	aucthttp.NewAuctionHandler(auctionService).RegisterRoutes(app)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/items/:itemID", fiberws.New(func(conn *fiberws.Conn) {
		itemID, err := uuid.Parse(conn.Params("itemID"))
		if err != nil {
			_ = conn.Close()
			return
		}

		client := &sharedws.Client{
			Hub:    hub,
			Conn:   conn,
			Send:   make(chan []byte, 64),
			ItemID: itemID.String(),
			ID:     uuid.New().String(),
		}
		hub.RegisterClient(client)
		wsHandler.SendInitialState(ctx, client, itemID)

		go client.WritePump(ctx)
		client.ReadPump(ctx)
	}))

	if err := server.Start(cfg.HTTPAddr); err != nil {
		log.Fatal("HTTP server failed", zap.Error(err))
	}
}
