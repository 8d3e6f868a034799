package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"tg_guarantor/internal/config"
	"tg_guarantor/internal/domain/service/deal"
	"tg_guarantor/internal/domain/service/payment"
	"tg_guarantor/internal/domain/service/session"
	"tg_guarantor/internal/infrastructure/persistence"
	"tg_guarantor/internal/infrastructure/statscache"
	"tg_guarantor/internal/server"
	"tg_guarantor/internal/tasks"
	transport "tg_guarantor/internal/transport/bot"
	"tg_guarantor/internal/transport/bot/handler"
	"tg_guarantor/internal/worker"
	"tg_guarantor/pkg/application/connectors"
	"tg_guarantor/pkg/application/modules"
	"tg_guarantor/pkg/logx"
	"tg_guarantor/pkg/middlewarex"
)

const logFieldMaxLen = 2048

func Run(ctx context.Context, log *slog.Logger) error {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	// 2. Database
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}
	log.Info("database connection OK")

	// 3. Redis
	rd := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	redisClient := rd.Client(ctx)
	defer rd.Close(ctx)

	// 4. Repositories
	userRepo := persistence.NewUserRepository(db)
	requisiteRepo := persistence.NewRequisiteRepository(db, cfg.Payment.DefaultWallet)
	dealRepo := persistence.NewDealRepository(db)
	statsCache := statscache.New(redisClient, cfg.Redis.StatsTTL)

	// 5. Очередь уведомлений
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DatabaseNumber,
	})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			log.Error("asynqClient.Close", logx.Error(err))
		}
	}()
	queue := tasks.NewEnqueuer(asynqClient)

	// 6. Доменные сервисы
	sessions := session.NewEngine(cfg.Session.IdleTTL)
	dealService := deal.NewService(
		dealRepo,
		userRepo,
		requisiteRepo,
		statsCache,
		queue,
		payment.Rates{
			TonRate:    cfg.Payment.TonRate,
			UsdtRate:   cfg.Payment.UsdtRate,
			FeePercent: cfg.Payment.FeePercent,
		},
		shareLink(cfg.Bot.Username),
	)

	// 7. Бот
	botHandler := handler.New(dealService, sessions, userRepo, requisiteRepo, queue, cfg.Bot.SupportURL)

	bot, err := transport.New(ctx, cfg.Bot.Token, botHandler)
	if err != nil {
		return fmt.Errorf("bot create: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := bot.Run(ctx); err != nil {
			return fmt.Errorf("bot.Run: %w", err)
		}

		return nil
	})
	log.Info("bot started", slog.String("username", cfg.Bot.Username))

	// 8. Обработчики очереди
	taskHandlers := tasks.NewHandlers(bot.Telego(), userRepo)

	modules.AsynqServer{
		RedisAddress:  cfg.Redis.Address,
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(ctx, g,
		modules.AsynqQueues{tasks.QueueNotify: 1},
		modules.AsynqHandler{Pattern: tasks.TypeBuyerJoined, Handle: taskHandlers.HandleBuyerJoined},
		modules.AsynqHandler{Pattern: tasks.TypePaymentConfirmed, Handle: taskHandlers.HandlePaymentConfirmed},
		modules.AsynqHandler{Pattern: tasks.TypeGiftSent, Handle: taskHandlers.HandleGiftSent},
		modules.AsynqHandler{Pattern: tasks.TypePaymentClaim, Handle: taskHandlers.HandlePaymentClaim},
	)

	// 9. Напоминания об оплате
	watcher := worker.NewPaymentWatcher(dealService, userRepo, bot.Telego(), cfg.Watcher.ScanInterval, cfg.Watcher.RemindEvery)
	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("watcher.Start: %w", err)
	}
	defer watcher.Stop()

	// 10. HTTP API
	// В дампы запросов попадают номера карт, поэтому маскируем
	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)

	server.NewServer(
		server.NewDealServer(dealService),
	).RegisterRoutes(router)

	modules.HTTPServer{ShutdownTimeout: cfg.HTTP.ShutdownTimeout}.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Addr:    cfg.HTTP.ListenAddress,
		Handler: router,
	})

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.HTTP.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.HTTP.MetricListenAddress,
	}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("application: %w", err)
	}

	return nil
}

// shareLink строит ссылку «поделиться сделкой»: обёртка share/url вокруг
// диплинка, чтобы Telegram открыл выбор чата для пересылки.
func shareLink(botUsername string) func(dealID string) string {
	return func(dealID string) string {
		return fmt.Sprintf("https://t.me/share/url?url=https://t.me/%s?start=deal_%s", botUsername, dealID)
	}
}
