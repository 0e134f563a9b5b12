package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"courier-system/internal/controllers"
	"courier-system/internal/listeners"
	"courier-system/internal/repositories"
	"courier-system/internal/services"
	syncpkg "courier-system/internal/sync"
	"courier-system/pkg/config"
	"courier-system/pkg/eventbus"
	"courier-system/pkg/websocket"
)

// InitRouter собирает весь граф зависимостей и регистрирует маршруты.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	logger *zap.Logger,
	cfg *config.Config,
) {
	loc := cfg.Location()

	// Инфраструктура
	bus := eventbus.New(logger)
	hub := websocket.NewHub()
	go hub.Run()

	// Репозитории
	snapshotRepo := repositories.NewOrderSnapshotRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// Сервис сверки
	reconciliationService := services.NewReconciliationService(
		snapshotRepo,
		cacheRepo,
		hub,
		logger,
		loc,
		cfg.Report.CacheTTL,
		cfg.Report.FetchTimeout,
	)

	// Слушатель потока изменений. Отписка здесь не нужна: слушатель живет
	// столько же, сколько процесс.
	changeListener := listeners.NewOrderChangeListener(reconciliationService, logger)
	_ = changeListener.Register(bus)

	changeHandler := syncpkg.NewChangeHandler(bus, logger)

	// Контроллеры
	reportCtrl := controllers.NewReportController(reconciliationService, loc, logger)
	dashboardCtrl := controllers.NewDashboardController(reconciliationService, loc, logger)
	syncCtrl := controllers.NewSyncController(changeHandler, logger)
	wsCtrl := controllers.NewWebSocketController(hub, logger)

	// Маршруты
	e.GET("/reports/reconciliation", reportCtrl.GetReconciliationReport)
	e.GET("/dashboard/stats", dashboardCtrl.GetDashboardStats)
	e.POST("/sync/orders/changes", syncCtrl.PostOrderChanges)
	e.GET("/ws", wsCtrl.ServeWs)
}
