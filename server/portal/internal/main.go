package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"dcim-ng/pkg/redis"
	"dcim-ng/server/portal/internal/database"
	"dcim-ng/server/portal/internal/routers"
	"dcim-ng/server/portal/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           DCIM-NG API
// @version         1.0
// @description     DCIM-NG 机柜管理平台 API 文档
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /fe-v1

const (
	defaultPort      = ":8080"
	defaultRedisAddr = "127.0.0.1:6379"
	redisDefault     = "default"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库连接
	db, err := database.InitDB()
	if err != nil {
		logger.Fatal("failed to init database", zap.Error(err))
	}
	if os.Getenv("DCIM_SEED_DATA") == "true" {
		logger.Info("seeding sample data")
		database.ClearAndSeedDatabase(db)
	}

	// 初始化 Redis，失败时退化为无事件推送模式
	var eventService *service.RackEventService
	redisAddr := os.Getenv("DCIM_REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = defaultRedisAddr
	}
	if err := redis.Init(redisDefault, redisAddr, os.Getenv("DCIM_REDIS_PASSWORD")); err != nil {
		logger.Warn("redis unavailable, rack change events disabled", zap.Error(err))
	} else {
		eventService = service.NewRackEventService(redis.NewRedisHandler(redisDefault), logger)
	}

	// WebSocket 推送端
	wsManager := service.NewWebSocketManager()
	if eventService != nil {
		go eventService.Run(wsManager)
	}

	// 初始化路由处理器
	var publisher service.RackEventPublisher
	if eventService != nil {
		publisher = eventService
	}
	rackHandler := routers.NewRackHandler(db, logger, publisher)
	rackTypeHandler := routers.NewRackTypeHandler(db, logger)
	reservationHandler := routers.NewRackReservationHandler(db, logger)
	rackRoleHandler := routers.NewRackRoleHandler(db)
	wsHandler := routers.NewRackWebSocketHandler(wsManager)

	// 创建 Gin 引擎
	r := gin.Default()

	// 配置 CORS 中间件
	configureCORS(r)

	// 注册路由，读写接口要求认证，立面图允许匿名访问（脱敏）
	api := r.Group("/fe-v1")
	api.Use(routers.OptionalAuthMiddleware(), routers.RequireAuthForWrites())
	rackHandler.RegisterRoutes(api)
	rackTypeHandler.RegisterRoutes(api)
	reservationHandler.RegisterRoutes(api)
	rackRoleHandler.RegisterRoutes(api)
	wsHandler.RegisterRoutes(api)

	// 启动服务器
	port := os.Getenv("DCIM_PORT")
	if port == "" {
		port = defaultPort
	}
	logger.Info("starting server", zap.String("port", port))
	if err := r.Run(port); err != nil && err != http.ErrServerClosed {
		logger.Fatal("failed to run server", zap.Error(err))
	}
}

func configureCORS(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
