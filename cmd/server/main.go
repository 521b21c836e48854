package main

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"todo-web/configs"
	"todo-web/internal/config"
	"todo-web/internal/middleware"
	"todo-web/internal/repository"
	"todo-web/internal/web"
	myws "todo-web/internal/websocket"
	"todo-web/pkg/database"
	"todo-web/pkg/logger"
)

func main() {
	// Inisialisasi logger
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	// Load config
	cfg := configs.LoadConfig()
	config.SecretKey = []byte(cfg.SecretKey)

	// Inisialisasi database
	config.DB = database.ConnectDB(cfg)
	defer config.DB.Close()

	logger.SystemLogger.Info("Database Connected")

	// Buat tabel jika belum ada:
	repository.CreateTableIfNotExists(config.DB)

	// Inisialisasi Redis untuk sesi dan flash message
	config.RedisClient = database.ConnectRedis(cfg)
	defer config.RedisClient.Close()

	// View engine untuk halaman server-rendered
	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))
	app.Use(middleware.LoadIdentity)

	// Hub untuk update live halaman task list
	go myws.TaskHub.Run()

	// Daftarkan seluruh halaman
	web.RegisterRoutes(app)

	addr := fmt.Sprintf(":%d", cfg.AppPort)
	logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
