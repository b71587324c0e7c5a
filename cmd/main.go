package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"campuslink/backend/internal/api/handler"
	"campuslink/backend/internal/chat"
	"campuslink/backend/internal/chathub"
	"campuslink/backend/internal/models"
	"campuslink/backend/internal/moderation"
	"campuslink/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies() (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})

	// Перевірка з'єднання Redis
	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Міграції (Створення таблиць)
	err = db.AutoMigrate(
		&models.User{},
		&models.ChatRoom{},
		&models.RoomMember{},
		&models.Message{},
		&models.Connection{},
		&models.Report{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting CampusLink Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET не встановлено!")
	}

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)
	chatSvc := chat.NewService(s)
	modSvc := moderation.NewService(s)

	// 2. Ініціалізація Chat Hub
	hub := chathub.NewManagerService(chatSvc)
	go hub.Run() // Головний диспетчер

	// 3. Налаштування Gin та роутингу
	r := gin.Default()
	h := handler.NewHandler(hub, chatSvc, modSvc, s, []byte(jwtSecret))

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	authorized := r.Group("/", h.AuthRequired())
	{
		authorized.GET("/auth/me", h.Me)
		authorized.PUT("/user/update", h.UpdateProfile)

		authorized.POST("/connections/request", h.RequestConnection)
		authorized.POST("/connections/respond", h.RespondConnection)
		authorized.POST("/connections/withdraw", h.WithdrawConnection)
		authorized.GET("/connections/status/:id", h.ConnectionStatus)
		authorized.GET("/connections/list", h.ListConnections)
		authorized.GET("/connections/pending", h.PendingConnections)

		authorized.GET("/chat/inbox", h.GetInbox)
		authorized.POST("/chat/start", h.StartChat)
		authorized.GET("/chat/room/:roomId", h.GetRoomHistory)
		authorized.POST("/chat/report", h.ReportUser)

		authorized.GET("/ws", h.ServeWebSocket) // WebSocket Upgrade
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Запуск HTTP-сервера. Only the header read gets a deadline: a write
	// timeout would kill the long-lived websocket connections.
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
