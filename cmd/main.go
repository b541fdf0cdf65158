package main

import (
	"anonchat/backend/internal/api/handler"
	"anonchat/backend/internal/chathub"
	"anonchat/backend/internal/localization"
	"anonchat/backend/internal/models"
	"anonchat/backend/internal/moderation"
	"anonchat/backend/internal/privatechat"
	"anonchat/backend/internal/storage"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupDependencies() (*gorm.DB, *redis.Client) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "user"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "anonchatdb"),
		envOr("DB_PORT", "5432"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.Profile{},
		&models.Room{},
		&models.Message{},
		&models.PrivateChat{},
		&models.Report{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting AnonChat Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	if err := s.SeedRoomsIfEmpty(models.SeedRooms); err != nil {
		log.Fatalf("Failed to seed rooms: %v", err)
	}

	loc, err := localization.NewLocalizer(envOr("LOCALES_DIR", "locales"))
	if err != nil {
		log.Fatalf("Failed to load locales: %v", err)
	}

	private := privatechat.NewService(s)
	mod := moderation.NewService(s)

	hub := chathub.NewManagerService(s, private, loc)
	hub.StartPubSubListener(s)
	go hub.Run()

	jwtSecret := []byte(envOr("JWT_SECRET", "dev-only-secret"))

	r := gin.Default()
	h := handler.NewHandler(hub, s, private, mod, loc, jwtSecret)

	r.GET("/auth/anon", h.GetAnonID)
	r.GET("/ws", h.ServeWebSocket)

	auth := r.Group("/", h.AuthRequired())
	{
		auth.POST("/profile", h.CreateProfile)
		auth.GET("/profile", h.GetOwnProfile)
		auth.PATCH("/profile", h.UpdateProfile)

		auth.GET("/rooms", h.ListRooms)
		auth.POST("/rooms/:id/favorite", h.ToggleFavorite)
		auth.GET("/rooms/:id/messages", h.RoomHistory)
		auth.GET("/rooms/:id/online", h.RoomPresence)
		auth.GET("/rooms/:id/typing", h.RoomTyping)

		auth.GET("/private", h.ListPrivateChats)
		auth.GET("/private/counters", h.PrivateCounters)
		auth.POST("/private/initiate", h.InitiatePrivateChat)
		auth.POST("/private/:id/accept", h.AcceptPrivateChat)
		auth.POST("/private/:id/reject", h.RejectPrivateChat)
		auth.POST("/private/:id/read", h.MarkPrivateChatRead)

		auth.POST("/blocks/:uid", h.BlockUser)
		auth.DELETE("/blocks/:uid", h.UnblockUser)
		auth.POST("/reports", h.SubmitReport)

		admin := auth.Group("/admin", h.AdminRequired())
		{
			admin.GET("/reports", h.ListReports)
			admin.POST("/reports/:id/resolve", h.ResolveReport)
			admin.POST("/reports/:id/dismiss", h.DismissReport)
		}
	}

	server := &http.Server{
		Addr:           ":" + envOr("PORT", "8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
