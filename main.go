// api/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"res4city/api/analytics"
	"res4city/api/catalog"
	"res4city/api/chatbot"
	"res4city/api/config"
	"res4city/api/database"
	"res4city/api/handlers"
	"res4city/api/middleware"
	"res4city/api/store"
)

func main() {
	config.LoadEnv()
	config.InitLogger()
	log := config.Logger

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- PostgreSQL: users, progress, leaderboard ---
	dbClient, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
	}
	defer dbClient.Close()

	// --- ClickHouse: durable learning-event sink ---
	chClient, err := database.NewClickHouseDB()
	if err != nil {
		log.Fatalf("Failed to initialize ClickHouse database: %v", err)
	}
	defer chClient.Close()

	// --- Stores ---
	userStore := store.NewUserStore(dbClient.DB)
	analyticsStore := store.NewAnalyticsStore(chClient)
	notificationStore := store.NewNotificationStore()

	// --- Analytics engines ---
	dataDir := config.Getenv("ANALYTICS_DATA_DIR", "./data/analytics")
	registry := analytics.NewRegistry(dataDir,
		func(userID string) analytics.ProgressSource {
			id, err := strconv.Atoi(userID)
			if err != nil {
				return nil
			}
			return store.ProgressSource{Store: userStore, UserID: id}
		},
		func(userID string) analytics.Notifier {
			return store.Notifier{Store: notificationStore, UserID: userID}
		},
	)

	// The server keeps its own telemetry stream (logins, signups, chatbot
	// usage) and flushes it to ANALYTICS_ENDPOINT when one is configured.
	serverStorage, err := analytics.NewFileStorage(filepath.Join(dataDir, "server.json"))
	if err != nil {
		log.Fatalf("Failed to open server analytics storage: %v", err)
	}
	serverEngine := analytics.NewEngine(serverStorage, analytics.Config{
		Endpoint: os.Getenv("ANALYTICS_ENDPOINT"),
		Location: "api://res4city",
	})

	// --- Handlers ---
	authHandlers := handlers.NewAuthHandlers(userStore, serverEngine)
	analyticsHandlers := handlers.NewAnalyticsHandlers(analyticsStore, registry, userStore)
	courseHandlers := handlers.NewCourseHandlers(catalog.New(), registry)
	userHandlers := handlers.NewUserHandlers(userStore, notificationStore)
	chatHandlers := handlers.NewChatHandlers(chatbot.New(), serverEngine)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		// Authentication
		api.POST("/signup", authHandlers.Signup)
		api.POST("/login", authHandlers.Login)
		api.POST("/logout", authHandlers.Logout)

		// Public surface
		api.GET("/courses", courseHandlers.ListCourses)
		api.GET("/courses/:id", courseHandlers.GetCourse)
		api.GET("/leaderboard", userHandlers.GetLeaderboard)
		api.GET("/leaderboard/regions", userHandlers.GetRegionRankings)
		api.GET("/chat", chatHandlers.Greeting)
		api.POST("/chat", chatHandlers.Chat)

		// Protected routes (valid JWT required)
		protected := api.Group("/")
		protected.Use(middleware.AuthRequired())
		{
			protected.POST("/track", analyticsHandlers.TrackEvent)
			protected.GET("/recommendations", courseHandlers.GetRecommendations)
			protected.GET("/progress", userHandlers.GetProgress)
			protected.PUT("/progress", userHandlers.UpdateProgress)
			protected.GET("/notifications", userHandlers.GetNotifications)
			protected.GET("/profile", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{
					"user_id":    c.MustGet("user_id").(int),
					"user_email": c.MustGet("user_email").(string),
					"ip_address": c.ClientIP(),
				})
			})

			statsGroup := protected.Group("/stats")
			{
				statsGroup.GET("/event-counts", analyticsHandlers.GetEventCountsOverTime)
				statsGroup.GET("/average-time-on-screen", analyticsHandlers.GetAverageTimeOnScreen)
				statsGroup.GET("/unique-sessions", analyticsHandlers.GetUniqueSessionsOverTime)
				statsGroup.GET("/top-pages", analyticsHandlers.GetTopNPages)
			}
		}
	}

	port := config.Getenv("PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Infof("API server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Best-effort: push any queued server telemetry before exiting.
	serverEngine.Flush()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exiting.")
}
