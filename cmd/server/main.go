// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/lunaris-labs/converse/internal/config"
	"github.com/lunaris-labs/converse/internal/domain"
	"github.com/lunaris-labs/converse/internal/handlers"
	"github.com/lunaris-labs/converse/internal/middleware"
	"github.com/lunaris-labs/converse/internal/repository/message"
	"github.com/lunaris-labs/converse/internal/repository/user"
	"github.com/lunaris-labs/converse/internal/services"
	"github.com/lunaris-labs/converse/internal/services/admin_services"
	"github.com/lunaris-labs/converse/internal/services/ai"
	"github.com/lunaris-labs/converse/internal/services/chat"
	"github.com/lunaris-labs/converse/internal/services/user_services"
)

func main() {
	cfg := config.Load()
	logger := services.NewLogger("converse")

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db)
	messageRepo := message.NewMessageRepository(db)

	// --- Services ---
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.LLMAPIKey
	aiConfig.BaseURL = cfg.LLMBaseURL
	aiConfig.Model = cfg.LLMModel
	aiConfig.Timeout = cfg.LLMTimeout()
	aiConfig.Temperature = float32(cfg.LLMTemperature)
	aiConfig.MaxTokens = cfg.LLMMaxTokens

	completionProvider, err := ai.NewOpenAIProvider(aiConfig)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize completion provider: %v", err)
	}

	authService := user_services.NewAuthService(userRepo, logger)
	chatService := chat.NewChatService(messageRepo, completionProvider, logger)
	adminService := admin_services.NewAdminService(userRepo, logger)

	if cfg.CreateDefaultAccount {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authService.EnsureDefaultAccount(ctx); err != nil {
			cancel()
			log.Fatalf("FATAL: Failed to bootstrap default account: %v", err)
		}
		cancel()
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(chatService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// --- Router Setup ---
	r := mux.NewRouter()
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/users/{id:[0-9]+}/messages", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/users/{id:[0-9]+}/history", chatHandler.GetHistory).Methods("GET")
	api.HandleFunc("/users/{id:[0-9]+}/history", chatHandler.ClearHistory).Methods("DELETE")
	api.HandleFunc("/users/{id:[0-9]+}/summary", chatHandler.GetSummary).Methods("GET")
	api.HandleFunc("/admin/users", adminHandler.GetAllUsersHandler).Methods("GET")
	api.HandleFunc("/admin/users/{id:[0-9]+}", adminHandler.DeleteUserHandler).Methods("DELETE")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Converse server starting on port %s (model: %s)", cfg.ServerPort, cfg.LLMModel)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
