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

	"github.com/gorilla/mux"

	"github.com/careloop/go-companion/internal/config"
	"github.com/careloop/go-companion/internal/handlers"
	"github.com/careloop/go-companion/internal/middleware"
	"github.com/careloop/go-companion/internal/ratelimit"
	convrepo "github.com/careloop/go-companion/internal/repository/conversation"
	remrepo "github.com/careloop/go-companion/internal/repository/reminder"
	"github.com/careloop/go-companion/internal/services"
	"github.com/careloop/go-companion/internal/services/ai"
	"github.com/careloop/go-companion/internal/storage"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()

	// --- Storage ---
	store, err := storage.NewStore(cfg.StoreType, cfg.StorePath)
	if err != nil {
		log.Fatalf("Storage Error: %v", err)
	}
	defer store.Close()

	// --- Repositories ---
	conversationRepo := convrepo.NewConversationRepository(store)
	reminderRepo := remrepo.NewReminderRepository(store)

	// --- Services ---
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.LLMAPIKey
	if cfg.LLMBaseURL != "" {
		aiConfig.BaseURL = cfg.LLMBaseURL
	}
	if cfg.LLMModel != "" {
		aiConfig.Model = cfg.LLMModel
	}
	if err := aiConfig.Validate(); err != nil {
		log.Fatalf("FATAL: Invalid completion config: %v", err)
	}
	provider := ai.NewOpenAIProvider(aiConfig)

	conversationService, err := services.NewConversationService(conversationRepo, provider, cfg.HistoryWindow)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Conversation Service: %v", err)
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := conversationService.Start(startCtx); err != nil {
		startCancel()
		log.Fatalf("FATAL: Failed to load conversation: %v", err)
	}

	reminderService, err := services.NewReminderService(reminderRepo, conversationService)
	if err != nil {
		startCancel()
		log.Fatalf("FATAL: Failed to initialize Reminder Service: %v", err)
	}
	if err := reminderService.Start(startCtx); err != nil {
		startCancel()
		log.Fatalf("FATAL: Failed to start reminder scheduler: %v", err)
	}
	startCancel()
	defer reminderService.Stop()

	// --- Handlers ---
	sessionHandler := handlers.NewSessionHandler([]byte(cfg.AccessPINHash), []byte(cfg.JWTSecretKey))
	chatHandler := handlers.NewChatHandler(conversationService)
	reminderHandler := handlers.NewReminderHandler(reminderService)

	pinLimiter := ratelimit.NewAttemptLimiter(ratelimit.DefaultPINConfig())
	defer pinLimiter.Close()

	// --- Router Setup ---
	r := mux.NewRouter()
	sessionMiddleware := middleware.NewSessionMiddleware([]byte(cfg.JWTSecretKey))

	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("OK")) }).Methods("GET")
	r.Handle("/api/session",
		middleware.RateLimitMiddleware(pinLimiter, "session")(http.HandlerFunc(sessionHandler.CreateSession)),
	).Methods("POST")

	// --- Protected Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(sessionMiddleware)
	api.HandleFunc("/conversation", chatHandler.GetConversation).Methods("GET")
	api.HandleFunc("/conversation", chatHandler.ResetConversation).Methods("DELETE")
	api.HandleFunc("/conversation/messages", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/reminders", reminderHandler.ListReminders).Methods("GET")
	api.HandleFunc("/reminders", reminderHandler.CreateReminder).Methods("POST")
	api.HandleFunc("/reminders/{id}", reminderHandler.DeleteReminder).Methods("DELETE")

	// --- Server Configuration ---
	port := ":8080"
	if cfg.ServerPort != "" {
		port = ":" + cfg.ServerPort
	}
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Careloop Companion starting on port %s", port)
	if cfg.LLMAPIKey == "" {
		log.Printf("WARNING: no completion API key set; turns will answer with an in-conversation error")
	}

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
	log.Println("Server stopped gracefully")
}
