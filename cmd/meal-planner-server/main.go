package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"household-planner/internal/auth"
	"household-planner/internal/config"
	"household-planner/internal/database"
	"household-planner/internal/dish"
	"household-planner/internal/invite"
	"household-planner/internal/llm"
	"household-planner/internal/notify"
	"household-planner/internal/plan"
	"household-planner/internal/server"
	"household-planner/internal/suggest"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. Initialize the SQLite database
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// 3. Initialize repositories and services
	dishRepo := dish.NewRepository(db.SQL)
	importer := dish.NewImporter(dishRepo)

	planSync := plan.NewSynchronizer(plan.NewRepository(db.SQL))
	if err := planSync.Load(ctx); err != nil {
		log.Fatalf("Failed to load meal plans: %v", err)
	}

	authSvc := auth.NewService(auth.NewRepository(db.SQL), auth.LogLinkSender{}, []byte(cfg.AuthTokenSecret), cfg.AppBaseURL)

	var suggester suggest.Suggester = suggest.NewCatalogSuggester(dishRepo)
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer geminiClient.Close()
		suggester = suggest.NewGeminiSuggester(dishRepo, geminiClient)
	}

	var smsSender invite.SMSSender
	if cfg.InviteConfigured() {
		smsSender = invite.NewTwilioClient(cfg.TwilioAPIBaseURL, cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	} else {
		log.Println("SMS provider not configured; invite requests will be rejected")
	}
	dispatcher := invite.NewDispatcher(smsSender, cfg.AppBaseURL)

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		tn, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Failed to initialize Telegram notifier: %v", err)
		}
		notifier = tn
	}

	api := server.New(dishRepo, importer, planSync, authSvc, suggester, dispatcher, notifier)

	// 4. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.Handler(),
	}

	go func() {
		log.Printf("Meal planner server listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
