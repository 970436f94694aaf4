package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"anvilwp_server/config"
	"anvilwp_server/internal/ai"
	"anvilwp_server/internal/ai/prompts"
	"anvilwp_server/internal/api"
	"anvilwp_server/internal/htmlconv"
	"anvilwp_server/internal/publish"
	"anvilwp_server/internal/theme"
)

func main() {
	// --- Load .env file ---
	// Must run before viper reads the environment.
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".") // Load from config.yaml or env vars
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	// --- Dependency Initialization ---

	// LLM provider
	var completer ai.Completer
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		completer = ai.NewAnthropicCompleter(cfg.AnthropicKey, cfg.AnthropicModel, cfg.AnthropicEndpoint)
	default:
		completer = ai.NewOpenAICompleter(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	}
	strategy, _ := prompts.ParseStrategy(cfg.GenerationStrategy) // validated by LoadConfig
	var genOpts []ai.Option
	if cfg.RetryTransient {
		genOpts = append(genOpts, ai.WithRetry(2*time.Second))
	}
	aiGenerator := ai.NewGenerator(completer, strategy, cfg.MaxTokens, genOpts...)
	log.Printf("Info: using %s provider with %s prompt strategy", cfg.LLMProvider, strategy)

	// Theme assembly and HTML conversion
	assembler := theme.New(
		theme.WithAuthor(cfg.ThemeAuthor, cfg.ThemeAuthorURI),
		theme.WithExtras(cfg.ThemeExtras),
	)
	converter := htmlconv.New(cfg.MaxHTMLBytes)

	// WP-CLI installer (optional)
	var installer api.ThemeInstaller
	if cfg.InstallEnabled() {
		installer = publish.NewInstaller(cfg.WPCLIPath, cfg.WPPath, nil)
		log.Printf("Info: WP-CLI installs enabled for %s", cfg.WPPath)
	}
	if cfg.ExportDir != "" {
		log.Printf("Info: exporting generated themes to %s", cfg.ExportDir)
	}

	apiHandler := api.NewAPIHandler(aiGenerator, converter, assembler, installer, cfg.ExportDir)

	// --- Start API Server ---
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Println("Running in Gin Debug Mode")
	}

	router := gin.New()        // Use gin.New() for more control over middleware
	router.Use(gin.Logger())   // Access log
	router.Use(gin.Recovery()) // Add panic recovery middleware

	api.RegisterRoutes(router, apiHandler) // Register API endpoints

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// LLM completions can take minutes; reads stay short.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting API server on %s\n", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server listen error: %s\n", err)
		}
		log.Println("API server has stopped listening.")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1) // Buffered channel
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Received signal: %s. Shutting down server...", sig)

	shutdownCtx, serverCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer serverCancel()

	log.Println("Shutting down API server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API server forced shutdown error: %v", err)
	} else {
		log.Println("API server gracefully stopped.")
	}

	log.Println("Application exiting.")
}
