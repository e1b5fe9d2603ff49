package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alienxp03/folio/internal/config"
	"github.com/alienxp03/folio/internal/contact"
	"github.com/alienxp03/folio/internal/debate"
	"github.com/alienxp03/folio/internal/grounding"
	"github.com/alienxp03/folio/internal/llm"
	"github.com/alienxp03/folio/internal/storage"
	"github.com/alienxp03/folio/web/handlers"
)

var (
	cfgPath   string
	debugMode bool
	appConfig *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Portfolio website backend",
	Long: `folio is the backend for a personal portfolio site.

It drafts contact-form messages and streams AI debates on arbitrary topics,
optionally grounded with live web-search context.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgPath != "" {
			appConfig, err = config.LoadFrom(cfgPath)
		} else {
			appConfig, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file path (default: ~/.folio/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Initialize slog
		opts := &slog.HandlerOptions{Level: slog.LevelInfo}
		if debugMode || appConfig.IsDevelopment() {
			opts.Level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, opts)))

		// Session log storage; the server still runs without it.
		var store storage.Storage
		dbPath := appConfig.DB.Path
		if dbPath == "" {
			dbPath = config.DefaultDBPath()
		}
		sqlStore, err := storage.NewSQLiteStorage(dbPath)
		if err != nil {
			slog.Warn("Failed to open session log, continuing without it", "path", dbPath, "error", err)
		} else if err := sqlStore.Initialize(); err != nil {
			slog.Warn("Failed to initialize session log, continuing without it", "error", err)
			sqlStore.Close()
		} else {
			store = sqlStore
			defer sqlStore.Close()
		}

		// Model client. A missing credential keeps the server up: the
		// generation endpoints answer with a configuration error until
		// GROQ_API_KEY is provided.
		var (
			eng        *debate.Engine
			contactSvc *contact.Service
		)
		client, err := llm.New(appConfig.Model)
		switch {
		case errors.Is(err, llm.ErrMissingAPIKey):
			slog.Warn("GROQ_API_KEY is not set; generation endpoints disabled")
		case err != nil:
			return fmt.Errorf("failed to create model client: %w", err)
		default:
			var grounder debate.Grounder
			if appConfig.Search.APIKey != "" {
				grounder = grounding.New(client, grounding.NewSerpAPI(appConfig.Search.APIKey))
			} else {
				slog.Info("SERPAPI_API_KEY is not set; debate grounding disabled")
			}
			eng = debate.New(client, grounder, store)
			contactSvc = contact.New(client)
		}

		h := handlers.New(eng, contactSvc, store, appConfig)

		addr := fmt.Sprintf(":%d", appConfig.Server.Port)
		server := &http.Server{
			Addr:    addr,
			Handler: h.Routes(),
		}

		// Handle shutdown
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			<-sigCh
			slog.Info("Shutting down...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			server.Shutdown(ctx)
		}()

		slog.Info("Starting folio server", "url", fmt.Sprintf("http://localhost%s", addr), "env", appConfig.App.Env)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configExampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print an example configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(config.GenerateExample())
	},
}

func init() {
	configCmd.AddCommand(configExampleCmd)
}
