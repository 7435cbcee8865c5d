package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	api "github.com/pyq-bank/qbank/internal/api/http"
	auth "github.com/pyq-bank/qbank/internal/auth/middleware"
	"github.com/pyq-bank/qbank/internal/config"
	"github.com/pyq-bank/qbank/internal/db"
	"github.com/pyq-bank/qbank/internal/question"
)

func newServeCmd(configPath, addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the question-bank server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *addr)
		},
	}
}

func runServer(ctx context.Context, configPath, addrFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addrFlag != "" {
		cfg.HTTPAddr = addrFlag
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	var authSvc *auth.AuthService
	if cfg.EnableLocalAuth {
		authSvc = auth.NewAuthService(cfg.AuthSecret, cfg.EditorUser, cfg.EditorPassHash)
	}

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}

	handler := api.New(api.Deps{
		Store:       store,
		Ingest:      question.NewService(store),
		Auth:        authSvc,
		Origins:     origins,
		DisableAuth: !cfg.EnableLocalAuth,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("listening on %s (mode=%s, store=%s)", cfg.HTTPAddr, cfg.Mode, cfg.StoreDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config) (question.Store, error) {
	switch cfg.StoreDriver {
	case "", "file":
		return question.NewFileStore(cfg.DataFile), nil
	case "sqlite", "postgres":
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		dbh, err := db.Open(dbCtx, db.Driver(cfg.StoreDriver), cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		return question.NewSQLStore(dbh), nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}
}
