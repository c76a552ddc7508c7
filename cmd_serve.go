package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/camden-git/policeportal/database"
	"github.com/camden-git/policeportal/handlers"
	"github.com/camden-git/policeportal/media"
)

var portFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&portFlag, "port", "", "listen port; overrides PORT")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.RequireJWTSecret(); err != nil {
		return err
	}

	db, err := openDatabase()
	if err != nil {
		return err
	}
	if err := database.AutoMigrateModels(db, logger); err != nil {
		return err
	}

	store, err := media.NewLocalStorage(cfg.StoragePath, map[media.AssetType]string{
		media.AssetTypeEvidence: cfg.EvidenceSubDir,
		media.AssetTypeDocument: cfg.DocumentsSubDir,
	}, logger)
	if err != nil {
		return err
	}
	for _, t := range []media.AssetType{media.AssetTypeEvidence, media.AssetTypeDocument} {
		if _, err := store.EnsureDir(t); err != nil {
			return err
		}
	}

	srv := handlers.NewServer(handlers.ServerOptions{
		AppName:        cfg.AppName,
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      []byte(cfg.JWTSecret),
		JWTExpiration:  time.Duration(cfg.JWTExpirationHours) * time.Hour,
		DB:             db,
		Store:          store,
		Log:            logger,
	})

	port := cfg.Port
	if portFlag != "" {
		port = portFlag
	}
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr), zap.String("storage", cfg.StoragePath))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
