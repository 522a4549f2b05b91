package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/dsci3d/learning-energy-profile/adapters/postgres"
	"github.com/dsci3d/learning-energy-profile/app"
	"github.com/dsci3d/learning-energy-profile/domain/instrument"
	"github.com/dsci3d/learning-energy-profile/internal/config"
	"github.com/dsci3d/learning-energy-profile/internal/migration"
	"github.com/dsci3d/learning-energy-profile/ports"
)

// Run wires the full HTTP application from configuration and serves it until
// SIGINT/SIGTERM. The database is optional: without a DSN the API still
// scores, and archive routes answer with a configuration error.
func Run(cfg *config.Config) error {
	tax, err := instrument.New()
	if err != nil {
		return err
	}

	var db *sqlx.DB
	var archive ports.ProfileArchive
	if cfg.DatabaseURL != "" {
		db, err = sqlx.Connect("postgres", cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = migration.NewRunner().Run(ctx, db)
		cancel()
		if err != nil {
			return err
		}
		archive = postgres.NewProfileArchive(db)
	} else {
		log.Println("no database configured; profile archive disabled")
	}

	service := app.NewService(tax, archive)
	srv, err := NewServer(service, db, Config{RequestTimeout: cfg.RequestTimeout})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
