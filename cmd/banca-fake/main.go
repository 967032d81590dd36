// ABOUTME: In-memory stand-in for the banking REST API, for local development and E2E runs
// ABOUTME: Usage: banca-fake [-addr localhost:8080] [-seed]

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pvchallenge/banca-console/internal/fakebank"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "HTTP listen address")
	seed := flag.Bool("seed", false, "Load demo customers, accounts and movements")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(*addr, *seed, logger); err != nil {
		logger.Error("banca-fake failed", "error", err)
		os.Exit(1)
	}
}

func run(addr string, seed bool, logger *slog.Logger) error {
	bank := fakebank.New()
	if seed {
		if err := fakebank.Seed(bank); err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
		logger.Info("demo data loaded", "customers", len(bank.Customers()), "accounts", len(bank.Accounts()))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := &http.Server{
		Addr:              addr,
		Handler:           bank.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("fake bank listening", "addr", addr, "api", "http://"+addr+"/api")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	return srv.Shutdown(shutdownCtx)
}
