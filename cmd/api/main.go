package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	cartsvc "hk-storefront/internal/cart"
	"hk-storefront/internal/config"
	"hk-storefront/internal/httpserver"
	"hk-storefront/internal/mailer"
	newslettersvc "hk-storefront/internal/newsletter"
	"hk-storefront/internal/shopify"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}

	client := shopify.NewClient(cfg.Shopify, logger)
	cartService := cartsvc.NewService(client, logger)
	newsletterService := newslettersvc.New(client, logger)
	mail := mailer.New(cfg.SMTP)

	srv := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		CartSvc:        cartService,
		Catalog:        client,
		Newsletter:     newsletterService,
		Mailer:         mail,
		Readiness:      client,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
