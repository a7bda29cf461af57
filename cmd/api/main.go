package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"joyeria-checkout/internal/builder"
	"joyeria-checkout/internal/client"
	"joyeria-checkout/internal/config"
	"joyeria-checkout/internal/logger"
	"joyeria-checkout/internal/repository"
	"joyeria-checkout/internal/server"
	"joyeria-checkout/internal/service"
	"joyeria-checkout/internal/shipping"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&cfg.Log)

	db := client.InitDBClient(cfg.DatabaseURL)
	mpClient := client.NewMercadoPagoClient(&cfg.MercadoPago, log)
	paypalClient := client.NewPaypalClient(&cfg.Paypal, log)

	orderRepo := repository.NewOrderRepository(db)
	settingsRepo := repository.NewShippingSettingRepository(db)

	resolver := shipping.NewResolver(settingsRepo, log)
	mpBuilder := builder.NewMercadoPagoBuilder(cfg.BaseURL, log)
	ppBuilder := builder.NewPaypalBuilder(cfg.BaseURL, log)

	orderService := service.NewOrderService(orderRepo, resolver, log)
	checkoutService := service.NewCheckoutService(
		resolver, mpBuilder, ppBuilder,
		mpClient, paypalClient,
		orderService, log,
	)
	shippingService := service.NewShippingSettingsService(settingsRepo, resolver)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(checkoutService, orderService, shippingService, cfg.AdminToken, log)

	log.Info("Starting HTTP server on ", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
