package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/rental-pricing-service/internal/config"
	"github.com/light-bringer/rental-pricing-service/internal/pkg/logger"
	"github.com/light-bringer/rental-pricing-service/internal/services"
	"github.com/light-bringer/rental-pricing-service/internal/transport/grpc/pricing"
	httptransport "github.com/light-bringer/rental-pricing-service/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		logger.Error("pricing.server_failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Initialize(cfg.LogLevel, cfg.LogFormat)
	log := logger.WithService("rental-pricing")

	log.Info("starting rental pricing service",
		"spanner_database", cfg.SpannerDatabase,
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
		"cache_enabled", cfg.CacheEnabled(),
	)

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Create gRPC server and register services
	grpcServer := grpc.NewServer()
	pricing.RegisterPricingServiceServer(grpcServer, serviceOpts.PricingHandler)

	// 4. Enable reflection (for grpcurl and debugging)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("gRPC server listening", "port", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	// 5. HTTP gateway over a single gRPC client connection
	grpcConn, err := grpc.NewClient("localhost:"+cfg.GRPCPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to create gRPC client: %w", err)
	}
	defer grpcConn.Close()

	router := httptransport.NewRouter(
		httptransport.NewHandler(pricing.NewClient(grpcConn)),
		httptransport.RouterOptions{
			RateLimitPerMinute: cfg.HTTPRateLimitPerMinute,
			RequestTimeout:     cfg.HTTPRequestTimeout,
		},
	)
	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	// 6. Graceful shutdown handling
	select {
	case <-ctx.Done():
		log.Info("shutting down gracefully")
	case err := <-errCh:
		log.Error("server stopped unexpectedly", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown error", "error", err)
	}
	grpcServer.GracefulStop()

	return nil
}
