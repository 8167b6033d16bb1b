package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"niche-picker-be/internal/bootstrap"
	"niche-picker-be/internal/config"
	"niche-picker-be/internal/server"
	"niche-picker-be/internal/tracer"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Connect Infrastructure
	infra, err := bootstrap.BuildInfrastructure(cfg)
	if err != nil {
		log.Panicf("Unable to build infrastructure: %v", err)
	}
	defer infra.Close()

	// 3. Initialize Tracer
	shutdownTracer := tracer.InitTracer(cfg.Tracing, infra.Logger)
	defer shutdownTracer(context.Background())

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg, infra)
	if err != nil {
		log.Panicf("Unable to bootstrap container: %v", err)
	}

	// Load the taxonomy eagerly so a broken source fails at startup.
	if _, err := container.TaxonomyService.Get(context.Background()); err != nil {
		log.Panicf("Unable to load taxonomy: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, container)

	// 5. Run server and background services until one fails or a signal arrives
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return container.ConsumerService.Consume(gctx)
	})
	g.Go(func() error {
		container.WebSocketHub.Run(gctx)
		return nil
	})
	g.Go(srv.Run)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		infra.Logger.Error("Main", "Server stopped with error", map[string]interface{}{"error": err})
	}
}
