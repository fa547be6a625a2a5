package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accident-map/cache"
	"accident-map/config"
	"accident-map/dataset"
	"accident-map/events"
	"accident-map/geocode"
	"accident-map/handler"
	"accident-map/logger"
	"accident-map/mapview"
	"accident-map/report"
	"accident-map/routing"
	"accident-map/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting accident map", "env", cfg.Env, "addr", cfg.GetHTTPAddr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. geocode cache: Redis when configured, in-process otherwise
	geoCache, closeCache := openCache(ctx, cfg, log)
	defer closeCache()

	// 2. map surface and accident dataset
	surface, err := mapview.LoadSurface(cfg.MapConfigPath)
	if err != nil {
		log.Error("failed to load map config", "path", cfg.MapConfigPath, "error", err)
		os.Exit(1)
	}
	loader := dataset.NewLoader(&http.Client{Timeout: cfg.GetHTTPClientTimeout()}, log)
	accidents := dataset.LoadStore(ctx, loader, cfg.AccidentDataSource, log)

	// 3. external services
	nominatim := geocode.NewNominatim(cfg, geoCache, cfg.GetGeocodeCacheTTL(), log)
	photos := geocode.NewPhotos(cfg, nominatim, log)
	osrm := routing.NewOSRM(cfg)

	// 4. sessions, event bus and planner
	sessions := mapview.NewStore(surface, cfg.SessionIdleTTL)
	go sessions.RunSweeper(ctx, time.Minute)

	bus := events.NewInMemoryBus(log)
	bus.Subscribe(service.EventRouteFound, service.NewProximityHandler(sessions, accidents, surface, log))
	bus.Subscribe(service.EventRouteServed, service.NewRouteLogHandler(log))
	planner := service.NewPlanner(nominatim, osrm, photos, sessions, bus, log)

	// 5. gin engine
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestID(), handler.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.GetCORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", handler.HeaderRequestID},
		ExposeHeaders:    []string{handler.HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	limiter := handler.NewIPRateLimiter(rate.Limit(cfg.GetRateLimitRPS()), cfg.GetRateLimitBurst(), log)
	handler.New(planner, sessions, accidents, report.NewService(log)).
		Register(r, cfg.GetStaticDir(), limiter.RateLimit())

	// 6. serve until interrupted
	srv := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http server listening", "addr", srv.Addr, "page", "/static/index.html", "accidents", accidents.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", "error", err)
	}
	bus.Wait()
}

func openCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (cache.Cache, func()) {
	if url := cfg.GetRedisURL(); url != "" {
		rc, err := cache.NewRedis(ctx, url, log)
		if err == nil {
			log.Info("geocode cache: redis")
			return rc, func() { _ = rc.Close() }
		}
		log.Warn("redis unavailable, using in-memory geocode cache", "error", err)
	}

	mc := cache.NewMemory(time.Minute)
	return mc, mc.Close
}
