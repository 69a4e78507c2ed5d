package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"                      // optional .env for local runs
	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // request logging and panic recovery
	"github.com/labstack/gommon/log"

	"github.com/ruta593/fleet-console/internal/config"
	"github.com/ruta593/fleet-console/internal/database"
	"github.com/ruta593/fleet-console/internal/handler"
	"github.com/ruta593/fleet-console/internal/middleware"
	"github.com/ruta593/fleet-console/internal/queue"
	"github.com/ruta593/fleet-console/internal/repository"
	"github.com/ruta593/fleet-console/internal/router"
	"github.com/ruta593/fleet-console/internal/service"
	"github.com/ruta593/fleet-console/internal/session"
)

func main() {
	// .env is a convenience for development; real deployments set the environment.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config
	sessCfg := config.LoadSessionConfig()
	brokerCfg := config.LoadBrokerConfig()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	if cfg.Env == "dev" {
		e.Logger.SetLevel(log.DEBUG)
	}
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				c.Logger().Errorf("%s %s %d %s: %v", v.Method, v.URI, v.Status, v.Latency, v.Error)
				return nil
			}
			c.Logger().Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	db, err := database.Open(cfg)
	if err != nil {
		e.Logger.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil when Redis is unreachable
	if rdb == nil {
		e.Logger.Warn("redis unavailable: catalog cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	structures := repository.NewBusStructureRepo(db)
	seatTypes := repository.NewSeatTypeRepo(db)
	trips := repository.NewFrequencyRepo(db)
	buses := repository.NewBusRepo(db)
	tickets := repository.NewTicketRepo(db)

	var events service.EventPublisher
	if p := service.NewAMQPPublisher(brokerCfg); p != nil {
		events = p
		go func() {
			if err := queue.StartLayoutConsumer(ctx, brokerCfg); err != nil && !errors.Is(err, context.Canceled) {
				e.Logger.Errorf("layout consumer: %v", err)
			}
		}()
	}
	var purger service.CachePurger
	if p := middleware.NewCachePurger(cacheCfg, rdb); p != nil {
		purger = p
	}

	layouts := service.NewLayoutService(structures, seatTypes, events, purger, e.Logger)
	sales := service.NewSalesService(trips, buses, structures, tickets)

	registry := session.NewRegistry(sessCfg.TTL)
	go registry.Run(ctx, sessCfg.SweepInterval, func(n int) {
		e.Logger.Infof("session sweep: dropped %d idle sessions", n)
	})

	limiter := middleware.NewTokenBucket(rlCfg, rdb)
	cache := middleware.NewRedisCache(cacheCfg, rdb)

	router.RegisterRoutes(e, &handler.ReadyHandler{DB: db, Redis: rdb})
	router.RegisterCatalog(e, handler.NewCatalogHandler(structures, seatTypes), cfg.JWTSecret, limiter, cache)
	router.RegisterLayouts(e, handler.NewLayoutHandler(layouts, registry), cfg.JWTSecret, limiter)
	router.RegisterSales(e, handler.NewSalesHandler(sales, registry), cfg.JWTSecret, limiter)

	addr := ":" + cfg.Port
	e.Logger.Infof("listening on %s (env=%s)", addr, cfg.Env)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
