package main

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/postboard/blogapi/handlers"
	"github.com/postboard/blogapi/internal/config"
	"github.com/postboard/blogapi/internal/events"
	"github.com/postboard/blogapi/internal/post"
	"github.com/postboard/blogapi/internal/post/handler"
	"github.com/postboard/blogapi/internal/post/repository"
	"github.com/postboard/blogapi/internal/post/service"
	"github.com/postboard/blogapi/pkg/logger"
	"github.com/postboard/blogapi/pkg/metrics"
	"github.com/postboard/blogapi/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// app owns everything a running server needs.
type app struct {
	engine *gin.Engine
	svc    service.Service
	bus    *events.Bus
	redis  *redis.Client
}

func newApp(cfg *config.Config) (*app, error) {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	a := &app{}

	if cfg.Redis.Host != "" {
		a.redis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := a.redis.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", cfg.Redis.Addr(), err)
		} else {
			logger.Infof("connected to Redis: %s", cfg.Redis.Addr())
		}
	}

	var opts []service.Option
	if cfg.Events.Enabled {
		a.bus = events.NewBus(events.NewZapAdapter(logger.L().Named("watermill")))
		msgs, err := a.bus.Subscribe(context.Background())
		if err != nil {
			a.Close()
			return nil, err
		}
		go events.RunAuditLog(msgs, logger.L().Named("audit"))
		opts = append(opts, service.WithNotifier(a.bus))
	}

	var seed []post.Post
	if cfg.Posts.Seed {
		seed = post.Seed()
	}
	a.svc = service.New(repository.NewMemoryRepo(seed...), opts...)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(logger.L()), middleware.CORS())
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && a.redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(a.redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handlers.RegisterHealth(r, a.checks()...)
	handlers.RegisterSwagger(r)
	handler.RegisterPostRoutes(r, a.svc)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.RegisterCollectors(reg)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	a.engine = r
	return a, nil
}

func (a *app) checks() []handlers.Check {
	checks := []handlers.Check{{Name: "store", Fn: func(context.Context) error { return nil }}}
	if a.redis != nil {
		checks = append(checks, handlers.Check{Name: "redis", Fn: func(ctx context.Context) error {
			return a.redis.Ping(ctx).Err()
		}})
	}
	if a.bus != nil {
		checks = append(checks, handlers.Check{Name: "events", Fn: a.bus.Healthy})
	}
	return checks
}

// Close releases the event bus and the Redis client. Failures are logged and returned joined.
func (a *app) Close() error {
	var errs []error
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			logger.Warnf("closing event bus: %v", err)
			errs = append(errs, err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warnf("closing Redis client: %v", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
