package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/sessioncache"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/auth"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/cache"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/config"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/metrics"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/permission"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/ratelimit"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/middleware"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/db"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

// Container holds the infrastructure, repositories, use cases and handlers of
// the API server and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client // nil when redis is disabled

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Cross-cutting services
	metrics       *metrics.Metrics
	jwtSvc        *auth.JWTService
	enforcer      *permission.Enforcer
	snapshotStore sessioncache.Store
	limiter       ratelimit.RateLimiter

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
}

// NewContainer wires every dependency of the API server.
func NewContainer(ctx context.Context, gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, metrics, auth, policies
	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}

	// Section 2: Repositories and use cases
	c.repos = newRepositories(gdb)
	c.ucs = newUseCases(c.repos, db.NewTransactionManager(gdb), cfg, c.metrics, c.snapshotStore, log)

	// Section 3: Handlers and middlewares
	c.hdlrs = newHandlers(c.ucs, c.healthChecks(), log)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.ucs.touchAuthSessionUC, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)
	var policy ratelimit.Policy
	if cfg.RateLimit.Enabled {
		policy = ratelimit.Policy{Limit: cfg.RateLimit.Limit, Window: cfg.RateLimit.Window}
	}
	c.rateLimiter = middleware.NewRateLimiter(c.limiter, policy, log)

	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	c.metrics = metrics.New()
	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.Issuer)

	enforcer, err := permission.NewEnforcer(c.db, c.cfg.Auth.PolicyPath, c.log)
	if err != nil {
		return err
	}
	if err := permission.InitDefaultPolicies(enforcer, c.log); err != nil {
		return err
	}
	c.enforcer = enforcer

	if !c.cfg.Redis.Enabled {
		c.log.Warnw("redis disabled, session cache and rate limits are kept in process memory")
		c.snapshotStore = cache.NewMemorySnapshotStore()
		c.limiter = ratelimit.NewMemoryRateLimiter()
		return nil
	}

	client, err := cache.NewRedisClient(ctx, &c.cfg.Redis)
	if err != nil {
		return err
	}
	c.log.Infow("Redis connection established successfully", "addr", c.cfg.Redis.GetAddr())
	c.redis = client
	c.snapshotStore = cache.NewRedisSnapshotStore(client, c.cfg.Cache.KeyPrefix)
	c.limiter = ratelimit.NewRedisRateLimiter(client)
	return nil
}

func (c *Container) healthChecks() map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if c.redis != nil {
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		})
	}
	return checks
}

// Shutdown releases connections owned by the container. The database is closed by the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
