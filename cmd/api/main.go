// @title                       Connector API
// @version                     1.0
// @description                 Developer profiles, posts, likes and comments.
// @BasePath                    /
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        x-auth-token
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/devconnector/connector-api/internal/api"
	"github.com/devconnector/connector-api/internal/core/ports"
	"github.com/devconnector/connector-api/internal/core/service"
	"github.com/devconnector/connector-api/internal/infrastructure/config"
	"github.com/devconnector/connector-api/internal/infrastructure/db/memory"
	"github.com/devconnector/connector-api/internal/infrastructure/db/mongo"
	"github.com/devconnector/connector-api/internal/infrastructure/db/redis"
	"github.com/devconnector/connector-api/internal/infrastructure/http/handlers"
	"github.com/devconnector/connector-api/internal/infrastructure/queue"
	"github.com/devconnector/connector-api/pkg/logger"
)

const (
	shutdownTimeout   = 10 * time.Second
	purgeDrainTimeout = 30 * time.Second
)

type stores struct {
	users    ports.UserRepository
	profiles ports.ProfileRepository
	posts    ports.PostRepository
	close    func(context.Context)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment(), Service: "connector-api"})

	checks := map[string]handlers.Check{}
	st, err := openStores(ctx, cfg, checks, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	defer st.close(context.Background())

	var cache ports.AuthorCache
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()
		cache = redis.NewAuthorCache(rdb, cfg.Redis.TTL)
		checks["redis"] = handlers.RedisCheck(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("author cache enabled")
	}

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	posts := service.NewPostService(st.posts, st.users, cache, log)

	var (
		purges     ports.PurgeScheduler
		dispatcher *queue.Dispatcher
	)
	if cfg.Purge.Cascade {
		dispatcher = queue.NewDispatcher(cfg.Purge.Workers, posts, log)
		dispatcher.Start()
		purges = dispatcher
	}

	e := api.NewRouter(api.Deps{
		Tokens:   tokens,
		Auth:     service.NewAuthService(st.users, tokens, log),
		Profiles: service.NewProfileService(st.profiles, log),
		Posts:    posts,
		Accounts: service.NewAccountService(st.profiles, st.users, cache, purges, log),
		Checks:   checks,
		Log:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Bool("cascade", cfg.Purge.Cascade).Msg("server started")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	// Requests are done enqueueing; finish the purges they scheduled.
	if dispatcher != nil {
		purgeCtx, cancelPurge := context.WithTimeout(context.Background(), purgeDrainTimeout)
		defer cancelPurge()
		if err := dispatcher.Stop(purgeCtx); err != nil {
			log.Error().Err(err).Msg("purge queue not drained")
		}
	}
	log.Info().Msg("server shut down")
}

func openStores(ctx context.Context, cfg *config.Config, checks map[string]handlers.Check, log zerolog.Logger) (*stores, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Warn().Msg("using in-memory store; data is lost on restart")
		s := memory.NewStore()
		return &stores{users: s.Users(), profiles: s.Profiles(), posts: s.Posts(), close: func(context.Context) {}}, nil
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}

	users := mongo.NewUserRepository(db)
	profiles := mongo.NewProfileRepository(db)
	posts := mongo.NewPostRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, profiles, posts); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	checks["mongodb"] = handlers.MongoCheck(db)
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	return &stores{
		users:    users,
		profiles: profiles,
		posts:    posts,
		close: func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("mongodb disconnect")
			}
		},
	}, nil
}
