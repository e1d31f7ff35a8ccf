// Package app wires repositories, caches and services into the REST
// container.
package app

import (
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"teambalancer/internal/balance"
	"teambalancer/internal/cache"
	"teambalancer/internal/common/clock"
	"teambalancer/internal/common/uuid"
	"teambalancer/internal/config"
	"teambalancer/internal/logger"
	"teambalancer/internal/repository"
	"teambalancer/internal/repository/memory"
	"teambalancer/internal/service"
	"teambalancer/internal/transport/rest"
)

// Repositories groups the storage ports the services depend on
type Repositories struct {
	Groups    repository.GroupRepo
	Votes     repository.VoteRepo
	Snapshots repository.SnapshotRepo
}

// MongoRepositories backs every repository with a collection of db
func MongoRepositories(db *mongo.Database) Repositories {
	return Repositories{
		Groups:    repository.NewGroupRepo(db),
		Votes:     repository.NewVoteRepo(db),
		Snapshots: repository.NewSnapshotRepo(db),
	}
}

// MemoryRepositories keeps everything in process. Data is lost on exit.
func MemoryRepositories() Repositories {
	return Repositories{
		Groups:    memory.NewGroupStore(),
		Votes:     memory.NewVoteStore(),
		Snapshots: memory.NewSnapshotStore(),
	}
}

type options struct {
	clock clock.Clock
	ids   uuid.UUID
	seed  int64
}

// Option customizes App construction
type Option func(*options)

// WithClock replaces the system clock
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithUUID replaces the random id generator
func WithUUID(ids uuid.UUID) Option {
	return func(o *options) { o.ids = ids }
}

// WithSeed makes team generation deterministic
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

type App struct {
	Repos Repositories

	GroupCache   cache.GroupCache
	StatsCache   cache.StatsCache
	RankingCache cache.RankingCache
	SessionCache cache.SessionCache

	AuthService  *service.AuthService
	GroupService *service.GroupService
	VoteService  *service.VoteService
	StatsService *service.StatsService
	TeamService  *service.TeamService
	AdminService *service.AdminService

	cfg *config.Config
	log *logger.Logger
}

// New builds the caches and services on top of repos and rdb
func New(cfg *config.Config, repos Repositories, rdb *redis.Client, log *logger.Logger, opts ...Option) *App {
	o := &options{
		clock: &clock.DefaultClock{},
		ids:   uuid.New(),
	}
	for _, opt := range opts {
		opt(o)
	}

	groupCache := cache.NewGroupCache(rdb, cfg.GroupsCacheTTL)
	statsCache := cache.NewStatsCache(rdb, cfg.StatsCacheTTL)
	rankingCache := cache.NewRankingCache(rdb)
	sessionCache := cache.NewSessionCache(rdb, cfg.SessionTTL)

	statsSvc := service.NewStatsService(repos.Groups, repos.Votes, statsCache, rankingCache, log)
	partitioner := balance.NewPartitioner(&balance.Config{Seed: o.seed})
	teamSvc := service.NewTeamService(repos.Groups, repos.Snapshots, sessionCache, statsSvc, partitioner, o.clock, o.ids, log)
	adminSvc := service.NewAdminService(repos.Groups, repos.Votes, groupCache, statsCache, rankingCache, o.ids, log)

	return &App{
		Repos:        repos,
		GroupCache:   groupCache,
		StatsCache:   statsCache,
		RankingCache: rankingCache,
		SessionCache: sessionCache,
		AuthService:  service.NewAuthService(repos.Groups, cfg.AdminPassword, cfg.JWTSecret, o.clock),
		GroupService: service.NewGroupService(repos.Groups, groupCache, statsCache, o.ids, log),
		VoteService:  service.NewVoteService(repos.Groups, repos.Votes, statsCache, rankingCache, log),
		StatsService: statsSvc,
		TeamService:  teamSvc,
		AdminService: adminSvc,
		cfg:          cfg,
		log:          log,
	}
}

// Container exposes the services to the router
func (a *App) Container() *rest.Container {
	return &rest.Container{
		AuthService:    a.AuthService,
		GroupService:   a.GroupService,
		VoteService:    a.VoteService,
		StatsService:   a.StatsService,
		TeamService:    a.TeamService,
		AdminService:   a.AdminService,
		Logger:         a.log,
		AllowedOrigins: a.cfg.AllowedOrigins,
	}
}
