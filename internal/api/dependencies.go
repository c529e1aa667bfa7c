package api

import (
	"apexleague/paddock/internal/common"
	"apexleague/paddock/internal/db"
	"apexleague/paddock/internal/db/repositories"
	"apexleague/paddock/internal/jobs"
	"apexleague/paddock/internal/metrics"
	"apexleague/paddock/internal/services"

	"github.com/redis/go-redis/v9"
)

type Repositories struct {
	Mappings  *repositories.MappingRepository
	Standings *repositories.StandingsRepository
	Keys      *repositories.KeysRepo
}

type Services struct {
	Cache      common.CacheInterface
	Redis      *redis.Client
	RedisQueue *common.RedisQueueService
	Notifier   *common.RedisNotifier
	Resolver   *services.IdentityResolver
	Events     *services.EventResolver
	Orphans    *services.OrphanService
	Standings  *services.StandingsService
	Import     *services.ImportService
	Edits      *services.EditService
	Backups    *services.BackupService
	Seasons    *services.SeasonService
}

type Jobs struct {
	ReResolve *jobs.ReResolveJob
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Jobs     *Jobs
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Mappings:  repositories.NewMappingRepository(db.PgDB),
		Standings: repositories.NewStandingsRepository(db.DB),
		Keys:      repositories.NewKeysRepo(db.DB),
	}

	cacheSvc := common.NewCacheService(60000, 600)
	redisClient := common.NewRedisClient()
	redisQueue := common.NewRedisQueueService(redisClient)
	notifier := common.NewRedisNotifier(redisClient)

	resolver := services.NewIdentityResolver(repos.Mappings, cacheSvc)
	events := services.NewEventResolver()
	orphans := services.NewOrphanService(db.PgDB, notifier)
	standings := services.NewStandingsService(repos.Standings)
	importer := services.NewImportService(db.PgDB, resolver, events, orphans, standings, notifier)

	svcs := &Services{
		Cache:      cacheSvc,
		Redis:      redisClient,
		RedisQueue: redisQueue,
		Notifier:   notifier,
		Resolver:   resolver,
		Events:     events,
		Orphans:    orphans,
		Standings:  standings,
		Import:     importer,
		Edits:      services.NewEditService(db.PgDB, resolver),
		Backups:    services.NewBackupService(db.PgDB),
		Seasons:    services.NewSeasonService(db.PgDB),
	}

	jobsContainer := &Jobs{
		ReResolve: jobs.NewReResolveJob(db.PgDB, resolver),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Jobs:     jobsContainer,
		Metrics:  metricsReg,
	}, nil
}
