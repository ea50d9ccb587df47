package internal

import (
	"context"
	"fmt"

	"github.com/2beens/fittracker/internal/config"
	"github.com/2beens/fittracker/internal/db"
	"github.com/2beens/fittracker/internal/fitness/achievements"
	"github.com/2beens/fittracker/internal/fitness/goals"
	"github.com/2beens/fittracker/internal/fitness/profile"
	"github.com/2beens/fittracker/internal/fitness/tracker"
	"github.com/2beens/fittracker/internal/fitness/workouts"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

// Storage owns the database handles of the configured backend.
// At most one of DBPool and SQLite is set; both are nil for the memory backend.
type Storage struct {
	Backend string
	DBPool  *pgxpool.Pool
	SQLite  *sqlx.DB
}

type OpenStorageParams struct {
	Config         *config.Config
	DBUser         string
	DBPassword     string
	TracingEnabled bool
}

func OpenStorage(ctx context.Context, params OpenStorageParams) (*Storage, error) {
	cfg := params.Config
	s := &Storage{Backend: cfg.StorageBackend}

	switch cfg.StorageBackend {
	case config.StorageBackendPostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         params.DBUser,
			DBPassword:     params.DBPassword,
			TracingEnabled: params.TracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := db.MigratePostgres(ctx, dbPool); err != nil {
			dbPool.Close()
			return nil, err
		}
		s.DBPool = dbPool
	case config.StorageBackendSQLite:
		sqliteDB, err := db.NewSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		s.SQLite = sqliteDB
	case config.StorageBackendMemory:
		log.Warnln("memory storage backend selected, nothing will survive a restart")
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}

	log.Debugf("storage backend: %s", s.Backend)
	return s, nil
}

// ServiceParams returns tracker params with the repositories of the backend filled in.
func (s *Storage) ServiceParams() tracker.NewServiceParams {
	params := tracker.NewServiceParams{
		Catalog: achievements.DefaultCatalog(),
	}

	switch {
	case s.DBPool != nil:
		params.Workouts = workouts.NewPostgresRepo(s.DBPool)
		params.States = achievements.NewPostgresRepo(s.DBPool)
		params.Goals = goals.NewPostgresRepo(s.DBPool)
		params.Profile = profile.NewPostgresRepo(s.DBPool)
	case s.SQLite != nil:
		params.Workouts = workouts.NewSQLiteRepo(s.SQLite)
		params.States = achievements.NewSQLiteRepo(s.SQLite)
		params.Goals = goals.NewSQLiteRepo(s.SQLite)
		params.Profile = profile.NewSQLiteRepo(s.SQLite)
	default:
		params.Workouts = workouts.NewMemoryRepo()
		params.States = achievements.NewMemoryRepo()
		params.Goals = goals.NewMemoryRepo()
		params.Profile = profile.NewMemoryRepo()
	}

	return params
}

func (s *Storage) Close() {
	if s.DBPool != nil {
		log.Debugln("closing db pool ...")
		s.DBPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
	if s.SQLite != nil {
		if err := s.SQLite.Close(); err != nil {
			log.Errorf("close sqlite: %s", err)
		}
	}
}
