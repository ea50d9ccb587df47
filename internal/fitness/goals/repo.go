package goals

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/2beens/fittracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// The goals live in a single row (id = 1). Every repo returns Default()
// until goals are saved for the first time.

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{
		db: db,
	}
}

func (r *PostgresRepo) Get(ctx context.Context) (_ Goals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var g Goals
	err = r.db.QueryRow(
		ctx,
		`SELECT steps, distance_km, duration_seconds FROM user_goals WHERE id = 1;`,
	).Scan(&g.Steps, &g.DistanceKm, &g.DurationSeconds)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Default(), nil
		}
		return Goals{}, err
	}
	return g, nil
}

func (r *PostgresRepo) Save(ctx context.Context, g Goals) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_goals (id, steps, distance_km, duration_seconds)
			VALUES (1, $1, $2, $3)
			ON CONFLICT (id) DO UPDATE
				SET steps = EXCLUDED.steps,
					distance_km = EXCLUDED.distance_km,
					duration_seconds = EXCLUDED.duration_seconds;`,
		g.Steps, g.DistanceKm, g.DurationSeconds,
	)
	return err
}

type SQLiteRepo struct {
	db *sqlx.DB
}

func NewSQLiteRepo(db *sqlx.DB) *SQLiteRepo {
	return &SQLiteRepo{
		db: db,
	}
}

func (r *SQLiteRepo) Get(ctx context.Context) (Goals, error) {
	var g Goals
	err := r.db.GetContext(ctx, &g, `SELECT steps, distance_km, duration_seconds FROM user_goals WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Default(), nil
		}
		return Goals{}, err
	}
	return g, nil
}

func (r *SQLiteRepo) Save(ctx context.Context, g Goals) error {
	_, err := r.db.NamedExecContext(
		ctx,
		`INSERT INTO user_goals (id, steps, distance_km, duration_seconds)
			VALUES (1, :steps, :distance_km, :duration_seconds)
			ON CONFLICT (id) DO UPDATE
				SET steps = excluded.steps,
					distance_km = excluded.distance_km,
					duration_seconds = excluded.duration_seconds`,
		g,
	)
	return err
}

type MemoryRepo struct {
	mu    sync.RWMutex
	goals *Goals
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Get(_ context.Context) (Goals, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.goals == nil {
		return Default(), nil
	}
	return *r.goals, nil
}

func (r *MemoryRepo) Save(_ context.Context, g Goals) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals = &g
	return nil
}
