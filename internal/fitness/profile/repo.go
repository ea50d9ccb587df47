package profile

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

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{
		db: db,
	}
}

func (r *PostgresRepo) Get(ctx context.Context) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var p Profile
	err = r.db.QueryRow(
		ctx,
		`SELECT name, age, weight_kg, height_cm, gender, activity_level, fitness_goal
			FROM user_profile WHERE id = 1;`,
	).Scan(&p.Name, &p.Age, &p.WeightKg, &p.HeightCm, &p.Gender, &p.ActivityLevel, &p.FitnessGoal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepo) Save(ctx context.Context, p Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_profile (id, name, age, weight_kg, height_cm, gender, activity_level, fitness_goal)
			VALUES (1, $1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE
				SET name = EXCLUDED.name,
					age = EXCLUDED.age,
					weight_kg = EXCLUDED.weight_kg,
					height_cm = EXCLUDED.height_cm,
					gender = EXCLUDED.gender,
					activity_level = EXCLUDED.activity_level,
					fitness_goal = EXCLUDED.fitness_goal;`,
		p.Name, p.Age, p.WeightKg, p.HeightCm, p.Gender, p.ActivityLevel, p.FitnessGoal,
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

func (r *SQLiteRepo) Get(ctx context.Context) (*Profile, error) {
	var p Profile
	err := r.db.GetContext(
		ctx, &p,
		`SELECT name, age, weight_kg, height_cm, gender, activity_level, fitness_goal FROM user_profile WHERE id = 1`,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepo) Save(ctx context.Context, p Profile) error {
	_, err := r.db.NamedExecContext(
		ctx,
		`INSERT INTO user_profile (id, name, age, weight_kg, height_cm, gender, activity_level, fitness_goal)
			VALUES (1, :name, :age, :weight_kg, :height_cm, :gender, :activity_level, :fitness_goal)
			ON CONFLICT (id) DO UPDATE
				SET name = excluded.name,
					age = excluded.age,
					weight_kg = excluded.weight_kg,
					height_cm = excluded.height_cm,
					gender = excluded.gender,
					activity_level = excluded.activity_level,
					fitness_goal = excluded.fitness_goal`,
		p,
	)
	return err
}

type MemoryRepo struct {
	mu      sync.RWMutex
	profile *Profile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Get(_ context.Context) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.profile == nil {
		return nil, ErrNotFound
	}
	p := *r.profile
	return &p, nil
}

func (r *MemoryRepo) Save(_ context.Context, p Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile = &p
	return nil
}
