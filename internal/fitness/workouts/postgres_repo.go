package workouts

import (
	"context"
	"fmt"

	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{
		db: db,
	}
}

func (r *PostgresRepo) Add(ctx context.Context, session Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("workout.id", session.ID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout_session
				(id, date, duration_seconds, steps, distance_meters, calories_burned)
			VALUES ($1, $2, $3, $4, $5, $6);`,
		session.ID, session.Date, session.DurationSeconds, session.Steps, session.DistanceMeters, session.CaloriesBurned,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrDuplicateID
		}
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	return &session, nil
}

// ListAll returns the full history, most recent first.
func (r *PostgresRepo) ListAll(ctx context.Context) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, date, duration_seconds, steps, distance_meters, calories_burned
			FROM workout_session
			ORDER BY date DESC, id DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.rows2sessions(rows)
}

// List returns at most limit sessions, most recent first.
// A negative limit returns the full history.
func (r *PostgresRepo) List(ctx context.Context, limit int) (_ []Session, err error) {
	if limit < 0 {
		return r.ListAll(ctx)
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, date, duration_seconds, steps, distance_meters, calories_burned
			FROM workout_session
			ORDER BY date DESC, id DESC
			LIMIT $1;`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.rows2sessions(rows)
}

func (r *PostgresRepo) Latest(ctx context.Context) (_ *Session, err error) {
	sessions, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, ErrNotFound
	}
	return &sessions[0], nil
}

func (r *PostgresRepo) Count(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM workout_session;`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteAll clears the whole history and returns the number of removed sessions.
func (r *PostgresRepo) DeleteAll(ctx context.Context) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.deleteall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_session;`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepo) rows2sessions(rows pgx.Rows) ([]Session, error) {
	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.Date, &s.DurationSeconds, &s.Steps, &s.DistanceMeters, &s.CaloriesBurned,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
