package workouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fittracker/internal/telemetry/tracing"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"go.opentelemetry.io/otel/attribute"
)

const selectSessions = `SELECT id, date, duration_seconds, steps, distance_meters, calories_burned FROM workout_session`

type SQLiteRepo struct {
	db *sqlx.DB
}

func NewSQLiteRepo(db *sqlx.DB) *SQLiteRepo {
	return &SQLiteRepo{
		db: db,
	}
}

func (r *SQLiteRepo) Add(ctx context.Context, session Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int64("workout.id", session.ID))

	_, err = r.db.NamedExecContext(
		ctx,
		`INSERT INTO workout_session
			(id, date, duration_seconds, steps, distance_meters, calories_burned)
			VALUES (:id, :date, :duration_seconds, :steps, :distance_meters, :calories_burned)`,
		session,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return nil, ErrDuplicateID
		}
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	return &session, nil
}

func (r *SQLiteRepo) ListAll(ctx context.Context) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.workouts.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var sessions []Session
	if err := r.db.SelectContext(ctx, &sessions, selectSessions+` ORDER BY date DESC, id DESC`); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SQLiteRepo) List(ctx context.Context, limit int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	var sessions []Session
	if err := r.db.SelectContext(ctx, &sessions, selectSessions+` ORDER BY date DESC, id DESC LIMIT ?`, limit); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SQLiteRepo) Latest(ctx context.Context) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.workouts.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, ErrNotFound
	}
	return &sessions[0], nil
}

func (r *SQLiteRepo) Count(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM workout_session`); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SQLiteRepo) DeleteAll(ctx context.Context) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.workouts.deleteall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	res, err := r.db.ExecContext(ctx, `DELETE FROM workout_session`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
