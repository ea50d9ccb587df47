package achievements

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittracker/internal/telemetry/tracing"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
)

type SQLiteRepo struct {
	db *sqlx.DB
}

func NewSQLiteRepo(db *sqlx.DB) *SQLiteRepo {
	return &SQLiteRepo{
		db: db,
	}
}

func (r *SQLiteRepo) Seed(ctx context.Context, ids []string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.achievements.seed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, id := range ids {
		if _, err = tx.ExecContext(ctx, `INSERT OR IGNORE INTO achievement_state (id, unlocked) VALUES (?, 0)`, id); err != nil {
			return fmt.Errorf("seed %s: %w", id, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRepo) List(ctx context.Context) (_ []State, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.achievements.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var states []State
	if err := r.db.SelectContext(ctx, &states, `SELECT id, unlocked, unlocked_at FROM achievement_state ORDER BY id`); err != nil {
		return nil, err
	}
	return states, nil
}

func (r *SQLiteRepo) Get(ctx context.Context, id string) (_ *State, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.achievements.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("achievement.id", id))

	var s State
	err = r.db.GetContext(ctx, &s, `SELECT id, unlocked, unlocked_at FROM achievement_state WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepo) Unlock(ctx context.Context, id string, at time.Time) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.achievements.unlock")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("achievement.id", id))

	res, err := r.db.ExecContext(
		ctx,
		`UPDATE achievement_state SET unlocked = 1, unlocked_at = ? WHERE id = ? AND unlocked = 0`,
		at, id,
	)
	if err != nil {
		return false, fmt.Errorf("unlock %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *SQLiteRepo) Reset(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sqlite.achievements.reset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.ExecContext(ctx, `DELETE FROM achievement_state`)
	return err
}
