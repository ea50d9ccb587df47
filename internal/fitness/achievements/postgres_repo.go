package achievements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittracker/internal/telemetry/tracing"

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

// Seed inserts a locked state for every id that has none yet.
func (r *PostgresRepo) Seed(ctx context.Context, ids []string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.seed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("ids", len(ids)))

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(
			`INSERT INTO achievement_state (id, unlocked) VALUES ($1, false) ON CONFLICT (id) DO NOTHING;`,
			id,
		)
	}

	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed achievement states: %w", err)
	}
	return nil
}

func (r *PostgresRepo) List(ctx context.Context) (_ []State, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id, unlocked, unlocked_at FROM achievement_state ORDER BY id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []State
	for rows.Next() {
		var s State
		if err := rows.Scan(&s.ID, &s.Unlocked, &s.UnlockedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		states = append(states, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return states, nil
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (_ *State, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("achievement.id", id))

	var s State
	err = r.db.QueryRow(
		ctx,
		`SELECT id, unlocked, unlocked_at FROM achievement_state WHERE id = $1;`,
		id,
	).Scan(&s.ID, &s.Unlocked, &s.UnlockedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &s, nil
}

// Unlock flips a locked state to unlocked. It reports false when the state
// was already unlocked or does not exist, leaving the stored timestamp untouched.
func (r *PostgresRepo) Unlock(ctx context.Context, id string, at time.Time) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.unlock")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("achievement.id", id))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE achievement_state SET unlocked = true, unlocked_at = $2 WHERE id = $1 AND unlocked = false;`,
		id, at,
	)
	if err != nil {
		return false, fmt.Errorf("unlock %s: %w", id, err)
	}

	return tag.RowsAffected() == 1, nil
}

// Reset removes every state. Callers reseed afterwards.
func (r *PostgresRepo) Reset(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.achievements.reset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `DELETE FROM achievement_state;`)
	return err
}
