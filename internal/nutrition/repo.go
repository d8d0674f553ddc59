package nutrition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nutricoach/server/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrTargetNotFound = errors.New("nutrition target not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// SetTarget stores a new active target for (client, day type). The
// previous active row is deactivated in the same transaction, so at
// most one target per (client, day type) stays active.
func (r *Repo) SetTarget(ctx context.Context, target Target) (_ *Target, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.setTarget")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", target.ClientID))
	span.SetAttributes(attribute.String("day.type", target.DayType.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				err = fmt.Errorf("%w [rollback: %s]", err, rollbackErr)
			}
		}
	}()

	stored, err := r.setTargetTx(ctx, tx, target)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return stored, nil
}

// SetTargetTx is SetTarget within a caller-owned transaction, used by
// onboarding to store both day-type rows atomically.
func (r *Repo) SetTargetTx(ctx context.Context, tx pgx.Tx, target Target) (*Target, error) {
	return r.setTargetTx(ctx, tx, target)
}

func (r *Repo) setTargetTx(ctx context.Context, tx pgx.Tx, target Target) (*Target, error) {
	if _, err := tx.Exec(
		ctx,
		`UPDATE nutrition_target SET is_active = FALSE
			WHERE client_id = $1 AND day_type = $2 AND is_active = TRUE;`,
		target.ClientID, target.DayType,
	); err != nil {
		return nil, fmt.Errorf("deactivate previous: %w", err)
	}

	target.IsActive = true
	if target.CreatedAt.IsZero() {
		target.CreatedAt = time.Now()
	}

	rows, err := tx.Query(
		ctx,
		`INSERT INTO nutrition_target
				(client_id, day_type, calories, protein_g, fats_g, carbs_g, is_active, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id;`,
		target.ClientID, target.DayType, target.Calories,
		target.ProteinGrams, target.FatsGrams, target.CarbsGrams,
		target.IsActive, target.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	target.ID = id
	return &target, nil
}

func (r *Repo) ActiveTarget(ctx context.Context, clientID int, dayType DayType) (_ *Target, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.activeTarget")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))
	span.SetAttributes(attribute.String("day.type", dayType.String()))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, client_id, day_type, calories, protein_g, fats_g, carbs_g, is_active, created_at
			FROM nutrition_target
			WHERE client_id = $1 AND day_type = $2 AND is_active = TRUE;`,
		clientID, dayType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	targets, err := r.rows2targets(rows)
	if err != nil {
		return nil, err
	}

	if len(targets) != 1 {
		return nil, ErrTargetNotFound
	}

	return &targets[0], nil
}

// ActiveTargets returns the active rest and training rows for a client.
func (r *Repo) ActiveTargets(ctx context.Context, clientID int) (_ []Target, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.activeTargets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, client_id, day_type, calories, protein_g, fats_g, carbs_g, is_active, created_at
			FROM nutrition_target
			WHERE client_id = $1 AND is_active = TRUE
			ORDER BY day_type;`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2targets(rows)
}

// History returns every target ever set for a client, newest first.
func (r *Repo) History(ctx context.Context, clientID int) (_ []Target, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, client_id, day_type, calories, protein_g, fats_g, carbs_g, is_active, created_at
			FROM nutrition_target
			WHERE client_id = $1
			ORDER BY created_at DESC;`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2targets(rows)
}

func (r *Repo) rows2targets(rows pgx.Rows) ([]Target, error) {
	var targets []Target
	for rows.Next() {
		var t Target
		var dayType string
		if err := rows.Scan(
			&t.ID, &t.ClientID, &dayType, &t.Calories,
			&t.ProteinGrams, &t.FatsGrams, &t.CarbsGrams,
			&t.IsActive, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		t.DayType = DayType(dayType)
		targets = append(targets, t)
	}
	return targets, nil
}
