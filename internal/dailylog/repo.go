package dailylog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nutricoach/server/internal/nutrition"
	"github.com/nutricoach/server/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrLogNotFound = errors.New("daily log not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert stores the log for (client, date), overwriting the intake
// values if the client already logged that date.
func (r *Repo) Upsert(ctx context.Context, dailyLog DailyLog) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylog.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", dailyLog.ClientID))

	now := time.Now()
	dailyLog.Date = dailyLog.Date.Truncate(24 * time.Hour)

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO daily_log
				(client_id, date, day_type, actual_calories, protein_g, fats_g, carbs_g, is_completed, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			ON CONFLICT (client_id, date) DO UPDATE SET
				day_type = EXCLUDED.day_type,
				actual_calories = EXCLUDED.actual_calories,
				protein_g = EXCLUDED.protein_g,
				fats_g = EXCLUDED.fats_g,
				carbs_g = EXCLUDED.carbs_g,
				is_completed = EXCLUDED.is_completed,
				updated_at = EXCLUDED.updated_at
			RETURNING id, created_at;`,
		dailyLog.ClientID, dailyLog.Date, dailyLog.DayType,
		dailyLog.ActualCalories, dailyLog.ProteinGrams, dailyLog.FatsGrams, dailyLog.CarbsGrams,
		dailyLog.IsCompleted, now,
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

	if err := rows.Scan(&dailyLog.ID, &dailyLog.CreatedAt); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("log.id", dailyLog.ID))

	dailyLog.UpdatedAt = now
	return &dailyLog, nil
}

// MarkCompleted closes the log for (client, date).
func (r *Repo) MarkCompleted(ctx context.Context, clientID int, date time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylog.markCompleted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE daily_log SET is_completed = TRUE, updated_at = $1
			WHERE client_id = $2 AND date = $3;`,
		time.Now(), clientID, date.Truncate(24*time.Hour),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLogNotFound
	}
	return nil
}

func (r *Repo) GetForDate(ctx context.Context, clientID int, date time.Time) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylog.getForDate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, client_id, date, day_type, actual_calories, protein_g, fats_g, carbs_g, is_completed, created_at, updated_at
			FROM daily_log
			WHERE client_id = $1 AND date = $2;`,
		clientID, date.Truncate(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	logs, err := r.rows2logs(rows)
	if err != nil {
		return nil, err
	}

	if len(logs) != 1 {
		return nil, ErrLogNotFound
	}

	return &logs[0], nil
}

// LastLog returns the most recent log of a client, used for the
// check-in recency on the dashboard.
func (r *Repo) LastLog(ctx context.Context, clientID int) (_ *DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylog.lastLog")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, client_id, date, day_type, actual_calories, protein_g, fats_g, carbs_g, is_completed, created_at, updated_at
			FROM daily_log
			WHERE client_id = $1
			ORDER BY date DESC
			LIMIT 1;`,
		clientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	logs, err := r.rows2logs(rows)
	if err != nil {
		return nil, err
	}

	if len(logs) == 0 {
		return nil, ErrLogNotFound
	}

	return &logs[0], nil
}

// ListRange returns a client's logs between from and to inclusive,
// oldest first. Used by the weekly reports.
func (r *Repo) ListRange(ctx context.Context, clientID int, from, to time.Time) (_ []DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.dailylog.listRange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))
	span.SetAttributes(attribute.String("from", from.String()))
	span.SetAttributes(attribute.String("to", to.String()))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, client_id, date, day_type, actual_calories, protein_g, fats_g, carbs_g, is_completed, created_at, updated_at
			FROM daily_log
			WHERE client_id = $1 AND date >= $2 AND date <= $3
			ORDER BY date;`,
		clientID, from.Truncate(24*time.Hour), to.Truncate(24*time.Hour),
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2logs(rows)
}

func (r *Repo) rows2logs(rows pgx.Rows) ([]DailyLog, error) {
	var logs []DailyLog
	for rows.Next() {
		var l DailyLog
		var dayType string
		if err := rows.Scan(
			&l.ID, &l.ClientID, &l.Date, &dayType,
			&l.ActualCalories, &l.ProteinGrams, &l.FatsGrams, &l.CarbsGrams,
			&l.IsCompleted, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		l.DayType = nutrition.DayType(dayType)
		logs = append(logs, l)
	}
	return logs, nil
}
