package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nutricoach/server/internal/nutrition"
	"github.com/nutricoach/server/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// execer is satisfied by both *pgxpool.Pool and pgx.Tx, so updates can
// run standalone or inside a caller-owned transaction.
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

var ErrProfileNotFound = errors.New("client profile not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, profile Profile) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.clients.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO client_profile
				(name, email, gender, birth_date, height_cm, weight_kg, activity_level, goal, is_premium, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id;`,
		profile.Name, profile.Email, profile.Gender, profile.BirthDate,
		profile.HeightCm, profile.WeightKg, profile.ActivityLevel, profile.Goal,
		profile.IsPremium, profile.CreatedAt, profile.UpdatedAt,
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

	span.SetAttributes(attribute.Int("profile.id", id))

	profile.ID = id
	return &profile, nil
}

func (r *Repo) Update(ctx context.Context, profile *Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.clients.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", profile.ID))

	return r.update(ctx, r.db, profile)
}

// UpdateTx is Update within a caller-owned transaction, used by
// onboarding to store the biometrics together with the targets.
func (r *Repo) UpdateTx(ctx context.Context, tx pgx.Tx, profile *Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.clients.updateTx")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", profile.ID))

	return r.update(ctx, tx, profile)
}

func (r *Repo) update(ctx context.Context, db execer, profile *Profile) error {
	tag, err := db.Exec(
		ctx,
		`UPDATE client_profile
			SET name = $1, email = $2, gender = $3, birth_date = $4,
				height_cm = $5, weight_kg = $6, activity_level = $7, goal = $8,
				is_premium = $9, updated_at = $10
			WHERE id = $11;`,
		profile.Name, profile.Email, profile.Gender, profile.BirthDate,
		profile.HeightCm, profile.WeightKg, profile.ActivityLevel, profile.Goal,
		profile.IsPremium, time.Now(), profile.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// MarkOnboarded stamps the profile as onboarded. Done within the same
// transaction that stores the initial nutrition targets.
func (r *Repo) MarkOnboarded(ctx context.Context, tx pgx.Tx, id int, onboardedAt time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.clients.markOnboarded")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := tx.Exec(
		ctx,
		`UPDATE client_profile SET onboarded_at = $1, updated_at = $1 WHERE id = $2;`,
		onboardedAt, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.clients.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM client_profile WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.clients.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, name, email, gender, birth_date, height_cm, weight_kg,
				activity_level, goal, is_premium, onboarded_at, created_at, updated_at
			FROM client_profile
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	profiles, err := r.rows2profiles(rows)
	if err != nil {
		return nil, err
	}

	if len(profiles) != 1 {
		return nil, ErrProfileNotFound
	}

	return &profiles[0], nil
}

// List returns all client profiles ordered by name.
func (r *Repo) List(ctx context.Context) (_ []Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.clients.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, name, email, gender, birth_date, height_cm, weight_kg,
				activity_level, goal, is_premium, onboarded_at, created_at, updated_at
			FROM client_profile
			ORDER BY name;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	profiles, err := r.rows2profiles(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2profiles: %w", err)
	}
	return profiles, nil
}

func (r *Repo) rows2profiles(rows pgx.Rows) ([]Profile, error) {
	var profiles []Profile
	for rows.Next() {
		var p Profile
		var gender, activityLevel, goal string
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Email, &gender, &p.BirthDate,
			&p.HeightCm, &p.WeightKg, &activityLevel, &goal,
			&p.IsPremium, &p.OnboardedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		p.Gender = nutrition.Gender(gender)
		p.ActivityLevel = nutrition.ActivityLevel(activityLevel)
		p.Goal = nutrition.Goal(goal)
		profiles = append(profiles, p)
	}
	return profiles, nil
}
