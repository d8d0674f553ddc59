package clients

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

// Biometrics is the onboarding form payload.
type Biometrics struct {
	Gender        nutrition.Gender        `json:"gender"`
	BirthDate     time.Time               `json:"birthDate"`
	HeightCm      float64                 `json:"heightCm"`
	WeightKg      float64                 `json:"weightKg"`
	ActivityLevel nutrition.ActivityLevel `json:"activityLevel"`
	Goal          nutrition.Goal          `json:"goal"`
}

type OnboardingResult struct {
	Profile     Profile          `json:"profile"`
	RestDay     nutrition.Target `json:"restDay"`
	TrainingDay nutrition.Target `json:"trainingDay"`
}

type OnboardingService struct {
	db       *pgxpool.Pool
	profiles *Repo
	targets  *nutrition.Repo
	now      func() time.Time
}

func NewOnboardingService(
	db *pgxpool.Pool,
	profiles *Repo,
	targets *nutrition.Repo,
) *OnboardingService {
	return &OnboardingService{
		db:       db,
		profiles: profiles,
		targets:  targets,
		now:      time.Now,
	}
}

// Complete stores the onboarding biometrics on the profile, derives the
// rest and training day targets and persists the biometrics, both
// target rows and the onboarded stamp in one transaction, so a failure
// anywhere leaves the profile untouched.
func (s *OnboardingService) Complete(ctx context.Context, clientID int, biometrics Biometrics) (_ *OnboardingResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.clients.onboarding.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))

	profile, err := s.profiles.Get(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	profile.Gender = biometrics.Gender
	profile.BirthDate = biometrics.BirthDate
	profile.HeightCm = biometrics.HeightCm
	profile.WeightKg = biometrics.WeightKg
	profile.ActivityLevel = biometrics.ActivityLevel
	profile.Goal = biometrics.Goal

	now := s.now()
	computed := nutrition.ComputeTargets(
		biometrics.Gender,
		biometrics.WeightKg, biometrics.HeightCm,
		biometrics.BirthDate,
		biometrics.ActivityLevel, biometrics.Goal,
		now,
	)

	tx, err := s.db.Begin(ctx)
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

	if err = s.profiles.UpdateTx(ctx, tx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	restRow, err := s.targets.SetTargetTx(ctx, tx, nutrition.NewTarget(clientID, nutrition.DayTypeRest, computed.RestDay))
	if err != nil {
		return nil, fmt.Errorf("store rest day target: %w", err)
	}
	trainingRow, err := s.targets.SetTargetTx(ctx, tx, nutrition.NewTarget(clientID, nutrition.DayTypeTraining, computed.TrainingDay))
	if err != nil {
		return nil, fmt.Errorf("store training day target: %w", err)
	}

	if err = s.profiles.MarkOnboarded(ctx, tx, clientID, now); err != nil {
		return nil, fmt.Errorf("mark onboarded: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	profile.OnboardedAt = &now
	return &OnboardingResult{
		Profile:     *profile,
		RestDay:     *restRow,
		TrainingDay: *trainingRow,
	}, nil
}
