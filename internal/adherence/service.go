package adherence

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/nutricoach/server/internal/clients"
	"github.com/nutricoach/server/internal/dailylog"
	"github.com/nutricoach/server/internal/nutrition"
	"github.com/nutricoach/server/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=adherence_test

type profilesRepo interface {
	List(ctx context.Context) ([]clients.Profile, error)
}

type logsRepo interface {
	GetForDate(ctx context.Context, clientID int, date time.Time) (*dailylog.DailyLog, error)
	LastLog(ctx context.Context, clientID int) (*dailylog.DailyLog, error)
}

type targetsRepo interface {
	ActiveTarget(ctx context.Context, clientID int, dayType nutrition.DayType) (*nutrition.Target, error)
}

// ClientStatus is one row of the coach dashboard.
type ClientStatus struct {
	ClientID              int      `json:"clientId"`
	Name                  string   `json:"name"`
	Status                Status   `json:"status"`
	TodayCalories         *int     `json:"todayCalories,omitempty"`
	TargetCalories        *int     `json:"targetCalories,omitempty"`
	HoursSinceLastCheckin *float64 `json:"hoursSinceLastCheckin,omitempty"`
}

type Service struct {
	profiles profilesRepo
	logs     logsRepo
	targets  targetsRepo
	// ability to inject the clock (for unit testing)
	NowFunc func() time.Time
}

func NewService(profiles profilesRepo, logs logsRepo, targets targetsRepo) *Service {
	return &Service{
		profiles: profiles,
		logs:     logs,
		targets:  targets,
		NowFunc:  time.Now,
	}
}

// Dashboard classifies every client for today and returns the list
// sorted most urgent first, ties broken by name. Nothing is persisted,
// each call recomputes from the current logs and targets.
func (s *Service) Dashboard(ctx context.Context) (_ []ClientStatus, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.adherence.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	span.SetAttributes(attribute.Int("clients.count", len(profiles)))

	now := s.NowFunc()
	statuses := make([]ClientStatus, 0, len(profiles))
	for _, profile := range profiles {
		clientStatus, err := s.classifyClient(ctx, profile, now)
		if err != nil {
			return nil, fmt.Errorf("classify client %d: %w", profile.ID, err)
		}
		statuses = append(statuses, *clientStatus)
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		if statuses[i].Status.SortPriority() != statuses[j].Status.SortPriority() {
			return statuses[i].Status.SortPriority() < statuses[j].Status.SortPriority()
		}
		return statuses[i].Name < statuses[j].Name
	})

	return statuses, nil
}

func (s *Service) classifyClient(ctx context.Context, profile clients.Profile, now time.Time) (*ClientStatus, error) {
	clientStatus := &ClientStatus{
		ClientID: profile.ID,
		Name:     profile.Name,
	}

	var todayLog *Log
	dayType := nutrition.DayTypeTraining
	storedLog, err := s.logs.GetForDate(ctx, profile.ID, now)
	switch {
	case err == nil:
		todayLog = &Log{
			ActualCalories: storedLog.ActualCalories,
			IsCompleted:    storedLog.IsCompleted,
		}
		clientStatus.TodayCalories = &storedLog.ActualCalories
		if storedLog.DayType.IsValid() {
			dayType = storedLog.DayType
		}
	case errors.Is(err, dailylog.ErrLogNotFound):
		// no log today, check-in recency decides
	default:
		return nil, fmt.Errorf("get today's log: %w", err)
	}

	var target *Target
	storedTarget, err := s.targets.ActiveTarget(ctx, profile.ID, dayType)
	switch {
	case err == nil:
		target = &Target{Calories: storedTarget.Calories}
		clientStatus.TargetCalories = &storedTarget.Calories
	case errors.Is(err, nutrition.ErrTargetNotFound):
		// never onboarded, or targets cleared
	default:
		return nil, fmt.Errorf("get active target: %w", err)
	}

	var hoursSinceLastCheckin *float64
	lastLog, err := s.logs.LastLog(ctx, profile.ID)
	switch {
	case err == nil:
		hours := now.Sub(lastLog.Date).Hours()
		hoursSinceLastCheckin = &hours
		clientStatus.HoursSinceLastCheckin = &hours
	case errors.Is(err, dailylog.ErrLogNotFound):
		// never checked in
	default:
		return nil, fmt.Errorf("get last log: %w", err)
	}

	clientStatus.Status = Classify(todayLog, target, hoursSinceLastCheckin)
	return clientStatus, nil
}
