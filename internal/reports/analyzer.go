package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nutricoach/server/internal/adherence"
	"github.com/nutricoach/server/internal/dailylog"
	"github.com/nutricoach/server/internal/nutrition"
	"github.com/nutricoach/server/internal/telemetry/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=reports_test

type logsRepo interface {
	ListRange(ctx context.Context, clientID int, from, to time.Time) ([]dailylog.DailyLog, error)
}

type targetsRepo interface {
	ActiveTarget(ctx context.Context, clientID int, dayType nutrition.DayType) (*nutrition.Target, error)
}

const reportDays = 7

// DayReport is one day of the weekly report.
type DayReport struct {
	Date           time.Time        `json:"date"`
	Logged         bool             `json:"logged"`
	IsCompleted    bool             `json:"isCompleted"`
	ActualCalories int              `json:"actualCalories"`
	TargetCalories int              `json:"targetCalories"`
	Status         adherence.Status `json:"status"`
}

type WeeklyReport struct {
	// ID gives the coach a stable reference for a generated report
	ID       string      `json:"id"`
	ClientID int         `json:"clientId"`
	From     time.Time   `json:"from"`
	To       time.Time   `json:"to"`
	Days     []DayReport `json:"days"`
	// share of the seven days with a completed log
	CompletionRate float64 `json:"completionRate"`
	// mean |actual - target| / target over logged days with a target
	AvgCalorieDeviation float64 `json:"avgCalorieDeviation"`
	// consecutive completed days counting back from the last report day
	CurrentStreak int `json:"currentStreak"`
}

// Analyzer builds weekly adherence reports from logs and targets.
type Analyzer struct {
	logs    logsRepo
	targets targetsRepo
}

func NewAnalyzer(logs logsRepo, targets targetsRepo) *Analyzer {
	return &Analyzer{
		logs:    logs,
		targets: targets,
	}
}

// WeeklyReport covers the seven days ending at weekEnd (inclusive).
func (a *Analyzer) WeeklyReport(ctx context.Context, clientID int, weekEnd time.Time) (_ *WeeklyReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.reports.weekly")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("client.id", clientID))

	weekEnd = weekEnd.Truncate(24 * time.Hour)
	weekStart := weekEnd.AddDate(0, 0, -(reportDays - 1))

	logs, err := a.logs.ListRange(ctx, clientID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	logsByDate := make(map[string]dailylog.DailyLog, len(logs))
	for _, l := range logs {
		logsByDate[l.Date.Format("2006-01-02")] = l
	}

	report := &WeeklyReport{
		ID:       uuid.NewString(),
		ClientID: clientID,
		From:     weekStart,
		To:       weekEnd,
		Days:     make([]DayReport, 0, reportDays),
	}

	completedDays := 0
	deviationSum := 0.0
	deviationDays := 0
	for i := 0; i < reportDays; i++ {
		date := weekStart.AddDate(0, 0, i)
		dayReport := DayReport{Date: date}

		storedLog, logged := logsByDate[date.Format("2006-01-02")]
		if logged {
			dayReport.Logged = true
			dayReport.IsCompleted = storedLog.IsCompleted
			dayReport.ActualCalories = storedLog.ActualCalories
			if storedLog.IsCompleted {
				completedDays++
			}
		}

		target, err := a.dayTarget(ctx, clientID, storedLog, logged)
		if err != nil {
			return nil, err
		}

		var classifierLog *adherence.Log
		var classifierTarget *adherence.Target
		if logged {
			classifierLog = &adherence.Log{
				ActualCalories: storedLog.ActualCalories,
				IsCompleted:    storedLog.IsCompleted,
			}
		}
		if target != nil {
			dayReport.TargetCalories = target.Calories
			classifierTarget = &adherence.Target{Calories: target.Calories}
		}

		// past days carry no check-in recency, unlogged ones stay grey
		dayReport.Status = adherence.Classify(classifierLog, classifierTarget, nil)
		report.Days = append(report.Days, dayReport)

		if logged && target != nil && target.Calories > 0 {
			deviation := float64(storedLog.ActualCalories-target.Calories) / float64(target.Calories)
			if deviation < 0 {
				deviation = -deviation
			}
			deviationSum += deviation
			deviationDays++
		}
	}

	report.CompletionRate = float64(completedDays) / reportDays
	if deviationDays > 0 {
		report.AvgCalorieDeviation = deviationSum / float64(deviationDays)
	}

	for i := len(report.Days) - 1; i >= 0; i-- {
		if !report.Days[i].IsCompleted {
			break
		}
		report.CurrentStreak++
	}

	return report, nil
}

func (a *Analyzer) dayTarget(ctx context.Context, clientID int, storedLog dailylog.DailyLog, logged bool) (*nutrition.Target, error) {
	dayType := nutrition.DayTypeTraining
	if logged && storedLog.DayType.IsValid() {
		dayType = storedLog.DayType
	}

	target, err := a.targets.ActiveTarget(ctx, clientID, dayType)
	if err != nil {
		if errors.Is(err, nutrition.ErrTargetNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active target: %w", err)
	}
	return target, nil
}
