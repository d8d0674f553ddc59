package dailylog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/nutricoach/server/internal/nutrition"
	"github.com/nutricoach/server/internal/telemetry/metrics"
	"github.com/nutricoach/server/internal/telemetry/tracing"
	"github.com/nutricoach/server/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=dailylog_test

type logsRepo interface {
	Upsert(ctx context.Context, dailyLog DailyLog) (*DailyLog, error)
	MarkCompleted(ctx context.Context, clientID int, date time.Time) error
	GetForDate(ctx context.Context, clientID int, date time.Time) (*DailyLog, error)
	ListRange(ctx context.Context, clientID int, from, to time.Time) ([]DailyLog, error)
}

const dateLayout = "2006-01-02"

type ListResponse struct {
	Logs []DailyLog `json:"logs"`
}

type Handler struct {
	repo    logsRepo
	metrics *metrics.Manager
}

func NewHandler(repo logsRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

// HandleUpsert stores (or overwrites) the log for one date.
func (handler *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.upsert")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	clientID, ok := clientIDFromRequest(w, r)
	if !ok {
		return
	}

	var dailyLog DailyLog
	if err := json.NewDecoder(r.Body).Decode(&dailyLog); err != nil {
		log.Errorf("new daily log, unmarshal json params: %s", err)
		http.Error(w, "add daily log failed", http.StatusBadRequest)
		return
	}
	dailyLog.ClientID = clientID

	if dailyLog.Date.IsZero() {
		dailyLog.Date = time.Now()
	}
	if dailyLog.DayType == "" {
		dailyLog.DayType = nutrition.DayTypeTraining
	}
	if !dailyLog.DayType.IsValid() {
		http.Error(w, "error, invalid day type", http.StatusBadRequest)
		return
	}
	if dailyLog.ActualCalories < 0 {
		http.Error(w, "error, calories must not be negative", http.StatusBadRequest)
		return
	}

	storedLog, err := handler.repo.Upsert(ctx, dailyLog)
	if err != nil {
		log.Errorf("failed to store daily log for client %d: %s", clientID, err)
		http.Error(w, "error, failed to store daily log", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterDailyLogs.Inc()

	logJson, err := json.Marshal(storedLog)
	if err != nil {
		log.Errorf("failed to marshal daily log: %s", err)
		http.Error(w, "error, failed to store daily log", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, logJson, http.StatusCreated)
}

// HandleComplete marks the log for a date as completed, i.e. the
// client is done logging that day.
func (handler *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.complete")
	defer span.End()

	clientID, ok := clientIDFromRequest(w, r)
	if !ok {
		return
	}

	date, ok := dateFromRequest(w, r)
	if !ok {
		return
	}

	if err := handler.repo.MarkCompleted(ctx, clientID, date); err != nil {
		if errors.Is(err, ErrLogNotFound) {
			http.Error(w, "daily log not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to complete daily log for client %d: %s", clientID, err)
		http.Error(w, "error, failed to complete daily log", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "completed")
}

func (handler *Handler) HandleGetForDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.getForDate")
	defer span.End()

	clientID, ok := clientIDFromRequest(w, r)
	if !ok {
		return
	}

	date, ok := dateFromRequest(w, r)
	if !ok {
		return
	}

	dailyLog, err := handler.repo.GetForDate(ctx, clientID, date)
	if err != nil {
		if errors.Is(err, ErrLogNotFound) {
			http.Error(w, "daily log not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get daily log for client %d: %s", clientID, err)
		http.Error(w, "failed to get daily log", http.StatusInternalServerError)
		return
	}

	logJson, err := json.Marshal(dailyLog)
	if err != nil {
		log.Errorf("failed to marshal daily log: %s", err)
		http.Error(w, "failed to marshal daily log", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, logJson, http.StatusOK)
}

// HandleListRange returns the logs between the from/to query params.
func (handler *Handler) HandleListRange(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylog.listRange")
	defer span.End()

	clientID, ok := clientIDFromRequest(w, r)
	if !ok {
		return
	}

	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "error, invalid from date", http.StatusBadRequest)
		return
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "error, invalid to date", http.StatusBadRequest)
		return
	}

	logs, err := handler.repo.ListRange(ctx, clientID, from, to)
	if err != nil {
		log.Errorf("failed to list daily logs for client %d: %s", clientID, err)
		http.Error(w, "failed to list daily logs", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListResponse{Logs: logs})
	if err != nil {
		log.Errorf("failed to marshal daily logs: %s", err)
		http.Error(w, "failed to list daily logs", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func clientIDFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		http.Error(w, "error, client id empty", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, client id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func dateFromRequest(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	dateStr := mux.Vars(r)["date"]
	if dateStr == "" {
		http.Error(w, "error, date empty", http.StatusBadRequest)
		return time.Time{}, false
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return time.Time{}, false
	}
	return date, true
}
