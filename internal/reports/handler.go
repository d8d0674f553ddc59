package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/nutricoach/server/internal/clients"
	"github.com/nutricoach/server/internal/telemetry/tracing"
	"github.com/nutricoach/server/pkg"
)

type profilesRepo interface {
	Get(ctx context.Context, id int) (*clients.Profile, error)
}

type Handler struct {
	analyzer *Analyzer
	profiles profilesRepo
}

func NewHandler(analyzer *Analyzer, profiles profilesRepo) *Handler {
	return &Handler{
		analyzer: analyzer,
		profiles: profiles,
	}
}

// HandleWeeklyReport serves the weekly adherence report. Reports are a
// premium feature, non-premium clients get 402.
func (handler *Handler) HandleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.reports.weekly")
	defer span.End()

	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		http.Error(w, "error, client id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, client id NaN", http.StatusBadRequest)
		return
	}

	profile, err := handler.profiles.Get(ctx, id)
	if err != nil {
		if errors.Is(err, clients.ErrProfileNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get client %d for report: %s", id, err)
		http.Error(w, "error, failed to build report", http.StatusInternalServerError)
		return
	}

	if !profile.IsPremium {
		http.Error(w, "error, reports are a premium feature", http.StatusPaymentRequired)
		return
	}

	weekEnd := time.Now()
	if weekEndStr := r.URL.Query().Get("weekEnd"); weekEndStr != "" {
		weekEnd, err = time.Parse("2006-01-02", weekEndStr)
		if err != nil {
			http.Error(w, "error, invalid weekEnd date", http.StatusBadRequest)
			return
		}
	}

	report, err := handler.analyzer.WeeklyReport(ctx, id, weekEnd)
	if err != nil {
		log.Errorf("failed to build weekly report for client %d: %s", id, err)
		http.Error(w, "error, failed to build report", http.StatusInternalServerError)
		return
	}

	reportJson, err := json.Marshal(report)
	if err != nil {
		log.Errorf("failed to marshal weekly report: %s", err)
		http.Error(w, "error, failed to build report", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, reportJson, http.StatusOK)
}
