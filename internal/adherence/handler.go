package adherence

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/nutricoach/server/internal/telemetry/metrics"
	"github.com/nutricoach/server/internal/telemetry/tracing"
	"github.com/nutricoach/server/pkg"
)

type DashboardResponse struct {
	Clients []ClientStatus `json:"clients"`
}

type Handler struct {
	service *Service
	metrics *metrics.Manager
}

func NewHandler(service *Service, metrics *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
	}
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.adherence.dashboard")
	defer span.End()

	statuses, err := handler.service.Dashboard(ctx)
	if err != nil {
		log.Errorf("failed to build dashboard: %s", err)
		http.Error(w, "error, failed to build dashboard", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterDashboardRenders.Inc()

	respJson, err := json.Marshal(DashboardResponse{Clients: statuses})
	if err != nil {
		log.Errorf("failed to marshal dashboard: %s", err)
		http.Error(w, "error, failed to build dashboard", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
