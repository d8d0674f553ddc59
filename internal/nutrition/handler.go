package nutrition

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/nutricoach/server/internal/telemetry/tracing"
	"github.com/nutricoach/server/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=nutrition_test

type targetsRepo interface {
	SetTarget(ctx context.Context, target Target) (*Target, error)
	ActiveTargets(ctx context.Context, clientID int) ([]Target, error)
	History(ctx context.Context, clientID int) ([]Target, error)
}

type SetTargetRequest struct {
	Calories     int `json:"calories"`
	ProteinGrams int `json:"proteinGrams"`
	FatsGrams    int `json:"fatsGrams"`
	CarbsGrams   int `json:"carbsGrams"`
}

type TargetsResponse struct {
	Targets []Target `json:"targets"`
}

type Handler struct {
	repo targetsRepo
}

func NewHandler(repo targetsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

// HandleSetTarget lets the coach override a client's target for one
// day type. A new active row is inserted, history stays untouched.
func (handler *Handler) HandleSetTarget(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.setTarget")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	clientID, ok := clientIDFromRequest(w, r)
	if !ok {
		return
	}

	dayType := DayType(mux.Vars(r)["daytype"])
	if !dayType.IsValid() {
		http.Error(w, "error, invalid day type", http.StatusBadRequest)
		return
	}

	var req SetTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("set target, unmarshal json params: %s", err)
		http.Error(w, "set target failed", http.StatusBadRequest)
		return
	}

	if req.Calories <= 0 {
		http.Error(w, "error, calories must be positive", http.StatusBadRequest)
		return
	}
	if req.ProteinGrams < 0 || req.FatsGrams < 0 || req.CarbsGrams < 0 {
		http.Error(w, "error, macros must not be negative", http.StatusBadRequest)
		return
	}

	target, err := handler.repo.SetTarget(ctx, Target{
		ClientID:     clientID,
		DayType:      dayType,
		Calories:     req.Calories,
		ProteinGrams: req.ProteinGrams,
		FatsGrams:    req.FatsGrams,
		CarbsGrams:   req.CarbsGrams,
	})
	if err != nil {
		log.Errorf("failed to set %s target for client %d: %s", dayType, clientID, err)
		http.Error(w, "error, failed to set target", http.StatusInternalServerError)
		return
	}

	targetJson, err := json.Marshal(target)
	if err != nil {
		log.Errorf("failed to marshal target: %s", err)
		http.Error(w, "error, failed to set target", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, targetJson, http.StatusCreated)
}

func (handler *Handler) HandleGetActiveTargets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.activeTargets")
	defer span.End()

	clientID, ok := clientIDFromRequest(w, r)
	if !ok {
		return
	}

	targets, err := handler.repo.ActiveTargets(ctx, clientID)
	if err != nil {
		log.Errorf("failed to get active targets for client %d: %s", clientID, err)
		http.Error(w, "error, failed to get targets", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(TargetsResponse{Targets: targets})
	if err != nil {
		log.Errorf("failed to marshal targets: %s", err)
		http.Error(w, "error, failed to get targets", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.nutrition.history")
	defer span.End()

	clientID, ok := clientIDFromRequest(w, r)
	if !ok {
		return
	}

	targets, err := handler.repo.History(ctx, clientID)
	if err != nil {
		log.Errorf("failed to get target history for client %d: %s", clientID, err)
		http.Error(w, "error, failed to get target history", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(TargetsResponse{Targets: targets})
	if err != nil {
		log.Errorf("failed to marshal target history: %s", err)
		http.Error(w, "error, failed to get target history", http.StatusInternalServerError)
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
