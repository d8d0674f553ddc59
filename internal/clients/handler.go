package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/nutricoach/server/internal/telemetry/metrics"
	"github.com/nutricoach/server/internal/telemetry/tracing"
	"github.com/nutricoach/server/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=clients_test

type clientsRepo interface {
	Add(ctx context.Context, profile Profile) (*Profile, error)
	Get(ctx context.Context, id int) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id int) error
}

type onboarding interface {
	Complete(ctx context.Context, clientID int, biometrics Biometrics) (*OnboardingResult, error)
}

const (
	minWeightKg = 30
	maxWeightKg = 300
	minHeightCm = 100
	maxHeightCm = 250
)

type ListResponse struct {
	Clients []Profile `json:"clients"`
}

type DeleteClientResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	repo       clientsRepo
	onboarding onboarding
	metrics    *metrics.Manager
}

func NewHandler(repo clientsRepo, onboarding onboarding, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:       repo,
		onboarding: onboarding,
		metrics:    metrics,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.clients.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var profile Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Errorf("new client, unmarshal json params: %s", err)
		http.Error(w, "add client failed", http.StatusBadRequest)
		return
	}

	if profile.Name == "" || profile.Email == "" {
		http.Error(w, "error, client name or email empty", http.StatusBadRequest)
		return
	}

	addedProfile, err := handler.repo.Add(ctx, profile)
	if err != nil {
		log.Errorf("failed to add new client [%s]: %s", profile.Email, err)
		http.Error(w, "error, failed to add new client", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(addedProfile)
	if err != nil {
		log.Errorf("failed to marshal new client: %s", err)
		http.Error(w, "error, failed to add new client", http.StatusInternalServerError)
		return
	}

	log.Debugf("new client added: %d", addedProfile.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, profileJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.clients.get")
	defer span.End()

	id, ok := idFromRequest(w, r)
	if !ok {
		return
	}

	profile, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get client %d: %s", id, err)
		http.Error(w, "failed to get client", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(profile)
	if err != nil {
		log.Errorf("failed to marshal client: %s", err)
		http.Error(w, "failed to marshal client", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, profileJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.clients.list")
	defer span.End()

	profiles, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("failed to list clients: %s", err)
		http.Error(w, "failed to list clients", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListResponse{Clients: profiles})
	if err != nil {
		log.Errorf("failed to marshal clients: %s", err)
		http.Error(w, "failed to list clients", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.clients.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	id, ok := idFromRequest(w, r)
	if !ok {
		return
	}

	var profile Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Errorf("update client, unmarshal json params: %s", err)
		http.Error(w, "update client failed", http.StatusBadRequest)
		return
	}
	profile.ID = id

	if err := handler.repo.Update(ctx, &profile); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update client %d: %s", id, err)
		http.Error(w, "error, failed to update client", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, fmt.Sprintf("updated:%d", id))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.clients.delete")
	defer span.End()

	id, ok := idFromRequest(w, r)
	if !ok {
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete client %d: %s", id, err)
		http.Error(w, "error, failed to delete client", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(DeleteClientResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete client response: %s", err)
		http.Error(w, "error, failed to delete client", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

// HandleCompleteOnboarding validates the submitted biometrics, derives
// the calorie and macro targets and stores them for the client.
func (handler *Handler) HandleCompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.clients.onboarding.complete")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	id, ok := idFromRequest(w, r)
	if !ok {
		return
	}

	var biometrics Biometrics
	if err := json.NewDecoder(r.Body).Decode(&biometrics); err != nil {
		log.Errorf("complete onboarding, unmarshal json params: %s", err)
		http.Error(w, "complete onboarding failed", http.StatusBadRequest)
		return
	}

	if !biometrics.Gender.IsValid() {
		http.Error(w, "error, invalid gender", http.StatusBadRequest)
		return
	}
	if biometrics.BirthDate.IsZero() {
		http.Error(w, "error, birth date empty", http.StatusBadRequest)
		return
	}
	if biometrics.WeightKg < minWeightKg || biometrics.WeightKg > maxWeightKg {
		http.Error(w, "error, weight out of range", http.StatusBadRequest)
		return
	}
	if biometrics.HeightCm < minHeightCm || biometrics.HeightCm > maxHeightCm {
		http.Error(w, "error, height out of range", http.StatusBadRequest)
		return
	}

	result, err := handler.onboarding.Complete(ctx, id, biometrics)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "client not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to complete onboarding for client %d: %s", id, err)
		http.Error(w, "error, failed to complete onboarding", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterOnboardings.Inc()

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal onboarding result: %s", err)
		http.Error(w, "error, failed to complete onboarding", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusCreated)
}

func idFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
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
