package products

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/nutricoach/server/internal/telemetry/metrics"
	"github.com/nutricoach/server/internal/telemetry/tracing"
	"github.com/nutricoach/server/pkg"
)

type lookupService interface {
	LookupBarcode(ctx context.Context, barcode string) (*Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
}

type SearchResponse struct {
	Products []Product `json:"products"`
}

type Handler struct {
	service lookupService
	repo    *Repo
	metrics *metrics.Manager
}

func NewHandler(service lookupService, repo *Repo, metrics *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) HandleLookupBarcode(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.products.lookupBarcode")
	defer span.End()

	barcode := mux.Vars(r)["barcode"]
	if barcode == "" {
		http.Error(w, "error, barcode empty", http.StatusBadRequest)
		return
	}

	product, err := handler.service.LookupBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to lookup product %s: %s", barcode, err)
		http.Error(w, "error, failed to lookup product", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterProductLookups.WithLabelValues(product.Source.String()).Inc()

	productJson, err := json.Marshal(product)
	if err != nil {
		log.Errorf("failed to marshal product: %s", err)
		http.Error(w, "error, failed to lookup product", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, productJson, http.StatusOK)
}

func (handler *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.products.search")
	defer span.End()

	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "error, query empty", http.StatusBadRequest)
		return
	}

	productsFound, err := handler.service.Search(ctx, query)
	if err != nil {
		log.Errorf("failed to search products [%s]: %s", query, err)
		http.Error(w, "error, failed to search products", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(SearchResponse{Products: productsFound})
	if err != nil {
		log.Errorf("failed to marshal products: %s", err)
		http.Error(w, "error, failed to search products", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

// HandleAdd stores a coach-curated product in the local table.
func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.products.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var product Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		log.Errorf("new product, unmarshal json params: %s", err)
		http.Error(w, "add product failed", http.StatusBadRequest)
		return
	}

	if product.Barcode == "" || product.Name == "" {
		http.Error(w, "error, product barcode or name empty", http.StatusBadRequest)
		return
	}

	addedProduct, err := handler.repo.Add(ctx, product)
	if err != nil {
		log.Errorf("failed to add product [%s]: %s", product.Barcode, err)
		http.Error(w, "error, failed to add product", http.StatusInternalServerError)
		return
	}

	productJson, err := json.Marshal(addedProduct)
	if err != nil {
		log.Errorf("failed to marshal new product: %s", err)
		http.Error(w, "error, failed to add product", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, productJson, http.StatusCreated)
}
