package products

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nutricoach/server/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// OpenFoodFactsApi is a client for the public Open Food Facts API.
// No API key needed, only a descriptive user agent.
type OpenFoodFactsApi struct {
	baseEndpoint string
	httpClient   *http.Client
}

func NewOpenFoodFactsApi(baseEndpoint string, httpClient *http.Client) *OpenFoodFactsApi {
	return &OpenFoodFactsApi{
		baseEndpoint: baseEndpoint,
		httpClient:   httpClient,
	}
}

type openFoodFactsResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
		Nutriments  struct {
			EnergyKcal100g    float64 `json:"energy-kcal_100g"`
			Proteins100g      float64 `json:"proteins_100g"`
			Carbohydrates100g float64 `json:"carbohydrates_100g"`
			Fat100g           float64 `json:"fat_100g"`
		} `json:"nutriments"`
	} `json:"product"`
}

func (off *OpenFoodFactsApi) LookupBarcode(ctx context.Context, barcode string) (_ *Product, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "openFoodFactsApi.lookupBarcode")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("barcode", barcode))

	apiUrl := fmt.Sprintf("%s/api/v2/product/%s.json", off.baseEndpoint, barcode)
	log.Debugf("calling open food facts api: %s", apiUrl)

	req, err := http.NewRequestWithContext(ctx, "GET", apiUrl, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "NutriCoach/1.0 (server)")

	resp, err := off.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open food facts api status: %d", resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read open food facts response bytes: %w", err)
	}

	var offResp openFoodFactsResponse
	if err := json.Unmarshal(respBytes, &offResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal open food facts response bytes: %w", err)
	}

	if offResp.Status != 1 {
		span.SetStatus(codes.Error, "product not found in open food facts")
		return nil, ErrProductNotFound
	}

	return &Product{
		Barcode:         barcode,
		Name:            offResp.Product.ProductName,
		CaloriesPer100g: offResp.Product.Nutriments.EnergyKcal100g,
		ProteinPer100g:  offResp.Product.Nutriments.Proteins100g,
		CarbsPer100g:    offResp.Product.Nutriments.Carbohydrates100g,
		FatPer100g:      offResp.Product.Nutriments.Fat100g,
		Source:          SourceOpenFoodFacts,
	}, nil
}
