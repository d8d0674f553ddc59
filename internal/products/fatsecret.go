package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nutricoach/server/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var ErrProductNotFound = errors.New("product not found")

// FatSecretApi is a thin client for the FatSecret platform API.
type FatSecretApi struct {
	baseEndpoint string
	apiKey       string
	httpClient   *http.Client
}

func NewFatSecretApi(baseEndpoint, apiKey string, httpClient *http.Client) *FatSecretApi {
	return &FatSecretApi{
		baseEndpoint: baseEndpoint,
		apiKey:       apiKey,
		httpClient:   httpClient,
	}
}

type fatSecretFoodResponse struct {
	Food *struct {
		FoodName string `json:"food_name"`
		Serving  struct {
			Calories     float64 `json:"calories,string"`
			Protein      float64 `json:"protein,string"`
			Carbohydrate float64 `json:"carbohydrate,string"`
			Fat          float64 `json:"fat,string"`
		} `json:"serving"`
	} `json:"food"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (fs *FatSecretApi) LookupBarcode(ctx context.Context, barcode string) (_ *Product, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "fatSecretApi.lookupBarcode")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("barcode", barcode))

	apiUrl := fmt.Sprintf("%s/food/barcode?barcode=%s&format=json", fs.baseEndpoint, barcode)
	log.Debugf("calling fatsecret api: %s", apiUrl)

	req, err := http.NewRequestWithContext(ctx, "GET", apiUrl, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+fs.apiKey)

	resp, err := fs.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fatsecret api status: %d", resp.StatusCode)
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read fatsecret response bytes: %w", err)
	}

	var foodResp fatSecretFoodResponse
	if err := json.Unmarshal(respBytes, &foodResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fatsecret response bytes: %w", err)
	}

	if foodResp.Error != nil || foodResp.Food == nil {
		span.SetStatus(codes.Error, "product not found in fatsecret")
		return nil, ErrProductNotFound
	}

	return &Product{
		Barcode:         barcode,
		Name:            foodResp.Food.FoodName,
		CaloriesPer100g: foodResp.Food.Serving.Calories,
		ProteinPer100g:  foodResp.Food.Serving.Protein,
		CarbsPer100g:    foodResp.Food.Serving.Carbohydrate,
		FatPer100g:      foodResp.Food.Serving.Fat,
		Source:          SourceFatSecret,
	}, nil
}
