package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nutricoach/server/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=products_test

type barcodeClient interface {
	LookupBarcode(ctx context.Context, barcode string) (*Product, error)
}

type localRepo interface {
	GetByBarcode(ctx context.Context, barcode string) (*Product, error)
	SearchByName(ctx context.Context, query string) ([]Product, error)
}

const (
	oneHour           = 60 * 60
	lookupCacheExpire = oneHour * 12
)

// Service resolves a barcode through the lookup chain:
// FatSecret, then Open Food Facts, then the local table. The first
// hit wins and gets cached, in-process and in redis.
type Service struct {
	fatSecret     barcodeClient
	openFoodFacts barcodeClient
	local         localRepo
	redisClient   *redis.Client
	cache         *freecache.Cache
}

func NewService(
	fatSecret barcodeClient,
	openFoodFacts barcodeClient,
	local localRepo,
	redisClient *redis.Client,
) *Service {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte
	return &Service{
		fatSecret:     fatSecret,
		openFoodFacts: openFoodFacts,
		local:         local,
		redisClient:   redisClient,
		cache:         freecache.NewCache(cacheSize),
	}
}

// LookupBarcode returns the product for a barcode along with the
// source that produced it. A cached result reports its original
// source.
func (s *Service) LookupBarcode(ctx context.Context, barcode string) (_ *Product, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.products.lookupBarcode")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("barcode", barcode))

	cacheKey := fmt.Sprintf("product::%s", barcode)

	if productBytes, cacheErr := s.cache.Get([]byte(cacheKey)); cacheErr == nil {
		product := &Product{}
		if unmarshalErr := json.Unmarshal(productBytes, product); unmarshalErr == nil {
			span.SetAttributes(attribute.Bool("product.from-cache", true))
			return product, nil
		} else {
			log.Errorf("failed to unmarshal cached product %s: %s", barcode, unmarshalErr)
		}
	}

	cmd := s.redisClient.Get(ctx, cacheKey)
	if productBytes := cmd.Val(); productBytes != "" {
		product := &Product{}
		if unmarshalErr := json.Unmarshal([]byte(productBytes), product); unmarshalErr == nil {
			span.SetAttributes(attribute.Bool("product.from-redis", true))
			s.setLocalCache(cacheKey, []byte(productBytes), barcode)
			return product, nil
		} else {
			log.Errorf("failed to unmarshal redis cached product %s: %s", barcode, unmarshalErr)
		}
	}

	product, err := s.lookupChain(ctx, barcode)
	if err != nil {
		return nil, err
	}

	productBytes, err := json.Marshal(product)
	if err != nil {
		log.Errorf("failed to marshal product %s for cache: %s", barcode, err)
		return product, nil
	}

	s.setLocalCache(cacheKey, productBytes, barcode)
	if err := s.redisClient.Set(ctx, cacheKey, productBytes, 0).Err(); err != nil {
		log.Errorf("failed to cache product %s in redis: %s", barcode, err)
	}

	return product, nil
}

func (s *Service) lookupChain(ctx context.Context, barcode string) (*Product, error) {
	var chainErr error

	product, err := s.fatSecret.LookupBarcode(ctx, barcode)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, ErrProductNotFound) {
		log.Errorf("fatsecret lookup %s: %s", barcode, err)
		chainErr = multierr.Append(chainErr, fmt.Errorf("fatsecret: %w", err))
	}

	product, err = s.openFoodFacts.LookupBarcode(ctx, barcode)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, ErrProductNotFound) {
		log.Errorf("open food facts lookup %s: %s", barcode, err)
		chainErr = multierr.Append(chainErr, fmt.Errorf("open food facts: %w", err))
	}

	product, err = s.local.GetByBarcode(ctx, barcode)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, ErrProductNotFound) {
		chainErr = multierr.Append(chainErr, fmt.Errorf("local: %w", err))
		return nil, chainErr
	}

	if chainErr != nil {
		return nil, multierr.Append(ErrProductNotFound, chainErr)
	}
	return nil, ErrProductNotFound
}

// Search queries the local table only, external APIs are barcode-only.
func (s *Service) Search(ctx context.Context, query string) ([]Product, error) {
	return s.local.SearchByName(ctx, query)
}

func (s *Service) setLocalCache(cacheKey string, productBytes []byte, barcode string) {
	if err := s.cache.Set([]byte(cacheKey), productBytes, lookupCacheExpire); err != nil {
		log.Errorf("failed to write product cache for %s: %s", barcode, err)
	}
}
