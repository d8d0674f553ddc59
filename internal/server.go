package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nutricoach/server/internal/adherence"
	"github.com/nutricoach/server/internal/auth"
	"github.com/nutricoach/server/internal/clients"
	"github.com/nutricoach/server/internal/config"
	"github.com/nutricoach/server/internal/dailylog"
	"github.com/nutricoach/server/internal/db"
	"github.com/nutricoach/server/internal/messaging"
	"github.com/nutricoach/server/internal/middleware"
	"github.com/nutricoach/server/internal/nutrition"
	"github.com/nutricoach/server/internal/products"
	"github.com/nutricoach/server/internal/reports"
	"github.com/nutricoach/server/internal/telemetry/metrics"
	"github.com/nutricoach/server/internal/telemetry/tracing"
)

const (
	defaultFatSecretBaseURL     = "https://platform.fatsecret.com/rest"
	defaultOpenFoodFactsBaseURL = "https://world.openfoodfacts.org"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config          *config.Config
	dbPool          *pgxpool.Pool
	productsService *products.Service

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	FatSecretAPIKey         string
	VersionInfo             string
	CoachUsername           string
	CoachPasswordHash       string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "nutricoach_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("nutricoach", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(&auth.Admin{
		Username:     params.CoachUsername,
		PasswordHash: params.CoachPasswordHash,
	}, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "nutricoach-backend")
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	fatSecretBaseURL := params.Config.FatSecretBaseURL
	if fatSecretBaseURL == "" {
		fatSecretBaseURL = defaultFatSecretBaseURL
	}
	openFoodFactsBaseURL := params.Config.OpenFoodFactsBaseURL
	if openFoodFactsBaseURL == "" {
		openFoodFactsBaseURL = defaultOpenFoodFactsBaseURL
	}

	productsService := products.NewService(
		products.NewFatSecretApi(fatSecretBaseURL, params.FatSecretAPIKey, tracedHttpClient),
		products.NewOpenFoodFactsApi(openFoodFactsBaseURL, tracedHttpClient),
		products.NewRepo(dbPool),
		rdb,
	)

	return &Server{
		config:          params.Config,
		dbPool:          dbPool,
		productsService: productsService,
		versionInfo:     params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	authHandler := auth.NewHandler(s.authService, s.versionInfo)
	authHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	clientsRepo := clients.NewRepo(s.dbPool)
	targetsRepo := nutrition.NewRepo(s.dbPool)
	logsRepo := dailylog.NewRepo(s.dbPool)

	clientsHandler := clients.NewHandler(
		clientsRepo,
		clients.NewOnboardingService(s.dbPool, clientsRepo, targetsRepo),
		s.metricsManager,
	)
	r.HandleFunc("/clients", clientsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-client")
	r.HandleFunc("/clients", clientsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-clients")
	r.HandleFunc("/clients/{id}", clientsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-client")
	r.HandleFunc("/clients/{id}", clientsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-client")
	r.HandleFunc("/clients/{id}", clientsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("remove-client")
	r.HandleFunc("/clients/{id}/onboarding", clientsHandler.HandleCompleteOnboarding).Methods("POST", "OPTIONS").Name("complete-onboarding")

	targetsHandler := nutrition.NewHandler(targetsRepo)
	r.HandleFunc("/clients/{id}/targets/{daytype}", targetsHandler.HandleSetTarget).Methods("POST", "OPTIONS").Name("set-target")
	r.HandleFunc("/clients/{id}/targets", targetsHandler.HandleGetActiveTargets).Methods("GET", "OPTIONS").Name("active-targets")
	r.HandleFunc("/clients/{id}/targets/history", targetsHandler.HandleGetHistory).Methods("GET", "OPTIONS").Name("targets-history")

	logsHandler := dailylog.NewHandler(logsRepo, s.metricsManager)
	r.HandleFunc("/clients/{id}/logs", logsHandler.HandleUpsert).Methods("POST", "OPTIONS").Name("upsert-log")
	r.HandleFunc("/clients/{id}/logs", logsHandler.HandleListRange).Methods("GET", "OPTIONS").Name("list-logs")
	r.HandleFunc("/clients/{id}/logs/{date}", logsHandler.HandleGetForDate).Methods("GET", "OPTIONS").Name("get-log")
	r.HandleFunc("/clients/{id}/logs/{date}/complete", logsHandler.HandleComplete).Methods("PUT", "OPTIONS").Name("complete-log")

	messagesHandler := messaging.NewHandler(messaging.NewRepo(s.dbPool), s.metricsManager)
	r.HandleFunc("/clients/{id}/messages", messagesHandler.HandleSend).Methods("POST", "OPTIONS").Name("send-message")
	r.HandleFunc("/clients/{id}/messages", messagesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-messages")
	r.HandleFunc("/clients/{id}/messages/unread/{author}", messagesHandler.HandleUnreadCount).Methods("GET", "OPTIONS").Name("unread-messages")
	r.HandleFunc("/clients/{id}/messages/read/{author}", messagesHandler.HandleMarkRead).Methods("PUT", "OPTIONS").Name("mark-messages-read")

	dashboardHandler := adherence.NewHandler(
		adherence.NewService(clientsRepo, logsRepo, targetsRepo),
		s.metricsManager,
	)
	r.HandleFunc("/dashboard", dashboardHandler.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")

	productsHandler := products.NewHandler(s.productsService, products.NewRepo(s.dbPool), s.metricsManager)
	r.HandleFunc("/products/barcode/{barcode}", productsHandler.HandleLookupBarcode).Methods("GET", "OPTIONS").Name("lookup-product")
	r.HandleFunc("/products/search", productsHandler.HandleSearch).Methods("GET", "OPTIONS").Name("search-products")
	r.HandleFunc("/products", productsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-product")

	reportsHandler := reports.NewHandler(
		reports.NewAnalyzer(logsRepo, targetsRepo),
		clientsRepo,
	)
	r.HandleFunc("/reports/weekly/{id}", reportsHandler.HandleWeeklyReport).Methods("GET", "OPTIONS").Name("weekly-report")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
