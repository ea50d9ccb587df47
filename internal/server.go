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
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fittracker/internal/cache"
	"github.com/2beens/fittracker/internal/config"
	fitnessmcp "github.com/2beens/fittracker/internal/fitness/mcp"
	"github.com/2beens/fittracker/internal/fitness/tracker"
	"github.com/2beens/fittracker/internal/middleware"
	"github.com/2beens/fittracker/internal/notify"
	"github.com/2beens/fittracker/internal/scheduler"
	"github.com/2beens/fittracker/internal/telemetry/metrics"
	"github.com/2beens/fittracker/internal/telemetry/tracing"
	"github.com/2beens/fittracker/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	apiToken          string
	versionInfo       string

	config    *config.Config
	storage   *Storage
	service   *tracker.Service
	scheduler *scheduler.Scheduler
	publisher notify.Publisher

	redisClient *redis.Client

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	APIToken                string
	VersionInfo             string
	DBUser                  string
	DBPassword              string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fittracker")
	if err != nil {
		return nil, err
	}

	storage, err := OpenStorage(ctx, OpenStorageParams{
		Config:         cfg,
		DBUser:         params.DBUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		otelShutdown()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	var extraCollectors []prometheus.Collector
	if storage.DBPool != nil {
		extraCollectors = append(extraCollectors, pgxpoolprometheus.NewCollector(
			storage.DBPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		))
	}
	promRegistry := metrics.SetupPrometheus(extraCollectors...)
	metricsManager := metrics.NewManager("fittracker", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	s := &Server{
		config:      cfg,
		storage:     storage,
		apiToken:    params.APIToken,
		versionInfo: params.VersionInfo,

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	var analyticsCache cache.Cache
	if cfg.RedisEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: params.RedisPassword,
			DB:       0, // use default DB
		})
		if params.HoneycombTracingEnabled {
			rdb.AddHook(redisotel.NewTracingHook())
		}

		rdbStatus := rdb.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			log.Errorf("--> failed to ping redis: %s", err)
		} else {
			log.Debugf("redis ping: %s", rdbStatus.Val())
		}

		s.redisClient = rdb
		analyticsCache = cache.NewRedisCache(rdb, "fittracker")
	} else {
		log.Debugf("redis disabled, using in-process cache of %d MB", cfg.FreecacheSizeMB)
		analyticsCache = cache.NewFreeCache(cfg.FreecacheSizeMB)
	}

	if len(cfg.KafkaBrokers) > 0 {
		log.Debugf("publishing events to kafka brokers %v", cfg.KafkaBrokers)
		s.publisher = notify.NewKafkaPublisher(cfg.KafkaBrokers)
	} else {
		s.publisher = notify.NoopPublisher{}
	}

	serviceParams := storage.ServiceParams()
	serviceParams.Cache = analyticsCache
	serviceParams.CacheTTL = cfg.AnalyticsCacheTTL()
	serviceParams.Publisher = s.publisher
	serviceParams.Topics = tracker.Topics{
		Workouts:     cfg.KafkaWorkoutsTopic,
		Achievements: cfg.KafkaAchievementsTopic,
	}
	serviceParams.MetricsManager = metricsManager
	serviceParams.Location = loc

	s.service = tracker.NewService(serviceParams)
	if err := s.service.Init(ctx); err != nil {
		s.cleanup()
		return nil, fmt.Errorf("init tracker service: %w", err)
	}

	s.scheduler = scheduler.New(loc, s.service, metricsManager)

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fittracker-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET").Name("root")
	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")

	var reqRateLimiter middleware.RequestRateLimiter
	if s.redisClient != nil {
		reqRateLimiter = redis_rate.NewLimiter(s.redisClient)
	}
	trackerHandler := tracker.NewHandler(s.service, s.config.DefaultChartDays)
	trackerHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.WorkoutsRateLimitAllowedPerMin)

	// MCP over streamable HTTP, same tools as the stdio binary
	mcpServer := fitnessmcp.NewServer(s.service)
	mcpHandler := mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return mcpServer
	}, nil)
	r.PathPrefix("/mcp").Handler(otelhttp.NewHandler(mcpHandler, "mcp")).Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.apiToken)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "fittracker "+s.versionInfo)
}

type healthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Storage: s.storage.Backend}
	if s.storage.DBPool != nil {
		if err := s.storage.DBPool.Ping(r.Context()); err != nil {
			log.Errorf("health: ping postgres: %s", err)
			resp.Status = "degraded"
		}
	}
	if s.storage.SQLite != nil {
		if err := s.storage.SQLite.PingContext(r.Context()); err != nil {
			log.Errorf("health: ping sqlite: %s", err)
			resp.Status = "degraded"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	pkg.WriteJSONResponse(w, resp, status)
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
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

	if err := s.scheduler.Start(); err != nil {
		log.Errorf("start day rollover scheduler: %s", err)
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.cleanup()

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

// cleanup releases everything NewServer acquired, in reverse order.
func (s *Server) cleanup() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			log.Errorf("failed to close event publisher: %s", err)
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	s.storage.Close()

	s.otelShutdown()
	log.Trace("otel shut down ...")
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
