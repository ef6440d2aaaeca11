package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitcompare/internal/auth"
	"github.com/2beens/fitcompare/internal/blobstore"
	"github.com/2beens/fitcompare/internal/config"
	"github.com/2beens/fitcompare/internal/datasets"
	"github.com/2beens/fitcompare/internal/db"
	"github.com/2beens/fitcompare/internal/events"
	"github.com/2beens/fitcompare/internal/middleware"
	"github.com/2beens/fitcompare/internal/telemetry/metrics"
	"github.com/2beens/fitcompare/internal/telemetry/tracing"
	"github.com/2beens/fitcompare/pkg"

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
	"google.golang.org/api/option"
	"google.golang.org/api/storage/v1"
	htransport "google.golang.org/api/transport/http"
)

const maxBodyDrainBytes = 1 << 20

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	verifier   *auth.Verifier
	registrar  *auth.Registrar
	blobs      blobstore.Store
	publisher  events.Publisher
	datasetSvc *datasets.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	IdentitySecret          string
	IdentityPublicKeyPEM    string
	RedisPassword           string
	PostgresPassword        string
	GCSCredentialsFile      string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}
	if err := db.EnsureSchema(ctx, dbPool); err != nil {
		return nil, fmt.Errorf("ensure db schema: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fitcompare", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitcompare", rdb)
	if err != nil {
		return nil, err
	}

	blobs, err := newBlobStore(ctx, cfg, params.GCSCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("new blob store: %w", err)
	}

	verifier, err := auth.NewVerifier(auth.VerifierConfig{
		Secret:       params.IdentitySecret,
		PublicKeyPEM: params.IdentityPublicKeyPEM,
		Issuer:       cfg.IdentityIssuer,
		Audience:     cfg.IdentityAudience,
	})
	if err != nil {
		return nil, fmt.Errorf("new identity verifier: %w", err)
	}

	repo := datasets.NewRepo(dbPool)
	registrar := auth.NewRegistrar(
		repo,
		cfg.UserCacheSizeMB*1024*1024,
		time.Duration(cfg.UserCacheTTLSeconds)*time.Second,
	)

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)

	datasetSvc := datasets.NewService(datasets.NewServiceParams{
		Repo:           repo,
		Blobs:          blobs,
		ShareViews:     datasets.NewShareViews(rdb),
		Publisher:      publisher,
		MetricsManager: metricsManager,
		Concurrency:    cfg.ComparisonConcurrency,
	})

	return &Server{
		config:      cfg,
		dbPool:      dbPool,
		redisClient: rdb,
		versionInfo: params.VersionInfo,

		verifier:   verifier,
		registrar:  registrar,
		blobs:      blobs,
		publisher:  publisher,
		datasetSvc: datasetSvc,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func newBlobStore(ctx context.Context, cfg *config.Config, gcsCredentialsFile string) (blobstore.Store, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendGCS:
		authOpts := []option.ClientOption{option.WithScopes(storage.DevstorageReadWriteScope)}
		if gcsCredentialsFile != "" {
			authOpts = append(authOpts, option.WithCredentialsFile(gcsCredentialsFile))
		}
		// auth on top of the traced transport, WithHTTPClient alone would skip credentials
		transport, err := htransport.NewTransport(ctx, otelhttp.NewTransport(http.DefaultTransport), authOpts...)
		if err != nil {
			return nil, fmt.Errorf("gcs transport: %w", err)
		}
		log.Debugf("using gcs blob store, bucket [%s]", cfg.GCSBucket)
		return blobstore.NewGCSStore(ctx, cfg.GCSBucket, option.WithHTTPClient(&http.Client{Transport: transport}))
	default:
		log.Debugf("using disk blob store, root [%s]", cfg.StorageRootPath)
		return blobstore.NewDiskStore(cfg.StorageRootPath)
	}
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fitcompare-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
	}).Methods("GET", "OPTIONS").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	var uploadLimit, sharedLimit func(http.Handler) http.Handler
	if s.config.UploadRateLimitPerMin > 0 {
		uploadLimit = middleware.RateLimit(reqRateLimiter, s.metricsManager, "uploads", s.config.UploadRateLimitPerMin)
	}
	if s.config.SharedRateLimitPerMin > 0 {
		sharedLimit = middleware.RateLimit(reqRateLimiter, s.metricsManager, "shared", s.config.SharedRateLimitPerMin)
	}

	datasetsHandler := datasets.NewHandler(s.datasetSvc, s.config.MaxUploadSizeMB*1024*1024)
	datasetsHandler.SetupRoutes(r, uploadLimit, sharedLimit)

	// all the rest - unhandled paths
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSON(w, datasets.ErrorResponse{Error: "Not found"}, http.StatusNotFound)
	}).Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.verifier, s.registrar)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest(maxBodyDrainBytes))

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: 2 * time.Minute,
		ReadTimeout:  2 * time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
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

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests first, then release what the handlers use
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if err := s.publisher.Close(); err != nil {
		log.Errorf("failed to close events publisher: %s", err)
	}

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

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}
