package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"

	"github.com/Etiti27/saas-platform-sub000/config"
	"github.com/Etiti27/saas-platform-sub000/internal/database"
	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	httpHandler "github.com/Etiti27/saas-platform-sub000/internal/http"
	"github.com/Etiti27/saas-platform-sub000/internal/http/middleware"
	"github.com/Etiti27/saas-platform-sub000/internal/repository"
	"github.com/Etiti27/saas-platform-sub000/internal/service"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/cache"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
	"github.com/Etiti27/saas-platform-sub000/pkg/ratelimiter"
	"github.com/Etiti27/saas-platform-sub000/pkg/storage"
	"github.com/Etiti27/saas-platform-sub000/pkg/tracing"
)

const loginNamespace = "login"

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB

	GetTenantRepository() domain.TenantRepository
	GetUserRepository() domain.UserRepository

	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	InitTracing() error
	InitDB() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error
	ReconcileTenantSchemas(ctx context.Context)

	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// App encapsulates the application dependencies and configuration
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB
	store  storage.ObjectStore

	resolver    *tenancy.Resolver
	provisioner *database.SchemaProvisioner
	limiter     *ratelimiter.RateLimiter
	schemaCache *cache.TTL[string, string]

	// Repositories
	tenantRepo     domain.TenantRepository
	userRepo       domain.UserRepository
	jobRepo        domain.JobRepository
	payrollRepo    domain.PayrollRepository
	employeeRepo   domain.EmployeeRepository
	productRepo    domain.ProductRepository
	orderRepo      domain.OrderRepository
	expenseRepo    domain.ExpenseRepository
	refundRepo     domain.RefundRepository
	preferenceRepo domain.PreferenceRepository

	// Services
	tenantService     *service.TenantService
	authService       *service.AuthService
	jobService        *service.JobService
	payrollService    *service.PayrollService
	employeeService   *service.EmployeeService
	productService    *service.ProductService
	orderService      *service.OrderService
	expenseService    *service.ExpenseService
	refundService     *service.RefundService
	preferenceService *service.PreferenceService

	mux    *http.ServeMux
	server *http.Server

	serverMu      sync.RWMutex
	serverStarted chan struct{}

	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64
	requestWg       sync.WaitGroup
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithObjectStore replaces the S3 store built from config
func WithObjectStore(store storage.ObjectStore) AppOption {
	return func(a *App) {
		a.store = store
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing
func (a *App) InitTracing() error {
	tracingConfig := &a.config.Tracing

	if err := tracing.InitTracing(tracingConfig); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if tracingConfig.Enabled {
		a.logger.WithFields(map[string]interface{}{
			"trace_exporter":   tracingConfig.TraceExporter,
			"metrics_exporter": tracingConfig.MetricsExporter,
			"sampling_rate":    tracingConfig.SamplingProbability,
		}).Info("Tracing initialized successfully")
	}

	return nil
}

// InitDB makes sure the application database and the tenant registry exist,
// then opens the shared pool
func (a *App) InitDB() error {
	if a.db != nil {
		return nil
	}

	dbCfg := &a.config.Database
	a.logger.WithFields(map[string]interface{}{
		"host":    dbCfg.Host,
		"port":    dbCfg.Port,
		"user":    dbCfg.User,
		"dbname":  dbCfg.DBName,
		"sslmode": dbCfg.SSLMode,
	}).Info("Connecting to database")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	serverDB, err := sql.Open("postgres", database.GetPostgresDSN(dbCfg))
	if err != nil {
		return fmt.Errorf("failed to open postgres server connection: %w", err)
	}
	if err := database.ConnectWithTimeout(ctx, serverDB, 20*time.Second); err != nil {
		_ = serverDB.Close()
		return err
	}
	if err := database.EnsureSystemDatabaseExists(ctx, serverDB, dbCfg.DBName); err != nil {
		_ = serverDB.Close()
		return fmt.Errorf("failed to ensure system database exists: %w", err)
	}
	_ = serverDB.Close()

	driverName := "postgres"
	if a.config.Tracing.Enabled {
		driverName, err = ocsql.Register(driverName, ocsql.WithAllTraceOptions())
		if err != nil {
			return fmt.Errorf("failed to register opencensus sql driver: %w", err)
		}
		a.logger.Info("Database driver wrapped with OpenCensus tracing")
	}

	db, err := sql.Open(driverName, database.GetSystemDSN(dbCfg))
	if err != nil {
		return fmt.Errorf("failed to connect to system database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping system database: %w", err)
	}
	if err := database.InitializeDatabase(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	database.ConfigurePool(db, dbCfg)
	a.db = db
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	a.tenantRepo = repository.NewTenantRepository(a.db)
	a.userRepo = repository.NewUserRepository(a.db)
	a.jobRepo = repository.NewJobRepository()
	a.payrollRepo = repository.NewPayrollRepository()
	a.employeeRepo = repository.NewEmployeeRepository()
	a.productRepo = repository.NewProductRepository()
	a.orderRepo = repository.NewOrderRepository()
	a.expenseRepo = repository.NewExpenseRepository()
	a.refundRepo = repository.NewRefundRepository()
	a.preferenceRepo = repository.NewPreferenceRepository()
	return nil
}

// InitServices wires the tenancy layer and every service on top of it
func (a *App) InitServices() error {
	a.resolver = tenancy.NewResolver(a.db, a.logger)
	a.provisioner = database.NewSchemaProvisioner(a.db, a.resolver, a.logger, a.config.Tenancy.ProvisionConcurrency)

	a.limiter = ratelimiter.NewRateLimiter()
	a.limiter.SetPolicy(loginNamespace, a.config.Security.LoginRateLimit, a.config.Security.LoginRateWindow)

	if a.store == nil && a.config.StorageEnabled() {
		store, err := storage.NewS3Store(a.config.Storage)
		if err != nil {
			return fmt.Errorf("failed to create object store: %w", err)
		}
		a.store = store
	}

	a.tenantService = service.NewTenantService(service.TenantServiceConfig{
		TenantRepository:   a.tenantRepo,
		UserRepository:     a.userRepo,
		Provisioner:        a.provisioner,
		Transactor:         a.resolver,
		JobRepository:      a.jobRepo,
		PayrollRepository:  a.payrollRepo,
		EmployeeRepository: a.employeeRepo,
		Store:              a.store,
		MaxLogoBytes:       a.config.Storage.MaxLogoBytes,
		Logger:             a.logger,
	})

	authService, err := service.NewAuthService(service.AuthServiceConfig{
		UserRepository:     a.userRepo,
		Provisioner:        a.provisioner,
		Transactor:         a.resolver,
		EmployeeRepository: a.employeeRepo,
		RateLimiter:        a.limiter,
		JWTSecret:          a.config.Security.JWTSecret,
		TokenExpiry:        a.config.Security.JWTExpiry,
		Logger:             a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}
	a.authService = authService

	a.jobService = service.NewJobService(a.resolver, a.jobRepo, a.logger)
	a.payrollService = service.NewPayrollService(a.resolver, a.payrollRepo, a.config.Security.SecretKey, a.logger)
	a.employeeService = service.NewEmployeeService(a.resolver, a.employeeRepo, a.logger)
	a.productService = service.NewProductService(a.resolver, a.productRepo, a.logger)
	a.orderService = service.NewOrderService(a.resolver, a.orderRepo, a.productRepo, a.logger)
	a.expenseService = service.NewExpenseService(a.resolver, a.expenseRepo, a.logger)
	a.refundService = service.NewRefundService(a.resolver, a.refundRepo, a.orderRepo, a.logger)
	a.preferenceService = service.NewPreferenceService(a.resolver, a.preferenceRepo, a.logger)

	return nil
}

// InitHandlers registers every route on the mux
func (a *App) InitHandlers() error {
	a.schemaCache = cache.NewTTL[string, string](a.config.Tenancy.TenantCacheTTL, time.Minute)
	auth := middleware.NewAuthMiddleware(a.authService, a.tenantRepo, a.schemaCache, a.logger)

	httpHandler.NewHealthHandler(a.db, a.logger, a.config.Version).RegisterRoutes(a.mux)
	httpHandler.NewAuthHandler(a.authService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewTenantHandler(a.tenantService, a.logger, a.config.Storage.MaxLogoBytes).RegisterRoutes(a.mux, auth)

	httpHandler.NewJobHandler(a.jobService, a.logger).RegisterRoutes(a.mux, auth)
	httpHandler.NewPayrollHandler(a.payrollService, a.logger).RegisterRoutes(a.mux, auth)
	httpHandler.NewEmployeeHandler(a.employeeService, a.logger).RegisterRoutes(a.mux, auth)
	httpHandler.NewProductHandler(a.productService, a.logger).RegisterRoutes(a.mux, auth)
	httpHandler.NewOrderHandler(a.orderService, a.logger).RegisterRoutes(a.mux, auth)
	httpHandler.NewExpenseHandler(a.expenseService, a.logger).RegisterRoutes(a.mux, auth)
	httpHandler.NewRefundHandler(a.refundService, a.logger).RegisterRoutes(a.mux, auth)
	httpHandler.NewPreferenceHandler(a.preferenceService, a.logger).RegisterRoutes(a.mux, auth)

	return nil
}

// ReconcileTenantSchemas re-provisions every registered schema. Failures are
// logged and never stop the server.
func (a *App) ReconcileTenantSchemas(ctx context.Context) {
	start := time.Now()
	if err := a.tenantService.ReconcileSchemas(ctx); err != nil {
		a.logger.WithField("error", err.Error()).Error("Tenant schema reconciliation finished with errors")
		return
	}
	a.logger.WithField("elapsed", time.Since(start).String()).Info("Tenant schemas reconciled")
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting back-office API")

	if err := a.InitTracing(); err != nil {
		return err
	}
	if err := a.InitDB(); err != nil {
		return err
	}
	if err := a.InitRepositories(); err != nil {
		return err
	}
	if err := a.InitServices(); err != nil {
		return err
	}
	if err := a.InitHandlers(); err != nil {
		return err
	}

	if a.config.Tenancy.ReconcileOnStartup {
		a.ReconcileTenantSchemas(a.shutdownCtx)
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// Start serves HTTP until Shutdown is called
func (a *App) Start() error {
	var handler http.Handler = a.mux

	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}

	handler = middleware.CORSMiddleware(a.config.Server.CORSAllowOrigin)(handler)

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).Info("Server starting")

	a.serverMu.Lock()
	if a.serverStarted != nil {
		close(a.serverStarted)
	}
	a.serverStarted = make(chan struct{})
	a.server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverStarted := a.serverStarted
	a.serverMu.Unlock()

	close(serverStarted)

	if a.config.Server.SSL.Enabled {
		a.logger.WithField("cert_file", a.config.Server.SSL.CertFile).Info("SSL enabled")
		return a.server.ListenAndServeTLS(a.config.Server.SSL.CertFile, a.config.Server.SSL.KeyFile)
	}

	return a.server.ListenAndServe()
}

// Shutdown stops accepting requests, waits for in-flight ones up to the
// shutdown timeout, then releases resources
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")
	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		return a.cleanupResources()
	}

	a.logger.WithField("active_requests", a.getActiveRequestCount()).Info("Active requests at shutdown start")

	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = remaining - time.Second
			if shutdownTimeout < 0 {
				shutdownTimeout = 0
			}
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdownErr := server.Shutdown(shutdownCtx)

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(requestsDone)
	}()

	select {
	case <-requestsDone:
	case <-shutdownCtx.Done():
		a.logger.WithField("active_requests", a.getActiveRequestCount()).Warn("Shutdown timeout reached, forcing shutdown")
		if shutdownErr == nil {
			shutdownErr = fmt.Errorf("shutdown timeout exceeded")
		}
	}

	if cleanupErr := a.cleanupResources(); cleanupErr != nil && shutdownErr == nil {
		shutdownErr = cleanupErr
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}
	return shutdownErr
}

func (a *App) cleanupResources() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.schemaCache != nil {
		a.schemaCache.Stop()
	}

	if a.db != nil {
		if a.config.Tracing.Enabled {
			if err := ocsql.RecordStats(a.db, 5*time.Second); err != nil {
				a.logger.WithField("error", err.Error()).Error("Failed to record final database stats for tracing")
			}
		}

		a.logger.Info("Closing database connection")
		if err := a.db.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Error("Error closing database connection")
			return err
		}
	}
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created and initialized
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	if started == nil {
		<-ctx.Done()
		return false
	}

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

func (a *App) GetConfig() *config.Config {
	return a.config
}

func (a *App) GetLogger() logger.Logger {
	return a.logger
}

func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

func (a *App) GetDB() *sql.DB {
	return a.db
}

func (a *App) GetTenantRepository() domain.TenantRepository {
	return a.tenantRepo
}

func (a *App) GetUserRepository() domain.UserRepository {
	return a.userRepo
}

func (a *App) incrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, 1)
	a.requestWg.Add(1)
}

func (a *App) decrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, -1)
	a.requestWg.Done()
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

// GetActiveRequestCount returns the current number of active requests
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
}

// GetShutdownContext is cancelled when Shutdown starts
func (a *App) GetShutdownContext() context.Context {
	return a.shutdownCtx
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware refuses new requests once shutdown has begun and
// tracks the ones in flight
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		a.incrementActiveRequests()
		defer a.decrementActiveRequests()

		next.ServeHTTP(w, r)
	})
}

var _ AppInterface = (*App)(nil)
