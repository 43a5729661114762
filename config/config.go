package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Security    SecurityConfig
	Tracing     TracingConfig
	Storage     StorageConfig
	Tenancy     TenancyConfig
	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port            int
	Host            string
	SSL             SSLConfig
	CORSAllowOrigin string
}

type SSLConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	// Pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// Server-side guards applied to every pooled connection so an abandoned
	// tenant transaction cannot hold a connection (or its search_path) forever
	StatementTimeout         time.Duration
	IdleInTransactionTimeout time.Duration
}

type SecurityConfig struct {
	JWTSecret string
	JWTExpiry time.Duration

	// Passphrase for field-level encryption of payroll bank details
	SecretKey string

	// Login attempts allowed per email within LoginRateWindow
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// "jaeger", "zipkin", "datadog", "xray", "none"
	TraceExporter string

	JaegerEndpoint      string
	ZipkinEndpoint      string
	DatadogAgentAddress string
	XRayRegion          string

	// "prometheus", "datadog", "none" or a comma-separated list
	MetricsExporter string
	PrometheusPort  int
}

// StorageConfig configures the S3-compatible bucket holding tenant logos.
// Logo upload is disabled when Bucket is empty.
type StorageConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	MaxLogoBytes    int64
}

type TenancyConfig struct {
	// Number of tenant schemas re-provisioned in parallel at startup
	ProvisionConcurrency int
	// Re-provision every registered tenant schema when the server boots
	ReconcileOnStartup bool
	// How long a tenant id to schema lookup stays cached by the auth middleware
	TenantCacheTTL time.Duration
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "backoffice")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 25)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "20m")
	v.SetDefault("DB_STATEMENT_TIMEOUT", "30s")
	v.SetDefault("DB_IDLE_IN_TX_TIMEOUT", "60s")
	v.SetDefault("JWT_EXPIRY", "24h")
	v.SetDefault("LOGIN_RATE_LIMIT", 5)
	v.SetDefault("LOGIN_RATE_WINDOW", "5m")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "backoffice-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_DATADOG_AGENT_ADDRESS", "localhost:8126")
	v.SetDefault("TRACING_XRAY_REGION", "us-west-2")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_MAX_LOGO_BYTES", 2<<20)

	v.SetDefault("TENANCY_PROVISION_CONCURRENCY", 4)
	v.SetDefault("TENANCY_RECONCILE_ON_STARTUP", true)
	v.SetDefault("TENANCY_CACHE_TTL", "30s")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")

	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}
		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if len(jwtSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}

	// Reuse the JWT secret when no dedicated encryption key is provided
	secretKey := v.GetString("SECRET_KEY")
	if secretKey == "" {
		secretKey = jwtSecret
	}

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
			SSL: SSLConfig{
				Enabled:  v.GetBool("SSL_ENABLED"),
				CertFile: v.GetString("SSL_CERT_FILE"),
				KeyFile:  v.GetString("SSL_KEY_FILE"),
			},
			CORSAllowOrigin: v.GetString("CORS_ALLOW_ORIGIN"),
		},
		Database: DatabaseConfig{
			Host:                     v.GetString("DB_HOST"),
			Port:                     v.GetInt("DB_PORT"),
			User:                     v.GetString("DB_USER"),
			Password:                 v.GetString("DB_PASSWORD"),
			DBName:                   v.GetString("DB_NAME"),
			SSLMode:                  v.GetString("DB_SSLMODE"),
			MaxOpenConns:             v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:             v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime:          v.GetDuration("DB_CONN_MAX_LIFETIME"),
			StatementTimeout:         v.GetDuration("DB_STATEMENT_TIMEOUT"),
			IdleInTransactionTimeout: v.GetDuration("DB_IDLE_IN_TX_TIMEOUT"),
		},
		Security: SecurityConfig{
			JWTSecret:       jwtSecret,
			JWTExpiry:       v.GetDuration("JWT_EXPIRY"),
			SecretKey:       secretKey,
			LoginRateLimit:  v.GetInt("LOGIN_RATE_LIMIT"),
			LoginRateWindow: v.GetDuration("LOGIN_RATE_WINDOW"),
		},
		Tracing: TracingConfig{
			Enabled:             v.GetBool("TRACING_ENABLED"),
			ServiceName:         v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability: v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:       v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:      v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:      v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			DatadogAgentAddress: v.GetString("TRACING_DATADOG_AGENT_ADDRESS"),
			XRayRegion:          v.GetString("TRACING_XRAY_REGION"),
			MetricsExporter:     v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:      v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		Storage: StorageConfig{
			Bucket:          v.GetString("STORAGE_BUCKET"),
			Region:          v.GetString("STORAGE_REGION"),
			Endpoint:        v.GetString("STORAGE_ENDPOINT"),
			AccessKeyID:     v.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("STORAGE_SECRET_ACCESS_KEY"),
			PublicBaseURL:   v.GetString("STORAGE_PUBLIC_BASE_URL"),
			MaxLogoBytes:    v.GetInt64("STORAGE_MAX_LOGO_BYTES"),
		},
		Tenancy: TenancyConfig{
			ProvisionConcurrency: v.GetInt("TENANCY_PROVISION_CONCURRENCY"),
			ReconcileOnStartup:   v.GetBool("TENANCY_RECONCILE_ON_STARTUP"),
			TenantCacheTTL:       v.GetDuration("TENANCY_CACHE_TTL"),
		},
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	if config.Tenancy.ProvisionConcurrency < 1 {
		config.Tenancy.ProvisionConcurrency = 1
	}

	return config, nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// StorageEnabled reports whether tenant logo uploads are configured
func (c *Config) StorageEnabled() bool {
	return c.Storage.Bucket != ""
}
