package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// PaymentEnvironment selects the payment gateway deployment.
type PaymentEnvironment string

const (
	PaymentEnvironmentTest PaymentEnvironment = "TEST"
	PaymentEnvironmentProd PaymentEnvironment = "PROD"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress   string
	DatabaseURI  string
	RedisAddress string
	LogLevel     string

	PaymentEnvironment    PaymentEnvironment
	PaymentGatewayTestURL string
	PaymentGatewayProdURL string
	PaymentCallbackToken  string
	PaymentPollInterval   time.Duration
	PaymentBatchSize      int
	WorkerPoolSize        int

	JWTSecret    string
	AuthStrategy string
	TokenTTL     time.Duration
	AdminLogins  []string

	MinimumRedemption int64
	ReferralBonus     int64
	IdempotencyTTL    time.Duration

	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress          = ":8080"
	defaultLogLevel            = "info"
	defaultJWTSecret           = "change-me-in-production"
	defaultAuthStrategy        = "jwt"
	defaultTokenTTL            = 7 * time.Hour
	defaultPaymentPollInterval = 5 * time.Second
	defaultPaymentBatchSize    = 32
	defaultWorkerPoolSize      = 4
	defaultShutdownTimeout     = 10 * time.Second
	defaultMinimumRedemption   = 500
	defaultIdempotencyTTL      = 24 * time.Hour
	defaultEnvFile             = ".env"
)

// GatewayURL returns the payment gateway base URL for the selected environment.
func (c *Config) GatewayURL() string {
	if c.PaymentEnvironment == PaymentEnvironmentProd {
		return c.PaymentGatewayProdURL
	}
	return c.PaymentGatewayTestURL
}

// IsAdminLogin reports whether login is granted the admin role on registration.
func (c *Config) IsAdminLogin(login string) bool {
	for _, l := range c.AdminLogins {
		if strings.EqualFold(l, login) {
			return true
		}
	}
	return false
}

// Load parses configuration from flags, environment variables and the .env file.
func Load() (*Config, error) {
	path := defaultEnvFile
	if v, ok := os.LookupEnv("ENV_FILE"); ok && v != "" {
		path = v
	}
	dotenv, err := readEnvFile(path)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], chainLookup(os.LookupEnv, mapLookup(dotenv)))
}

type envLookup func(string) (string, bool)

func readEnvFile(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read env file: %w", err)
	}
	return values, nil
}

func mapLookup(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

// chainLookup resolves keys against lookups in order, first non-empty wins.
func chainLookup(lookups ...envLookup) envLookup {
	return func(key string) (string, bool) {
		for _, lookup := range lookups {
			if v, ok := lookup(key); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:           getString(lookup, "DATABASE_URI", ""),
		RedisAddress:          getString(lookup, "REDIS_ADDRESS", ""),
		LogLevel:              getString(lookup, "LOG_LEVEL", defaultLogLevel),
		PaymentEnvironment:    PaymentEnvironment(strings.ToUpper(getString(lookup, "PAYMENT_ENVIRONMENT", string(PaymentEnvironmentTest)))),
		PaymentGatewayTestURL: getString(lookup, "PAYMENT_GATEWAY_TEST_URL", ""),
		PaymentGatewayProdURL: getString(lookup, "PAYMENT_GATEWAY_PROD_URL", ""),
		PaymentCallbackToken:  getString(lookup, "PAYMENT_CALLBACK_TOKEN", ""),
		PaymentPollInterval:   getDuration(lookup, "PAYMENT_POLL_INTERVAL", defaultPaymentPollInterval),
		PaymentBatchSize:      getInt(lookup, "PAYMENT_POLL_BATCH", defaultPaymentBatchSize),
		WorkerPoolSize:        getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		JWTSecret:             getString(lookup, "JWT_SECRET", defaultJWTSecret),
		AuthStrategy:          getString(lookup, "AUTH_STRATEGY", defaultAuthStrategy),
		TokenTTL:              getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		AdminLogins:           splitList(getString(lookup, "ADMIN_LOGINS", "")),
		MinimumRedemption:     getInt64(lookup, "MINIMUM_REDEMPTION", defaultMinimumRedemption),
		ReferralBonus:         getInt64(lookup, "REFERRAL_BONUS", 0),
		IdempotencyTTL:        getDuration(lookup, "IDEMPOTENCY_TTL", defaultIdempotencyTTL),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("quizwallet", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.PaymentPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		tokenTTLStr        = cfg.TokenTTL.String()
		environmentStr     = string(cfg.PaymentEnvironment)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for idempotency keys")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.StringVar(&environmentStr, "payment-env", environmentStr, "Payment gateway environment (TEST or PROD)")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AuthStrategy, "auth-strategy", cfg.AuthStrategy, "Token strategy (jwt or hmac)")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Access token lifetime")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent payment workers")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between payment gateway polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.PaymentBatchSize, "poll-batch", cfg.PaymentBatchSize, "Maximum receipts per polling batch")
	fs.Int64Var(&cfg.MinimumRedemption, "min-redemption", cfg.MinimumRedemption, "Minimum withdrawal amount")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.PaymentPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	cfg.PaymentEnvironment = PaymentEnvironment(strings.ToUpper(environmentStr))
	switch cfg.PaymentEnvironment {
	case PaymentEnvironmentTest, PaymentEnvironmentProd:
	default:
		return nil, fmt.Errorf("unknown payment environment %q", environmentStr)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.PaymentBatchSize <= 0 {
		cfg.PaymentBatchSize = defaultPaymentBatchSize
	}

	if cfg.PaymentPollInterval <= 0 {
		cfg.PaymentPollInterval = defaultPaymentPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = defaultIdempotencyTTL
	}

	if cfg.MinimumRedemption <= 0 {
		cfg.MinimumRedemption = defaultMinimumRedemption
	}

	if cfg.ReferralBonus < 0 {
		cfg.ReferralBonus = 0
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayURL() == "" {
		return nil, fmt.Errorf("payment gateway URL for %s environment must be provided", cfg.PaymentEnvironment)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
