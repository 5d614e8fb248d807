package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	MigrationsPath     string
	CORSAllowedOrigins []string
	RateLimit          string // ulule limiter format, e.g. "60-M"

	// Admin authentication
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	AdminUsername     string
	AdminPasswordHash string

	// Payment gateway
	RazorpayKeyID              string
	RazorpayKeySecret          string
	RazorpayBaseURL            string
	RequirePaymentVerification bool
	PaymentCurrency            string

	// Ledger policy
	ReferralBonusAmount  decimal.Decimal
	WithdrawalMinBalance decimal.Decimal

	// Accrual job
	AccrualEnabled  bool
	AccrualSchedule string
	AccrualTimezone string
	AccrualLocation *time.Location
	RunLockTTL      time.Duration

	// Store access
	DBOperationTimeout      time.Duration
	PersistenceMaxAttempts  int
	PersistenceRetryBackoff time.Duration

	// Collaborators
	RedisURL           string
	GCSBucket          string
	GCSCredentialsJSON string
	UploadDir          string
	PublicBaseURL      string
	MaxUploadBytes     int64
	PosthogAPIKey      string
	PosthogEndpoint    string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("RATE_LIMIT", "60-M")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "investment-ledger-app")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("RAZORPAY_KEY_ID", "")
	viper.SetDefault("RAZORPAY_KEY_SECRET", "")
	viper.SetDefault("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1")
	viper.SetDefault("REQUIRE_PAYMENT_VERIFICATION", true)
	viper.SetDefault("PAYMENT_CURRENCY", "INR")
	viper.SetDefault("REFERRAL_BONUS_AMOUNT", "100")
	viper.SetDefault("WITHDRAWAL_MIN_BALANCE", "150")
	viper.SetDefault("ACCRUAL_ENABLED", true)
	viper.SetDefault("ACCRUAL_SCHEDULE", "5 0 * * *")
	viper.SetDefault("ACCRUAL_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("RUN_LOCK_TTL", "10m")
	viper.SetDefault("DB_OPERATION_TIMEOUT", "5s")
	viper.SetDefault("PERSISTENCE_MAX_ATTEMPTS", 3)
	viper.SetDefault("PERSISTENCE_RETRY_BACKOFF", "50ms")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("GCS_BUCKET", "")
	viper.SetDefault("GCS_CREDENTIALS_JSON", "")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("PUBLIC_BASE_URL", "")
	viper.SetDefault("MAX_UPLOAD_BYTES", 5<<20)
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	// Values from .env are already in the process environment; real environment
	// variables win over both.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Falling back to the in-memory store.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", 12*time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.AdminUsername = viper.GetString("ADMIN_USERNAME")
	cfg.AdminPasswordHash = viper.GetString("ADMIN_PASSWORD_HASH")
	if cfg.AdminPasswordHash == "" {
		log.Println("Warning: ADMIN_PASSWORD_HASH not set. Admin login is disabled.")
	}

	cfg.RazorpayKeyID = viper.GetString("RAZORPAY_KEY_ID")
	cfg.RazorpayKeySecret = viper.GetString("RAZORPAY_KEY_SECRET")
	cfg.RazorpayBaseURL = strings.TrimRight(viper.GetString("RAZORPAY_BASE_URL"), "/")
	cfg.RequirePaymentVerification = viper.GetBool("REQUIRE_PAYMENT_VERIFICATION")
	cfg.PaymentCurrency = viper.GetString("PAYMENT_CURRENCY")
	if cfg.RazorpayKeySecret == "" && cfg.RequirePaymentVerification {
		log.Println("Warning: RAZORPAY_KEY_SECRET not set while REQUIRE_PAYMENT_VERIFICATION is on. Every investment will be rejected.")
	}

	cfg.ReferralBonusAmount = decimalOrDefault("REFERRAL_BONUS_AMOUNT", decimal.NewFromInt(100))
	cfg.WithdrawalMinBalance = decimalOrDefault("WITHDRAWAL_MIN_BALANCE", decimal.NewFromInt(150))

	cfg.AccrualEnabled = viper.GetBool("ACCRUAL_ENABLED")
	cfg.AccrualSchedule = viper.GetString("ACCRUAL_SCHEDULE")
	cfg.AccrualTimezone = viper.GetString("ACCRUAL_TIMEZONE")
	loc, err := time.LoadLocation(cfg.AccrualTimezone)
	if err != nil {
		log.Printf("Warning: Invalid ACCRUAL_TIMEZONE ('%s'). Defaulting to UTC.\n", cfg.AccrualTimezone)
		loc = time.UTC
		cfg.AccrualTimezone = "UTC"
	}
	cfg.AccrualLocation = loc
	cfg.RunLockTTL = durationOrDefault("RUN_LOCK_TTL", 10*time.Minute)

	cfg.DBOperationTimeout = durationOrDefault("DB_OPERATION_TIMEOUT", 5*time.Second)
	cfg.PersistenceMaxAttempts = viper.GetInt("PERSISTENCE_MAX_ATTEMPTS")
	if cfg.PersistenceMaxAttempts < 1 {
		log.Printf("Warning: PERSISTENCE_MAX_ATTEMPTS must be at least 1, got %d. Defaulting to 3.\n", cfg.PersistenceMaxAttempts)
		cfg.PersistenceMaxAttempts = 3
	}
	cfg.PersistenceRetryBackoff = durationOrDefault("PERSISTENCE_RETRY_BACKOFF", 50*time.Millisecond)

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.GCSBucket = viper.GetString("GCS_BUCKET")
	cfg.GCSCredentialsJSON = viper.GetString("GCS_CREDENTIALS_JSON")
	cfg.UploadDir = viper.GetString("UPLOAD_DIR")
	cfg.PublicBaseURL = strings.TrimRight(viper.GetString("PUBLIC_BASE_URL"), "/")
	cfg.MaxUploadBytes = viper.GetInt64("MAX_UPLOAD_BYTES")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func decimalOrDefault(key string, def decimal.Decimal) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
