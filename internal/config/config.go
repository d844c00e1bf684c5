package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration
	RefreshTokenTTL   time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion string

	// Email verification subsystem.
	CodeLength      int
	CodeTTL         time.Duration
	MaxCodeAttempts int

	// Fixed-window limiter on the send-verification endpoint.
	VerifyRateWindow time.Duration
	VerifyRateMax    int

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Stores             string
	Sessions           string
	EmailVerifications string
	Storages           string
	Reservations       string
	Reviews            string
	Notifications      string
	Checkins           string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "ap-northeast-2"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Stores:             getEnv("DYNAMO_TABLE_STORES", "stores"),
			Sessions:           getEnv("DYNAMO_TABLE_SESSIONS", "sessions"),
			EmailVerifications: getEnv("DYNAMO_TABLE_EMAIL_VERIFICATIONS", "email_verifications"),
			Storages:           getEnv("DYNAMO_TABLE_STORAGES", "storages"),
			Reservations:       getEnv("DYNAMO_TABLE_RESERVATIONS", "reservations"),
			Reviews:            getEnv("DYNAMO_TABLE_REVIEWS", "reviews"),
			Notifications:      getEnv("DYNAMO_TABLE_NOTIFICATIONS", "notifications"),
			Checkins:           getEnv("DYNAMO_TABLE_CHECKINS", "checkins"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "suittrip-luggage-photos"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		RefreshTokenTTL:   time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRY_DAYS", 30)) * 24 * time.Hour,

		SMTPHost:     getEnv("EMAIL_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("EMAIL_PORT", "587"),
		SMTPFrom:     getEnv("EMAIL_FROM", "Suittrip <noreply@suittrip.com>"),
		SMTPUsername: getEnv("EMAIL_USER", ""),
		SMTPPassword: getEnv("EMAIL_PASSWORD", ""),

		SNSRegion: getEnv("SNS_REGION", "ap-northeast-2"),

		CodeLength:      getEnvInt("EMAIL_VERIFICATION_CODE_LENGTH", 6),
		CodeTTL:         time.Duration(getEnvInt("EMAIL_VERIFICATION_CODE_EXPIRES_IN", 180)) * time.Second,
		MaxCodeAttempts: getEnvInt("EMAIL_VERIFICATION_MAX_ATTEMPTS", 5),

		VerifyRateWindow: time.Duration(getEnvInt("EMAIL_VERIFICATION_RATE_LIMIT_WINDOW", 60)) * time.Second,
		VerifyRateMax:    getEnvInt("EMAIL_VERIFICATION_RATE_LIMIT_MAX", 1),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
