package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// StorageBackend selects the blob store implementation.
type StorageBackend string

const (
	BackendMinIO StorageBackend = "minio"
	BackendLocal StorageBackend = "local"
)

// Config holds every runtime setting. It is built once at process start and
// passed by reference into constructors; nothing reads the environment after
// Load returns.
type Config struct {
	Host string
	Port string

	// DBType is "sqlite" or "mysql"; DBDSN is the SQLite file path or MySQL DSN.
	DBType string
	DBDSN  string

	StorageBackend StorageBackend
	Container      string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool

	LocalStorageDir string
	PublicBaseURL   string
	SignedURLSecret string

	// RequestTimeout bounds every store and database call made on behalf of
	// one HTTP request.
	RequestTimeout time.Duration

	// SweepInterval is how often the orphaned-blob reconciliation runs.
	// Zero disables the sweep.
	SweepInterval time.Duration

	LogDir string
}

// Load reads configuration from the environment (and .env when present).
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            getEnv("PORT", "8080"),
		DBType:          getEnv("DB_TYPE", "sqlite"),
		DBDSN:           getEnv("DB_DSN", "./catalog.db"),
		StorageBackend:  StorageBackend(getEnv("STORAGE_BACKEND", string(BackendLocal))),
		Container:       getEnv("STORAGE_CONTAINER", "multimedia"),
		MinIOEndpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey:  getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:  getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:     getEnvBool("MINIO_USE_SSL", false),
		LocalStorageDir: getEnv("LOCAL_STORAGE_DIR", "./data/blobs"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		SignedURLSecret: getEnv("SIGNED_URL_SECRET", "change-this-signed-url-secret"),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT_SECONDS", 30*time.Second),
		SweepInterval:   getEnvDuration("SWEEP_INTERVAL_SECONDS", time.Hour),
		LogDir:          getEnv("LOG_DIR", "./logs"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return time.Duration(n) * time.Second
		}
	}
	return defaultValue
}
