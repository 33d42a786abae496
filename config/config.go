package config

import (
	"go-portfolio-backend/pkg/storage"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	APIBasePath string
	// Editable turns the authoring routes on. Read-only deployments keep it false.
	Editable        bool
	FrontendOrigins []string
	// UpstreamAPIURL is where the proxy command forwards to.
	UpstreamAPIURL string
	MaxUploadMB    int
	// Redis/Upstash Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitWriteThreshold  int
	// Upload scanning
	ClamAVAddress string
	// AdminTokenSecret signs authoring tokens. Empty means no token is required.
	AdminTokenSecret string
	S3               storage.S3Config
	// Logging
	LogLevel         string
	LogConsolePretty bool
	LogFilePath      string
	Release          bool
}

func LoadConfig() (*Config, error) {
	// .env only matters locally; a missing file is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DBUrl:           getEnv("DATABASE_URL", ""),
		APIBasePath:     normalizeBasePath(getEnv("API_BASE_PATH", "/api")),
		Editable:        getEnvBool("EDITABLE", false),
		FrontendOrigins: splitList(getEnv("FRONTEND_URL", "")),
		UpstreamAPIURL:  strings.TrimRight(getEnv("UPSTREAM_API_URL", getEnv("SECRET_API_URL", "")), "/"),
		MaxUploadMB:     getEnvInt("MAX_UPLOAD_MB", 50),
		// Redis/Upstash Configuration
		RedisURL:      getEnv("UPSTASH_REDIS_URL", getEnv("REDIS_URL", "")),
		RedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", getEnv("REDIS_PASSWORD", "")),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 300),
		RateLimitWriteThreshold:  getEnvInt("RATE_LIMIT_WRITE_THRESHOLD", 30),
		ClamAVAddress:            getEnv("CLAMAV_ADDRESS", ""),
		AdminTokenSecret:         getEnv("ADMIN_TOKEN_SECRET", ""),
		S3: storage.S3Config{
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Region:          getEnv("S3_REGION", ""),
			Bucket:          getEnv("S3_BUCKET", ""),
			Endpoint:        strings.TrimRight(getEnv("S3_ENDPOINT", ""), "/"),
			UsePathStyle:    getEnvBool("S3_USE_PATH_STYLE", false),
		},
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogConsolePretty: getEnvBool("LOG_CONSOLE_PRETTY", false),
		LogFilePath:      getEnv("LOG_FILE_PATH", ""),
		Release:          getEnv("GIN_MODE", "") == "release",
	}

	return cfg, nil
}

// Warnings lists settings that leave a feature degraded. The caller logs them once the
// logger is up.
func (c *Config) Warnings() []string {
	var w []string
	if c.DBUrl == "" {
		w = append(w, "DATABASE_URL is missing, the server cannot start")
	}
	if c.RedisURL == "" {
		w = append(w, "UPSTASH_REDIS_URL not configured, rate limiting uses in-memory fallback and previews are not cached")
	}
	if c.Editable && c.AdminTokenSecret == "" {
		w = append(w, "EDITABLE is on without ADMIN_TOKEN_SECRET, anyone can change content")
	}
	return w
}

// MaxUploadBytes is the largest accepted evidence file.
func (c *Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 0
	}
	return int64(c.MaxUploadMB) << 20
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func normalizeBasePath(p string) string {
	p = "/" + strings.Trim(strings.TrimSpace(p), "/")
	if p == "/" {
		return ""
	}
	return p
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimRight(strings.TrimSpace(part), "/"); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
