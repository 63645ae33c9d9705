package config

import (
	"os"
	"strconv"
	"strings"
)

// Server configuration defaults.
const (
	DefaultPort        = "8080"
	DefaultDownloadDir = "./temp_videos"
	DefaultMaxBodySize = 1 << 20 // 1 MB of JSON request body
)

// Server holds HTTP server configuration loaded from the environment.
type Server struct {
	Port           string
	DownloadDir    string
	MaxBodySize    int64
	AllowedOrigins []string
}

// LoadServer reads server configuration from environment variables.
func LoadServer() *Server {
	return &Server{
		Port:        getEnv("PORT", DefaultPort),
		DownloadDir: getEnv("DOWNLOAD_DIR", DefaultDownloadDir),
		MaxBodySize: getEnvInt64("MAX_BODY_SIZE", DefaultMaxBodySize),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
		}),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvSlice(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
