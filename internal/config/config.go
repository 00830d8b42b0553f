package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string
	StaticDir  string

	APIBaseURL string
	APIToken   string

	PageSize     int
	DemoPostSlug string

	Dev bool
}

// Load reads configuration from the environment, seeded from a .env file
// when one exists next to the binary.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ListenAddr:   getEnv("CMSBLOG_LISTEN_ADDR", ":3000"),
		StaticDir:    getEnv("CMSBLOG_STATIC_DIR", "static"),
		APIBaseURL:   getEnv("CMSBLOG_API_BASE_URL", "https://api.buttercms.com/v2"),
		APIToken:     os.Getenv("CMSBLOG_API_TOKEN"),
		PageSize:     getEnvInt("CMSBLOG_PAGE_SIZE", 10),
		DemoPostSlug: getEnv("CMSBLOG_DEMO_POST_SLUG", "example-post"),
		Dev:          getEnvBool("CMSBLOG_DEV", false),
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return fallback
	}

	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}

	return parsed
}
