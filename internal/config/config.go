package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      int
	AppEnv    string
	LogLevel  string
	LogFormat string

	CookieName     string
	CardTTL        int
	InsecureCookie bool
	JanitorEvery   time.Duration

	SubmitRateLimit  int
	SubmitRateWindow time.Duration
	ShutdownTimeout  time.Duration

	// EnvFileLoaded is false when no .env file was found.
	EnvFileLoaded bool
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; it is optional.
func Load() Config {
	loaded := godotenv.Load() == nil

	return Config{
		Port:      GetInt("PORT", 8080),
		AppEnv:    GetString("APP_ENV", "dev"),
		LogLevel:  GetString("LOG_LEVEL", "info"),
		LogFormat: GetString("LOG_FORMAT", "console"),

		CookieName:     GetString("COOKIE_NAME", "auth_card"),
		CardTTL:        GetInt("CARD_TTL_SECONDS", 1800),
		InsecureCookie: GetBool("COOKIE_INSECURE", false),
		JanitorEvery:   time.Duration(GetInt("JANITOR_INTERVAL_SECONDS", 60)) * time.Second,

		SubmitRateLimit:  GetInt("SUBMIT_RATE_LIMIT", 20),
		SubmitRateWindow: time.Duration(GetInt("SUBMIT_RATE_WINDOW_SECONDS", 60)) * time.Second,
		ShutdownTimeout:  time.Duration(GetInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,

		EnvFileLoaded: loaded,
	}
}

func GetString(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return val
}

func GetInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	valInt, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return valInt
}

func GetBool(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}
