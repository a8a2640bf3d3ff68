package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port             string
	DBPath           string
	LogLevel         string
	LogFormat        string // json|console
	CatalogPath      string
	MarketPriceLKR   float64
	RecommendTimeout time.Duration
	KBAllowedDomains []string
	KBMaxBytes       int
	KBFetchTimeout   time.Duration
	CORSOrigins      []string

	// Warnings collects problems found while loading; they are logged once
	// the logger exists.
	Warnings []string `json:"-"`
}

// Load reads .env (if present) and the process environment.
func Load() AppConfig {
	var warns []string
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		warns = append(warns, "load .env: "+err.Error())
	}
	return fromEnv(os.Getenv, warns)
}

func fromEnv(getenv func(string) string, warns []string) AppConfig {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}
	getFloat := func(k string, def float64) float64 {
		v := get(k, "")
		if v == "" {
			return def
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			warns = append(warns, k+": invalid value "+strconv.Quote(v)+", using default")
			return def
		}
		return f
	}
	getInt := func(k string, def int) int {
		v := get(k, "")
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			warns = append(warns, k+": invalid value "+strconv.Quote(v)+", using default")
			return def
		}
		return n
	}
	getDur := func(k string, def time.Duration) time.Duration {
		v := get(k, "")
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			warns = append(warns, k+": invalid duration "+strconv.Quote(v)+", using default")
			return def
		}
		return d
	}

	cfg := AppConfig{
		Port:             get("PORT", "8080"),
		DBPath:           get("DB_PATH", "potato.db"),
		LogLevel:         strings.ToLower(get("LOG_LEVEL", "info")),
		LogFormat:        strings.ToLower(get("LOG_FORMAT", "json")),
		CatalogPath:      get("CATALOG_PATH", ""),
		MarketPriceLKR:   getFloat("MARKET_PRICE_LKR", 180),
		RecommendTimeout: getDur("RECOMMEND_TIMEOUT", 2*time.Second),
		KBAllowedDomains: splitList(get("KB_ALLOWED_DOMAINS", "")),
		KBMaxBytes:       getInt("KB_MAX_BYTES_PER_PAGE", 1500000),
		KBFetchTimeout:   getDur("KB_FETCH_TIMEOUT", 20*time.Second),
		CORSOrigins:      splitList(get("CORS_ORIGINS", "*")),
	}
	cfg.Warnings = warns
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
