package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Portal configuration
	PortalBaseURL  string
	PortalCode     string
	PortalUserName string
	PortalPassword string

	// HTTP server configuration
	ListenAddr string

	// Pipeline configuration
	CutoffTime     string
	FetchWorkers   int
	RequestTimeout time.Duration

	// Cache configuration
	CacheBackend   string
	DetailCacheTTL time.Duration
	ItemsCacheSize int
	MemcacheAddr   string
	RedisAddr      string
	RedisDB        int

	// WeChat official account configuration
	WechatToken  string
	WechatAppID  string
	WechatSecret string
	MenuURL      string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	fetchWorkers, _ := strconv.Atoi(getEnv("FETCH_WORKERS", "5"))
	requestTimeout, _ := strconv.Atoi(getEnv("REQUEST_TIMEOUT_SECONDS", "30"))
	detailCacheTTL, _ := strconv.Atoi(getEnv("DETAIL_CACHE_TTL_SECONDS", "300"))
	itemsCacheSize, _ := strconv.Atoi(getEnv("ITEMS_CACHE_SIZE", "128"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return &Config{
		PortalBaseURL:  getEnv("PORTAL_BASE_URL", "https://e.jwsaas.com"),
		PortalCode:     getEnv("PORTAL_CODE", "372118"),
		PortalUserName: getEnv("PORTAL_USERNAME", "ljb001"),
		PortalPassword: getEnv("PORTAL_PASSWORD", ""),
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		CutoffTime:     getEnv("ORDER_CUTOFF_TIME", "19:00:00"),
		FetchWorkers:   fetchWorkers,
		RequestTimeout: time.Duration(requestTimeout) * time.Second,
		CacheBackend:   getEnv("CACHE_BACKEND", "memory"),
		DetailCacheTTL: time.Duration(detailCacheTTL) * time.Second,
		ItemsCacheSize: itemsCacheSize,
		MemcacheAddr:   getEnv("MEMCACHE_ADDR", "localhost:11211"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        redisDB,
		WechatToken:    getEnv("WECHAT_TOKEN", ""),
		WechatAppID:    getEnv("WECHAT_APPID", ""),
		WechatSecret:   getEnv("WECHAT_SECRET", ""),
		MenuURL:        getEnv("MENU_URL", ""),
		Environment:    getEnv("ORDERBOARD_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.PortalBaseURL == "" {
		return fmt.Errorf("portal base URL must not be empty")
	}
	if c.PortalUserName == "" || c.PortalPassword == "" {
		return fmt.Errorf("portal credentials are not configured")
	}
	if c.FetchWorkers <= 0 {
		return fmt.Errorf("fetch worker count must be positive, got %d", c.FetchWorkers)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	switch c.CacheBackend {
	case "memory", "memcache", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
