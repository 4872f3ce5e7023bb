package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	GigaChat  GigaChatConfig
	Recommend RecommendConfig
	Catalog   CatalogConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Address   string
	Password  string
	DB        int
	ResultTTL time.Duration
	Enabled   bool
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	Model              string
	Temperature        float64
	InsecureSkipVerify bool
}

type RecommendConfig struct {
	AIEnabled       bool
	LLMTimeout      time.Duration
	BreakerFailures uint32
	BreakerOpenTime time.Duration
}

type CatalogConfig struct {
	// Source is "postgres" or "json".
	Source        string
	JSONPath      string
	QuestionsPath string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	resultTTL, _ := strconv.Atoi(getEnv("REDIS_RESULT_TTL_MINUTES", "60"))
	llmTimeout, _ := strconv.Atoi(getEnv("RECOMMEND_LLM_TIMEOUT", "8"))
	breakerFailures, _ := strconv.Atoi(getEnv("RECOMMEND_BREAKER_FAILURES", "5"))
	breakerOpen, _ := strconv.Atoi(getEnv("RECOMMEND_BREAKER_OPEN_SECONDS", "30"))
	temperature, err := strconv.ParseFloat(getEnv("GIGACHAT_TEMPERATURE", "0.3"), 64)
	if err != nil {
		temperature = 0.3
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			CORSOrigins:  getEnv("CORS_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "vitrifiye_studio"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Address:   getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        redisDB,
			ResultTTL: time.Duration(resultTTL) * time.Minute,
			Enabled:   getEnv("REDIS_ENABLED", "true") == "true",
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			Model:              getEnv("GIGACHAT_MODEL", "GigaChat"),
			Temperature:        temperature,
			InsecureSkipVerify: getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true",
		},
		Recommend: RecommendConfig{
			AIEnabled:       getEnv("RECOMMEND_AI_ENABLED", "true") == "true",
			LLMTimeout:      time.Duration(llmTimeout) * time.Second,
			BreakerFailures: uint32(breakerFailures),
			BreakerOpenTime: time.Duration(breakerOpen) * time.Second,
		},
		Catalog: CatalogConfig{
			Source:        getEnv("CATALOG_SOURCE", "postgres"),
			JSONPath:      getEnv("CATALOG_JSON_PATH", "data/products.json"),
			QuestionsPath: getEnv("CATALOG_QUESTIONS_PATH", "data/shopify-products.json"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
