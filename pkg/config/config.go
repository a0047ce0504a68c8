package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	GigaChat   GigaChatConfig
	Classifier ClassifierConfig
	Router     RouterConfig
	Logger     LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	EmbeddingModel     string
	InsecureSkipVerify bool
}

// ClassifierConfig selects the active classification strategy and its tuning.
// Type is one of: knn, llm, hybrid.
type ClassifierConfig struct {
	Type      string
	Threshold float64
	TopK      int
	// Optional inclusive id range of examples whose labels are trusted.
	// Zero values disable the filter.
	TrustedIDFrom int
	TrustedIDTo   int
}

// RouterConfig carries the category tier tables for service resolution.
// The sets are injected here instead of being hard-coded so the resolver
// can be exercised with synthetic catalogs.
type RouterConfig struct {
	City               string
	HotlineName        string
	DistrictCategories []string
	CitywideCategories []string
}

func Load() (*Config, error) {
	// .env is optional: Docker/K8s deployments pass plain env vars
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	topK, _ := strconv.Atoi(getEnv("CLASSIFIER_TOP_K", "5"))
	threshold, _ := strconv.ParseFloat(getEnv("CLASSIFIER_THRESHOLD", "0.6"), 64)
	trustedFrom, _ := strconv.Atoi(getEnv("CLASSIFIER_TRUSTED_ID_FROM", "0"))
	trustedTo, _ := strconv.Atoi(getEnv("CLASSIFIER_TRUSTED_ID_TO", "0"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "misto_helper"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			EmbeddingModel:     getEnv("GIGACHAT_EMBEDDING_MODEL", "Embeddings"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		Classifier: ClassifierConfig{
			Type:          getEnv("CLASSIFIER_TYPE", "hybrid"),
			Threshold:     threshold,
			TopK:          topK,
			TrustedIDFrom: trustedFrom,
			TrustedIDTo:   trustedTo,
		},
		Router: RouterConfig{
			City:               getEnv("ROUTER_CITY", "Львів"),
			HotlineName:        getEnv("ROUTER_HOTLINE_NAME", "Міська гаряча лінія 1580"),
			DistrictCategories: getEnvList("ROUTER_DISTRICT_CATEGORIES", "roads,trees,yard,infrastructure"),
			CitywideCategories: getEnvList("ROUTER_CITYWIDE_CATEGORIES", "water_supply,heating,gas,lighting"),
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

func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}
