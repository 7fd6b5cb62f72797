package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries the env-driven settings. Empty values disable the
// corresponding integration.
type Config struct {
	Port string

	// PublicBaseURL prefixes token URIs and metadata links
	PublicBaseURL string

	RedisAddr string
	RedisPass string
	RedisDB   int

	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3UsePathStyle bool

	KafkaBrokers  []string
	KafkaTopic    string
	KafkaGroupID  string
	DatabaseURL   string
	CohereAPIKey  string
	EmbedModel    string
	ImageAPIURL   string
	ImageAPIKey   string
	PredictionURL string
	PredictionKey string
	ETHPriceUSD   float64

	// FeedURLs are creator channel feeds imported on FeedImportCron
	FeedURLs       []string
	FeedImportCron string
}

// Load reads Config from the environment
func Load() Config {
	cfg := Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		PublicBaseURL:  strings.TrimRight(getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		RedisAddr:      strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPass:      os.Getenv("REDIS_PASS"),
		S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
		KafkaTopic:     getEnvOrDefault("KAFKA_TOPIC_MINT_EVENTS", DefaultMintTopic),
		KafkaGroupID:   getEnvOrDefault("KAFKA_CONSUMER_GROUP_ID", DefaultConsumerGroup),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		CohereAPIKey:   strings.TrimSpace(os.Getenv("COHERE_API_KEY")),
		EmbedModel:     getEnvOrDefault("EMBED_MODEL", "embed-english-v3.0"),
		ImageAPIURL:    strings.TrimRight(strings.TrimSpace(os.Getenv("IMAGE_API_URL")), "/"),
		ImageAPIKey:    os.Getenv("IMAGE_API_KEY"),
		PredictionURL:  strings.TrimSpace(os.Getenv("PREDICTION_API_URL")),
		PredictionKey:  os.Getenv("PREDICTION_API_KEY"),
		ETHPriceUSD:    DefaultETHPriceUSD,
		FeedURLs:       splitList(os.Getenv("FEED_URLS")),
		FeedImportCron: getEnvOrDefault("FEED_IMPORT_CRON", "@hourly"),
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}
	if v := os.Getenv("ETH_PRICE_USD"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil && p > 0 {
			cfg.ETHPriceUSD = p
		}
	}
	cfg.KafkaBrokers = splitList(os.Getenv("KAFKA_BOOTSTRAP_SERVERS"))

	return cfg
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
