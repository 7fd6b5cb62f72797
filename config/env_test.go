package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "REDIS_ADDR", "KAFKA_BOOTSTRAP_SERVERS", "FEED_URLS", "ETH_PRICE_USD", "PUBLIC_BASE_URL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q; want 8080", cfg.Port)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("RedisAddr = %q; want empty", cfg.RedisAddr)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Fatalf("KafkaBrokers = %v; want none", cfg.KafkaBrokers)
	}
	if cfg.ETHPriceUSD != DefaultETHPriceUSD {
		t.Fatalf("ETHPriceUSD = %v; want %v", cfg.ETHPriceUSD, DefaultETHPriceUSD)
	}
	if cfg.KafkaTopic != DefaultMintTopic {
		t.Fatalf("KafkaTopic = %q; want %q", cfg.KafkaTopic, DefaultMintTopic)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("KAFKA_BOOTSTRAP_SERVERS", "k1:9092, k2:9092 ,")
	t.Setenv("FEED_URLS", "https://a.example/feed,https://b.example/feed")
	t.Setenv("ETH_PRICE_USD", "2500.5")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PUBLIC_BASE_URL", "https://gebo.example/")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Fatalf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
	if len(cfg.FeedURLs) != 2 {
		t.Fatalf("FeedURLs = %v", cfg.FeedURLs)
	}
	if cfg.ETHPriceUSD != 2500.5 {
		t.Fatalf("ETHPriceUSD = %v", cfg.ETHPriceUSD)
	}
	if cfg.RedisDB != 3 {
		t.Fatalf("RedisDB = %d", cfg.RedisDB)
	}
	if cfg.PublicBaseURL != "https://gebo.example" {
		t.Fatalf("PublicBaseURL = %q", cfg.PublicBaseURL)
	}
}

func TestAllowedUploadTables(t *testing.T) {
	if !AllowedVideoTypes["video/mp4"] || AllowedVideoTypes["image/png"] {
		t.Fatal("unexpected MIME allowlist")
	}
	if !AllowedVideoExtensions[".mov"] || AllowedVideoExtensions[".exe"] {
		t.Fatal("unexpected extension allowlist")
	}
}
