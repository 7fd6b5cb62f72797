package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gebo/analytics"
	"gebo/api"
	"gebo/common"
	"gebo/config"
	"gebo/jobs"
	"gebo/listings"
	"gebo/mint"
	"gebo/prediction"
	"gebo/shared/kafka"
	"gebo/thumbnails"
	"gebo/upload"
	"gebo/wallets"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	integrations := map[string]bool{}

	store, closeStore := initStore(ctx, cfg)
	defer closeStore()
	integrations["postgres"] = cfg.DatabaseURL != ""

	rdb := initRedis(ctx, cfg)
	integrations["redis"] = rdb != nil

	thumbOpts := []thumbnails.Option{}
	var registry mint.Registry = mint.NewMemoryRegistry()
	if rdb != nil {
		defer rdb.Close()
		thumbOpts = append(thumbOpts, thumbnails.WithCache(thumbnails.NewRedisCache(rdb)))
		registry = mint.NewRedisRegistry(rdb)
	}
	if cfg.ImageAPIURL == "" {
		log.Println("Warning: IMAGE_API_URL not set; thumbnails use placeholders")
	}
	integrations["image_api"] = cfg.ImageAPIURL != ""
	gen := thumbnails.NewGenerator(cfg.ImageAPIURL, cfg.ImageAPIKey, thumbOpts...)

	if cfg.PredictionURL == "" {
		log.Println("Warning: PREDICTION_API_URL not set; revenue uses the fallback formula")
	}
	integrations["prediction_api"] = cfg.PredictionURL != ""
	predictor := prediction.NewPredictor(cfg.PredictionURL, cfg.PredictionKey)

	embedder := listings.NewCohereEmbeddings(cfg.CohereAPIKey, cfg.EmbedModel)
	if embedder == nil {
		log.Println("Warning: COHERE_API_KEY not set; related videos use tag overlap")
	}
	integrations["embeddings"] = embedder != nil

	uploads := initUploads(ctx, cfg)
	integrations["s3"] = uploads.Stores()

	producer := initProducer(cfg)
	var publisher mint.Publisher
	if producer != nil {
		defer producer.Close()
		publisher = producer
	}
	integrations["kafka"] = producer != nil

	mints := mint.NewService(store, registry, publisher, cfg.PublicBaseURL)
	if producer != nil {
		consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers:    cfg.KafkaBrokers,
			Topic:      cfg.KafkaTopic,
			GroupID:    cfg.KafkaGroupID,
			Handler:    mints.EventHandler(),
			FromOldest: true,
		})
		if err != nil {
			log.Fatalf("Failed to create mint event consumer: %v", err)
		}
		defer consumer.Close()
		if err := consumer.Start(ctx); err != nil {
			log.Fatalf("Failed to start mint event consumer: %v", err)
		}
	}

	importer := listings.NewImporter(store)
	if len(cfg.FeedURLs) > 0 {
		scheduler := jobs.NewFeedScheduler(importer, cfg.FeedURLs)
		if err := scheduler.Start(cfg.FeedImportCron); err != nil {
			log.Fatalf("Failed to schedule feed import: %v", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
			defer cancel()
			if err := scheduler.Stop(stopCtx); err != nil {
				log.Printf("Warning: %v", err)
			}
		}()
	}

	r := api.NewRouter(api.Deps{
		Store:        store,
		Recommender:  listings.NewRecommender(store, embedder),
		Feeds:        importer,
		Thumbnails:   gen,
		Predictor:    predictor,
		Analytics:    analytics.NewService(predictor, cfg.ETHPriceUSD),
		Uploads:      uploads,
		Mints:        mints,
		Wallets:      wallets.NewService(mints, store),
		Integrations: integrations,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Starting Gebo API server on %s", srv.Addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  GET  /api/videos, /api/videos/:id, /api/videos/:id/related, /api/categories")
	log.Println("  POST /api/thumbnails/generate")
	log.Println("  POST /api/predict-revenue")
	log.Println("  GET  /api/analytics/:id/pricing, /api/analytics/:id/audience")
	log.Println("  POST /api/upload")
	log.Println("  GET  /api/chains, /api/chains/:id[/add-params|/switch-params|/contracts]")
	log.Println("  GET  /api/nft/metadata/:id, /api/mints?owner=")
	log.Println("  POST /api/mint")
	log.Println("  GET  /api/wallets/:address")
	log.Println("  POST /api/feeds/import")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: graceful shutdown failed: %v", err)
	}
}

// initStore returns the Postgres store when DATABASE_URL is set, otherwise
// the in-memory mock catalog
func initStore(ctx context.Context, cfg config.Config) (listings.Store, func()) {
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set; serving the in-memory mock catalog")
		return listings.NewMockStore(), func() {}
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	pg := listings.NewPostgresStore(pool)

	setupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := pg.EnsureSchema(setupCtx); err != nil {
		pool.Close()
		log.Fatalf("Failed to prepare database: %v", err)
	}
	log.Println("✅ Connected to Postgres listing store")
	return pg, pool.Close
}

// initRedis connects to REDIS_ADDR if set. An unreachable server disables
// caching and the shared mint registry.
func initRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set; thumbnail cache and shared mint registry disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("Warning: Redis at %s unreachable: %v (using in-memory state)", cfg.RedisAddr, err)
		rdb.Close()
		return nil
	}
	log.Printf("✅ Connected to Redis at %s", cfg.RedisAddr)
	return rdb
}

// initUploads wires S3 storage and ffmpeg frame grabs when available
func initUploads(ctx context.Context, cfg config.Config) *upload.Service {
	if cfg.S3Bucket == "" {
		log.Println("Warning: S3_BUCKET not set; uploads return a content id only")
		return upload.NewService(nil, nil)
	}

	s3c, err := common.NewS3(ctx, common.S3Config{
		Bucket:       cfg.S3Bucket,
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		log.Printf("Warning: failed to init S3 client: %v (uploads not stored)", err)
		return upload.NewService(nil, nil)
	}

	var frames upload.FrameExtractor
	if thumbnails.FFmpegAvailable() {
		frames = thumbnails.ExtractFrame
	} else {
		log.Println("Warning: ffmpeg not found; uploads get no frame thumbnail")
	}
	log.Printf("✅ Uploads stored in s3://%s/%s", s3c.Bucket(), config.UploadPrefix)
	return upload.NewService(s3c, frames)
}

// initProducer connects the mint event producer when brokers are configured
func initProducer(cfg config.Config) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("Warning: KAFKA_BOOTSTRAP_SERVERS not set; mints are applied in-process")
		return nil
	}

	p, err := kafka.NewProducer(kafka.ProducerConfig{Brokers: cfg.KafkaBrokers, Topic: cfg.KafkaTopic})
	if err != nil {
		log.Printf("Warning: Kafka unavailable: %v (mints are applied in-process)", err)
		return nil
	}
	log.Printf("✅ Publishing mint events to %s", cfg.KafkaTopic)
	return p
}
