package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/parlakisik/buildex-matching/internal/clients"
	"github.com/parlakisik/buildex-matching/internal/config"
	"github.com/parlakisik/buildex-matching/internal/events"
	"github.com/parlakisik/buildex-matching/internal/guarantee"
	"github.com/parlakisik/buildex-matching/internal/httpapi"
	"github.com/parlakisik/buildex-matching/internal/matching"
	"github.com/parlakisik/buildex-matching/internal/pricing"
	"github.com/parlakisik/buildex-matching/internal/service"
	"github.com/parlakisik/buildex-matching/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if cfg.Environment == "development" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("starting buildex-matching",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store", cfg.StoreType,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	claimStore, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open claim store", "store", cfg.StoreType, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	guaranteeConfig, err := guarantee.NewConfigProvider(cfg.GuaranteeConfig())
	if err != nil {
		slog.Error("invalid guarantee configuration", "error", err)
		os.Exit(1)
	}
	pricingCalc, err := pricing.NewCalculator(cfg.CommissionRate)
	if err != nil {
		slog.Error("invalid commission rate", "error", err)
		os.Exit(1)
	}
	estimator, err := matching.NewPriceEstimator(cfg.VarianceBand, matching.DefaultRandom())
	if err != nil {
		slog.Error("invalid price variance band", "error", err)
		os.Exit(1)
	}
	ranking, err := matching.NewRankingService(matching.NewScorer(estimator), cfg.RankingTopN)
	if err != nil {
		slog.Error("invalid ranking configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("ranking configured", "top_n", ranking.TopN(), "variance_band", estimator.VarianceBand())

	var source clients.CandidateSource = clients.NewDefaultCatalog()
	if cfg.ProviderDiscoveryURL != "" {
		source = clients.NewProviderDiscoveryClient(cfg.ProviderDiscoveryURL, cfg.DiscoveryTimeout)
		slog.Info("using provider discovery", "url", cfg.ProviderDiscoveryURL)
	} else {
		slog.Info("using built-in provider catalog")
	}

	publisher := events.NewPublisher("buildex-matching")
	if cfg.ClaimWebhookURL != "" {
		publisher.RegisterEndpoint(events.EventGuaranteeClaimFiled, cfg.ClaimWebhookURL)
	}

	svc, err := service.New(service.Deps{
		Source:      source,
		Ranking:     ranking,
		Pricing:     pricingCalc,
		Guarantee:   guarantee.NewCalculator(guaranteeConfig),
		Claims:      guarantee.NewClaims(claimStore, guaranteeConfig),
		Events:      publisher,
		SearchDelay: cfg.SearchDelay,
	})
	if err != nil {
		slog.Error("failed to build service", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(svc),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		slog.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (store.ClaimStore, func(), error) {
	switch cfg.StoreType {
	case config.StoreMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, err
		}
		if err := client.Ping(ctx, nil); err != nil {
			return nil, nil, err
		}

		st := store.NewMongoClaimStore(client, cfg.MongoDB, cfg.MongoCollectionClaims)
		if err := st.EnsureIndexes(ctx); err != nil {
			slog.Warn("failed to create indexes", "error", err)
		}
		slog.Info("using mongodb store", "db", cfg.MongoDB, "collection", cfg.MongoCollectionClaims)

		return st, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				slog.Error("failed to disconnect mongodb", "error", err)
			}
		}, nil

	case config.StoreFirestore:
		st, err := store.NewFirestoreClaimStore(ctx, cfg.FirestoreProjectID, cfg.FirestoreCollectionClaims)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("using firestore store", "project", cfg.FirestoreProjectID, "collection", cfg.FirestoreCollectionClaims)
		return st, func() {
			if err := st.Close(); err != nil {
				slog.Error("failed to close firestore client", "error", err)
			}
		}, nil

	default:
		slog.Info("using in-memory store")
		st := store.NewMemoryStore()
		return st, func() { _ = st.Close() }, nil
	}
}
