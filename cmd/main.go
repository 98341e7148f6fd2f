package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/jackc/pgx/v5/pgxpool"

	"health-assistant/handler"
	"health-assistant/internal/catalog"
	"health-assistant/internal/integrations/gemini"
	"health-assistant/internal/integrations/openai"
	"health-assistant/internal/integrations/paramstore"
	"health-assistant/internal/integrations/twilio"
	"health-assistant/internal/language"
	"health-assistant/internal/logutil"
	"health-assistant/internal/repository"
	"health-assistant/internal/usecase"
)

func main() {
	ctx := context.Background()

	logger, err := logutil.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	if err != nil {
		slog.Error("invalid logging configuration", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	// ---- Configuration (read only here) ----
	paramPrefix := mustEnv("PARAM_PREFIX")
	storeBackend := envString("STORE_BACKEND", "dynamodb")
	aiProvider := envString("AI_PROVIDER", "gemini")
	vaccinePath := envString("VACCINE_CATALOG_PATH", "data/vaccine_schedule.yaml")
	outbreakPath := envString("OUTBREAK_CATALOG_PATH", "data/outbreaks.yaml")
	minConfidence := envFloat("LANG_MIN_CONFIDENCE", 0.5)
	maxMediaBytes := envInt("MAX_MEDIA_BYTES", twilio.MaxMediaBytes)

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create SSM client", "err", err)
		os.Exit(1)
	}

	store := mustStore(ctx, cfg, storeBackend)
	ai := mustAIGateway(ssmClient, paramPrefix, aiProvider)

	media, err := twilio.NewMediaClient(ssmClient, paramPrefix, twilio.WithMaxBytes(int64(maxMediaBytes)))
	if err != nil {
		slog.Error("failed to create Twilio media client", "err", err)
		os.Exit(1)
	}

	// ---- Router ----
	router, err := usecase.NewRouter(usecase.Dependencies{
		Store:       store,
		AI:          ai,
		Media:       media,
		Params:      ssmClient,
		Resolver:    language.NewResolver(language.NewWhatlangDetector(language.WithMinConfidence(minConfidence)), logger),
		Vaccines:    catalog.LoadVaccines(vaccinePath, logger),
		Outbreaks:   catalog.LoadOutbreaks(outbreakPath, logger),
		Logger:      logger,
		ParamPrefix: paramPrefix,
	})
	if err != nil {
		slog.Error("failed to create router", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	h, err := handler.NewHandler(router, logger)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}

func mustStore(ctx context.Context, cfg aws.Config, backend string) usecase.ProfileStore {
	switch strings.ToLower(backend) {
	case "dynamodb":
		store, err := repository.New(awsdynamodb.NewFromConfig(cfg), mustEnv("PROFILE_TABLE"))
		if err != nil {
			slog.Error("failed to create DynamoDB store", "err", err)
			os.Exit(1)
		}
		return store
	case "postgres":
		pool, err := pgxpool.New(ctx, mustEnv("DATABASE_URL"))
		if err != nil {
			slog.Error("failed to create Postgres pool", "err", err)
			os.Exit(1)
		}
		store, err := repository.NewPostgres(pool)
		if err != nil {
			slog.Error("failed to create Postgres store", "err", err)
			os.Exit(1)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			slog.Error("failed to ensure Postgres schema", "err", err)
			os.Exit(1)
		}
		return store
	default:
		slog.Error("unknown STORE_BACKEND", "value", backend)
		os.Exit(1)
		return nil
	}
}

func mustAIGateway(ps *paramstore.Client, paramPrefix, provider string) usecase.AIGateway {
	switch strings.ToLower(provider) {
	case "gemini":
		c, err := gemini.NewClient(ps, paramPrefix, gemini.WithModel(os.Getenv("GEMINI_MODEL")))
		if err != nil {
			slog.Error("failed to create Gemini client", "err", err)
			os.Exit(1)
		}
		return c
	case "openai":
		c, err := openai.NewClient(ps, paramPrefix, openai.WithModel(os.Getenv("OPENAI_MODEL")))
		if err != nil {
			slog.Error("failed to create OpenAI client", "err", err)
			os.Exit(1)
		}
		return c
	default:
		slog.Error("unknown AI_PROVIDER", "value", provider)
		os.Exit(1)
		return nil
	}
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
