package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/arashpr/cheatbot/internal/adapters/telegram"
	"github.com/arashpr/cheatbot/internal/config"
	"github.com/arashpr/cheatbot/internal/core/domain"
	"github.com/arashpr/cheatbot/internal/core/ports"
	"github.com/arashpr/cheatbot/internal/core/usecase"
	"github.com/arashpr/cheatbot/internal/infrastructure/extractor"
	"github.com/arashpr/cheatbot/internal/infrastructure/extractor/docx"
	"github.com/arashpr/cheatbot/internal/infrastructure/extractor/image"
	"github.com/arashpr/cheatbot/internal/infrastructure/extractor/pdf"
	"github.com/arashpr/cheatbot/internal/infrastructure/extractor/plaintext"
	"github.com/arashpr/cheatbot/internal/infrastructure/llm/gemini"
	"github.com/arashpr/cheatbot/internal/infrastructure/resilience"
	"github.com/arashpr/cheatbot/internal/infrastructure/storage/localfs"
	"github.com/arashpr/cheatbot/internal/infrastructure/store/memory"
	"github.com/arashpr/cheatbot/internal/infrastructure/workerpool"
	"github.com/arashpr/cheatbot/internal/observability/logging"
	"github.com/arashpr/cheatbot/internal/observability/metrics"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Controller ports.SessionController
	Bot        *telegram.Bot
	Handler    *telegram.Handler
	Metrics    *metrics.BotMetrics
}

func New(cfg config.Config) (*App, error) {
	logger := logging.NewJSONLogger("cheatbot", cfg.LogLevel)
	slog.SetDefault(logger)

	storage, err := localfs.New(cfg.DownloadDir)
	if err != nil {
		return nil, fmt.Errorf("init artifact storage: %w", err)
	}

	registry := extractor.NewRegistry()
	registry.Register(domain.KindPDF, pdf.NewExtractor())
	registry.Register(domain.KindImage, image.NewExtractor(cfg.TesseractLangs))
	registry.Register(domain.KindWordDoc, docx.NewExtractor())
	registry.Register(domain.KindPlainText, plaintext.NewExtractor())

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	generator := gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, executor)

	store := memory.NewSessionStore()

	extractTimeout := time.Duration(cfg.ExtractTimeoutSeconds) * time.Second
	answerTimeout := time.Duration(cfg.AnswerTimeoutSeconds) * time.Second
	pool := workerpool.New(cfg.WorkerPoolSize, extractTimeout).
		WithOperationTimeout("generate_answer", answerTimeout)

	controller := usecase.NewSessionController(store, registry, generator, pool)

	botMetrics := metrics.NewBotMetrics(store.Len)

	bot := telegram.NewBot(cfg.BotToken)
	handler := telegram.NewHandler(controller, bot, bot, storage, botMetrics, logger)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Controller: controller,
		Bot:        bot,
		Handler:    handler,
		Metrics:    botMetrics,
	}, nil
}

// MetricsServer builds the HTTP server exposing the Prometheus endpoint.
func (a *App) MetricsServer() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.Metrics.Handler())
	return &http.Server{
		Addr:    ":" + a.Config.MetricsPort,
		Handler: mux,
	}
}
