package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nyaysaathi/legal-assistant/internal/config"
	"github.com/nyaysaathi/legal-assistant/internal/core/ports"
	"github.com/nyaysaathi/legal-assistant/internal/core/usecase"
	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/chunking"
	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/extractor"
	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/extractor/pdfdoc"
	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/extractor/plaintext"
	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/llm/gemini"
	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/metadata/jsonfile"
	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/queue/nats"
	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/repository/postgres"
	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/resilience"
	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/storage/localfs"
	"github.com/nyaysaathi/legal-assistant/internal/infrastructure/vector/qdrant"
)

type App struct {
	Config config.Config
	Log    *slog.Logger

	Queue     ports.MessageQueue
	Repo      ports.DocumentRepository
	LinkMap   *usecase.LinkMapCache
	IngestUC  ports.DocumentIngestor
	ProcessUC ports.DocumentProcessor
	AnswerUC  ports.LegalAnswerer

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	repo, closeRepo, err := newRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	exec := resilience.NewExecutor(resilience.DefaultPolicy(), log)
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		Executor: exec,
		Logger:   log,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	llm := gemini.NewClient(gemini.Config{
		BaseURL:           cfg.GeminiBaseURL,
		APIKey:            cfg.GeminiAPIKey,
		Model:             cfg.GeminiGenModel,
		RequestsPerSecond: cfg.GeminiRPS,
	}, exec, log)
	embedder := gemini.NewEmbedder(gemini.EmbedderConfig{
		BaseURL:           cfg.GeminiBaseURL,
		APIKey:            cfg.GeminiAPIKey,
		Model:             cfg.GeminiEmbModel,
		RequestsPerSecond: cfg.GeminiRPS,
	}, exec, log)
	tagger := gemini.NewTagger(llm)

	vectorDB := qdrant.New(cfg.QdrantURL, cfg.QdrantCollection)
	chunker := chunking.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)

	textExtractor := extractor.NewDispatcher().
		Register(".pdf", pdfdoc.NewExtractor(storage)).
		Register(".txt", plaintext.NewExtractor(storage)).
		Register(".md", plaintext.NewExtractor(storage))

	linkMap := usecase.NewLinkMapCache(cfg.LinkMapPath)

	ingestUC := usecase.NewIngestUseCase(storage, repo, queue, log)
	processUC := usecase.NewProcessUseCase(repo, textExtractor, chunker, tagger, embedder, vectorDB, log)
	answerUC := usecase.NewAnswerUseCase(embedder, vectorDB, llm, repo, linkMap, log, usecase.AnswerConfig{
		TopK:              cfg.AnswerTopK,
		MinScore:          cfg.AnswerMinScore,
		MarkdownOutput:    cfg.AnswerMarkdown,
		FanoutConcurrency: cfg.FanoutConcurrency,
		MaxOutputTokens:   cfg.MaxOutputTokens,
		LanguageLLMPass:   cfg.LanguageLLMPass,
	})

	return &App{
		Config:  cfg,
		Log:     log,
		Queue:   queue,
		Repo:    repo,
		LinkMap: linkMap,

		IngestUC:  ingestUC,
		ProcessUC: processUC,
		AnswerUC:  answerUC,

		closeFn: func() {
			queue.Close()
			closeRepo()
		},
	}, nil
}

func newRepository(ctx context.Context, cfg config.Config) (ports.DocumentRepository, func(), error) {
	switch cfg.MetadataBackend {
	case "postgres":
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		repo := postgres.NewDocumentRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return repo, func() { _ = db.Close() }, nil
	case "jsonfile", "":
		store, err := jsonfile.New(cfg.MetadataPath)
		if err != nil {
			return nil, nil, fmt.Errorf("init metadata store: %w", err)
		}
		return store, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown metadata backend %q", cfg.MetadataBackend)
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
