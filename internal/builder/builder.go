package builder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-gemini-client/gemini"
	"github.com/shouni/go-http-kit/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/shouni/go-art-studio/internal/assets"
	"github.com/shouni/go-art-studio/internal/config"
	"github.com/shouni/go-art-studio/internal/store"
	"github.com/shouni/go-art-studio/internal/studio"
	"github.com/shouni/go-art-studio/internal/transport/web"
	"github.com/shouni/go-art-studio/pkg/generator"
)

const (
	// 参照画像キャッシュの掃除間隔と保持期間なのだ
	referenceCacheExpiration = 30 * time.Minute
	referenceCacheCleanup    = 1 * time.Hour
)

// BuildApp は設定から全コンポーネントを組み立てて AppContext を返すのだ。
func BuildApp(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	httpClient := httpkit.New(cfg.Options.HTTPTimeout)

	aiClient, err := InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの構築に失敗したのだ: %w", err)
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}
	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	referenceCache := cache.New(referenceCacheExpiration, referenceCacheCleanup)
	imgGen, err := generator.NewStudioGenerator(aiClient, httpClient, referenceCache, referenceCacheExpiration, cfg.GeminiImageModel)
	if err != nil {
		return nil, fmt.Errorf("画像生成器の構築に失敗したのだ: %w", err)
	}

	assetStore, err := assets.NewStore(writer, reader, cfg.ImageDir)
	if err != nil {
		return nil, err
	}

	creationStore, err := InitializeCreationStore(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Every(config.DefaultRateInterval), 2)
	studioSvc, err := studio.New(imgGen, assetStore, creationStore, limiter)
	if err != nil {
		return nil, err
	}

	return &AppContext{
		Config:        cfg,
		Studio:        studioSvc,
		Server:        web.NewServer(studioSvc, cfg.Addr),
		creationStore: creationStore,
	}, nil
}

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	const defaultGeminiTemperature = float32(0.2)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// InitializeCreationStore はデータベースパスの有無でバックエンドを切り替えます。
func InitializeCreationStore(databasePath string) (store.CreationStore, error) {
	if databasePath == "" {
		slog.Info("インメモリストアで起動するのだ（再起動でレコードは消えるのだ）")
		return store.NewMemoryStore(), nil
	}

	s, err := store.NewSQLiteStore(databasePath)
	if err != nil {
		return nil, fmt.Errorf("SQLiteストアの構築に失敗したのだ: %w", err)
	}
	slog.Info("SQLiteストアで起動するのだ", "path", databasePath)
	return s, nil
}
