// Package studio は3つのツール（お絵描き・レゴ・プレイグラウンド）の
// 生成ユースケースを束ねるアプリケーションサービスです。
// プロンプト合成 → 画像生成 → ファイル保存 → レコード登録を1本の流れとして実行し、
// 途中で失敗した場合はレコードを残しません。
package studio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/shouni/go-art-studio/internal/assets"
	"github.com/shouni/go-art-studio/internal/store"
	"github.com/shouni/go-art-studio/pkg/domain"
	"github.com/shouni/go-art-studio/pkg/generator"
	"github.com/shouni/go-art-studio/pkg/prompts"
)

// Studio は生成パイプラインの依存一式を保持します。
type Studio struct {
	gen     generator.ImageGenerator
	assets  *assets.Store
	store   store.CreationStore
	limiter *rate.Limiter
	newID   func() string
}

// New は Studio を構築します。limiter が nil の場合はレート制限なしで動作します。
func New(gen generator.ImageGenerator, assetStore *assets.Store, creationStore store.CreationStore, limiter *rate.Limiter) (*Studio, error) {
	if gen == nil {
		return nil, fmt.Errorf("image generator is required")
	}
	if assetStore == nil {
		return nil, fmt.Errorf("asset store is required")
	}
	if creationStore == nil {
		return nil, fmt.Errorf("creation store is required")
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Studio{
		gen:     gen,
		assets:  assetStore,
		store:   creationStore,
		limiter: limiter,
		newID:   uuid.NewString,
	}, nil
}

// generationPlan は各ツールのハンドラが組み立てる生成計画です。
type generationPlan struct {
	composedPrompt string
	referenceURL   string
	draft          store.Draft
}

// CreateDrawing はお絵描きツールの作品を生成して保存します。
func (s *Studio) CreateDrawing(ctx context.Context, req DrawingRequest) (*domain.Creation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	composed, err := prompts.BuildDrawingPrompt(req.Prompt, req.Style, req.Type)
	if err != nil {
		// クライアントへ返すメッセージは固定の英語に寄せ、詳細はログに残す
		slog.Debug("描画モードの解決に失敗したのだ", "type", req.Type, "error", err)
		return nil, invalidf("type must be %q or %q", prompts.ModeTextToImage, prompts.ModeStyleTransfer)
	}

	// 参照画像は style-transfer モードのときだけ使う
	referenceURL := ""
	if req.Type == prompts.ModeStyleTransfer {
		referenceURL = req.ReferenceURL
	}

	return s.generateAndPersist(ctx, generationPlan{
		composedPrompt: composed,
		referenceURL:   referenceURL,
		draft: store.Draft{
			Type:   domain.TypeDrawing,
			Title:  prompts.DrawingTitle(req.Style),
			Prompt: req.Prompt,
			Metadata: domain.Metadata{Drawing: &domain.DrawingMeta{
				Style:       req.Style,
				DrawingType: req.Type,
			}},
		},
	})
}

// CreateLego はレゴツールの作品を生成して保存します。
func (s *Studio) CreateLego(ctx context.Context, req LegoRequest) (*domain.Creation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	composed := prompts.BuildLegoPrompt(req.Prompt, req.Colors, req.Size, req.Complexity, req.Theme, req.Features)

	return s.generateAndPersist(ctx, generationPlan{
		composedPrompt: composed,
		draft: store.Draft{
			Type:   domain.TypeLego,
			Title:  prompts.LegoTitle(req.Theme),
			Prompt: req.Prompt,
			Metadata: domain.Metadata{Lego: &domain.LegoMeta{
				Colors:     req.Colors,
				Size:       req.Size,
				Complexity: req.Complexity,
				Theme:      req.Theme,
				Features:   req.Features,
			}},
		},
	})
}

// CreatePlayground は絵文字プレイグラウンドの作品を生成して保存します。
// レコードの Prompt には合成プロンプトではなく絵文字の一覧を残します。
func (s *Studio) CreatePlayground(ctx context.Context, req PlaygroundRequest) (*domain.Creation, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	composed := prompts.BuildPlaygroundPrompt(req.Emojis, req.Background, req.Style)

	return s.generateAndPersist(ctx, generationPlan{
		composedPrompt: composed,
		draft: store.Draft{
			Type:   domain.TypePlayground,
			Title:  prompts.PlaygroundTitle,
			Prompt: "Emojis: " + strings.Join(req.Emojis, " "),
			Metadata: domain.Metadata{Playground: &domain.PlaygroundMeta{
				Emojis:     req.Emojis,
				Background: req.Background,
				Style:      req.Style,
			}},
		},
	})
}

// generateAndPersist は生成パイプラインの共通部分です。
// レート制限 → 画像生成 → ファイル保存 → レコード登録の順に進み、
// レコード登録に失敗した場合は保存済みファイルを片付けます。
func (s *Studio) generateAndPersist(ctx context.Context, plan generationPlan) (*domain.Creation, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("レート制限の待機が中断されました: %w", err)
	}

	img, err := s.gen.Generate(ctx, generator.GenerateRequest{
		Prompt:       plan.composedPrompt,
		ReferenceURL: plan.referenceURL,
	})
	if err != nil {
		return nil, fmt.Errorf("画像の生成に失敗しました: %w", err)
	}

	filename := s.newID() + ".png"
	if _, err := s.assets.Save(ctx, filename, img.Data, "image/png"); err != nil {
		return nil, err
	}

	plan.draft.ImageURL = "/api/images/" + filename
	created, err := s.store.Create(ctx, plan.draft)
	if err != nil {
		// レコードなしの孤児ファイルを残さない
		if rmErr := s.assets.Remove(filename); rmErr != nil {
			slog.Warn("孤児画像ファイルの削除に失敗したのだ", "filename", filename, "error", rmErr)
		}
		return nil, fmt.Errorf("作品レコードの保存に失敗しました: %w", err)
	}

	return created, nil
}

// ListCreations は全作品を新しい順で返します。
func (s *Studio) ListCreations(ctx context.Context) ([]*domain.Creation, error) {
	return s.store.ListAll(ctx)
}

// ListCreationsByType は指定種別の作品を新しい順で返します。
func (s *Studio) ListCreationsByType(ctx context.Context, t domain.CreationType) ([]*domain.Creation, error) {
	return s.store.ListByType(ctx, t)
}

// Delete は作品レコードと画像ファイルを削除します。
// レコードの削除が正で、ファイル削除はベストエフォートです。
func (s *Studio) Delete(ctx context.Context, id string) (bool, error) {
	creation, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	removed, err := s.store.Delete(ctx, id)
	if err != nil || !removed {
		return removed, err
	}

	filename := path.Base(creation.ImageURL)
	if err := s.assets.Remove(filename); err != nil {
		slog.Warn("画像ファイルの削除に失敗したのだ", "id", id, "filename", filename, "error", err)
	}
	return true, nil
}

// OpenImage は保存済み画像の読み取りストリームを返します。
func (s *Studio) OpenImage(ctx context.Context, filename string) (io.ReadCloser, error) {
	return s.assets.Open(ctx, filename)
}
