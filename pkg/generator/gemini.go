package generator

import (
	"context"
	"fmt"
	"time"

	imagedom "github.com/shouni/gemini-image-kit/ports"
	"github.com/shouni/go-gemini-client/gemini"
	"github.com/shouni/go-http-kit/httpkit"
	"google.golang.org/genai"
)

// StudioGenerator は gemini.GenerativeModel を用いた ImageGenerator の実装です。
// プロンプト（と任意の参照画像）を1回だけ外部サービスに投げ、
// 応答の中で最初に現れた画像パートを結果として返します。
type StudioGenerator struct {
	aiClient   gemini.GenerativeModel
	httpClient httpkit.ClientInterface
	cache      ImageCacher
	expiration time.Duration
	model      string
}

// NewStudioGenerator は依存関係を注入して StudioGenerator を初期化します。
func NewStudioGenerator(
	aiClient gemini.GenerativeModel,
	httpClient httpkit.ClientInterface,
	imageCache ImageCacher,
	cacheTTL time.Duration,
	model string,
) (*StudioGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	// cache は nil を許容（キャッシュなし動作）

	return &StudioGenerator{
		aiClient:   aiClient,
		httpClient: httpClient,
		cache:      imageCache,
		expiration: cacheTTL,
		model:      model,
	}, nil
}

// Generate は画像生成を実行します。外部呼び出しは1回きりで、
// リトライやバックオフが必要な場合は呼び出し側でデコレートします。
func (g *StudioGenerator) Generate(ctx context.Context, req GenerateRequest) (*imagedom.ImageResponse, error) {
	parts := []*genai.Part{{Text: req.Prompt}}

	if req.ReferenceURL != "" {
		if imgPart := g.prepareReferencePart(ctx, req.ReferenceURL); imgPart != nil {
			parts = append(parts, imgPart)
		}
	}

	resp, err := g.aiClient.GenerateWithParts(ctx, g.model, parts, gemini.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("Gemini画像生成エラー: %w", err)
	}

	return parseToResponse(resp)
}
