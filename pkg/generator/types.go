package generator

import (
	"context"
	"errors"
	"time"

	imagedom "github.com/shouni/gemini-image-kit/ports"
)

// ErrNoImage は、外部サービスが利用可能な画像を一つも返さなかったことを示します。
// 候補ゼロ・パートゼロ・画像ペイロードなしのいずれもこのエラー系に属します。
var ErrNoImage = errors.New("応答に画像データが含まれていません")

const (
	// cacheKeyReference は参照画像の取得結果キャッシュのキー接頭辞です。
	cacheKeyReference = "reference_img:"
	// referenceJPEGQuality は参照画像をインライン添付する際の圧縮品質です。
	referenceJPEGQuality = 75
)

// GenerateRequest は1回の画像生成要求です。
type GenerateRequest struct {
	// Prompt は合成済みの自然言語プロンプトです。
	Prompt string
	// ReferenceURL は style-transfer 時の参照画像URLです（任意）。
	ReferenceURL string
}

// ImageGenerator はオーケストレーション層が利用する画像生成の窓口です。
// 1回の呼び出しにつき外部呼び出しは1回で、内部リトライは行いません。
type ImageGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (*imagedom.ImageResponse, error)
}

// ImageCacher は参照画像の取得結果をキャッシュするためのインターフェースです。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}
