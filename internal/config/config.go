package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultImageModel   = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultAddr         = ":5000"
	DefaultImageDir     = "generated_images" // 生成画像の保存先（ローカル or gs://...）なのだ
	DefaultRateInterval = 2 * time.Second    // 画像生成APIへの最小呼び出し間隔なのだ
)

// Config はアプリケーション全体の環境設定（APIキーや保存先）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiImageModel string
	ImageDir         string
	DatabasePath     string // 空ならインメモリストアで動くのだ
	Addr             string

	Options ServeOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		ImageDir:         envutil.GetEnv("STUDIO_IMAGE_DIR", DefaultImageDir),
		DatabasePath:     envutil.GetEnv("STUDIO_DB", ""),
		Addr:             envutil.GetEnv("STUDIO_ADDR", DefaultAddr),
	}
	return cfg
}

// ServeOptions は CLI フラグから渡される実行時のパラメータなのだ。
type ServeOptions struct {
	Addr         string        // --addr
	ImageDir     string        // --image-dir
	DatabasePath string        // --db
	ImageModel   string        // --image-model
	HTTPTimeout  time.Duration // --http-timeout
}
