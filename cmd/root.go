package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shouni/go-art-studio/internal/config"
)

// opts は CLI フラグの受け皿なのだ。
var opts config.ServeOptions

var rootCmd = &cobra.Command{
	Use:               "art-studio",
	Short:             "子ども向けクリエイティブスタジオのバックエンドなのだ",
	Long:              "お絵描き・レゴ・絵文字プレイグラウンドの3ツールから画像を生成し、ギャラリーとして保存・配信するHTTPサーバなのだ。",
	PersistentPreRunE: preRunAppE,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVarP(&opts.Addr, "addr", "a", config.DefaultAddr, "HTTPサーバの待ち受けアドレスなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.ImageDir, "image-dir", "i", config.DefaultImageDir, "生成された画像を保存するディレクトリ（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.DatabasePath, "db", "", "SQLiteデータベースのパス（空ならインメモリなのだ）。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "使用する Gemini 画像モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
