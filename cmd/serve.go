package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shouni/go-art-studio/internal/builder"
	"github.com/shouni/go-art-studio/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "HTTPサーバを起動するのだ",
	Long:  "画像生成・ギャラリー・画像配信のエンドポイントを /api 配下に公開するサーバを起動するのだ。Ctrl+C でグレースフルに停止するのだよ。",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	// 明示的に指定されたフラグだけが環境変数の値を上書きするのだ
	if cmd.Flags().Changed("addr") {
		cfg.Addr = opts.Addr
	}
	if cmd.Flags().Changed("image-dir") {
		cfg.ImageDir = opts.ImageDir
	}
	if cmd.Flags().Changed("db") {
		cfg.DatabasePath = opts.DatabasePath
	}
	if cmd.Flags().Changed("image-model") {
		cfg.GeminiImageModel = opts.ImageModel
	}
	cfg.Options = opts
	if cfg.Options.HTTPTimeout == 0 {
		cfg.Options.HTTPTimeout = config.DefaultHTTPTimeout
	}

	slog.Info("クリエイティブスタジオを起動するのだ！",
		"addr", cfg.Addr,
		"imageDir", cfg.ImageDir,
		"imageModel", cfg.GeminiImageModel,
	)

	appCtx, err := builder.BuildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := appCtx.Close(); err != nil {
			slog.Warn("リソースの解放に失敗したのだ", "error", err)
		}
	}()

	return appCtx.Server.Run(ctx)
}
