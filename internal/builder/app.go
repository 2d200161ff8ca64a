package builder

import (
	"github.com/shouni/go-art-studio/internal/config"
	"github.com/shouni/go-art-studio/internal/store"
	"github.com/shouni/go-art-studio/internal/studio"
	"github.com/shouni/go-art-studio/internal/transport/web"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config *config.Config // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、保存先など）。
	Studio *studio.Studio // Studioは、プロンプト合成から保存までを束ねるアプリケーションサービスです。
	Server *web.Server    // Serverは、/api 配下のエンドポイントを公開するHTTPサーバです。

	creationStore store.CreationStore
}

// Close は、終了時に解放が必要なリソース（SQLite接続など）を閉じるのだ。
func (a *AppContext) Close() error {
	if closer, ok := a.creationStore.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
