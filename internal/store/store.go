// Package store は Creation レコードの永続化を抽象化します。
// バックエンドはインメモリ（既定）と SQLite の2種類で、
// どちらも同じ CreationStore インターフェースを満たします。
package store

import (
	"context"
	"errors"

	"github.com/shouni/go-art-studio/pkg/domain"
)

// ErrNotFound は指定IDの作品が存在しないことを示します。
var ErrNotFound = errors.New("creation not found")

// Draft は作成時に呼び出し側が指定するフィールド一式です。
// ID と作成時刻はストアが採番します。
type Draft struct {
	Type     domain.CreationType
	Title    string
	Prompt   string
	ImageURL string
	Metadata domain.Metadata
}

// CreationStore は作品レコードのキー付きストアです。
// 更新操作は公開しません（レコードは作成後に不変）。
type CreationStore interface {
	// Get は ID で作品を取得します。存在しない場合は ErrNotFound を返します。
	Get(ctx context.Context, id string) (*domain.Creation, error)
	// ListAll は全作品を作成時刻の降順（新しい順）で返します。
	// 時刻が同一の場合は挿入順の逆（後から入れたものが先）になります。
	ListAll(ctx context.Context) ([]*domain.Creation, error)
	// ListByType は指定種別の作品だけを ListAll と同じ順序で返します。
	ListByType(ctx context.Context, t domain.CreationType) ([]*domain.Creation, error)
	// Create は ID と作成時刻を採番してレコードを保存し、完全なレコードを返します。
	// 既存IDを黙って上書きすることはありません。
	Create(ctx context.Context, d Draft) (*domain.Creation, error)
	// Delete はレコードを削除します。存在して削除できた場合のみ true を返し、
	// 2回目以降の呼び出しは false になります（冪等）。
	Delete(ctx context.Context, id string) (bool, error)
}
