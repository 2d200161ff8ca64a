package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shouni/go-art-studio/pkg/domain"

	_ "modernc.org/sqlite"
)

// SQLiteStore は modernc.org/sqlite を用いた永続バックエンドです。
// プロセスを再起動しても画像ファイルとレコードの対応が保たれます。
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// sqliteTimeLayout は秒以下を固定幅9桁で書き出すレイアウトです。
// RFC3339Nano は末尾のゼロを削るため、ORDER BY の文字列比較で
// 同一秒内の順序が崩れることがあります。
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const createTableSQL = `
CREATE TABLE IF NOT EXISTS creations (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	type       TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	prompt     TEXT NOT NULL,
	image_url  TEXT NOT NULL,
	metadata   TEXT NOT NULL DEFAULT 'null',
	created_at TEXT NOT NULL
);`

// NewSQLiteStore は指定パスのデータベースを開き、スキーマを初期化します。
func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("データベースを開けませんでした: %w", err)
	}

	// SQLite は単一ライターのため、接続を1本に固定して SQLITE_BUSY を避ける
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("データベースへの接続に失敗しました: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		return nil, fmt.Errorf("テーブルの初期化に失敗しました: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close はデータベース接続を閉じます。
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get は ID で作品を取得します。
func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.Creation, error) {
	const query = `
	SELECT id, type, title, prompt, image_url, metadata, created_at
	FROM creations WHERE id = ?`

	c, err := scanCreation(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// ListAll は全作品を新しい順で返します。
// 同時刻のレコードは挿入連番（seq）の降順で安定します。
func (s *SQLiteStore) ListAll(ctx context.Context) ([]*domain.Creation, error) {
	const query = `
	SELECT id, type, title, prompt, image_url, metadata, created_at
	FROM creations ORDER BY created_at DESC, seq DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRows(rows)
}

// ListByType は指定種別の作品を新しい順で返します。
func (s *SQLiteStore) ListByType(ctx context.Context, t domain.CreationType) ([]*domain.Creation, error) {
	const query = `
	SELECT id, type, title, prompt, image_url, metadata, created_at
	FROM creations WHERE type = ? ORDER BY created_at DESC, seq DESC`

	rows, err := s.db.QueryContext(ctx, query, string(t))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRows(rows)
}

// Create は ID と作成時刻を採番してレコードを保存します。
// id カラムの UNIQUE 制約により、万一の衝突でも黙った上書きは起きません。
func (s *SQLiteStore) Create(ctx context.Context, d Draft) (*domain.Creation, error) {
	meta, err := json.Marshal(d.Metadata)
	if err != nil {
		return nil, fmt.Errorf("メタデータの変換に失敗しました: %w", err)
	}

	c := domain.Creation{
		ID:        uuid.NewString(),
		Type:      d.Type,
		Title:     d.Title,
		Prompt:    d.Prompt,
		ImageURL:  d.ImageURL,
		Metadata:  d.Metadata,
		CreatedAt: s.now().UTC(),
	}

	const query = `
	INSERT INTO creations (id, type, title, prompt, image_url, metadata, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, query,
		c.ID, string(c.Type), c.Title, c.Prompt, c.ImageURL, string(meta),
		c.CreatedAt.Format(sqliteTimeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("作品レコードの挿入に失敗しました: %w", err)
	}

	return &c, nil
}

// Delete はレコードを削除し、削除が発生したかどうかを返します。
func (s *SQLiteStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM creations WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// rowScanner は QueryRow と Rows の Scan を共通化するための最小インターフェースです。
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCreation(row rowScanner) (*domain.Creation, error) {
	var (
		c         domain.Creation
		typeStr   string
		metaRaw   string
		createdAt string
	)
	if err := row.Scan(&c.ID, &typeStr, &c.Title, &c.Prompt, &c.ImageURL, &metaRaw, &createdAt); err != nil {
		return nil, err
	}

	t, err := domain.ParseCreationType(typeStr)
	if err != nil {
		return nil, err
	}
	c.Type = t

	if err := c.Metadata.Decode(c.Type, []byte(metaRaw)); err != nil {
		return nil, err
	}

	ts, err := time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("作成時刻の復元に失敗しました: %w", err)
	}
	c.CreatedAt = ts

	return &c, nil
}

func collectRows(rows *sql.Rows) ([]*domain.Creation, error) {
	out := make([]*domain.Creation, 0)
	for rows.Next() {
		c, err := scanCreation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
