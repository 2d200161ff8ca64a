// Package assets は生成画像のバイト列の保存と読み出しを担当します。
// 書き込み先は go-remote-io の OutputWriter で抽象化されており、
// ローカルディレクトリと GCS（gs:// パス）の両方に対応します。
package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// Store は画像ファイルの保存先を表します。
type Store struct {
	writer  remoteio.OutputWriter
	reader  remoteio.InputReader
	baseDir string
}

// NewStore は保存先ディレクトリを初期化して Store を返します。
// ローカルパスの場合はディレクトリを事前に作成します。
func NewStore(writer remoteio.OutputWriter, reader remoteio.InputReader, baseDir string) (*Store, error) {
	if writer == nil {
		return nil, fmt.Errorf("output writer is required")
	}
	if reader == nil {
		return nil, fmt.Errorf("input reader is required")
	}
	if baseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}

	if !strings.HasPrefix(baseDir, "gs://") {
		if err := os.MkdirAll(baseDir, 0o755); err != nil {
			return nil, fmt.Errorf("画像ディレクトリの作成に失敗しました: %w", err)
		}
	}

	return &Store{writer: writer, reader: reader, baseDir: baseDir}, nil
}

// Save はファイル名を指定して画像バイト列を書き込み、保存先パスを返します。
func (s *Store) Save(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	path := s.Path(filename)
	if err := s.writer.Write(ctx, path, bytes.NewReader(data), contentType); err != nil {
		return "", fmt.Errorf("画像の書き込みに失敗しました (%s): %w", path, err)
	}
	return path, nil
}

// Open は保存済み画像の読み取りストリームを返します。
// 呼び出し側が Close する責務を負います。
func (s *Store) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	rc, err := s.reader.Open(ctx, s.Path(filename))
	if err != nil {
		return nil, fmt.Errorf("画像を開けませんでした (%s): %w", filename, err)
	}
	return rc, nil
}

// Remove は保存済み画像をベストエフォートで削除します。
// リモート（gs://）の削除 API は持たないため、ローカルパスのみ対象です。
func (s *Store) Remove(filename string) error {
	if strings.HasPrefix(s.baseDir, "gs://") {
		return nil
	}
	err := os.Remove(s.Path(filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path はベースディレクトリ配下の保存先パスを返します。
// filepath.Base でファイル名部分だけを使い、ディレクトリトラバーサルを防ぎます。
func (s *Store) Path(filename string) string {
	if strings.HasPrefix(s.baseDir, "gs://") {
		return strings.TrimSuffix(s.baseDir, "/") + "/" + filepath.Base(filename)
	}
	return filepath.Join(s.baseDir, filepath.Base(filename))
}
