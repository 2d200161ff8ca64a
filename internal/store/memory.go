package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shouni/go-art-studio/pkg/domain"
)

// MemoryStore は RWMutex で保護されたインメモリ実装です。
// プロセス再起動でレコードは消えます（画像ファイルの再取り込みは行いません）。
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]memEntry
	seq  uint64
	now  func() time.Time
}

// memEntry は同時刻レコードの順序を安定させるための挿入連番を持ちます。
type memEntry struct {
	creation domain.Creation
	seq      uint64
}

// NewMemoryStore は空の MemoryStore を生成します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]memEntry),
		now:  time.Now,
	}
}

// Get は ID で作品を取得します。
func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Creation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := entry.creation
	return &c, nil
}

// ListAll は全作品を新しい順で返します。
func (s *MemoryStore) ListAll(ctx context.Context) ([]*domain.Creation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(domain.Creation) bool { return true }), nil
}

// ListByType は指定種別の作品を新しい順で返します。
func (s *MemoryStore) ListByType(ctx context.Context, t domain.CreationType) ([]*domain.Creation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(c domain.Creation) bool { return c.Type == t }), nil
}

// collect は条件に合うレコードのコピーを新しい順に並べて返します。
// 呼び出し側で読み取りロックを保持していることが前提です。
func (s *MemoryStore) collect(match func(domain.Creation) bool) []*domain.Creation {
	entries := make([]memEntry, 0, len(s.data))
	for _, e := range s.data {
		if match(e.creation) {
			entries = append(entries, e)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].creation.CreatedAt.Equal(entries[j].creation.CreatedAt) {
			return entries[i].creation.CreatedAt.After(entries[j].creation.CreatedAt)
		}
		// 同時刻なら後から挿入したものが先
		return entries[i].seq > entries[j].seq
	})

	out := make([]*domain.Creation, 0, len(entries))
	for _, e := range entries {
		c := e.creation
		out = append(out, &c)
	}
	return out
}

// Create は ID と作成時刻を採番してレコードを保存します。
func (s *MemoryStore) Create(ctx context.Context, d Draft) (*domain.Creation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	if _, exists := s.data[id]; exists {
		// UUIDv4 の衝突はまず起きないが、黙った上書きだけは絶対に避ける
		return nil, fmt.Errorf("ID採番が衝突しました: %s", id)
	}

	s.seq++
	c := domain.Creation{
		ID:        id,
		Type:      d.Type,
		Title:     d.Title,
		Prompt:    d.Prompt,
		ImageURL:  d.ImageURL,
		Metadata:  d.Metadata,
		CreatedAt: s.now().UTC(),
	}
	s.data[id] = memEntry{creation: c, seq: s.seq}

	out := c
	return &out, nil
}

// Delete はレコードを削除し、削除が発生したかどうかを返します。
func (s *MemoryStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}
