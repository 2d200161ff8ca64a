package store

import (
	"context"
	"testing"
	"time"

	"github.com/shouni/go-art-studio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Ordering(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// クロックを固定して t1 < t2 < t3 を作るのだ
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	first, err := s.Create(ctx, Draft{Type: domain.TypeDrawing, Prompt: "t1"})
	require.NoError(t, err)
	second, err := s.Create(ctx, Draft{Type: domain.TypeLego, Prompt: "t2"})
	require.NoError(t, err)
	third, err := s.Create(ctx, Draft{Type: domain.TypeDrawing, Prompt: "t3"})
	require.NoError(t, err)

	t.Run("ListAllは新しい順 [t3, t2, t1] なのだ", func(t *testing.T) {
		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, third.ID, all[0].ID)
		assert.Equal(t, second.ID, all[1].ID)
		assert.Equal(t, first.ID, all[2].ID)
	})

	t.Run("ListByTypeは同じ順序を保ったままフィルタするのだ", func(t *testing.T) {
		drawings, err := s.ListByType(ctx, domain.TypeDrawing)
		require.NoError(t, err)
		require.Len(t, drawings, 2)
		assert.Equal(t, third.ID, drawings[0].ID)
		assert.Equal(t, first.ID, drawings[1].ID)
		for _, c := range drawings {
			assert.Equal(t, domain.TypeDrawing, c.Type)
		}
	})

	t.Run("同時刻のレコードは後から入れたものが先なのだ", func(t *testing.T) {
		s2 := NewMemoryStore()
		s2.now = func() time.Time { return base }

		older, err := s2.Create(ctx, Draft{Type: domain.TypeLego, Prompt: "older"})
		require.NoError(t, err)
		newer, err := s2.Create(ctx, Draft{Type: domain.TypeLego, Prompt: "newer"})
		require.NoError(t, err)

		all, err := s2.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, newer.ID, all[0].ID)
		assert.Equal(t, older.ID, all[1].ID)
	})
}

func TestMemoryStore_CreateAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// 同一入力でも ID は毎回異なるのだ
	d := Draft{Type: domain.TypePlayground, Prompt: "same input"}
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		c, err := s.Create(ctx, d)
		require.NoError(t, err)
		assert.False(t, seen[c.ID], "IDが重複してはならないのだ: %s", c.ID)
		seen[c.ID] = true
		assert.False(t, c.CreatedAt.IsZero())
	}
}

func TestMemoryStore_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	created, err := s.Create(ctx, Draft{
		Type:     domain.TypeDrawing,
		Title:    "Van Gogh Artwork",
		Prompt:   "a fox",
		ImageURL: "/api/images/abc.png",
		Metadata: domain.Metadata{Drawing: &domain.DrawingMeta{Style: "Van Gogh", DrawingType: "text-to-image"}},
	})
	require.NoError(t, err)

	t.Run("Getは保存したレコードを返すのだ", func(t *testing.T) {
		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Prompt, got.Prompt)
		require.NotNil(t, got.Metadata.Drawing)
		assert.Equal(t, "Van Gogh", got.Metadata.Drawing.Style)
	})

	t.Run("未知IDのGetはErrNotFoundなのだ", func(t *testing.T) {
		_, err := s.Get(ctx, "no-such-id")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Deleteは冪等なのだ", func(t *testing.T) {
		removed, err := s.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		_, err = s.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		removed, err = s.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, removed, "2回目の削除はfalseなのだ")
	})
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	created, err := s.Create(ctx, Draft{Type: domain.TypeLego, Prompt: "original"})
	require.NoError(t, err)

	// 返り値をいじってもストア内部は変わらない
	created.Prompt = "tampered"

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Prompt)
}
