package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shouni/go-gemini-client/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewStudioGenerator(t *testing.T) {
	t.Run("必須依存が欠けると初期化に失敗するのだ", func(t *testing.T) {
		_, err := NewStudioGenerator(nil, &mockHTTPClient{}, nil, time.Hour, "model-x")
		assert.Error(t, err)

		_, err = NewStudioGenerator(&mockAIClient{}, nil, nil, time.Hour, "model-x")
		assert.Error(t, err)

		_, err = NewStudioGenerator(&mockAIClient{}, &mockHTTPClient{}, nil, time.Hour, "")
		assert.Error(t, err)
	})

	t.Run("キャッシュなしでも動作するのだ", func(t *testing.T) {
		g, err := NewStudioGenerator(&mockAIClient{}, &mockHTTPClient{}, nil, time.Hour, "model-x")
		require.NoError(t, err)
		assert.NotNil(t, g)
	})
}

func TestParseToResponse(t *testing.T) {
	t.Run("正常系: 最初の画像パートが採用されるのだ", func(t *testing.T) {
		resp := imageResponse(
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("first")}},
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("second")}},
		)

		out, err := parseToResponse(resp)
		require.NoError(t, err)
		assert.Equal(t, []byte("first"), out.Data)
		assert.Equal(t, "image/png", out.MimeType)
	})

	t.Run("テキストパートは読み捨てて後続の画像を採用するのだ", func(t *testing.T) {
		resp := imageResponse(
			&genai.Part{Text: "here is your image"},
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("png-data")}},
		)

		out, err := parseToResponse(resp)
		require.NoError(t, err)
		assert.Equal(t, []byte("png-data"), out.Data)
	})

	t.Run("異常系: 候補が空ならErrNoImageなのだ", func(t *testing.T) {
		_, err := parseToResponse(&gemini.Response{RawResponse: &genai.GenerateContentResponse{}})
		assert.ErrorIs(t, err, ErrNoImage)

		_, err = parseToResponse(nil)
		assert.ErrorIs(t, err, ErrNoImage)
	})

	t.Run("異常系: パートが空ならErrNoImageなのだ", func(t *testing.T) {
		resp := &gemini.Response{
			RawResponse: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
			},
		}
		_, err := parseToResponse(resp)
		assert.ErrorIs(t, err, ErrNoImage)
	})

	t.Run("異常系: テキストのみの応答はErrNoImageなのだ", func(t *testing.T) {
		_, err := parseToResponse(imageResponse(&genai.Part{Text: "just text"}))
		assert.ErrorIs(t, err, ErrNoImage)
	})
}

func TestStudioGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("プロンプトがそのままテキストパートになるのだ", func(t *testing.T) {
		ai := &mockAIClient{generateResp: imageResponse(
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("fake")}},
		)}
		g, err := NewStudioGenerator(ai, &mockHTTPClient{}, nil, time.Hour, "model-x")
		require.NoError(t, err)

		out, err := g.Generate(ctx, GenerateRequest{Prompt: "Create a Van Gogh style artwork: a fox"})
		require.NoError(t, err)
		assert.Equal(t, []byte("fake"), out.Data)

		require.Len(t, ai.lastParts, 1)
		assert.Equal(t, "Create a Van Gogh style artwork: a fox", ai.lastParts[0].Text)
	})

	t.Run("外部呼び出しのエラーはラップして返すのだ", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		ai := &mockAIClient{generateErr: boom}
		g, err := NewStudioGenerator(ai, &mockHTTPClient{}, nil, time.Hour, "model-x")
		require.NoError(t, err)

		_, err = g.Generate(ctx, GenerateRequest{Prompt: "anything"})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("キャッシュ済みの参照画像はインラインパートとして添付されるのだ", func(t *testing.T) {
		// 有効なPNGヘッダを持つダミーデータ（DetectContentTypeがimage/pngと判定する）
		pngBytes := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)

		c := &mockCache{data: map[string]any{
			cacheKeyReference + "https://example.com/ref.png": pngBytes,
		}}
		ai := &mockAIClient{generateResp: imageResponse(
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("fake")}},
		)}
		g, err := NewStudioGenerator(ai, &mockHTTPClient{}, c, time.Hour, "model-x")
		require.NoError(t, err)

		_, err = g.Generate(ctx, GenerateRequest{
			Prompt:       "Transform this image in Picasso artistic style: a cat",
			ReferenceURL: "https://example.com/ref.png",
		})
		require.NoError(t, err)

		require.Len(t, ai.lastParts, 2)
		require.NotNil(t, ai.lastParts[1].InlineData)
		assert.Equal(t, "image/png", ai.lastParts[1].InlineData.MIMEType)
	})

	t.Run("参照画像の取得に失敗してもテキストのみで続行するのだ", func(t *testing.T) {
		ai := &mockAIClient{generateResp: imageResponse(
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("fake")}},
		)}
		// 127.0.0.1 は isSafeURL で拒否されるため、取得自体が行われない
		g, err := NewStudioGenerator(ai, &mockHTTPClient{err: errors.New("should not be called")}, nil, time.Hour, "model-x")
		require.NoError(t, err)

		out, err := g.Generate(ctx, GenerateRequest{
			Prompt:       "Transform this image in Picasso artistic style: a cat",
			ReferenceURL: "http://127.0.0.1/evil.png",
		})
		require.NoError(t, err)
		assert.NotNil(t, out)
		assert.Len(t, ai.lastParts, 1)
	})
}

func TestToInlinePart(t *testing.T) {
	t.Run("画像以外のデータはnilになるのだ", func(t *testing.T) {
		assert.Nil(t, toInlinePart([]byte("plain text content")))
	})
}
