package generator

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	imagedom "github.com/shouni/gemini-image-kit/ports"
	"github.com/shouni/gemini-image-kit/imgutil"
	"github.com/shouni/go-gemini-client/gemini"
	"google.golang.org/genai"
)

// parseToResponse は応答から最初の画像パートを抽出します。
// テキストパートは診断ログに残して読み捨てます。複数の画像パートが
// 返ってきた場合も「最初の1枚」だけを採用します。
func parseToResponse(resp *gemini.Response) (*imagedom.ImageResponse, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, fmt.Errorf("%w: 候補が空です", ErrNoImage)
	}

	candidate := resp.RawResponse.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: コンテンツパートが空です", ErrNoImage)
	}

	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			slog.Debug("Geminiのテキスト応答を読み捨てます", "text", part.Text)
			continue
		}
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return &imagedom.ImageResponse{
				Data:     part.InlineData.Data,
				MimeType: part.InlineData.MIMEType,
			}, nil
		}
	}

	return nil, ErrNoImage
}

// prepareReferencePart は参照画像を取得してインラインパートへ変換します。
// 取得や検証に失敗しても nil を返すだけで、テキストのみの生成に切り替わります。
func (g *StudioGenerator) prepareReferencePart(ctx context.Context, rawURL string) *genai.Part {
	if g.cache != nil {
		if val, ok := g.cache.Get(cacheKeyReference + rawURL); ok {
			if data, ok := val.([]byte); ok {
				return toInlinePart(data)
			}
		}
	}

	if safe, err := isSafeURL(rawURL); err != nil || !safe {
		slog.Warn("参照画像のURLが許可されないため無視します", "url", rawURL, "error", err)
		return nil
	}

	data, err := g.httpClient.FetchBytes(ctx, rawURL)
	if err != nil {
		slog.Warn("参照画像の取得に失敗したため、テキストのみで生成します", "url", rawURL, "error", err)
		return nil
	}

	finalData := data
	if compressed, err := imgutil.CompressToJPEG(data, referenceJPEGQuality); err == nil {
		finalData = compressed
	}

	if g.cache != nil {
		g.cache.Set(cacheKeyReference+rawURL, finalData, g.expiration)
	}

	return toInlinePart(finalData)
}

// toInlinePart はバイト列を画像パートへ変換します。画像以外は nil を返します。
func toInlinePart(data []byte) *genai.Part {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}

// isSafeURL は、SSRF 対策として参照画像の URL を検証します。
// 許可されたスキーム (http, https) かつ、プライベートIPやループバックアドレスを
// ターゲットにしていないことを確認します。
func isSafeURL(rawURL string) (bool, error) {
	parsedURL, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return false, fmt.Errorf("URLパース失敗: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return false, fmt.Errorf("不許可スキーム: %s", parsedURL.Scheme)
	}

	ips, err := net.LookupIP(parsedURL.Hostname())
	if err != nil {
		return false, fmt.Errorf("ホスト '%s' の名前解決に失敗しました: %w", parsedURL.Hostname(), err)
	}

	for _, ip := range ips {
		if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return false, fmt.Errorf("制限されたネットワークへのアクセスを検知: %s", ip.String())
		}
	}

	return true, nil
}
