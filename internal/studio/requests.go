package studio

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput は入力検証エラーの基底です。
// ハンドラ側は errors.Is で判定し、400 として返します。
var ErrInvalidInput = errors.New("invalid input")

// DrawingRequest はお絵描きツールの生成リクエストです。
type DrawingRequest struct {
	Prompt       string `json:"prompt"`
	Style        string `json:"style"`
	Type         string `json:"type"`
	ReferenceURL string `json:"referenceUrl"`
}

// LegoRequest はレゴツールの生成リクエストです。
type LegoRequest struct {
	Prompt     string   `json:"prompt"`
	Colors     []string `json:"colors"`
	Size       string   `json:"size"`
	Complexity string   `json:"complexity"`
	Theme      string   `json:"theme"`
	Features   []string `json:"features"`
}

// PlaygroundRequest は絵文字プレイグラウンドの生成リクエストです。
type PlaygroundRequest struct {
	Emojis     []string `json:"emojis"`
	Background string   `json:"background"`
	Style      string   `json:"style"`
}

const maxPlaygroundEmojis = 5

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func (r DrawingRequest) validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return invalidf("prompt is required")
	}
	if strings.TrimSpace(r.Style) == "" {
		return invalidf("style is required")
	}
	return nil
}

func (r LegoRequest) validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return invalidf("prompt is required")
	}
	if len(r.Colors) == 0 {
		return invalidf("at least one color is required")
	}
	for _, c := range r.Colors {
		if strings.TrimSpace(c) == "" {
			return invalidf("colors must not contain blank entries")
		}
	}
	if strings.TrimSpace(r.Size) == "" {
		return invalidf("size is required")
	}
	if strings.TrimSpace(r.Complexity) == "" {
		return invalidf("complexity is required")
	}
	if strings.TrimSpace(r.Theme) == "" {
		return invalidf("theme is required")
	}
	return nil
}

func (r PlaygroundRequest) validate() error {
	if len(r.Emojis) == 0 {
		return invalidf("at least one emoji is required")
	}
	if len(r.Emojis) > maxPlaygroundEmojis {
		return invalidf("at most %d emojis are allowed", maxPlaygroundEmojis)
	}
	seen := make(map[string]bool, len(r.Emojis))
	for _, e := range r.Emojis {
		if strings.TrimSpace(e) == "" {
			return invalidf("emojis must not contain blank entries")
		}
		if seen[e] {
			return invalidf("emojis must be unique")
		}
		seen[e] = true
	}
	if strings.TrimSpace(r.Background) == "" {
		return invalidf("background is required")
	}
	if strings.TrimSpace(r.Style) == "" {
		return invalidf("style is required")
	}
	return nil
}
