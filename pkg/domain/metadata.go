package domain

import (
	"encoding/json"
	"fmt"
)

// Metadata はツール固有の構造化フィールドを保持するタグ付きユニオンです。
// 作品種別に対応するバリアントだけが非 nil になります。
// JSON 上ではアクティブなバリアントがそのままオブジェクトとして展開されます。
type Metadata struct {
	Drawing    *DrawingMeta
	Lego       *LegoMeta
	Playground *PlaygroundMeta
}

// DrawingMeta はお絵描きアシスタントの構造化入力です。
type DrawingMeta struct {
	Style       string `json:"style"`
	DrawingType string `json:"drawingType"`
}

// LegoMeta はレゴクリエイターの構造化入力です。
// Colors と Features は入力順を保持します。
type LegoMeta struct {
	Colors     []string `json:"colors"`
	Size       string   `json:"size"`
	Complexity string   `json:"complexity"`
	Theme      string   `json:"theme"`
	Features   []string `json:"features"`
}

// PlaygroundMeta は絵文字プレイグラウンドの構造化入力です。
type PlaygroundMeta struct {
	Emojis     []string `json:"emojis"`
	Background string   `json:"background"`
	Style      string   `json:"style"`
}

// MarshalJSON はアクティブなバリアントをそのまま書き出します。
func (m Metadata) MarshalJSON() ([]byte, error) {
	switch {
	case m.Drawing != nil:
		return json.Marshal(m.Drawing)
	case m.Lego != nil:
		return json.Marshal(m.Lego)
	case m.Playground != nil:
		return json.Marshal(m.Playground)
	}
	return []byte("null"), nil
}

// Decode は生の JSON を作品種別 t に対応するバリアントへ復元します。
func (m *Metadata) Decode(t CreationType, raw []byte) error {
	*m = Metadata{}
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	switch t {
	case TypeDrawing:
		v := &DrawingMeta{}
		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("drawing メタデータの復元に失敗しました: %w", err)
		}
		m.Drawing = v
	case TypeLego:
		v := &LegoMeta{}
		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("lego メタデータの復元に失敗しました: %w", err)
		}
		m.Lego = v
	case TypePlayground:
		v := &PlaygroundMeta{}
		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("playground メタデータの復元に失敗しました: %w", err)
		}
		m.Playground = v
	default:
		return fmt.Errorf("未知の作品種別のメタデータです: %q", t)
	}
	return nil
}
