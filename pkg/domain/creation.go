package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// CreationType は作品が属するツールの種別です。
// 値は閉じた列挙で、作成時に一度だけ設定され変更されません。
type CreationType string

const (
	TypeDrawing    CreationType = "drawing"
	TypeLego       CreationType = "lego"
	TypePlayground CreationType = "playground"
)

// ParseCreationType は文字列を検証済みの CreationType に変換します。
func ParseCreationType(s string) (CreationType, error) {
	switch t := CreationType(s); t {
	case TypeDrawing, TypeLego, TypePlayground:
		return t, nil
	}
	return "", fmt.Errorf("未知の作品種別です: %q", s)
}

// Creation はギャラリーに保存される唯一の永続エンティティです。
// 更新操作は存在せず、全フィールドは作成時に確定します。
type Creation struct {
	ID        string       `json:"id"`
	Type      CreationType `json:"type"`
	Title     string       `json:"title"`
	Prompt    string       `json:"prompt"`
	ImageURL  string       `json:"imageUrl"`
	Metadata  Metadata     `json:"metadata"`
	CreatedAt time.Time    `json:"createdAt"`
}

// UnmarshalJSON は metadata を作品種別に応じたバリアントへ振り分けます。
func (c *Creation) UnmarshalJSON(data []byte) error {
	type alias Creation
	aux := struct {
		*alias
		Metadata json.RawMessage `json:"metadata"`
	}{alias: (*alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	return c.Metadata.Decode(c.Type, aux.Metadata)
}
