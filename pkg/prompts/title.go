package prompts

import "fmt"

// PlaygroundTitle は絵文字プレイグラウンド作品の固定タイトルです。
const PlaygroundTitle = "Playground Artwork"

// DrawingTitle はお絵描き作品のギャラリー表示用タイトルを返します。
func DrawingTitle(style string) string {
	return fmt.Sprintf("%s Artwork", style)
}

// LegoTitle はレゴ作品のギャラリー表示用タイトルを返します。
func LegoTitle(theme string) string {
	return fmt.Sprintf("%s LEGO Creation", theme)
}
